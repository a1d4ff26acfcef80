package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxonary/LLM-Invoice-Sorter/internal/sinks"
)

func newSinksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sinks",
		Short: "List the available report sinks",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range sinks.NewRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
