// Package commands wires the CLI together: configuration, collaborators and
// the report pipeline.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "invoice-sorter",
		Short: "Generate travel expense reports from sorted invoice PDFs",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newSinksCommand())

	return rootCmd
}
