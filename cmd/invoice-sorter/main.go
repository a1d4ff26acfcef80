package main

import (
	"os"

	"github.com/maxonary/LLM-Invoice-Sorter/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
