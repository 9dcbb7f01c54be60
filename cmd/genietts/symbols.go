package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/go-genie-tts/internal/tts"
)

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List the symbol vocabulary as id<TAB>symbol",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			vocab, err := tts.LoadVocabulary(cfg.Paths.SymbolsPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for id, sym := range vocab.Symbols() {
				if _, err := fmt.Fprintf(out, "%d\t%s\n", id, sym); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
