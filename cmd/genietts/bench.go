package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/go-genie-tts/internal/bench"
	"github.com/example/go-genie-tts/internal/tts"
)

func newBenchCmd() *cobra.Command {
	var (
		text      string
		runs      int
		format    string
		threshold time.Duration
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark text-to-ID conversion latency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("--text is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			svc, err := tts.NewService(cfg)
			if err != nil {
				return err
			}

			results, err := bench.Run(cmd.Context(), runs, func(ctx context.Context) (int, error) {
				ids, err := svc.TextToPhones(ctx, text)
				return len(ids), err
			})
			if err != nil {
				return err
			}

			stats := bench.ComputeStats(bench.Durations(results))

			switch format {
			case "json":
				bench.FormatJSON(results, stats, cmd.OutOrStdout())
			default:
				bench.FormatTable(results, stats, cmd.OutOrStdout())
			}

			return bench.CheckLatencyThreshold(stats.Mean, threshold)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to convert on each run (required)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of conversion runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().DurationVar(&threshold, "max-mean", 0, "Exit non-zero if mean latency exceeds this value (0 = disabled)")

	return cmd
}
