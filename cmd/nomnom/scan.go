package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alejandrodnm/nomnom/internal/adapters/notify"
	"github.com/alejandrodnm/nomnom/internal/application/scanner"
)

type scanFlags struct {
	json          bool
	once          bool
	detailed      bool
	minConfidence float64
	maxResults    int
}

func newScanCmd(root *rootFlags) *cobra.Command {
	flags := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan markets for smart-money signals",
		Long: `Fetch active markets and recent congressional disclosures, analyze every
market and print the recommendations above the confidence threshold.

Without --once the scan repeats every scanner.interval_seconds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := a.cfg.Scanner
			if cmd.Flags().Changed("min-confidence") {
				cfg.MinConfidence = flags.minConfidence
			}
			if cmd.Flags().Changed("max-results") {
				cfg.MaxResults = flags.maxResults
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			a.serveMetrics(ctx)

			s := a.newScanner(scanner.Config{
				ScanInterval:    a.cfg.ScanInterval(),
				MarketLimit:     cfg.MarketLimit,
				DisclosureDays:  cfg.DisclosureDays,
				MinConfidence:   cfg.MinConfidence,
				MaxResults:      cfg.MaxResults,
				AnalysisWorkers: cfg.AnalysisWorkers,
				Once:            flags.once,
			}, notify.NewConsole(flags.json, flags.detailed))

			if err := s.Run(ctx); err != nil {
				return err
			}
			slog.Info("nomnom stopped cleanly")
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.json, "json", false, "print recommendations as JSON")
	f.BoolVar(&flags.once, "once", false, "run one scan cycle and exit")
	f.BoolVar(&flags.detailed, "detailed", false, "print the full breakdown of every recommendation")
	f.Float64Var(&flags.minConfidence, "min-confidence", 0.5, "minimum confidence to recommend (overrides config)")
	f.IntVar(&flags.maxResults, "max-results", 10, "maximum recommendations per scan (overrides config)")
	return cmd
}
