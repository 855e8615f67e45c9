package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alejandrodnm/nomnom/internal/adapters/notify"
	"github.com/alejandrodnm/nomnom/internal/application/scanner"
)

func newAnalyzeCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <slug>",
		Short: "Print the full signal breakdown of one market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.newScanner(scanner.Config{
				DisclosureDays:  a.cfg.Scanner.DisclosureDays,
				AnalysisWorkers: 1,
			}, nil)

			signal, err := s.AnalyzeMarket(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			notify.NewConsole(false, true).PrintSignal(signal, time.Now())
			return nil
		},
	}
}
