package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alejandrodnm/nomnom/internal/adapters/notify"
)

func newMarketsCmd(root *rootFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "markets",
		Short: "List active markets by 24h volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			if limit <= 0 {
				limit = a.cfg.Scanner.MarketLimit
			}
			markets, err := a.markets.FetchMarkets(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("markets: %w", err)
			}
			notify.NewConsole(false, false).PrintMarkets(markets)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of markets to list (0 = scanner.market_limit)")
	return cmd
}
