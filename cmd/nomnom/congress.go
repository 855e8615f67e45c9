package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alejandrodnm/nomnom/internal/adapters/congress"
	"github.com/alejandrodnm/nomnom/internal/adapters/notify"
	"github.com/alejandrodnm/nomnom/internal/domain"
)

type congressFlags struct {
	days    int
	chamber string
	sector  string
	unusual bool
}

func newCongressCmd(root *rootFlags) *cobra.Command {
	flags := &congressFlags{}
	cmd := &cobra.Command{
		Use:   "congress",
		Short: "List recent congressional trading disclosures",
		Long: `List House and Senate stock trades disclosed in the last --days days.

Sectors: ` + strings.Join(congress.Sectors(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chamber, err := parseChamberFlag(flags.chamber)
			if err != nil {
				return err
			}

			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			days := flags.days
			if days <= 0 {
				days = a.cfg.Scanner.DisclosureDays
			}
			since := time.Now().AddDate(0, 0, -days)

			trades, err := a.disclosures.FetchDisclosures(cmd.Context(), chamber, since)
			if err != nil {
				return fmt.Errorf("congress: %w", err)
			}
			trades = congress.BySector(trades, flags.sector)

			unusual := congress.Unusual(trades)
			if flags.unusual {
				trades = unusual
			}
			notify.NewConsole(false, false).PrintDisclosures(trades, days, len(unusual))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.days, "days", 30, "look-back window in days")
	f.StringVar(&flags.chamber, "chamber", "", "house|senate (default both)")
	f.StringVar(&flags.sector, "sector", "", "filter by sector keyword")
	f.BoolVar(&flags.unusual, "unusual", false, "only large or quickly disclosed trades")
	return cmd
}

// parseChamberFlag acepta "", "all", "house" y "senate".
func parseChamberFlag(s string) (domain.Chamber, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return domain.ChamberUnknown, nil
	}
	c, ok := domain.ParseChamber(s)
	if !ok {
		return domain.ChamberUnknown, fmt.Errorf("invalid --chamber %q: %w", s, congress.ErrUnknownChamber)
	}
	return c, nil
}
