package main

import (
	"github.com/spf13/cobra"

	"github.com/alejandrodnm/nomnom/internal/adapters/notify"
	"github.com/alejandrodnm/nomnom/internal/adapters/probe"
	"github.com/alejandrodnm/nomnom/internal/application/feeds"
	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/alejandrodnm/nomnom/internal/ports"
)

func newFeedsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "feeds",
		Short: "Check the health of every data feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			monitor := feeds.NewMonitor(a.feedCatalog(), probe.New(0), a.recorder)
			statuses := monitor.CheckAll(cmd.Context())
			notify.NewConsole(false, false).PrintFeeds(statuses)
			return nil
		},
	}
}

// feedCatalog devuelve el catálogo con los breakers de los clientes vivos.
func (a *app) feedCatalog() []feeds.Feed {
	catalog := feeds.DefaultCatalog(feeds.Endpoints{
		GammaBase:    a.cfg.API.GammaBase,
		CLOBBase:     a.cfg.API.CLOBBase,
		HouseURL:     a.cfg.API.HouseURL,
		SenateURL:    a.cfg.API.SenateURL,
		QuiverURL:    a.cfg.API.QuiverURL,
		QuiverAPIKey: a.cfg.API.QuiverAPIKey,
	})
	if a.demo {
		return catalog
	}

	for i := range catalog {
		switch catalog[i].ID {
		case "polymarket_clob":
			catalog[i].Breaker = a.poly
		case "house_stock_watcher":
			catalog[i].Breaker = chamberBreaker(a, domain.ChamberHouse)
		case "senate_stock_watcher":
			catalog[i].Breaker = chamberBreaker(a, domain.ChamberSenate)
		}
	}
	return catalog
}

func chamberBreaker(a *app, chamber domain.Chamber) ports.BreakerReporter {
	return ports.BreakerFunc(func() bool { return a.congress.BreakerOpen(chamber) })
}
