package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/alejandrodnm/nomnom/config"
	"github.com/alejandrodnm/nomnom/internal/adapters/congress"
	"github.com/alejandrodnm/nomnom/internal/adapters/demo"
	"github.com/alejandrodnm/nomnom/internal/adapters/metrics"
	"github.com/alejandrodnm/nomnom/internal/adapters/polymarket"
	"github.com/alejandrodnm/nomnom/internal/adapters/storage"
	"github.com/alejandrodnm/nomnom/internal/application/scanner"
	"github.com/alejandrodnm/nomnom/internal/ports"
)

const defaultConfigPath = "config/config.yaml"

// rootFlags son los flags compartidos por todos los subcomandos.
type rootFlags struct {
	configPath string
	demo       bool
	verbose    bool
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "nomnom",
		Short: "Smart-money signal scanner for Polymarket",
		Long: `nomnom fuses order-book imbalance, volume anomalies, congressional
trading disclosures, price momentum and event timing into a confidence score
per Polymarket market, and sizes positions with half-Kelly.

This is not financial advice.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", defaultConfigPath, "path to config file")
	pf.BoolVar(&flags.demo, "demo", false, "use seeded synthetic data instead of live APIs")
	pf.BoolVar(&flags.verbose, "verbose", false, "set log level to debug")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text|json (overrides config)")

	root.AddCommand(
		newScanCmd(flags),
		newMarketsCmd(flags),
		newCongressCmd(flags),
		newAnalyzeCmd(flags),
		newFeedsCmd(flags),
	)
	return root
}

// app agrupa la configuración y los adapters construidos para un comando.
type app struct {
	cfg         *config.Config
	demo        bool
	registry    *prometheus.Registry
	recorder    *metrics.Recorder
	markets     ports.MarketProvider
	books       ports.BookProvider
	disclosures ports.DisclosureProvider
	poly        *polymarket.Client // nil en modo demo
	congress    *congress.Client   // nil en modo demo
	closers     []io.Closer
}

// loadConfig lee la configuración. Sin --config explícito un archivo
// inexistente no es error: se usan entorno y defaults.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	path := flags.configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	return cfg, nil
}

// newApp carga la configuración y construye los providers según el modo.
func newApp(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.Log)

	reg := prometheus.NewRegistry()
	a := &app{
		cfg:      cfg,
		demo:     flags.demo,
		registry: reg,
		recorder: metrics.New(reg),
	}

	if flags.demo {
		p := demo.New(demo.NewSource(cfg.Demo.Seed), time.Now())
		a.markets, a.books, a.disclosures = p, p, p
		slog.Info("demo mode", "seed", cfg.Demo.Seed)
		return a, nil
	}

	a.poly = polymarket.NewClient(polymarket.Config{
		CLOBBase:    cfg.API.CLOBBase,
		GammaBase:   cfg.API.GammaBase,
		BookTimeout: cfg.BookTimeout(),
	})
	a.markets, a.books = a.poly, a.poly

	a.congress = congress.NewClient(congress.Config{
		HouseURL:  cfg.API.HouseURL,
		SenateURL: cfg.API.SenateURL,
	})
	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Warn("disclosure cache unavailable, fetching feeds directly", "dsn", cfg.Storage.DSN, "err", err)
		a.disclosures = a.congress
		return a, nil
	}
	a.closers = append(a.closers, store)
	a.disclosures = congress.NewCachedProvider(a.congress, store, cfg.DisclosureTTL(), nil)
	return a, nil
}

// newScanner construye el Scanner con los providers del app.
func (a *app) newScanner(cfg scanner.Config, notifier ports.Notifier) *scanner.Scanner {
	return scanner.New(cfg, scanner.Deps{
		Markets:     a.markets,
		Books:       a.books,
		Disclosures: a.disclosures,
		Notifier:    notifier,
		Metrics:     a.recorder,
	})
}

// serveMetrics expone /metrics si metrics.addr está configurado.
// El servidor se apaga al cancelar ctx.
func (a *app) serveMetrics(ctx context.Context) {
	if a.cfg.Metrics.Addr == "" {
		return
	}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("metrics endpoint listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// Close libera los recursos abiertos por newApp.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			slog.Warn("close failed", "err", err)
		}
	}
}

// signalContext devuelve un contexto que se cancela con SIGINT/SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// setupLogger configura slog. Los logs van a stderr para no mezclarse con
// la salida de tablas o JSON.
func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
