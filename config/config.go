package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de nomnom.
type Config struct {
	Scanner ScannerConfig `yaml:"scanner"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
	Demo    DemoConfig    `yaml:"demo"`
}

// ScannerConfig controla el comportamiento del scanner y del motor de señales.
type ScannerConfig struct {
	MinConfidence   float64 `yaml:"min_confidence"`   // umbral de emisión de recomendaciones
	MaxResults      int     `yaml:"max_results"`      // máximo de recomendaciones por scan
	MarketLimit     int     `yaml:"market_limit"`     // mercados pedidos a Gamma por scan
	DisclosureDays  int     `yaml:"disclosure_days"`  // ventana de disclosures legislativas
	IntervalSeconds int     `yaml:"interval_seconds"` // 0 = un solo scan
	AnalysisWorkers int     `yaml:"analysis_workers"` // 0 = NumCPU*2
	BookTimeoutMS   int     `yaml:"book_timeout_ms"`  // timeout por fetch de orderbook
}

// APIConfig contiene los endpoints externos.
type APIConfig struct {
	GammaBase    string `yaml:"gamma_base"`
	CLOBBase     string `yaml:"clob_base"`
	HouseURL     string `yaml:"house_url"`
	SenateURL    string `yaml:"senate_url"`
	QuiverURL    string `yaml:"quiver_url"`
	QuiverAPIKey string `yaml:"-"` // solo desde QUIVER_API_KEY
}

// StorageConfig controla la cache local de disclosures.
type StorageConfig struct {
	DSN                  string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
	DisclosureTTLMinutes int    `yaml:"disclosure_ttl_minutes"`
}

// MetricsConfig controla el endpoint de Prometheus.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // vacío = sin endpoint /metrics
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// DemoConfig controla el generador sintético de --demo.
type DemoConfig struct {
	Seed uint64 `yaml:"seed"`
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
// Con path vacío solo se aplican entorno y defaults.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(&cfg)

	return &cfg, nil
}

// ScanInterval devuelve el intervalo de escaneo como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.IntervalSeconds) * time.Second
}

// BookTimeout devuelve el timeout por fetch de orderbook.
func (c *Config) BookTimeout() time.Duration {
	return time.Duration(c.Scanner.BookTimeoutMS) * time.Millisecond
}

// DisclosureTTL devuelve cuánto vale una descarga cacheada de disclosures.
func (c *Config) DisclosureTTL() time.Duration {
	return time.Duration(c.Storage.DisclosureTTLMinutes) * time.Minute
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("NOMNOM_MIN_CONFIDENCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("NOMNOM_MIN_CONFIDENCE %q: %w", v, err)
		}
		cfg.Scanner.MinConfidence = f
	}
	if v := os.Getenv("NOMNOM_MAX_RESULTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NOMNOM_MAX_RESULTS %q: %w", v, err)
		}
		cfg.Scanner.MaxResults = n
	}
	if v := os.Getenv("QUIVER_API_KEY"); v != "" {
		cfg.API.QuiverAPIKey = v
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Scanner.MinConfidence <= 0 {
		cfg.Scanner.MinConfidence = 0.5
	}
	if cfg.Scanner.MaxResults <= 0 {
		cfg.Scanner.MaxResults = 10
	}
	if cfg.Scanner.MarketLimit <= 0 {
		cfg.Scanner.MarketLimit = 100
	}
	if cfg.Scanner.DisclosureDays <= 0 {
		cfg.Scanner.DisclosureDays = 30
	}
	if cfg.Scanner.IntervalSeconds < 0 {
		cfg.Scanner.IntervalSeconds = 0
	}
	if cfg.Scanner.BookTimeoutMS <= 0 {
		cfg.Scanner.BookTimeoutMS = 5000
	}
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.API.HouseURL == "" {
		cfg.API.HouseURL = "https://house-stock-watcher-data.s3-us-west-2.amazonaws.com/data/all_transactions.json"
	}
	if cfg.API.SenateURL == "" {
		cfg.API.SenateURL = "https://senate-stock-watcher-data.s3-us-west-2.amazonaws.com/aggregate/all_transactions.json"
	}
	if cfg.API.QuiverURL == "" {
		cfg.API.QuiverURL = "https://api.quiverquant.com/beta/live/congresstrading"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "nomnom.db"
	}
	if cfg.Storage.DisclosureTTLMinutes <= 0 {
		cfg.Storage.DisclosureTTLMinutes = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Demo.Seed == 0 {
		cfg.Demo.Seed = 42
	}
}
