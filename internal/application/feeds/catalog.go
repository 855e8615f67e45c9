package feeds

import (
	"strings"

	"github.com/alejandrodnm/nomnom/internal/ports"
)

// Categorías de feed.
const (
	CategoryPredictionMarkets = "Prediction Markets"
	CategoryCongressional     = "Congressional Trading"
)

const defaultQuiverURL = "https://api.quiverquant.com/beta/live/congresstrading"

// Feed describe una fuente de datos monitorizada.
type Feed struct {
	ID          string
	Name        string
	Category    string
	Description string
	Endpoint    string // vacío = sin endpoint chequeable
	// RequiresAuth indica que el feed necesita APIKey para responder.
	RequiresAuth bool
	APIKey       string
	// Breaker es opcional: con el breaker del cliente abierto el feed se
	// reporta degradado sin consultarlo.
	Breaker ports.BreakerReporter
}

// headers devuelve las cabeceras de autenticación del probe.
func (f Feed) headers() map[string]string {
	if f.APIKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Token " + f.APIKey}
}

// Endpoints agrupa las URLs base de los feeds conocidos.
type Endpoints struct {
	GammaBase    string
	CLOBBase     string
	HouseURL     string
	SenateURL    string
	QuiverURL    string
	QuiverAPIKey string
}

// DefaultCatalog devuelve los feeds que usa el scanner más Quiver Quant,
// que solo se chequea si hay API key.
func DefaultCatalog(e Endpoints) []Feed {
	quiver := e.QuiverURL
	if quiver == "" {
		quiver = defaultQuiverURL
	}
	return []Feed{
		{
			ID:          "polymarket_gamma",
			Name:        "Polymarket Gamma API",
			Category:    CategoryPredictionMarkets,
			Description: "Market data, prices, volumes for all Polymarket events",
			Endpoint:    joinURL(e.GammaBase, "/markets?limit=1"),
		},
		{
			ID:          "polymarket_clob",
			Name:        "Polymarket CLOB API",
			Category:    CategoryPredictionMarkets,
			Description: "Order book data, trades, real-time prices",
			Endpoint:    joinURL(e.CLOBBase, "/markets"),
		},
		{
			ID:          "house_stock_watcher",
			Name:        "House Stock Watcher",
			Category:    CategoryCongressional,
			Description: "House of Representatives financial disclosures",
			Endpoint:    e.HouseURL,
		},
		{
			ID:          "senate_stock_watcher",
			Name:        "Senate Stock Watcher",
			Category:    CategoryCongressional,
			Description: "Senate financial disclosures",
			Endpoint:    e.SenateURL,
		},
		{
			ID:           "quiver_quant",
			Name:         "Quiver Quantitative",
			Category:     CategoryCongressional,
			Description:  "Congressional trading aggregator with API",
			Endpoint:     quiver,
			RequiresAuth: true,
			APIKey:       e.QuiverAPIKey,
		},
	}
}

func joinURL(base, path string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + path
}
