package polymarket

import "encoding/json"

// DTOs raw de la API de Polymarket. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// --- CLOB API ---

// orderBookResponse es la respuesta de GET /book.
type orderBookResponse struct {
	Market  string         `json:"market"`
	AssetID string         `json:"asset_id"`
	Bids    []bookEntryRaw `json:"bids"`
	Asks    []bookEntryRaw `json:"asks"`
}

// bookEntryRaw es un nivel de precio raw de la API (strings para mayor precisión).
type bookEntryRaw struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// --- Gamma API ---

// gammaMarket es un mercado de GET /markets de Gamma.
// Gamma devuelve algunos campos numéricos como strings JSON, usamos json.Number.
// Los outcomes llegan como lista de tokens o como arrays JSON codificados en
// strings (outcomes, outcomePrices, clobTokenIds), según el endpoint.
type gammaMarket struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Slug          string       `json:"slug"`
	EndDate       string       `json:"endDate"`
	Category      string       `json:"category"`
	Volume        json.Number  `json:"volume"`
	Volume24h     json.Number  `json:"volume24hr"`
	Liquidity     json.Number  `json:"liquidity"`
	Tokens        []gammaToken `json:"tokens"`
	Outcomes      string       `json:"outcomes"`
	OutcomePrices string       `json:"outcomePrices"`
	ClobTokenIDs  string       `json:"clobTokenIds"`
}

// gammaToken es un outcome con su token del CLOB.
type gammaToken struct {
	TokenID string      `json:"token_id"`
	Outcome string      `json:"outcome"`
	Price   json.Number `json:"price"`
}
