package congress_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alejandrodnm/nomnom/internal/adapters/congress"
	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newFeedServer sirve los fixtures de House y Senate. Un status distinto de
// cero para una cámara hace que su endpoint responda con ese código.
func newFeedServer(t *testing.T, houseStatus, senateStatus int) *httptest.Server {
	t.Helper()
	house, err := os.ReadFile("../../../testdata/fixtures/house_disclosures.json")
	require.NoError(t, err)
	senate, err := os.ReadFile("../../../testdata/fixtures/senate_disclosures.json")
	require.NoError(t, err)

	mux := http.NewServeMux()
	serve := func(body []byte, status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if status != 0 {
				w.WriteHeader(status)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
		}
	}
	mux.HandleFunc("/house.json", serve(house, houseStatus))
	mux.HandleFunc("/senate.json", serve(senate, senateStatus))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *congress.Client {
	return congress.NewClient(congress.Config{
		HouseURL:  srv.URL + "/house.json",
		SenateURL: srv.URL + "/senate.json",
		Timeout:   2 * time.Second,
	})
}

func TestFetchChamber_House(t *testing.T) {
	client := newTestClient(newFeedServer(t, 0, 0))

	trades, err := client.FetchChamber(context.Background(), domain.ChamberHouse)
	require.NoError(t, err)
	// fecha "--" y amount numérico se descartan
	require.Len(t, trades, 4)

	// Ordenadas por trade_date descendente
	assert.Equal(t, "Hon. Nancy Pelosi", trades[0].Politician)
	assert.Equal(t, "Hon. Pat Fallon", trades[1].Politician)
	assert.Equal(t, "Hon. No Amount", trades[2].Politician)
	assert.Equal(t, "Hon. Old Trade", trades[3].Politician)

	pelosi := trades[0]
	assert.Equal(t, domain.ChamberHouse, pelosi.Chamber)
	assert.Equal(t, domain.TradeSell, pelosi.TradeType)
	assert.Equal(t, "NVDA", pelosi.Ticker)
	assert.Equal(t, "CA", pelosi.State)
	assert.Equal(t, "Democrat", pelosi.Party)
	assert.InDelta(t, 1_000_001, pelosi.AmountLow, 0.001)
	assert.InDelta(t, 5_000_000, pelosi.AmountHigh, 0.001)
	assert.Equal(t, day(2026, 1, 12), pelosi.TradeDate)
	assert.Equal(t, 3, pelosi.DisclosureDelayDays())

	fallon := trades[1]
	assert.Equal(t, domain.TradeBuy, fallon.TradeType)
	assert.Equal(t, "Lockheed Martin Corporation", fallon.Company)
	assert.Equal(t, 10, fallon.DisclosureDelayDays())
	assert.Contains(t, fallon.SourceURL, "ptr-pdfs/2026/20012345.pdf")

	noAmount := trades[2]
	assert.InDelta(t, 1_001, noAmount.AmountLow, 0.001)
	assert.InDelta(t, 15_000, noAmount.AmountHigh, 0.001)
	assert.Equal(t, noAmount.TradeDate, noAmount.DisclosureDate, "sin disclosure_date usa la fecha de la operación")
	assert.Equal(t, "https://disclosures-clerk.house.gov/", noAmount.SourceURL)
	assert.Empty(t, noAmount.Party)

	old := trades[3]
	assert.Equal(t, domain.TradeOther, old.TradeType)
	assert.InDelta(t, 50_000_000, old.AmountLow, 0.001)
	assert.InDelta(t, 100_000_000, old.AmountHigh, 0.001)
	assert.Equal(t, old.TradeDate, old.DisclosureDate, "disclosure_date inválida usa la fecha de la operación")
}

func TestFetchChamber_Senate(t *testing.T) {
	client := newTestClient(newFeedServer(t, 0, 0))

	trades, err := client.FetchChamber(context.Background(), domain.ChamberSenate)
	require.NoError(t, err)
	// fecha en formato House se descarta
	require.Len(t, trades, 2)

	rtx := trades[0]
	assert.Equal(t, "Tommy Tuberville", rtx.Politician)
	assert.Equal(t, domain.ChamberSenate, rtx.Chamber)
	assert.Equal(t, domain.TradeBuy, rtx.TradeType)
	assert.Equal(t, day(2026, 1, 14), rtx.TradeDate)
	assert.Equal(t, day(2026, 1, 16), rtx.DisclosureDate)
	assert.InDelta(t, 50_001, rtx.AmountLow, 0.001)

	msft := trades[1]
	assert.Equal(t, domain.TradeSell, msft.TradeType)
	assert.Equal(t, 30, msft.DisclosureDelayDays())
	assert.Equal(t, "https://efdsearch.senate.gov/", msft.SourceURL)
}

func TestFetchDisclosures_BothChambersSince(t *testing.T) {
	client := newTestClient(newFeedServer(t, 0, 0))

	trades, err := client.FetchDisclosures(context.Background(), domain.ChamberUnknown, day(2026, 1, 1))
	require.NoError(t, err)
	require.Len(t, trades, 4)

	tickers := make([]string, 0, len(trades))
	for _, tr := range trades {
		tickers = append(tickers, tr.Ticker)
	}
	assert.Equal(t, []string{"RTX", "NVDA", "LMT", "PFE"}, tickers)
}

func TestFetchDisclosures_SingleChamber(t *testing.T) {
	client := newTestClient(newFeedServer(t, 0, 0))

	trades, err := client.FetchDisclosures(context.Background(), domain.ChamberSenate, day(2025, 12, 1))
	require.NoError(t, err)
	require.Len(t, trades, 2)
	for _, tr := range trades {
		assert.Equal(t, domain.ChamberSenate, tr.Chamber)
	}
}

func TestFetchDisclosures_OneFeedDown(t *testing.T) {
	client := newTestClient(newFeedServer(t, 0, http.StatusInternalServerError))

	trades, err := client.FetchDisclosures(context.Background(), domain.ChamberUnknown, day(2026, 1, 1))
	require.NoError(t, err, "una cámara caída no invalida la otra")
	require.Len(t, trades, 3)
	for _, tr := range trades {
		assert.Equal(t, domain.ChamberHouse, tr.Chamber)
	}
}

func TestFetchDisclosures_AllFeedsDown(t *testing.T) {
	client := newTestClient(newFeedServer(t, http.StatusForbidden, http.StatusInternalServerError))

	_, err := client.FetchDisclosures(context.Background(), domain.ChamberUnknown, day(2026, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchChamber_UnknownChamber(t *testing.T) {
	client := newTestClient(newFeedServer(t, 0, 0))

	_, err := client.FetchChamber(context.Background(), domain.Chamber(9))
	assert.True(t, errors.Is(err, congress.ErrUnknownChamber))

	_, err = client.FetchDisclosures(context.Background(), domain.Chamber(9), time.Time{})
	assert.True(t, errors.Is(err, congress.ErrUnknownChamber))
}

func TestFetchChamber_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	client := congress.NewClient(congress.Config{HouseURL: srv.URL, SenateURL: srv.URL})
	_, err := client.FetchChamber(context.Background(), domain.ChamberHouse)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode feed")
}

func TestFetchChamber_BreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := congress.NewClient(congress.Config{HouseURL: srv.URL, SenateURL: srv.URL})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := client.FetchChamber(ctx, domain.ChamberHouse)
		require.Error(t, err)
	}
	assert.True(t, client.BreakerOpen(domain.ChamberHouse))
	assert.False(t, client.BreakerOpen(domain.ChamberSenate), "cada cámara tiene su breaker")

	_, err := client.FetchChamber(ctx, domain.ChamberHouse)
	require.Error(t, err)
	assert.Equal(t, int32(3), hits.Load(), "con el breaker abierto no se llama al servidor")
}

func TestParseAmountRange(t *testing.T) {
	tests := []struct {
		raw       string
		low, high float64
	}{
		{"$1,001 - $15,000", 1_001, 15_000},
		{"$15,001 - $50,000", 15_001, 50_000},
		{"$50,001 - $100,000", 50_001, 100_000},
		{"$100,001 - $250,000", 100_001, 250_000},
		{"$250,001 - $500,000", 250_001, 500_000},
		{"$500,001 - $1,000,000", 500_001, 1_000_000},
		{"$1,000,001 - $5,000,000", 1_000_001, 5_000_000},
		{"$5,000,001 - $25,000,000", 5_000_001, 25_000_000},
		{"$25,000,001 - $50,000,000", 25_000_001, 50_000_000},
		{"Over $50,000,000", 50_000_000, 100_000_000},
		{"$2,500 - $7,500", 2_500, 7_500},
		{"Unknown", 1_001, 15_000},
		{"", 1_001, 15_000},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			low, high := congress.ParseAmountRange(tt.raw)
			assert.InDelta(t, tt.low, low, 0.001)
			assert.InDelta(t, tt.high, high, 0.001)
		})
	}
}
