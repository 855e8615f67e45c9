package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alejandrodnm/nomnom/internal/adapters/notify"
	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRec(question string, pos domain.Position, conf float64) domain.TradeRecommendation {
	expires := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return domain.TradeRecommendation{
		MarketID:         "m1",
		MarketQuestion:   question,
		Position:         pos,
		Confidence:       conf,
		CurrentPrice:     0.72,
		ExpectedEdge:     0.05,
		SuggestedSizePct: 8.929,
		SignalType:       domain.SignalOrderImbalance,
		Evidence:         []string{"Strong buy pressure: 50.0% order imbalance"},
		TradeURL:         "https://polymarket.com/event/fed-rate-cut",
		PolymarketURL:    "https://polymarket.com/event/fed-rate-cut",
		Expires:          &expires,
	}
}

func makeReport(recs ...domain.TradeRecommendation) domain.ScanReport {
	return domain.ScanReport{
		ScanID:          "scan-1",
		StartedAt:       time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
		MinConfidence:   0.5,
		MarketsFetched:  100,
		Disclosures:     12,
		Recommendations: recs,
	}
}

func TestConsole_Notify_WithRecommendations(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, true)

	report := makeReport(
		makeRec("Will the Fed cut rates?", domain.PositionYes, 0.72),
		makeRec("Will BTC hit 150k?", domain.PositionNo, 0.55),
	)
	report.BookFailures = 3

	require.NoError(t, n.Notify(context.Background(), report))

	out := buf.String()
	assert.Contains(t, out, "2 trade opportunities")
	assert.Contains(t, out, "3 order books could not be fetched")
	assert.Contains(t, out, "Will the Fed cut rates?")
	assert.Contains(t, out, "Will BTC hit 150k?")
	assert.Contains(t, out, "BUY YES")
	assert.Contains(t, out, "BUY NO")
	assert.Contains(t, out, "███████░░░ 72%")
	assert.Contains(t, out, "8.9% of bankroll")
	assert.Contains(t, out, "Strong buy pressure")
	assert.Contains(t, out, "https://polymarket.com/event/fed-rate-cut")
	assert.Contains(t, out, "2026-03-01 00:00 UTC")
	assert.Contains(t, out, "DISCLAIMER")
}

func TestConsole_Notify_SummaryOnly(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	require.NoError(t, n.Notify(context.Background(), makeReport(makeRec("Will the Fed cut rates?", domain.PositionYes, 0.72))))

	out := buf.String()
	assert.Contains(t, out, "Will the Fed cut rates?")
	assert.NotContains(t, out, "of bankroll", "sin fichas de detalle")
}

func TestConsole_Notify_Empty(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, true)

	require.NoError(t, n.Notify(context.Background(), makeReport()))
	assert.Contains(t, buf.String(), "No significant signals detected")
	assert.Contains(t, buf.String(), "min confidence 0.50")
}

func TestConsole_Notify_JSON(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true, false)

	require.NoError(t, n.Notify(context.Background(), makeReport(makeRec("Will the Fed cut rates?", domain.PositionYes, 0.7234))))

	var out struct {
		Recommendations []map[string]any `json:"recommendations"`
		Count           int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Recommendations, 1)

	rec := out.Recommendations[0]
	assert.Equal(t, "Will the Fed cut rates?", rec["market"])
	assert.Equal(t, "BUY YES", rec["position"])
	assert.Equal(t, 0.72, rec["confidence"])
	assert.Equal(t, 8.929, rec["suggested_size_pct"])
	assert.Equal(t, "order_imbalance", rec["signal_type"])
	assert.Equal(t, "2026-03-01T00:00:00Z", rec["expires"])
}

func TestConsole_PrintJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true, false)

	require.NoError(t, n.PrintJSON(nil))
	assert.Contains(t, buf.String(), `"recommendations": []`)
	assert.Contains(t, buf.String(), `"count": 0`)
}

func TestConsole_LongQuestionTruncated(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	longQ := strings.Repeat("A", 80)
	require.NoError(t, n.Notify(context.Background(), makeReport(makeRec(longQ, domain.PositionYes, 0.6))))
	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), longQ)
}

func TestConsole_PrintMarkets(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	n.PrintMarkets([]domain.MarketSnapshot{{
		ID:        "1",
		Question:  "Will the Fed cut rates?",
		Slug:      "fed-rate-cut",
		YesPrice:  0.72,
		NoPrice:   0.28,
		Volume24h: 847_000,
	}})

	out := buf.String()
	assert.Contains(t, out, "Will the Fed cut rates?")
	assert.Contains(t, out, "$0.72")
	assert.Contains(t, out, "$847,000")
	assert.Contains(t, out, "https://polymarket.com/event/fed-rate-cut")

	buf.Reset()
	n.PrintMarkets(nil)
	assert.Contains(t, buf.String(), "No markets found")
}

func TestConsole_PrintDisclosures(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	td := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	n.PrintDisclosures([]domain.LegislativeTrade{{
		Politician:     "Nancy Pelosi",
		Party:          "D",
		Chamber:        domain.ChamberHouse,
		TradeType:      domain.TradeBuy,
		AmountLow:      500_001,
		AmountHigh:     1_000_000,
		TradeDate:      td,
		DisclosureDate: td.AddDate(0, 0, 3),
	}}, 30, 1)

	out := buf.String()
	assert.Contains(t, out, "Last 30 Days")
	assert.Contains(t, out, "2026-01-10")
	assert.Contains(t, out, "Nancy Pelosi")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "$750,000")
	assert.Contains(t, out, "3d")
	assert.Contains(t, out, "1 potentially unusual trades")
}

func TestConsole_PrintSignal(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	s := domain.InsiderSignal{
		Market: domain.MarketSnapshot{
			ID: "1", Question: "Will the Fed cut rates?", Slug: "fed-rate-cut",
			YesPrice: 0.5, NoPrice: 0.5, EndDate: &end,
		},
		SignalType: domain.SignalVolumeSpike,
		Confidence: 0.15,
		Position:   domain.PositionAbstain,
		SubScores: []domain.SubScore{
			{Type: domain.SignalVolumeSpike, Score: 0.3, Evidence: []string{"High absolute volume: $847,000"}},
			{Type: domain.SignalOrderImbalance},
		},
		BookStatus: domain.FetchFailed,
	}
	n.PrintSignal(s, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	out := buf.String()
	assert.Contains(t, out, "Will the Fed cut rates?")
	assert.Contains(t, out, "2026-02-01 (17d)")
	assert.Contains(t, out, "volume_spike *")
	assert.Contains(t, out, "order_imbalance")
	assert.Contains(t, out, "High absolute volume: $847,000")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "ABSTAIN")
	assert.Contains(t, out, "Unusual volume activity detected")
}

func TestConsole_PrintFeeds(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	n.PrintFeeds([]domain.FeedStatus{
		{Name: "Polymarket Gamma API", Category: "Prediction Markets", Status: domain.HealthHealthy, Latency: 120 * time.Millisecond, Items: 1},
		{Name: "Quiver Quantitative", Category: "Congressional Trading", Status: domain.HealthNotConfigured, Message: "Requires api_key authentication"},
	})

	out := buf.String()
	assert.Contains(t, out, "Polymarket Gamma API")
	assert.Contains(t, out, "HEALTHY")
	assert.Contains(t, out, "120ms")
	assert.Contains(t, out, "NOT_CONFIGURED")
	assert.Contains(t, out, "2 feeds: 1 healthy")
	assert.Contains(t, out, "50.0% healthy")
}
