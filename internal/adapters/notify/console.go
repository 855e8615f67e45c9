package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	questionWidth = 70
	barWidth      = 10

	disclaimer = "DISCLAIMER: this tool detects potential informed money patterns.\n" +
		"All trading involves risk. Do your own research before trading."
)

// Console implementa ports.Notifier escribiendo tablas o JSON.
type Console struct {
	out      io.Writer
	json     bool
	detailed bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(jsonOutput, detailed bool) *Console {
	return &Console{out: os.Stdout, json: jsonOutput, detailed: detailed}
}

// NewConsoleWriter crea un notificador sobre un writer arbitrario (tests).
func NewConsoleWriter(w io.Writer, jsonOutput, detailed bool) *Console {
	return &Console{out: w, json: jsonOutput, detailed: detailed}
}

// Notify imprime el resultado de un scan en el modo configurado.
func (c *Console) Notify(_ context.Context, report domain.ScanReport) error {
	if c.json {
		return c.PrintJSON(report.Recommendations)
	}

	recs := report.Recommendations
	if len(recs) == 0 {
		fmt.Fprintf(c.out, "[%s] No significant signals detected (%d markets, min confidence %.2f)\n",
			report.StartedAt.Format("15:04:05"), report.MarketsFetched, report.MinConfidence)
		fmt.Fprintln(c.out, "  Try lowering the threshold with --min-confidence 0.3 or use --demo")
		return nil
	}

	fmt.Fprintf(c.out, "\n[%s] NOMNOM SMART MONEY DETECTION — %d trade opportunities (%d markets, %d disclosures)\n",
		report.StartedAt.Format("15:04:05"), len(recs), report.MarketsFetched, report.Disclosures)
	if report.BookFailures > 0 {
		fmt.Fprintf(c.out, "  ! %d order books could not be fetched; imbalance treated as neutral\n", report.BookFailures)
	}

	c.printSummary(recs)
	if c.detailed {
		for i, r := range recs {
			c.printRecommendation(i+1, r)
		}
	}

	fmt.Fprintf(c.out, "\n%s\n\n", disclaimer)
	return nil
}

// jsonOutput es el sobre del modo --json.
type jsonOutput struct {
	Recommendations []domain.RecommendationRecord `json:"recommendations"`
	Count           int                           `json:"count"`
}

// PrintJSON escribe las recomendaciones como registros planos.
func (c *Console) PrintJSON(recs []domain.TradeRecommendation) error {
	out := jsonOutput{
		Recommendations: make([]domain.RecommendationRecord, 0, len(recs)),
		Count:           len(recs),
	}
	for _, r := range recs {
		out.Recommendations = append(out.Recommendations, r.Record())
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("notify.PrintJSON: %w", err)
	}
	return nil
}

// printSummary imprime una fila por recomendación.
func (c *Console) printSummary(recs []domain.TradeRecommendation) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "Position", "Confidence", "Price", "Edge", "Size", "Signal")

	for i, r := range recs {
		table.Append(
			fmt.Sprintf("%d", i+1),
			domain.TruncateQuestion(r.MarketQuestion, r.MarketID, 45),
			r.Position.Label(),
			confidenceBar(r.Confidence),
			fmt.Sprintf("$%.2f", r.CurrentPrice),
			fmt.Sprintf("%.1f%%", r.ExpectedEdge*100),
			fmt.Sprintf("%.1f%%", r.SuggestedSizePct),
			r.SignalType.String(),
		)
	}
	table.Render()
}

// printRecommendation imprime la ficha completa de una recomendación.
func (c *Console) printRecommendation(index int, r domain.TradeRecommendation) {
	fmt.Fprintf(c.out, "\n#%d: %s\n", index, domain.TruncateQuestion(r.MarketQuestion, r.MarketID, questionWidth))

	table := tablewriter.NewWriter(c.out)
	table.Append("Position", r.Position.Label())
	table.Append("Confidence", fmt.Sprintf("%.0f%% (%s)", r.Confidence*100, confidenceLevel(r.Confidence)))
	table.Append("Current Price", fmt.Sprintf("$%.2f", r.CurrentPrice))
	table.Append("Expected Edge", fmt.Sprintf("%.1f%%", r.ExpectedEdge*100))
	table.Append("Suggested Size", fmt.Sprintf("%.1f%% of bankroll", r.SuggestedSizePct))
	table.Append("Signal Type", fmt.Sprintf("%s (%s)", r.SignalType, r.SignalType.Description()))
	if len(r.Evidence) > 0 {
		table.Append("Evidence", "- "+strings.Join(r.Evidence, "\n- "))
	}
	table.Append("TRADE NOW", r.TradeURL)
	if r.Expires != nil {
		table.Append("Expires", r.Expires.UTC().Format("2006-01-02 15:04 UTC"))
	}
	table.Render()
}

// --- helpers ---

// confidenceBar dibuja la confianza como barra de 10 celdas: "███████░░░ 72%".
func confidenceBar(conf float64) string {
	filled := int(math.Round(math.Max(0, math.Min(1, conf)) * barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) +
		fmt.Sprintf(" %.0f%%", conf*100)
}

func confidenceLevel(conf float64) string {
	switch {
	case conf >= 0.7:
		return "high"
	case conf >= 0.5:
		return "medium"
	}
	return "low"
}
