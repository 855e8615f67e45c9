package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const maxDisclosureRows = 50

// PrintMarkets imprime la tabla de mercados activos.
func (c *Console) PrintMarkets(markets []domain.MarketSnapshot) {
	if len(markets) == 0 {
		fmt.Fprintln(c.out, "No markets found. Try --demo for example data.")
		return
	}

	fmt.Fprintf(c.out, "\nActive Prediction Markets (%d)\n", len(markets))
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "YES", "NO", "24h Vol", "Trade Link")
	for i, m := range markets {
		table.Append(
			fmt.Sprintf("%d", i+1),
			domain.TruncateQuestion(m.Question, m.ID, 50),
			fmt.Sprintf("$%.2f", m.YesPrice),
			fmt.Sprintf("$%.2f", m.NoPrice),
			domain.FormatUSD(m.Volume24h),
			m.TradeURL(),
		)
	}
	table.Render()
}

// PrintDisclosures imprime las operaciones legislativas y el recuento de
// operaciones inusuales.
func (c *Console) PrintDisclosures(trades []domain.LegislativeTrade, days, unusual int) {
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "No trades found.")
		return
	}

	fmt.Fprintf(c.out, "\nCongressional Trades (Last %d Days)\n", days)
	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Politician", "Party", "Chamber", "Ticker", "Type", "Amount", "Delay")
	for i, t := range trades {
		if i >= maxDisclosureRows {
			break
		}
		ticker := t.Ticker
		if ticker == "" {
			ticker = "N/A"
		}
		table.Append(
			t.TradeDate.Format("2006-01-02"),
			truncate(t.Politician, 20),
			t.Party,
			t.Chamber.String(),
			ticker,
			strings.ToUpper(t.TradeType.String()),
			domain.FormatUSD(t.AmountMidpoint()),
			fmt.Sprintf("%dd", t.DisclosureDelayDays()),
		)
	}
	table.Render()

	if len(trades) > maxDisclosureRows {
		fmt.Fprintf(c.out, "  ... %d more trades not shown\n", len(trades)-maxDisclosureRows)
	}
	if unusual > 0 {
		fmt.Fprintf(c.out, "\n  Unusual Activity: %d potentially unusual trades\n", unusual)
		fmt.Fprintln(c.out, "  Large amounts or quick disclosures may indicate time-sensitive information.")
	}
}

// PrintSignal imprime el análisis completo de un mercado, incluidas las cinco
// sub-señales, aunque la posición sea ABSTAIN.
func (c *Console) PrintSignal(s domain.InsiderSignal, now time.Time) {
	m := s.Market
	fmt.Fprintf(c.out, "\nMarket Analysis: %s\n", m.Question)

	info := tablewriter.NewWriter(c.out)
	info.Append("YES Price", fmt.Sprintf("$%.2f", m.YesPrice))
	info.Append("NO Price", fmt.Sprintf("$%.2f", m.NoPrice))
	info.Append("24h Volume", domain.FormatUSD(m.Volume24h))
	info.Append("Total Volume", domain.FormatUSD(m.TotalVolume))
	info.Append("Liquidity", domain.FormatUSD(m.Liquidity))
	category := m.Category
	if category == "" {
		category = "N/A"
	}
	info.Append("Category", category)
	if m.EndDate != nil {
		end := m.EndDate.Format("2006-01-02")
		if days, ok := m.DaysToResolution(now); ok {
			end = fmt.Sprintf("%s (%dd)", end, days)
		}
		info.Append("End Date", end)
	}
	info.Append("Order Book", s.BookStatus.String())
	info.Append("Trade URL", m.TradeURL())
	info.Render()

	fmt.Fprintln(c.out, "\nSignals")
	scores := tablewriter.NewWriter(c.out)
	scores.Header("Signal", "Score", "Evidence")
	for _, sub := range s.SubScores {
		name := sub.Type.String()
		if sub.Type == s.SignalType {
			name += " *"
		}
		scores.Append(name, fmt.Sprintf("%.2f", sub.Score), strings.Join(sub.Evidence, "\n"))
	}
	scores.Render()

	position := s.Position.String()
	if label := s.Position.Label(); label != "" {
		position = label
	}
	fmt.Fprintf(c.out, "\n  Confidence: %s (%s)\n", confidenceBar(s.Confidence), confidenceLevel(s.Confidence))
	fmt.Fprintf(c.out, "  Dominant:   %s (%s)\n", s.SignalType, s.Description())
	fmt.Fprintf(c.out, "  Position:   %s\n", position)
	fmt.Fprintf(c.out, "  Edge:       %.1f%%\n\n", s.ExpectedEdge*100)
}

// PrintFeeds imprime el estado de salud de los feeds y el resumen.
func (c *Console) PrintFeeds(statuses []domain.FeedStatus) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Feed", "Category", "Status", "Latency", "Items", "Message")
	for _, s := range statuses {
		latency := "-"
		if s.Latency > 0 {
			latency = s.Latency.Round(time.Millisecond).String()
		}
		table.Append(
			s.Name,
			s.Category,
			strings.ToUpper(s.Status.String()),
			latency,
			fmt.Sprintf("%d", s.Items),
			s.Message,
		)
	}
	table.Render()

	sum := domain.Summarize(statuses)
	fmt.Fprintf(c.out, "\n  %d feeds: %d healthy, %d degraded, %d down, %d not configured (%.1f%% healthy)\n\n",
		sum.Total, sum.Healthy, sum.Degraded, sum.Down, sum.NotConfigured, sum.HealthPercentage())
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
