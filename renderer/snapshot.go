package renderer

import (
	"bytes"
	"fmt"

	"github.com/invdash/invdash"
	md "github.com/nao1215/markdown"
)

// SnapshotMarkdown renders the full consolidated view: holdings, pending
// rebalance trades, performance and warnings.
func SnapshotMarkdown(s *invdash.PortfolioSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio on %s", s.Date))
	doc.PlainText(fmt.Sprintf("Total Market Value: %s", s.TotalValue))

	holdingsSection(doc, s)
	rebalanceSection(doc, s.Rebalance)
	performanceSection(doc, s)

	if len(s.Warnings) > 0 {
		doc.H2("Warnings")
		doc.BulletList(s.Warnings...)
	}

	return doc.String()
}

// HoldingsMarkdown renders the holdings table alone.
func HoldingsMarkdown(s *invdash.PortfolioSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Holdings on %s", s.Date))
	holdingsSection(doc, s)
	return doc.String()
}

func holdingsSection(doc *md.Markdown, s *invdash.PortfolioSnapshot) {
	if len(s.Holdings) == 0 {
		doc.PlainText("No open positions.")
		return
	}
	table := md.TableSet{
		Header: []string{"Ticker", "Quantity", "Cost Basis", "Market Value", "Unrealized", "Weight"},
	}
	for _, h := range s.Holdings {
		value, unrealized, weight := "-", "-", "-"
		if h.MarketValue != nil {
			value = h.MarketValue.String()
		}
		if h.UnrealizedPnL != nil {
			unrealized = h.UnrealizedPnL.SignedString()
		}
		if h.Weight != nil {
			weight = h.Weight.String()
		}
		table.Rows = append(table.Rows, []string{
			h.Ticker,
			h.Quantity.String(),
			h.CostBasis.String(),
			value,
			unrealized,
			weight,
		})
	}
	doc.Table(table)
}

// PerformanceMarkdown renders the performance metrics alone.
func PerformanceMarkdown(s *invdash.PortfolioSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Performance on %s", s.Date))
	if s.SharpeRatio == nil && s.RelativeReturn == nil && s.Dividends.IsZero() {
		doc.PlainText("Not enough history to compute performance metrics.")
	}
	performanceSection(doc, s)
	if len(s.Warnings) > 0 {
		doc.BulletList(s.Warnings...)
	}
	return doc.String()
}

func performanceSection(doc *md.Markdown, s *invdash.PortfolioSnapshot) {
	if s.SharpeRatio == nil && s.RelativeReturn == nil && s.Dividends.IsZero() {
		return
	}
	doc.H2("Performance")
	table := md.TableSet{
		Header: []string{"Metric", "Value"},
	}
	if s.SharpeRatio != nil {
		table.Rows = append(table.Rows, []string{"Sharpe Ratio", fmt.Sprintf("%.2f", *s.SharpeRatio)})
	}
	if s.RelativeReturn != nil {
		table.Rows = append(table.Rows, []string{"vs. Benchmark", s.RelativeReturn.SignedString()})
	}
	if !s.Dividends.IsZero() {
		table.Rows = append(table.Rows, []string{"Dividends Received", s.Dividends.String()})
	}
	doc.Table(table)
}
