package renderer

import (
	"strings"
	"testing"

	"github.com/invdash/invdash"
	"github.com/shopspring/decimal"
)

func TestRebalanceMarkdown(t *testing.T) {
	on := invdash.MustParseDate("2025-06-02")

	t.Run("balanced plan", func(t *testing.T) {
		got := RebalanceMarkdown(on, invdash.RebalancePlan{})
		if !strings.Contains(got, "Portfolio is balanced, no trade needed.") {
			t.Errorf("RebalanceMarkdown() = %q, want the balanced message", got)
		}
	})

	t.Run("plan with trades and warnings", func(t *testing.T) {
		plan := invdash.RebalancePlan{
			Trades: []invdash.RebalanceTrade{{
				Ticker:   "AAPL",
				Side:     invdash.SideSell,
				Notional: invdash.M(500, "USD"),
				Drift:    decimal.NewFromFloat(0.1667),
			}},
			Warnings: []string{"drift on SPY of -0.02 needs a $30.00 trade, below the minimum notional"},
		}
		got := RebalanceMarkdown(on, plan)
		// The header row comes out auto-formatted by the table writer.
		for _, want := range []string{"TICKER", "| AAPL", "sell", "$500.00", "+16.67%", "below the minimum notional"} {
			if !strings.Contains(got, want) {
				t.Errorf("RebalanceMarkdown() missing %q in:\n%s", want, got)
			}
		}
	})
}

func TestHoldingsMarkdown(t *testing.T) {
	value := invdash.M(2000, "USD")
	pnl := invdash.M(1000, "USD")
	weight := invdash.Percent(66.67)
	snap := &invdash.PortfolioSnapshot{
		Date:       invdash.MustParseDate("2025-06-02"),
		TotalValue: value,
		Holdings: []invdash.Holding{
			{
				Ticker:        "AAPL",
				Quantity:      invdash.Q(10),
				CostBasis:     invdash.M(1000, "USD"),
				MarketValue:   &value,
				UnrealizedPnL: &pnl,
				Weight:        &weight,
			},
			// Unpriced holding renders with placeholders.
			{Ticker: "TSLA", Quantity: invdash.Q(5), CostBasis: invdash.M(1000, "USD")},
		},
	}

	got := HoldingsMarkdown(snap)
	for _, want := range []string{"AAPL", "$2,000.00", "+$1,000.00", "66.67%", "TSLA", "-"} {
		if !strings.Contains(got, want) {
			t.Errorf("HoldingsMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestHoldingsMarkdown_Empty(t *testing.T) {
	snap := &invdash.PortfolioSnapshot{Date: invdash.MustParseDate("2025-06-02")}
	if got := HoldingsMarkdown(snap); !strings.Contains(got, "No open positions.") {
		t.Errorf("HoldingsMarkdown() = %q, want the empty message", got)
	}
}

func TestPerformanceMarkdown(t *testing.T) {
	sharpe := 1.25
	rel := invdash.Percent(2.5)
	snap := &invdash.PortfolioSnapshot{
		Date:           invdash.MustParseDate("2025-06-02"),
		SharpeRatio:    &sharpe,
		RelativeReturn: &rel,
		Dividends:      invdash.M(12, "USD"),
	}

	got := PerformanceMarkdown(snap)
	for _, want := range []string{"Sharpe Ratio", "1.25", "vs. Benchmark", "+2.50%", "Dividends Received", "$12.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("PerformanceMarkdown() missing %q in:\n%s", want, got)
		}
	}

	empty := &invdash.PortfolioSnapshot{Date: invdash.MustParseDate("2025-06-02")}
	if got := PerformanceMarkdown(empty); !strings.Contains(got, "Not enough history") {
		t.Errorf("PerformanceMarkdown() = %q, want the no-data message", got)
	}
}

func TestTransactions(t *testing.T) {
	txs := []invdash.Transaction{
		invdash.NewBuy(invdash.MustParseDate("2025-08-01"), "", "AAPL", invdash.Q(10), invdash.M(195.5, "USD")),
		invdash.NewDividend(invdash.MustParseDate("2025-08-03"), "", "AAPL", invdash.M(5.5, "USD")),
	}

	got := Transactions(txs)
	want := "2025-08-01: Bought 10 of AAPL at $195.50\n" +
		"2025-08-03: Dividend of $5.50 for AAPL\n"
	if got != want {
		t.Errorf("Transactions() = %q, want %q", got, want)
	}
}
