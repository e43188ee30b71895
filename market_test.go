package invdash

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestHistory_AddBarsKeepsSeriesOrderedAndUnique(t *testing.T) {
	h := NewHistory()

	// Inserted out of order, stored ascending.
	if err := h.AddBars(
		bar2("AAPL", "2025-01-03", 102),
		bar2("AAPL", "2025-01-01", 100),
		bar2("AAPL", "2025-01-02", 101),
	); err != nil {
		t.Fatalf("AddBars() returned an unexpected error: %v", err)
	}

	bars := h.Bars("AAPL", MustParseDate("2025-01-01"), MustParseDate("2025-01-31"))
	if len(bars) != 3 {
		t.Fatalf("Bars() returned %d bars, want 3", len(bars))
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Date.Before(bars[i].Date) {
			t.Errorf("Bars() out of order: %s before %s", bars[i-1].Date, bars[i].Date)
		}
	}

	// A bar is immutable once stored: re-adding the same (ticker, date) fails.
	if err := h.AddBars(bar2("AAPL", "2025-01-02", 999)); err == nil {
		t.Error("AddBars() accepted a duplicate (ticker, date) bar")
	}
	if got, _ := h.PriceAsOf("AAPL", MustParseDate("2025-01-02")); !got.Equal(decimal.NewFromInt(101)) {
		t.Errorf("PriceAsOf() after rejected duplicate = %s, want the original 101", got)
	}
}

func TestHistory_BarsRangeIsInclusive(t *testing.T) {
	h := NewHistory()
	h.AddBars(
		bar2("SPY", "2025-01-01", 100),
		bar2("SPY", "2025-01-02", 101),
		bar2("SPY", "2025-01-03", 102),
	)

	bars := h.Bars("SPY", MustParseDate("2025-01-02"), MustParseDate("2025-01-03"))
	if len(bars) != 2 || bars[0].Date != MustParseDate("2025-01-02") {
		t.Errorf("Bars() = %v, want the two bars from Jan 2", bars)
	}
}

func TestHistory_PriceAsOf(t *testing.T) {
	h := NewHistory()
	h.AddBars(
		bar2("AAPL", "2025-01-02", 100),
		bar2("AAPL", "2025-01-09", 105),
	)

	testCases := []struct {
		name   string
		date   string
		want   float64
		wantOk bool
	}{
		{"before any bar", "2025-01-01", 0, false},
		{"exact date", "2025-01-02", 100, true},
		{"gap falls back to last known", "2025-01-05", 100, true},
		{"after the last bar", "2025-02-01", 105, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.PriceAsOf("AAPL", MustParseDate(tc.date))
			if ok != tc.wantOk {
				t.Fatalf("PriceAsOf() ok = %v, want %v", ok, tc.wantOk)
			}
			if ok && !got.Equal(decimal.NewFromFloat(tc.want)) {
				t.Errorf("PriceAsOf() = %s, want %v", got, tc.want)
			}
		})
	}

	// A missing price is a value, not an error: unknown ticker reports ok=false.
	if _, ok := h.PriceAsOf("MSFT", MustParseDate("2025-01-05")); ok {
		t.Error("PriceAsOf(unknown ticker) ok = true, want false")
	}
}

func TestHistory_BenchmarkSeries(t *testing.T) {
	h := NewHistory()
	if err := h.AddBenchmark(
		BenchmarkPoint{Symbol: "SPY", Date: MustParseDate("2025-01-01"), Close: decimal.NewFromInt(100)},
		BenchmarkPoint{Symbol: "SPY", Date: MustParseDate("2025-01-02"), Close: decimal.NewFromInt(102)},
	); err != nil {
		t.Fatalf("AddBenchmark() returned an unexpected error: %v", err)
	}
	if err := h.AddBenchmark(BenchmarkPoint{Symbol: "SPY", Date: MustParseDate("2025-01-02"), Close: decimal.NewFromInt(50)}); err == nil {
		t.Error("AddBenchmark() accepted a duplicate (symbol, date) point")
	}

	returns := h.BenchmarkReturns("SPY", MustParseDate("2025-01-01"), MustParseDate("2025-01-31"))
	if len(returns) != 1 || !returns[0].Return.Equal(decimal.NewFromFloat(0.02)) {
		t.Errorf("BenchmarkReturns() = %v, want a single +2%% return", returns)
	}
}

func bar2(ticker, date string, close float64) PriceBar {
	return PriceBar{Ticker: ticker, Date: MustParseDate(date), Close: decimal.NewFromFloat(close)}
}
