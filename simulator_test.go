package invdash

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSimulator_PriceIsDeterministic(t *testing.T) {
	sim := NewSimulator()
	day := MustParseDate("2025-06-02")

	first := sim.Price("AAPL", day)
	second := sim.Price("AAPL", day)
	if !first.Equal(second) {
		t.Errorf("Price() = %s then %s, want identical values on repeated calls", first, second)
	}

	// A different date or a different ticker must vary the price.
	if other := sim.Price("AAPL", day.Add(1)); other.Equal(first) {
		t.Errorf("Price() on the next day = %s, want a different value than %s", other, first)
	}
	if other := sim.Price("MSFT", day); other.Equal(first) {
		t.Errorf("Price() for another ticker = %s, want a different value than %s", other, first)
	}
}

func TestSimulator_PriceStaysInSynthesisRange(t *testing.T) {
	// Base is in [50, 500]; growth and volatility adjust it by a few percent
	// per year. Over 2025 the price must stay positive and within a loose
	// envelope of the base range.
	sim := NewSimulator()
	for _, ticker := range []string{"AAPL", "MSFT", "GOOG", "SPY", "AGG", "VTI"} {
		p := sim.Price(ticker, MustParseDate("2025-06-02"))
		if !p.IsPositive() {
			t.Errorf("Price(%s) = %s, want positive", ticker, p)
		}
		if p.LessThan(decimal.NewFromInt(40)) || p.GreaterThan(decimal.NewFromInt(1000)) {
			t.Errorf("Price(%s) = %s, outside the plausible synthesis range", ticker, p)
		}
		if p.Exponent() < -2 {
			t.Errorf("Price(%s) = %s, want at most 2 decimal places", ticker, p)
		}
	}
}

func TestSimulator_DailyPricesSkipWeekends(t *testing.T) {
	sim := NewSimulator()
	// 2025-06-02 is a Monday; two full weeks cover ten trading days.
	from, to := MustParseDate("2025-06-02"), MustParseDate("2025-06-15")

	bars := sim.DailyPrices("AAPL", from, to)

	if len(bars) != 10 {
		t.Fatalf("DailyPrices() returned %d bars, want 10 trading days", len(bars))
	}
	for _, b := range bars {
		if b.Date.IsWeekend() {
			t.Errorf("DailyPrices() includes weekend bar on %s", b.Date)
		}
	}
	// Ascending and within range.
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Date.Before(bars[i].Date) {
			t.Errorf("DailyPrices() out of order: %s before %s", bars[i-1].Date, bars[i].Date)
		}
	}
}

func TestSimulator_BarFieldsDeriveFromClose(t *testing.T) {
	sim := NewSimulator()
	bars := sim.DailyPrices("SPY", MustParseDate("2025-06-02"), MustParseDate("2025-06-02"))
	if len(bars) != 1 {
		t.Fatalf("DailyPrices() returned %d bars, want 1", len(bars))
	}
	b := bars[0]
	if b.Open == nil || b.High == nil || b.Low == nil || b.Volume == nil {
		t.Fatal("DailyPrices() bar has missing optional fields, want all synthesized")
	}
	if !b.Open.Equal(b.Close.Mul(decimal.NewFromFloat(0.995))) {
		t.Errorf("open = %s, want close×0.995", b.Open)
	}
	if !b.High.Equal(b.Close.Mul(decimal.NewFromFloat(1.01))) {
		t.Errorf("high = %s, want close×1.01", b.High)
	}
	if !b.Low.Equal(b.Close.Mul(decimal.NewFromFloat(0.99))) {
		t.Errorf("low = %s, want close×0.99", b.Low)
	}
	wantVolume := 1_000_000 + b.Close.Mul(decimal.NewFromInt(10_000)).IntPart()
	if *b.Volume != wantVolume {
		t.Errorf("volume = %d, want %d", *b.Volume, wantVolume)
	}
}

func TestSimulator_SeriesIsReproducible(t *testing.T) {
	sim := NewSimulator()
	from, to := MustParseDate("2025-03-03"), MustParseDate("2025-03-31")

	first := sim.DailyPrices("GOOG", from, to)
	second := sim.DailyPrices("GOOG", from, to)

	if len(first) != len(second) {
		t.Fatalf("DailyPrices() lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Date != second[i].Date || !first[i].Close.Equal(second[i].Close) {
			t.Errorf("bar %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSimulator_CurrentPricesCoversEveryTicker(t *testing.T) {
	sim := NewSimulator()
	tickers := []string{"AAPL", "MSFT", "SPY"}
	prices := sim.CurrentPrices(tickers)
	if len(prices) != len(tickers) {
		t.Fatalf("CurrentPrices() returned %d entries, want %d", len(prices), len(tickers))
	}
	for _, ticker := range tickers {
		if prices[ticker] == nil {
			t.Errorf("CurrentPrices()[%s] = nil, want a price: the simulator is total", ticker)
		}
	}
}
