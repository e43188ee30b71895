package invdash

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func bar(date string, close float64) PriceBar {
	return PriceBar{Date: MustParseDate(date), Close: decimal.NewFromFloat(close)}
}

func TestReturns(t *testing.T) {
	testCases := []struct {
		name string
		bars []PriceBar
		want []DatedReturn
	}{
		{
			name: "empty series",
			bars: nil,
			want: []DatedReturn{},
		},
		{
			name: "single bar",
			bars: []PriceBar{bar("2025-01-01", 100)},
			want: []DatedReturn{},
		},
		{
			name: "two bars",
			bars: []PriceBar{bar("2025-01-01", 100), bar("2025-01-02", 101)},
			want: []DatedReturn{
				{Date: MustParseDate("2025-01-02"), Return: decimal.NewFromFloat(0.01)},
			},
		},
		{
			name: "zero previous close is skipped",
			bars: []PriceBar{bar("2025-01-01", 0), bar("2025-01-02", 100), bar("2025-01-03", 110)},
			want: []DatedReturn{
				{Date: MustParseDate("2025-01-03"), Return: decimal.NewFromFloat(0.1)},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Returns(tc.bars)
			if len(got) != len(tc.want) {
				t.Fatalf("Returns() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i].Date != tc.want[i].Date || !got[i].Return.Equal(tc.want[i].Return) {
					t.Errorf("Returns()[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func returnsOf(values ...float64) []DatedReturn {
	out := make([]DatedReturn, len(values))
	day := MustParseDate("2025-01-01")
	for i, v := range values {
		out[i] = DatedReturn{Date: day.Add(i), Return: decimal.NewFromFloat(v)}
	}
	return out
}

func TestSharpeRatio(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		got, err := SharpeRatio(returnsOf(0.01, 0.02, 0.03), decimal.Zero)
		if err != nil {
			t.Fatalf("SharpeRatio() returned an unexpected error: %v", err)
		}
		// mean 0.02, population stdev sqrt(2e-4/3), annualized by sqrt(252).
		want := 0.02 / math.Sqrt(2e-4/3) * math.Sqrt(252)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("SharpeRatio() = %v, want %v", got, want)
		}
	})

	t.Run("risk free rate reduces the ratio", func(t *testing.T) {
		base, _ := SharpeRatio(returnsOf(0.01, 0.02, 0.03), decimal.Zero)
		reduced, err := SharpeRatio(returnsOf(0.01, 0.02, 0.03), decimal.NewFromFloat(0.04))
		if err != nil {
			t.Fatalf("SharpeRatio() returned an unexpected error: %v", err)
		}
		if reduced >= base {
			t.Errorf("SharpeRatio() with risk free rate = %v, want below %v", reduced, base)
		}
	})

	t.Run("empty series", func(t *testing.T) {
		if _, err := SharpeRatio(nil, decimal.Zero); !errors.Is(err, ErrNotEnoughData) {
			t.Errorf("SharpeRatio(empty) error = %v, want ErrNotEnoughData", err)
		}
	})

	t.Run("zero variance is undefined, not zero", func(t *testing.T) {
		if _, err := SharpeRatio(returnsOf(0.01, 0.01, 0.01), decimal.Zero); !errors.Is(err, ErrNotEnoughData) {
			t.Errorf("SharpeRatio(constant) error = %v, want ErrNotEnoughData", err)
		}
	})
}

func TestAnnualizedVolatility(t *testing.T) {
	if _, err := AnnualizedVolatility(nil); !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("AnnualizedVolatility(empty) error = %v, want ErrNotEnoughData", err)
	}
	got, err := AnnualizedVolatility(returnsOf(0.01, 0.03))
	if err != nil {
		t.Fatalf("AnnualizedVolatility() returned an unexpected error: %v", err)
	}
	want := 0.01 * math.Sqrt(252)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AnnualizedVolatility() = %v, want %v", got, want)
	}
}

func TestBenchmarkRelativeReturn(t *testing.T) {
	t.Run("identical series cancel out", func(t *testing.T) {
		series := returnsOf(0.01, -0.02, 0.03)
		got, err := BenchmarkRelativeReturn(series, series)
		if err != nil {
			t.Fatalf("BenchmarkRelativeReturn() returned an unexpected error: %v", err)
		}
		if !got.Equal(Percent(0)) {
			t.Errorf("BenchmarkRelativeReturn(x, x) = %s, want 0", got)
		}
	})

	t.Run("only shared dates participate", func(t *testing.T) {
		portfolio := []DatedReturn{
			{Date: MustParseDate("2025-01-02"), Return: decimal.NewFromFloat(0.10)},
			{Date: MustParseDate("2025-01-03"), Return: decimal.NewFromFloat(0.50)}, // no benchmark data
		}
		benchmark := []DatedReturn{
			{Date: MustParseDate("2025-01-02"), Return: decimal.NewFromFloat(0.05)},
			{Date: MustParseDate("2025-01-04"), Return: decimal.NewFromFloat(0.90)}, // no portfolio data
		}
		got, err := BenchmarkRelativeReturn(portfolio, benchmark)
		if err != nil {
			t.Fatalf("BenchmarkRelativeReturn() returned an unexpected error: %v", err)
		}
		// Only 2025-01-02 is shared: 10% vs 5% means 5 points ahead.
		if !got.Equal(Percent(5)) {
			t.Errorf("BenchmarkRelativeReturn() = %s, want 5.00%%", got)
		}
	})

	t.Run("no overlap is undefined", func(t *testing.T) {
		portfolio := []DatedReturn{{Date: MustParseDate("2025-01-02"), Return: decimal.NewFromFloat(0.1)}}
		benchmark := []DatedReturn{{Date: MustParseDate("2025-01-03"), Return: decimal.NewFromFloat(0.1)}}
		if _, err := BenchmarkRelativeReturn(portfolio, benchmark); !errors.Is(err, ErrNotEnoughData) {
			t.Errorf("BenchmarkRelativeReturn() error = %v, want ErrNotEnoughData", err)
		}
	})
}
