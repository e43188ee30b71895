package invdash

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PriceBar is one day of price history for a security. Close is the only
// required value; open, high, low and volume are optional and their absence
// is never an error.
type PriceBar struct {
	Ticker string           `json:"ticker"`
	Date   Date             `json:"date"`
	Close  decimal.Decimal  `json:"close"`
	Open   *decimal.Decimal `json:"open,omitempty"`
	High   *decimal.Decimal `json:"high,omitempty"`
	Low    *decimal.Decimal `json:"low,omitempty"`
	Volume *int64           `json:"volume,omitempty"`
}

// BenchmarkPoint is one day of a benchmark series (e.g. SPY, AGG), keyed by
// symbol rather than by a security held in the portfolio.
type BenchmarkPoint struct {
	Symbol string          `json:"symbol"`
	Date   Date            `json:"date"`
	Close  decimal.Decimal `json:"close"`
}

// History is an in-memory store of price bars and benchmark series. Rows are
// unique per (ticker, date) and kept in ascending date order; a bar is
// immutable once stored.
type History struct {
	bars       map[string][]PriceBar       // by ticker, date ascending
	benchmarks map[string][]BenchmarkPoint // by symbol, date ascending
}

// NewHistory returns an empty price history.
func NewHistory() *History {
	return &History{
		bars:       make(map[string][]PriceBar),
		benchmarks: make(map[string][]BenchmarkPoint),
	}
}

// AddBars stores price bars, keeping each ticker's series unique per date
// and ordered. Re-adding an existing (ticker, date) is rejected: bars are
// immutable once stored.
func (h *History) AddBars(bars ...PriceBar) error {
	for _, bar := range bars {
		series := h.bars[bar.Ticker]
		i := sort.Search(len(series), func(i int) bool { return !series[i].Date.Before(bar.Date) })
		if i < len(series) && series[i].Date == bar.Date {
			return fmt.Errorf("price bar for %s on %s already stored", bar.Ticker, bar.Date)
		}
		series = append(series, PriceBar{})
		copy(series[i+1:], series[i:])
		series[i] = bar
		h.bars[bar.Ticker] = series
	}
	return nil
}

// AddBenchmark stores benchmark points with the same uniqueness and ordering
// rules as price bars.
func (h *History) AddBenchmark(points ...BenchmarkPoint) error {
	for _, p := range points {
		series := h.benchmarks[p.Symbol]
		i := sort.Search(len(series), func(i int) bool { return !series[i].Date.Before(p.Date) })
		if i < len(series) && series[i].Date == p.Date {
			return fmt.Errorf("benchmark point for %s on %s already stored", p.Symbol, p.Date)
		}
		series = append(series, BenchmarkPoint{})
		copy(series[i+1:], series[i:])
		series[i] = p
		h.benchmarks[p.Symbol] = series
	}
	return nil
}

// Bars returns the stored price bars of a ticker within [from, to], date
// ascending.
func (h *History) Bars(ticker string, from, to Date) []PriceBar {
	var out []PriceBar
	for _, bar := range h.bars[ticker] {
		if bar.Date.Before(from) || bar.Date.After(to) {
			continue
		}
		out = append(out, bar)
	}
	return out
}

// Benchmark returns the stored points of a benchmark symbol within [from, to],
// date ascending.
func (h *History) Benchmark(symbol string, from, to Date) []BenchmarkPoint {
	var out []BenchmarkPoint
	for _, p := range h.benchmarks[symbol] {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PriceAsOf returns the last known close of a ticker on or before a date.
// The boolean is false when no price is known: absence is a value here,
// never an error.
func (h *History) PriceAsOf(ticker string, on Date) (decimal.Decimal, bool) {
	series := h.bars[ticker]
	for i := len(series) - 1; i >= 0; i-- {
		if !series[i].Date.After(on) {
			return series[i].Close, true
		}
	}
	return decimal.Zero, false
}

// BenchmarkReturns derives daily returns from a stored benchmark series.
func (h *History) BenchmarkReturns(symbol string, from, to Date) []DatedReturn {
	points := h.Benchmark(symbol, from, to)
	bars := make([]PriceBar, len(points))
	for i, p := range points {
		bars[i] = PriceBar{Ticker: p.Symbol, Date: p.Date, Close: p.Close}
	}
	return Returns(bars)
}
