package invdash

import "github.com/shopspring/decimal"

// MarketData is the contract of a price source. The Simulator is one
// conforming implementation; the EODHD adapter is another. Implementations
// are interchangeable without changing the engine.
//
// A missing price is a valid value, reported through the ok boolean or as a
// nil map entry, never as an error or a silent zero.
type MarketData interface {
	// CurrentPrice returns the latest price of a ticker, or ok=false when
	// the price is unavailable.
	CurrentPrice(ticker string) (price decimal.Decimal, ok bool)

	// DailyPrices returns the daily bars of a ticker within [from, to],
	// date ascending. The sequence is finite and restartable.
	DailyPrices(ticker string, from, to Date) []PriceBar

	// CurrentPrices looks up several tickers at once. Every requested
	// ticker is present in the result; an unavailable price maps to nil.
	CurrentPrices(tickers []string) map[string]*decimal.Decimal
}
