package invdash

import (
	"crypto/md5"
	"encoding/binary"

	"github.com/shopspring/decimal"
)

// Simulator is a deterministic market data source: every price is a pure
// function of ticker and date, so repeated calls and repeated runs produce
// identical series. It stands in for a live feed during development and in
// tests.
//
// The synthesis is hash based: a ticker-derived offset picks a base price in
// [50, 500], a linear growth factor accrues 0.02% per day since 2020-01-01,
// and a per-(ticker, date) hash adds ±1% of "volatility". The result is
// rounded to cents with banker's rounding.
type Simulator struct{}

// NewSimulator returns a deterministic price source.
func NewSimulator() *Simulator { return &Simulator{} }

// simEpoch is the fixed origin of the growth factor.
var simEpoch = NewDate(2020, 1, 1)

var (
	simBasePrice  = decimal.NewFromInt(100)
	simGrowthRate = decimal.NewFromFloat(0.0002) // ~5% annual growth
	simVolatility = decimal.NewFromFloat(0.02)   // 2% daily volatility
	simHalf       = decimal.NewFromFloat(0.5)
	simSpread     = decimal.NewFromFloat(4.5)
	simOne        = decimal.NewFromInt(1)
	// hashes are scaled to [0, 1] by the largest 32-bit value.
	simHashScale = decimal.NewFromInt(0xFFFFFFFF)
)

// hash32 computes a stable 32-bit hash of a string: the first four bytes of
// its MD5 digest read as a little-endian unsigned integer.
func hash32(input string) uint32 {
	sum := md5.Sum([]byte(input))
	return binary.LittleEndian.Uint32(sum[:4])
}

// unitHash maps a string to a deterministic decimal in [0, 1].
func unitHash(input string) decimal.Decimal {
	h := decimal.NewFromInt(int64(hash32(input)))
	return h.DivRound(simHashScale, 20)
}

// Price computes the deterministic close of a ticker on a date.
func (s *Simulator) Price(ticker string, on Date) decimal.Decimal {
	// Base price adjusted by ticker, ranging from 50 to 500.
	offset := unitHash(ticker)
	base := simBasePrice.Mul(simHalf.Add(offset.Mul(simSpread)))

	// Linear growth since the epoch. Days can be negative before it.
	days := decimal.NewFromInt(int64(on.Sub(simEpoch)))
	growth := simOne.Add(simGrowthRate.Mul(days))

	// Deterministic "volatility" from the (ticker, date) hash.
	dateHash := unitHash(ticker + ":" + on.String())
	volatility := simOne.Add(simVolatility.Mul(dateHash.Sub(simHalf)))

	return base.Mul(growth).Mul(volatility).RoundBank(2)
}

// CurrentPrice implements MarketData: the simulated price of today.
// The simulator can always produce a price, so ok is always true.
func (s *Simulator) CurrentPrice(ticker string) (decimal.Decimal, bool) {
	return s.Price(ticker, Today()), true
}

// DailyPrices implements MarketData: one bar per calendar day from `from` to
// `to` inclusive, skipping Saturdays and Sundays. Open, high, low and volume
// are synthesized from the close.
func (s *Simulator) DailyPrices(ticker string, from, to Date) []PriceBar {
	var bars []PriceBar
	for day := from; !day.After(to); day = day.Add(1) {
		if day.IsWeekend() {
			continue
		}
		c := s.Price(ticker, day)
		open := c.Mul(decimal.NewFromFloat(0.995))
		high := c.Mul(decimal.NewFromFloat(1.01))
		low := c.Mul(decimal.NewFromFloat(0.99))
		volume := 1_000_000 + c.Mul(decimal.NewFromInt(10_000)).IntPart()
		bars = append(bars, PriceBar{
			Ticker: ticker,
			Date:   day,
			Close:  c,
			Open:   &open,
			High:   &high,
			Low:    &low,
			Volume: &volume,
		})
	}
	return bars
}

// CurrentPrices implements MarketData: a bulk lookup over tickers. Every
// requested ticker maps to a non-nil price, since the simulator is total.
func (s *Simulator) CurrentPrices(tickers []string) map[string]*decimal.Decimal {
	prices := make(map[string]*decimal.Decimal, len(tickers))
	for _, ticker := range tickers {
		p, _ := s.CurrentPrice(ticker)
		prices[ticker] = &p
	}
	return prices
}

var _ MarketData = (*Simulator)(nil)
