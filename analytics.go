package invdash

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// tradingDays is the annualization factor used for the Sharpe ratio.
const tradingDays = 252

// ErrNotEnoughData signals that a metric is undefined for the given series:
// fewer than two prices, an empty return series, or a return series with
// zero variance. It is distinct from a legitimate zero result.
var ErrNotEnoughData = errors.New("not enough data")

// DatedReturn is a single daily return observation.
type DatedReturn struct {
	Date   Date
	Return decimal.Decimal // fractional, e.g. 0.01 for +1%
}

// Returns derives daily returns from a price series ordered by date:
// (close[t] − close[t−1]) / close[t−1], computed exactly. A series of fewer
// than two bars yields an empty return series. Bars with a zero previous
// close are skipped rather than reported as an infinite return.
func Returns(bars []PriceBar) []DatedReturn {
	if len(bars) < 2 {
		return []DatedReturn{}
	}
	out := make([]DatedReturn, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev.IsZero() {
			continue
		}
		out = append(out, DatedReturn{
			Date:   bars[i].Date,
			Return: bars[i].Close.Sub(prev).Div(prev),
		})
	}
	return out
}

// SharpeRatio computes the annualized Sharpe ratio of a daily return series:
//
//	(mean(returns) − riskFreeAnnual/252) / stdev(returns) × √252
//
// The standard deviation is the population standard deviation, not the
// sample one: with the small samples a dashboard works on this is the
// deterministic, testable convention.
//
// An empty series or one with zero variance has no defined Sharpe ratio and
// returns ErrNotEnoughData rather than zero or a division by zero.
func SharpeRatio(returns []DatedReturn, riskFreeAnnual decimal.Decimal) (float64, error) {
	if len(returns) == 0 {
		return 0, ErrNotEnoughData
	}
	xs := make([]float64, len(returns))
	for i, r := range returns {
		xs[i] = r.Return.InexactFloat64()
	}
	stdev := stat.PopStdDev(xs, nil)
	if stdev == 0 {
		return 0, ErrNotEnoughData
	}
	dailyRiskFree := riskFreeAnnual.InexactFloat64() / tradingDays
	excess := stat.Mean(xs, nil) - dailyRiskFree
	return excess / stdev * math.Sqrt(tradingDays), nil
}

// AnnualizedVolatility computes the population standard deviation of daily
// returns scaled by √252. It returns ErrNotEnoughData on an empty series.
func AnnualizedVolatility(returns []DatedReturn) (float64, error) {
	if len(returns) == 0 {
		return 0, ErrNotEnoughData
	}
	xs := make([]float64, len(returns))
	for i, r := range returns {
		xs[i] = r.Return.InexactFloat64()
	}
	return stat.PopStdDev(xs, nil) * math.Sqrt(tradingDays), nil
}

// BenchmarkRelativeReturn compares the cumulative compounded return of the
// portfolio against that of a benchmark over the dates the two series share.
// Dates present in only one series are dropped before comparison; when no
// date is shared the comparison is undefined and ErrNotEnoughData is
// returned.
//
// The result is the arithmetic difference of the two cumulative returns,
// expressed in percent: +2.5 means the portfolio beat the benchmark by 2.5
// points over the period.
func BenchmarkRelativeReturn(portfolio, benchmark []DatedReturn) (Percent, error) {
	byDate := make(map[Date]decimal.Decimal, len(benchmark))
	for _, r := range benchmark {
		byDate[r.Date] = r.Return
	}

	one := decimal.NewFromInt(1)
	portfolioGrowth, benchmarkGrowth := one, one
	matched := false
	for _, r := range portfolio {
		b, ok := byDate[r.Date]
		if !ok {
			continue
		}
		matched = true
		portfolioGrowth = portfolioGrowth.Mul(one.Add(r.Return))
		benchmarkGrowth = benchmarkGrowth.Mul(one.Add(b))
	}
	if !matched {
		return 0, ErrNotEnoughData
	}
	diff := portfolioGrowth.Sub(benchmarkGrowth)
	return Percent(diff.InexactFloat64() * 100), nil
}
