package invdash

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Holding is the state of one security inside a snapshot: open quantity,
// FIFO cost basis, and, when a price is available, market value, weight and
// unrealized gain. A missing price leaves those fields nil and adds a
// warning; the holding still appears in the snapshot.
type Holding struct {
	Ticker        string           `json:"ticker"`
	Quantity      Quantity         `json:"quantity"`
	CostBasis     Money            `json:"costBasis"` // total cost of open lots
	Lots          []Lot            `json:"lots"`      // FIFO order
	Price         *decimal.Decimal `json:"price,omitempty"`
	MarketValue   *Money           `json:"marketValue,omitempty"`
	UnrealizedPnL *Money           `json:"unrealizedPnL,omitempty"`
	Weight        *Percent         `json:"weight,omitempty"`
}

// PortfolioSnapshot is the consolidated view the engine hands to an API
// layer: current value, per-security weights, the pending rebalance plan and
// the performance metrics, with stable (ticker ascending) ordering
// throughout so serialization is deterministic.
type PortfolioSnapshot struct {
	Date           Date          `json:"date"`
	Currency       string        `json:"currency"`
	TotalValue     Money         `json:"totalValue"`
	Holdings       []Holding     `json:"holdings"`
	Rebalance      RebalancePlan `json:"rebalance"`
	SharpeRatio    *float64      `json:"sharpeRatio,omitempty"`    // nil when undefined
	RelativeReturn *Percent      `json:"relativeReturn,omitempty"` // vs. settings.Benchmark
	Dividends      Money         `json:"dividends"`
	Warnings       []string      `json:"warnings,omitempty"`
}

// Engine composes the lot book, the planner, the analytics and a market data
// source into portfolio snapshots. It owns no algorithmic logic of its own:
// it orders the calls and merges the results.
//
// All methods are synchronous and operate on already-fetched data. Mutations
// go through the Store, which serializes them.
type Engine struct {
	Store  Store
	Market MarketData
}

// NewEngine creates an engine over a store and a market data source.
func NewEngine(store Store, market MarketData) *Engine {
	return &Engine{Store: store, Market: market}
}

// lookback is the window, in days, over which snapshot performance metrics
// are computed.
const lookback = 365

// Snapshot assembles the consolidated state of the portfolio on a date.
//
// Holdings are priced with a bulk market lookup; a ticker whose price is
// unavailable is reported without value or weight, with a warning, and does
// not participate in rebalancing (its market value is unknown). Performance
// metrics degrade the same way: when they cannot be computed the fields stay
// nil and a warning explains why. The snapshot itself only fails when the
// store does.
func (e *Engine) Snapshot(on Date) (*PortfolioSnapshot, error) {
	settings := e.Store.Settings()
	snap := &PortfolioSnapshot{
		Date:     on,
		Currency: settings.Currency,
	}
	snap.TotalValue = M(0, settings.Currency)

	// Current holdings from the lot books, priced in bulk.
	securities := e.Store.AllSecurities()
	tickers := make([]string, 0, len(securities))
	for _, sec := range securities {
		tickers = append(tickers, sec.Ticker)
	}
	prices := e.Market.CurrentPrices(tickers)

	values := make(map[string]Money)
	for _, sec := range securities {
		lots := e.Store.Lots(sec.Ticker, on)
		if len(lots) == 0 {
			continue // position closed, excluded from holdings
		}
		h := Holding{Ticker: sec.Ticker, Lots: lots}
		for _, lot := range lots {
			h.Quantity = h.Quantity.Add(lot.Quantity)
			h.CostBasis = h.CostBasis.Add(lot.Cost())
		}
		if price := prices[sec.Ticker]; price != nil {
			value := M(*price, settings.Currency).Mul(h.Quantity)
			pnl := value.Sub(h.CostBasis)
			h.Price = price
			h.MarketValue = &value
			h.UnrealizedPnL = &pnl
			values[sec.Ticker] = value
			snap.TotalValue = snap.TotalValue.Add(value)
		} else {
			snap.Warnings = append(snap.Warnings,
				fmt.Sprintf("no price available for %s, holding not valued", sec.Ticker))
		}
		snap.Dividends = snap.Dividends.Add(e.dividends(sec.Ticker, on))
		snap.Holdings = append(snap.Holdings, h)
	}

	// Weights, once the total is known.
	if !snap.TotalValue.IsZero() {
		for i := range snap.Holdings {
			h := &snap.Holdings[i]
			if h.MarketValue == nil {
				continue
			}
			w := Percent(h.MarketValue.Decimal().Div(snap.TotalValue.Decimal()).InexactFloat64() * 100)
			h.Weight = &w
		}
	}

	// Pending rebalance trades.
	snap.Rebalance = Plan(values, e.Store.TargetAllocations(), settings)

	// Performance metrics over the lookback window.
	returns := e.portfolioReturns(on)
	if sharpe, err := SharpeRatio(returns, settings.RiskFreeRate); err == nil {
		snap.SharpeRatio = &sharpe
	} else if errors.Is(err, ErrNotEnoughData) {
		snap.Warnings = append(snap.Warnings, "not enough history to compute a Sharpe ratio")
	}
	if settings.Benchmark != "" {
		if rel, err := e.relativeReturn(returns, settings.Benchmark, on); err == nil {
			snap.RelativeReturn = &rel
		} else if errors.Is(err, ErrNotEnoughData) {
			snap.Warnings = append(snap.Warnings,
				fmt.Sprintf("no overlapping %s data to compare against", settings.Benchmark))
		}
	}

	return snap, nil
}

// dividends sums the dividend income of a ticker up to a date.
func (e *Engine) dividends(ticker string, on Date) Money {
	var total Money
	for _, tx := range e.Store.Transactions(ticker, Date{}, on) {
		if v, ok := tx.(Dividend); ok {
			total = total.Add(v.Amount)
		}
	}
	return total
}

// portfolioReturns computes the daily return series of the whole portfolio
// over the lookback window: for each day, the positions held on that day are
// valued at that day's close. Stored price history takes precedence over the
// market source, like the benchmark series in relativeReturn.
func (e *Engine) portfolioReturns(on Date) []DatedReturn {
	from := on.Add(-lookback)
	securities := e.Store.AllSecurities()

	// Portfolio value per day: positions held that day at that day's close.
	totals := make(map[Date]decimal.Decimal)
	var days []Date
	for _, sec := range securities {
		bars := e.Store.PriceBars(sec.Ticker, from, on)
		if len(bars) == 0 {
			bars = e.Market.DailyPrices(sec.Ticker, from, on)
		}
		for _, bar := range bars {
			qty := e.position(sec.Ticker, bar.Date)
			if qty.IsZero() {
				continue
			}
			if _, seen := totals[bar.Date]; !seen {
				days = append(days, bar.Date)
			}
			totals[bar.Date] = totals[bar.Date].Add(bar.Close.Mul(qty.Decimal()))
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	bars := make([]PriceBar, 0, len(days))
	for _, day := range days {
		bars = append(bars, PriceBar{Date: day, Close: totals[day]})
	}
	return Returns(bars)
}

// position computes the quantity of a ticker held on a date from the store's
// transaction history.
func (e *Engine) position(ticker string, on Date) Quantity {
	var qty Quantity
	for _, tx := range e.Store.Transactions(ticker, Date{}, on) {
		switch v := tx.(type) {
		case Buy:
			qty = qty.Add(v.Quantity)
		case Sell:
			qty = qty.Sub(v.Quantity)
		}
	}
	return qty
}

// relativeReturn compares the portfolio return series against the benchmark
// series stored for a symbol, falling back to the market source when the
// store has no data for it.
func (e *Engine) relativeReturn(portfolio []DatedReturn, symbol string, on Date) (Percent, error) {
	from := on.Add(-lookback)
	points := e.Store.BenchmarkSeries(symbol, from, on)
	var bars []PriceBar
	if len(points) > 0 {
		bars = make([]PriceBar, len(points))
		for i, p := range points {
			bars[i] = PriceBar{Ticker: p.Symbol, Date: p.Date, Close: p.Close}
		}
	} else {
		bars = e.Market.DailyPrices(symbol, from, on)
	}
	return BenchmarkRelativeReturn(portfolio, Returns(bars))
}

