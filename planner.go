package invdash

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a rebalancing trade.
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// RebalanceTrade is one entry of a rebalancing plan: trade Notional worth of
// Ticker to bring its weight back toward target. Drift is the weight
// deviation before the trade, as a fraction (0.10 for ten points).
type RebalanceTrade struct {
	Ticker   string          `json:"ticker"`
	Side     TradeSide       `json:"side"`
	Notional Money           `json:"notional"` // absolute dollar value of the trade
	Drift    decimal.Decimal `json:"drift"`    // currentWeight - targetWeight
}

// RebalancePlan is the outcome of comparing current holdings to target
// allocations. Trades are ordered by ticker so the plan is deterministic.
// Warnings report conditions that degraded the plan without failing it:
// invalid target weights, or drifts too small to trade.
type RebalancePlan struct {
	Trades   []RebalanceTrade `json:"trades"`
	Warnings []string         `json:"warnings,omitempty"`
}

// IsBalanced reports whether the plan contains no trade.
func (p RebalancePlan) IsBalanced() bool { return len(p.Trades) == 0 }

// Plan compares current market values to target allocations and emits the
// trades needed to close the gaps, subject to the thresholds in settings:
//
//   - a ticker is actionable only when |drift| strictly exceeds the drift band;
//   - a trade is emitted only when its notional is at least MinNotional,
//     sub-threshold drifts are reported as warnings instead (this prevents
//     churn on rounding-scale changes);
//   - a ticker held but absent from targets has an implicit target weight of
//     zero, making it a full sell candidate under the same thresholds.
//
// A zero total portfolio value yields an empty, valid plan. Target weights
// outside [0, 1] or summing above 1 are surfaced as warnings, never as a
// failure: the plan must stay usable with imperfect configuration.
func Plan(holdings map[string]Money, targets []TargetAllocation, settings Settings) RebalancePlan {
	plan := RebalancePlan{Warnings: ValidateTargets(targets)}

	total := decimal.Zero
	for _, value := range holdings {
		total = total.Add(value.Decimal())
	}
	if total.IsZero() {
		// Nothing to rebalance.
		return plan
	}

	one := decimal.NewFromInt(1)
	targetWeights := make(map[string]decimal.Decimal, len(targets))
	for _, t := range targets {
		if t.Weight.IsNegative() || t.Weight.GreaterThan(one) {
			// Already warned by ValidateTargets; skip the broken entry.
			continue
		}
		targetWeights[t.Ticker] = t.Weight
	}

	// Every ticker appearing in either targets or holdings participates.
	tickers := make(map[string]struct{}, len(holdings)+len(targetWeights))
	for ticker := range holdings {
		tickers[ticker] = struct{}{}
	}
	for ticker := range targetWeights {
		tickers[ticker] = struct{}{}
	}

	currency := settings.MinNotional.Currency()
	for _, ticker := range slices.Sorted(maps.Keys(tickers)) {
		current := holdings[ticker].Decimal().Div(total)
		target := targetWeights[ticker] // implicit zero for unlisted holdings
		drift := current.Sub(target)

		if drift.Abs().LessThanOrEqual(settings.DriftBand) {
			continue
		}

		delta := target.Sub(current).Mul(total)
		notional := M(delta.Abs(), currency)
		if notional.LessThan(settings.MinNotional) {
			plan.Warnings = append(plan.Warnings,
				(&SubThresholdDrift{Ticker: ticker, Drift: drift, Notional: notional}).Error())
			continue
		}

		side := SideBuy
		if delta.IsNegative() {
			side = SideSell
		}
		plan.Trades = append(plan.Trades, RebalanceTrade{
			Ticker:   ticker,
			Side:     side,
			Notional: notional,
			Drift:    drift,
		})
	}
	return plan
}

// SubThresholdDrift reports a drift beyond the band whose desired trade is
// below the minimum notional, so no trade was emitted for it.
type SubThresholdDrift struct {
	Ticker   string
	Drift    decimal.Decimal
	Notional Money
}

func (e *SubThresholdDrift) Error() string {
	return "drift on " + e.Ticker + " of " + e.Drift.String() +
		" needs a " + e.Notional.String() + " trade, below the minimum notional"
}
