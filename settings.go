package invdash

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Settings governs analytics and rebalancing thresholds. It is an explicit
// value threaded through the planner and analytics calls, not global state.
type Settings struct {
	// RiskFreeRate is the annual risk-free rate used for the Sharpe ratio,
	// e.g. 0.04 for 4%.
	RiskFreeRate decimal.Decimal `json:"riskFreeRate"`
	// MinNotional is the minimum dollar value of a rebalancing trade.
	// Desired trades below it are reported but not emitted.
	MinNotional Money `json:"minNotional"`
	// DriftBand is the tolerance on weight drift, e.g. 0.05 for ±5 points.
	// A security is only actionable when |drift| exceeds it strictly.
	DriftBand decimal.Decimal `json:"driftBand"`
	// Currency is the reporting currency of the portfolio.
	Currency string `json:"currency,omitempty"`
	// Benchmark is the symbol of the series used for relative performance.
	Benchmark string `json:"benchmark,omitempty"`
	// UpdatedAt records the last in-place replacement of the settings.
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// DefaultSettings mirror the defaults of the original dashboard:
// 4% risk-free rate, $100 minimum notional, ±5% drift band.
func DefaultSettings() Settings {
	return Settings{
		RiskFreeRate: decimal.NewFromFloat(0.04),
		MinNotional:  M(100, "USD"),
		DriftBand:    decimal.NewFromFloat(0.05),
		Currency:     "USD",
		Benchmark:    "SPY",
	}
}

// TargetAllocation assigns a target portfolio weight to a ticker.
type TargetAllocation struct {
	Ticker string          `json:"ticker"`
	Weight decimal.Decimal `json:"targetWeight"`
}

// InvalidAllocationError reports a target weight outside [0, 1]. It is
// surfaced as a warning by the planner, never as a hard failure of the plan.
type InvalidAllocationError struct {
	Ticker string
	Weight decimal.Decimal
}

func (e InvalidAllocationError) Error() string {
	return fmt.Sprintf("target weight %s for %s is outside [0, 1]", e.Weight, e.Ticker)
}

// ValidateTargets checks a set of target allocations and returns a list of
// warnings. Weights outside [0, 1] and a total above 1 are reported; storage
// does not enforce these invariants, the planner's caller decides what to do.
func ValidateTargets(targets []TargetAllocation) []string {
	var warnings []string
	total := decimal.Zero
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if err := ValidateTicker(t.Ticker); err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		if seen[t.Ticker] {
			warnings = append(warnings, fmt.Sprintf("duplicate target allocation for %s", t.Ticker))
			continue
		}
		seen[t.Ticker] = true
		if t.Weight.IsNegative() || t.Weight.GreaterThan(decimal.NewFromInt(1)) {
			warnings = append(warnings, InvalidAllocationError{Ticker: t.Ticker, Weight: t.Weight}.Error())
			continue
		}
		total = total.Add(t.Weight)
	}
	if total.GreaterThan(decimal.NewFromInt(1)) {
		warnings = append(warnings, fmt.Sprintf("target weights sum to %s, above 1", total))
	}
	return warnings
}
