package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/invdash/invdash"
	"github.com/shopspring/decimal"
)

type targetsCmd struct {
	set string
}

func (*targetsCmd) Name() string     { return "targets" }
func (*targetsCmd) Synopsis() string { return "show or replace the target allocations" }
func (*targetsCmd) Usage() string {
	return `invdash targets [-set "TICKER=weight,TICKER=weight,..."]

  Without flags, lists the current target allocations. With -set, replaces
  them, e.g. -set "AAPL=0.6,SPY=0.4". Weights are fractions of the portfolio;
  invalid weights are stored and reported as warnings when planning.
`
}

func (c *targetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "", "Comma separated TICKER=weight pairs replacing the current targets")
}

func (c *targetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := DecodeConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.set != "" {
		targets, err := parseTargets(c.set)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		cfg.Targets = targets
		if err := EncodeConfig(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	if len(cfg.Targets) == 0 {
		fmt.Println("No target allocations configured.")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Target Allocations\n\n")
	fmt.Fprintln(&b, "| Ticker | Target Weight |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, t := range cfg.Targets {
		fmt.Fprintf(&b, "| %s | %s%% |\n", t.Ticker, t.Weight.Mul(decimal.NewFromInt(100)))
	}
	for _, w := range invdash.ValidateTargets(cfg.Targets) {
		fmt.Fprintf(&b, "\n- warning: %s", w)
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}

// parseTargets parses "AAPL=0.6,SPY=0.4" into target allocations.
func parseTargets(s string) ([]invdash.TargetAllocation, error) {
	var targets []invdash.TargetAllocation
	for _, pair := range strings.Split(s, ",") {
		ticker, weight, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("invalid target %q, expected TICKER=weight", pair)
		}
		w, err := decimal.NewFromString(weight)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %s: %w", ticker, err)
		}
		targets = append(targets, invdash.TargetAllocation{Ticker: strings.ToUpper(ticker), Weight: w})
	}
	return targets, nil
}
