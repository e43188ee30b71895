package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/invdash/invdash"
	"github.com/invdash/invdash/renderer"
)

type rebalanceCmd struct {
	date string
	live bool
}

func (*rebalanceCmd) Name() string { return "rebalance" }
func (*rebalanceCmd) Synopsis() string {
	return "compute the trades needed to return to target allocations"
}
func (*rebalanceCmd) Usage() string {
	return `invdash rebalance [-d <date>] [-live]

  Compares current weights to the target allocations and lists the trades
  needed to close the drifts, subject to the drift band and minimum notional
  from the settings.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", invdash.Today().String(), "Date for the rebalancing plan (YYYY-MM-DD)")
	f.BoolVar(&c.live, "live", false, "price holdings with the live feed instead of the simulator")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := invdash.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	engine, err := newEngine(c.live)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	snapshot, err := engine.Snapshot(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RebalanceMarkdown(on, snapshot.Rebalance))

	return subcommands.ExitSuccess
}
