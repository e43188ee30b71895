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

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	date string
	live bool
	full bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display detailed holdings for a specific date" }
func (*holdingCmd) Usage() string {
	return `invdash holding [-d <date>] [-live] [-full]

  Displays the portfolio holdings on a given date: open quantity, FIFO cost
  basis, market value, unrealized gain and weight per security.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", invdash.Today().String(), "Date for the holdings report (YYYY-MM-DD)")
	f.BoolVar(&c.live, "live", false, "price holdings with the live feed instead of the simulator")
	f.BoolVar(&c.full, "full", false, "render the full snapshot (rebalance and performance included)")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.full {
		printMarkdown(renderer.SnapshotMarkdown(snapshot))
	} else {
		printMarkdown(renderer.HoldingsMarkdown(snapshot))
	}

	return subcommands.ExitSuccess
}
