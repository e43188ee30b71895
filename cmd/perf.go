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

type perfCmd struct {
	date string
	live bool
}

func (*perfCmd) Name() string { return "perf" }
func (*perfCmd) Synopsis() string {
	return "display performance metrics (Sharpe ratio, benchmark-relative return)"
}
func (*perfCmd) Usage() string {
	return `invdash perf [-d <date>] [-live]

  Computes the Sharpe ratio and the return relative to the benchmark over the
  trailing year, plus dividend income to date.
`
}

func (c *perfCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", invdash.Today().String(), "Date for the performance report (YYYY-MM-DD)")
	f.BoolVar(&c.live, "live", false, "use the live feed instead of the simulator")
}

func (c *perfCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.PerformanceMarkdown(snapshot))

	return subcommands.ExitSuccess
}
