package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/invdash/invdash"
)

type pricesCmd struct {
	security string
	start    string
	date     string
	live     bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "display the daily price series of a security" }
func (*pricesCmd) Usage() string {
	return `invdash prices -s <security> [-from <start_date>] [-d <end_date>] [-live]

  Prints the daily price bars of a security. By default prices come from the
  deterministic simulator, so the same inputs always produce the same series.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.StringVar(&c.start, "from", "", "Start date of the series (defaults to 30 days before the end)")
	f.StringVar(&c.date, "d", invdash.Today().String(), "End date of the series (YYYY-MM-DD)")
	f.BoolVar(&c.live, "live", false, "use the live feed instead of the simulator")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	to, err := invdash.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	from := to.Add(-30)
	if c.start != "" {
		if from, err = invdash.ParseDate(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	var market invdash.MarketData
	if c.live {
		market = invdash.NewEODHD("")
	} else {
		market = invdash.NewSimulator()
	}

	bars := market.DailyPrices(c.security, from, to)
	if len(bars) == 0 {
		fmt.Fprintf(os.Stderr, "No prices available for %s between %s and %s.\n", c.security, from, to)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s prices\n\n", c.security)
	fmt.Fprintln(&b, "| Date | Open | High | Low | Close | Volume |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, bar := range bars {
		open, high, low, volume := "-", "-", "-", "-"
		if bar.Open != nil {
			open = bar.Open.StringFixed(2)
		}
		if bar.High != nil {
			high = bar.High.StringFixed(2)
		}
		if bar.Low != nil {
			low = bar.Low.StringFixed(2)
		}
		if bar.Volume != nil {
			volume = fmt.Sprintf("%d", *bar.Volume)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			bar.Date, open, high, low, bar.Close.StringFixed(2), volume)
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
