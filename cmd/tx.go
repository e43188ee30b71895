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

type txCmd struct {
	security string
	start    string
	date     string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `invdash tx [-s <security>] [-from <start_date>] [-d <end_date>]

  Lists transactions from the ledger, with options for filtering by security
  and date range.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.security, "s", "", "Only show transactions of this security.")
	f.StringVar(&p.start, "from", "", "The start date for the range.")
	f.StringVar(&p.date, "d", "", "The end date for the range (defaults to today).")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	from := invdash.Date{}
	if p.start != "" {
		if from, err = invdash.ParseDate(p.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	to := invdash.Today()
	if p.date != "" {
		if to, err = invdash.ParseDate(p.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	var transactions []invdash.Transaction
	for _, tx := range ledger.Transactions() {
		if tx.When().Before(from) || tx.When().After(to) {
			continue
		}
		if p.security != "" && tx.Ticker() != p.security {
			continue
		}
		transactions = append(transactions, tx)
	}

	printMarkdown(renderer.Transactions(transactions))

	return subcommands.ExitSuccess
}
