package renderer

import (
	"bytes"
	"fmt"

	"github.com/invdash/invdash"
	md "github.com/nao1215/markdown"
)

// RebalanceMarkdown renders a rebalancing plan to a markdown string.
func RebalanceMarkdown(on invdash.Date, plan invdash.RebalancePlan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Rebalancing Plan on %s", on))
	rebalanceSection(doc, plan)
	return doc.String()
}

func rebalanceSection(doc *md.Markdown, plan invdash.RebalancePlan) {
	doc.H2("Rebalancing")
	if plan.IsBalanced() {
		doc.PlainText("Portfolio is balanced, no trade needed.")
	} else {
		table := md.TableSet{
			Header: []string{"Ticker", "Side", "Notional", "Drift"},
		}
		for _, trade := range plan.Trades {
			table.Rows = append(table.Rows, []string{
				trade.Ticker,
				string(trade.Side),
				trade.Notional.String(),
				fmt.Sprintf("%+.2f%%", trade.Drift.InexactFloat64()*100),
			})
		}
		doc.Table(table)
	}
	if len(plan.Warnings) > 0 {
		doc.BulletList(plan.Warnings...)
	}
}
