package renderer

import (
	"fmt"

	"github.com/invdash/invdash"
)

// Transaction renders a transaction to a string.
func Transaction(tx invdash.Transaction) string {
	switch v := tx.(type) {
	case invdash.Buy:
		return fmt.Sprintf("Bought %s of %s at %s", v.Quantity, v.Security, v.Price)
	case invdash.Sell:
		return fmt.Sprintf("Sold %s of %s at %s", v.Quantity, v.Security, v.Price)
	case invdash.Dividend:
		return fmt.Sprintf("Dividend of %s for %s", v.Amount, v.Security)
	default:
		return string(tx.What())
	}
}

// Transactions renders the transaction log of a ledger, one line per entry.
func Transactions(txs []invdash.Transaction) string {
	out := ""
	for _, tx := range txs {
		out += fmt.Sprintf("%s: %s\n", tx.When(), Transaction(tx))
	}
	return out
}
