package invdash

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
)

// Ledger is the append-only, chronologically ordered record of all
// transactions. Transactions on the same day keep their insertion order,
// which is also the tie-break order used by FIFO lot consumption.
//
// A Ledger is not safe for concurrent mutation: callers must apply
// transactions from a single ordered stream, or serialize writers per
// security themselves. Read-only queries may run in parallel.
type Ledger struct {
	transactions []Transaction
	securities   map[string]Security // securities indexed by ticker
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		securities:   make(map[string]Security),
	}
}

// Declare registers a security so that transactions can refer to its ticker.
// Re-declaring a ticker replaces the metadata only.
func (l *Ledger) Declare(sec Security) {
	l.securities[sec.Ticker] = sec
}

// Security returns the security declared with this ticker, or nil if unknown.
func (l *Ledger) Security(ticker string) *Security {
	sec, ok := l.securities[ticker]
	if !ok {
		return nil
	}
	return &sec
}

// AllSecurities iterates over declared securities in ticker order.
func (l *Ledger) AllSecurities() iter.Seq[Security] {
	return func(yield func(Security) bool) {
		tickers := slices.Collect(maps.Keys(l.securities))
		slices.Sort(tickers)
		for _, ticker := range tickers {
			if !yield(l.securities[ticker]) {
				return
			}
		}
	}
}

// Append appends transactions to this ledger and maintains the chronological
// order. Unknown tickers are auto-declared as plain stocks, mirroring the
// behavior of importing a transaction log without a security master.
func (l *Ledger) Append(txs ...Transaction) {
	for _, tx := range txs {
		if _, ok := l.securities[tx.Ticker()]; !ok {
			l.securities[tx.Ticker()] = Security{Ticker: tx.Ticker(), AssetClass: AssetStock}
		}
	}
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// Validate checks a transaction for correctness before it is appended.
// For a Sell it also checks, by replaying the lot book as of the transaction
// date, that the open quantity covers the sale: a failed validation leaves
// the ledger untouched.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	var err error
	switch v := tx.(type) {
	case Buy:
		tx, err = v.Validate()
	case Sell:
		if v, err = v.Validate(); err == nil {
			book := l.LotBook(v.Security, v.When())
			if avail := book.TotalQuantity(); avail.LessThan(v.Quantity) {
				err = &InsufficientLotsError{Ticker: v.Security, Requested: v.Quantity, Available: avail}
			}
		}
		tx = v
	case Dividend:
		tx, err = v.Validate()
	default:
		return tx, fmt.Errorf("unsupported transaction type for validation: %T", tx)
	}
	if err != nil {
		return tx, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return tx, nil
}

// stableSort sorts the ledger by transaction date. The sort is stable, so
// transactions on the same day keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Transactions returns an iterator over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// SecurityTransactions returns an iterator over the transactions of a
// security up to and including a given date, in chronological order.
func (l *Ledger) SecurityTransactions(ticker string, max Date) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if tx.When().After(max) {
				// The ledger is sorted by date, so it is safe to stop.
				return
			}
			if tx.Ticker() != ticker {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Position computes the quantity of a security held on a given date.
func (l *Ledger) Position(ticker string, on Date) Quantity {
	var position Quantity
	for _, tx := range l.SecurityTransactions(ticker, on) {
		switch v := tx.(type) {
		case Buy:
			position = position.Add(v.Quantity)
		case Sell:
			position = position.Sub(v.Quantity)
		}
	}
	return position
}

// Dividends computes the total dividend income of a security up to a given date.
func (l *Ledger) Dividends(ticker string, on Date) Money {
	var total Money
	for _, tx := range l.SecurityTransactions(ticker, on) {
		if v, ok := tx.(Dividend); ok {
			total = total.Add(v.Amount)
		}
	}
	return total
}

// OldestTransactionDate returns the date of the earliest transaction, or the
// zero date when the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction, or the
// zero date when the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// LotBook replays the ledger and returns the open lots of a security as of a
// given date. Dividends are skipped: they never affect lots.
func (l *Ledger) LotBook(ticker string, asOf Date) *LotBook {
	book := NewLotBook(ticker)
	for _, tx := range l.SecurityTransactions(ticker, asOf) {
		switch v := tx.(type) {
		case Buy:
			book.ApplyBuy(v.Quantity, v.Price, v.When())
		case Sell:
			// The ledger was validated on append; an over-sell here means the
			// history itself is inconsistent and the lot state stays as is.
			book.ApplySell(v.Quantity, v.Price, v.When())
		}
	}
	return book
}
