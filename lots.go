package invdash

import (
	"fmt"
)

// Lot represents a single purchase batch of a security, tracked separately
// for cost basis purposes. A lot is open while its quantity is positive;
// once fully consumed it is closed and excluded from holdings queries.
type Lot struct {
	Quantity     Quantity `json:"quantity"`
	CostBasis    Money    `json:"costBasis"` // cost per share, unchanged by partial consumption
	PurchaseDate Date     `json:"purchaseDate"`
}

// Cost returns the total cost of the lot (quantity × cost basis per share).
func (l Lot) Cost() Money { return l.CostBasis.Mul(l.Quantity) }

// InsufficientLotsError reports a sell whose quantity exceeds the total open
// quantity of a security. The sale is rejected before any lot is mutated.
type InsufficientLotsError struct {
	Ticker    string
	Requested Quantity
	Available Quantity
}

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("cannot sell %s of %s, only %s held", e.Requested, e.Ticker, e.Available)
}

// LotBook is the FIFO inventory of open purchase lots for one security.
//
// Buys append lots; sells consume them oldest-purchase-date-first, with lots
// of identical dates consumed in the order they were recorded. A LotBook is
// a single-writer structure: concurrent mutations for the same security must
// be serialized by the caller. Books of different securities are independent.
type LotBook struct {
	ticker string
	lots   []Lot // open lots, purchase date ascending (insertion order within a date)
}

// NewLotBook creates an empty lot book for a security.
func NewLotBook(ticker string) *LotBook {
	return &LotBook{ticker: ticker}
}

// Ticker returns the security this book tracks.
func (b *LotBook) Ticker() string { return b.ticker }

// ApplyBuy opens a new lot at the given cost basis per share.
//
// Lots are kept sorted by purchase date; a buy recorded out of order is
// inserted after any existing lot of the same or earlier date, preserving
// insertion order as the tie-break.
func (b *LotBook) ApplyBuy(quantity Quantity, costBasis Money, purchase Date) error {
	if !quantity.IsPositive() {
		return fmt.Errorf("buy quantity must be positive, got %s", quantity)
	}
	lot := Lot{Quantity: quantity, CostBasis: costBasis, PurchaseDate: purchase}
	i := len(b.lots)
	for i > 0 && b.lots[i-1].PurchaseDate.After(purchase) {
		i--
	}
	b.lots = append(b.lots, Lot{})
	copy(b.lots[i+1:], b.lots[i:])
	b.lots[i] = lot
	return nil
}

// ApplySell consumes open lots first-in, first-out and returns the realized
// profit and loss of the sale: the sum of (salePrice − lotCostBasis) ×
// consumedQty over every lot the sale spans. A partially consumed lot stays
// open with a reduced quantity and an unchanged cost basis.
//
// When the requested quantity exceeds the total open quantity the sale fails
// with an *InsufficientLotsError and no lot is mutated.
func (b *LotBook) ApplySell(quantity Quantity, salePrice Money, _ Date) (realized Money, err error) {
	if !quantity.IsPositive() {
		return Money{}, fmt.Errorf("sell quantity must be positive, got %s", quantity)
	}
	// Check the total before touching anything: all-or-nothing.
	if avail := b.TotalQuantity(); avail.LessThan(quantity) {
		return Money{}, &InsufficientLotsError{Ticker: b.ticker, Requested: quantity, Available: avail}
	}

	remaining := quantity
	var open []Lot
	for _, lot := range b.lots {
		if remaining.IsZero() {
			open = append(open, lot)
			continue
		}
		if lot.Quantity.GreaterThan(remaining) {
			// Partial consumption: the lot stays open, smaller.
			realized = realized.Add(salePrice.Sub(lot.CostBasis).Mul(remaining))
			lot.Quantity = lot.Quantity.Sub(remaining)
			remaining = Q(0)
			open = append(open, lot)
		} else {
			// Full consumption: the lot closes.
			realized = realized.Add(salePrice.Sub(lot.CostBasis).Mul(lot.Quantity))
			remaining = remaining.Sub(lot.Quantity)
		}
	}
	b.lots = open
	return realized, nil
}

// OpenLots returns the open lots in FIFO order (purchase date ascending,
// insertion order within a date). This is the canonical presentation order.
func (b *LotBook) OpenLots() []Lot {
	out := make([]Lot, len(b.lots))
	copy(out, b.lots)
	return out
}

// TotalQuantity returns the total open quantity across all lots.
func (b *LotBook) TotalQuantity() Quantity {
	var total Quantity
	for _, lot := range b.lots {
		total = total.Add(lot.Quantity)
	}
	return total
}

// TotalCostBasis returns the total cost of all open lots.
func (b *LotBook) TotalCostBasis() Money {
	var total Money
	for _, lot := range b.lots {
		total = total.Add(lot.Cost())
	}
	return total
}

// AverageCostBasis returns the cost per share averaged over open lots, or a
// zero Money when the book is empty.
func (b *LotBook) AverageCostBasis() Money {
	qty := b.TotalQuantity()
	if qty.IsZero() {
		return Money{}
	}
	return b.TotalCostBasis().Div(qty)
}
