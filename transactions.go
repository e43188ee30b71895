package invdash

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CommandType is a typed string identifying a transaction command.
type CommandType string

const (
	CmdBuy      CommandType = "buy"
	CmdSell     CommandType = "sell"
	CmdDividend CommandType = "dividend"
)

// Transaction is the common interface of all ledger entries. The ledger is
// append-only: entries are never modified once recorded.
type Transaction interface {
	What() CommandType // command type of the transaction ("buy", "sell", ...)
	When() Date        // date on which the transaction occurred
	Ticker() string    // security the transaction refers to
	Equal(Transaction) bool
}

type baseCmd struct {
	Command CommandType `json:"command"`
	Date    Date        `json:"date"`
	Memo    string      `json:"memo,omitempty"` // optional free-form note
}

func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() Date        { return t.Date }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// secCmd is the component shared by security-based transactions.
type secCmd struct {
	baseCmd
	Security string `json:"security"` // ticker symbol of the security involved
}

func (t secCmd) Ticker() string { return t.Security }

func (t *secCmd) validate() error {
	if t.Date.IsZero() {
		t.Date = Today()
	}
	return ValidateTicker(t.Security)
}

// MarshalJSON implements the json.Marshaler interface for secCmd.
func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("security", t.Security)
	return w.MarshalJSON()
}

// Buy records the purchase of a quantity of a security at a price per share.
// Applying a Buy to the lot book opens a new lot.
type Buy struct {
	secCmd
	Quantity   Quantity `json:"quantity"`
	Price      Money    `json:"price"`               // price per share
	Commission Money    `json:"commission,omitzero"` // optional fee
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, memo, security string, quantity Quantity, price Money) Buy {
	return Buy{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		Price:    price,
	}
}

// Amount returns the total value of the purchase, excluding commission.
func (t Buy) Amount() Money { return t.Price.Mul(t.Quantity) }

// Cost returns the total cost of the purchase, including commission.
func (t Buy) Cost() Money { return t.Amount().Add(t.Commission) }

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) && t.Commission.Equal(o.Commission)
}

// Validate checks the Buy transaction's fields: the quantity and price must
// be positive, the commission non-negative.
func (t Buy) Validate() (Buy, error) {
	if err := t.secCmd.validate(); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("buy quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("buy price must be positive, got %s", t.Price)
	}
	if t.Commission.IsNegative() {
		return t, fmt.Errorf("buy commission cannot be negative, got %s", t.Commission)
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Decimal())
	if !t.Commission.IsZero() {
		w.Append("commission", t.Commission.Decimal())
	}
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.Price = temp.Price()
	t.Commission = temp.CommissionMoney()
	return nil
}

// Sell records the sale of a quantity of a security at a price per share.
// Applying a Sell to the lot book consumes open lots first-in, first-out.
type Sell struct {
	secCmd
	Quantity   Quantity `json:"quantity"`
	Price      Money    `json:"price"`
	Commission Money    `json:"commission,omitzero"`
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, memo, security string, quantity Quantity, price Money) Sell {
	return Sell{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		Price:    price,
	}
}

// Amount returns the total proceeds of the sale, excluding commission.
func (t Sell) Amount() Money { return t.Price.Mul(t.Quantity) }

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) && t.Commission.Equal(o.Commission)
}

// Validate checks the Sell transaction's fields. Whether the position is
// sufficient to cover the sale is checked by the lot book when the sale is
// applied, against the lots open on the transaction date.
func (t Sell) Validate() (Sell, error) {
	if err := t.secCmd.validate(); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("sell quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("sell price must be positive, got %s", t.Price)
	}
	if t.Commission.IsNegative() {
		return t, fmt.Errorf("sell commission cannot be negative, got %s", t.Commission)
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Decimal())
	if !t.Commission.IsZero() {
		w.Append("commission", t.Commission.Decimal())
	}
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.Price = temp.Price()
	t.Commission = temp.CommissionMoney()
	return nil
}

// Dividend records income received from a security. It affects cash and
// return accounting only; it never touches the lot book.
type Dividend struct {
	secCmd
	Amount Money `json:"amount"` // total amount received
}

// NewDividend creates a new Dividend transaction.
func NewDividend(day Date, memo, security string, amount Money) Dividend {
	return Dividend{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day, Memo: memo}, Security: security},
		Amount: amount,
	}
}

func (t Dividend) Equal(other Transaction) bool {
	o, ok := other.(Dividend)
	return ok && t.secCmd == o.secCmd && t.Amount.Equal(o.Amount)
}

// Validate checks the Dividend transaction's fields.
func (t Dividend) Validate() (Dividend, error) {
	if err := t.secCmd.validate(); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("dividend amount must be positive, got %s", t.Amount)
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("amount", t.Amount.Decimal())
	w.Optional("currency", t.Amount.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Dividend.
func (t *Dividend) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		Amount   json.Number `json:"amount"`
		Currency string      `json:"currency"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	amount, err := parseDecimalNumber(temp.Amount)
	if err != nil {
		return fmt.Errorf("invalid dividend amount: %w", err)
	}
	t.Amount = Money{value: amount, cur: temp.Currency}
	return nil
}

// amountCmd is a decoding helper for transactions carrying a price, an
// optional commission and an optional currency as separate JSON fields.
type amountCmd struct {
	PriceNum      json.Number `json:"price"`
	CommissionNum json.Number `json:"commission"`
	Currency      string      `json:"currency"`
}

func (a amountCmd) Price() Money {
	v, err := parseDecimalNumber(a.PriceNum)
	if err != nil {
		return Money{}
	}
	return Money{value: v, cur: a.Currency}
}

func (a amountCmd) CommissionMoney() Money {
	// An absent commission stays the weak zero Money, matching a transaction
	// built without one.
	if a.CommissionNum == "" {
		return Money{}
	}
	v, err := parseDecimalNumber(a.CommissionNum)
	if err != nil {
		return Money{}
	}
	return Money{value: v, cur: a.Currency}
}

var errEmptyNumber = errors.New("empty number")

// parseDecimalNumber converts a json.Number into an exact decimal value.
func parseDecimalNumber(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, errEmptyNumber
	}
	return decimal.NewFromString(string(n))
}
