package invdash

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeLedger(t *testing.T) {
	// A multi-line string representing a JSONL stream with all command types
	jsonlStream := `
{"command":"buy","date":"2025-08-01","security":"AAPL","quantity":10,"price":195.5,"currency":"USD"}
{"command":"sell","date":"2025-08-02","security":"GOOG","quantity":5,"price":140.2,"currency":"USD"}
{"command":"dividend","date":"2025-08-03","security":"AAPL","amount":5.50,"currency":"USD"}
`
	ledger, err := DecodeLedger(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}

	expectedTypes := []reflect.Type{
		reflect.TypeOf(Buy{}),
		reflect.TypeOf(Sell{}),
		reflect.TypeOf(Dividend{}),
	}
	if len(ledger.transactions) != len(expectedTypes) {
		t.Fatalf("DecodeLedger() decoded %d transactions, want %d", len(ledger.transactions), len(expectedTypes))
	}
	for i, tx := range ledger.Transactions() {
		if reflect.TypeOf(tx) != expectedTypes[i] {
			t.Errorf("Transaction %d has wrong type. Got: %T, want: %v", i+1, tx, expectedTypes[i])
		}
	}

	// Field-level check on the buy: per-share price and currency.
	buy := ledger.transactions[0].(Buy)
	if buy.Security != "AAPL" || !buy.Quantity.Equal(Q(10)) || !buy.Price.Equal(M(195.5, "USD")) {
		t.Errorf("decoded Buy = %+v, want 10 AAPL at 195.5 USD", buy)
	}
}

func TestDecodeLedger_UnknownCommand(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader(`{"command":"short","date":"2025-08-01","security":"AAPL"}`))
	if err == nil {
		t.Fatal("DecodeLedger() accepted an unknown command")
	}
}

func TestEncodeLedger_SortsByDateStably(t *testing.T) {
	// tx2 and tx3 share a date: their relative order must be preserved.
	tx1 := NewBuy(MustParseDate("2025-08-03"), "", "AAPL", Q(1), M(150, "USD"))
	tx2 := NewBuy(MustParseDate("2025-08-01"), "", "MSFT", Q(2), M(300, "USD"))
	tx3 := NewSell(MustParseDate("2025-08-01"), "", "MSFT", Q(1), M(310, "USD"))

	ledger := NewLedger()
	ledger.Append(tx1, tx2, tx3)

	expectedOrder := []Transaction{tx2, tx3, tx1}
	var want bytes.Buffer
	for _, tx := range expectedOrder {
		if err := EncodeTransaction(&want, tx); err != nil {
			t.Fatalf("Failed to encode expected transaction: %v", err)
		}
	}

	var got bytes.Buffer
	if err := EncodeLedger(&got, ledger); err != nil {
		t.Fatalf("EncodeLedger() returned an unexpected error: %v", err)
	}
	if got.String() != want.String() {
		t.Errorf("EncodeLedger() produced incorrect output.\nGot:\n%s\nWant:\n%s", got.String(), want.String())
	}
}

func TestEncodeDecodeLedger_RoundTrip(t *testing.T) {
	transactions := []Transaction{
		NewBuy(MustParseDate("2025-08-01"), "opening", "AAPL", Q(10), M(195.5, "USD")),
		NewSell(MustParseDate("2025-08-02"), "", "AAPL", Q(5), M(200, "USD")),
		NewDividend(MustParseDate("2025-08-03"), "", "AAPL", M(5.5, "USD")),
	}
	ledger := NewLedger()
	ledger.Append(transactions...)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() returned an unexpected error: %v", err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}
	if len(decoded.transactions) != len(transactions) {
		t.Fatalf("round trip decoded %d transactions, want %d", len(decoded.transactions), len(transactions))
	}
	for i, tx := range decoded.transactions {
		if !tx.Equal(transactions[i]) {
			t.Errorf("transaction %d round-tripped to %+v, want %+v", i, tx, transactions[i])
		}
	}
}

func TestEncodeTransaction_CanonicalFieldOrder(t *testing.T) {
	tx := NewBuy(MustParseDate("2025-08-01"), "", "AAPL", Q(10), M(195.5, "USD"))

	var buf bytes.Buffer
	if err := EncodeTransaction(&buf, tx); err != nil {
		t.Fatalf("EncodeTransaction() returned an unexpected error: %v", err)
	}

	want := `{"command":"buy","date":"2025-08-01","security":"AAPL","quantity":10,"price":195.5,"currency":"USD"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeTransaction() = %q, want %q", got, want)
	}
}
