package invdash

import (
	"fmt"
	"sync"
)

// Store is the persistence contract the engine consumes. Implementations
// hold the records described by the data model; the engine never issues
// richer queries than "everything for ticker X in range Y".
//
// The HTTP layer of a dashboard would sit on the other side of this
// interface; which technology backs it is deliberately out of scope.
type Store interface {
	// Securities.
	Security(ticker string) (*Security, error)
	AddSecurity(sec Security) error
	AllSecurities() []Security

	// Transactions. Add validates against the current state and appends
	// atomically: a rejected transaction leaves the store unchanged.
	AddTransaction(tx Transaction) (Transaction, error)
	Transactions(ticker string, from, to Date) []Transaction

	// Position lots, derived FIFO state as of a date.
	Lots(ticker string, asOf Date) []Lot

	// Price history.
	AddPriceBars(bars ...PriceBar) error
	PriceBars(ticker string, from, to Date) []PriceBar

	// Benchmark series.
	AddBenchmark(points ...BenchmarkPoint) error
	BenchmarkSeries(symbol string, from, to Date) []BenchmarkPoint

	// Settings, a singleton replaced in place, and its target allocations.
	Settings() Settings
	UpdateSettings(s Settings)
	TargetAllocations() []TargetAllocation
	UpdateTargetAllocations(targets []TargetAllocation)
}

// MemoryStore is the in-memory Store: a transaction ledger plus price
// history, with records correlated by ticker rather than object references.
// A single mutex serializes writers; the underlying ledger requires a single
// ordered stream of mutations per security, and this is the simplest
// discipline that guarantees it.
type MemoryStore struct {
	mu       sync.RWMutex
	ledger   *Ledger
	history  *History
	settings Settings
	targets  []TargetAllocation
}

// NewMemoryStore creates an empty in-memory store with default settings.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ledger:   NewLedger(),
		history:  NewHistory(),
		settings: DefaultSettings(),
	}
}

// NewMemoryStoreFromLedger wraps an existing ledger, e.g. one decoded from a
// JSONL file.
func NewMemoryStoreFromLedger(l *Ledger) *MemoryStore {
	return &MemoryStore{ledger: l, history: NewHistory(), settings: DefaultSettings()}
}

// Ledger exposes the underlying transaction ledger for read-only use.
func (s *MemoryStore) Ledger() *Ledger { return s.ledger }

func (s *MemoryStore) Security(ticker string) (*Security, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec := s.ledger.Security(ticker)
	if sec == nil {
		return nil, fmt.Errorf("security %q not found", ticker)
	}
	return sec, nil
}

func (s *MemoryStore) AddSecurity(sec Security) error {
	if err := ValidateTicker(sec.Ticker); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Declare(sec)
	return nil
}

func (s *MemoryStore) AllSecurities() []Security {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Security
	for sec := range s.ledger.AllSecurities() {
		out = append(out, sec)
	}
	return out
}

func (s *MemoryStore) AddTransaction(tx Transaction) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.ledger.Validate(tx)
	if err != nil {
		return tx, err
	}
	s.ledger.Append(tx)
	return tx, nil
}

func (s *MemoryStore) Transactions(ticker string, from, to Date) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Transaction
	for _, tx := range s.ledger.SecurityTransactions(ticker, to) {
		if tx.When().Before(from) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (s *MemoryStore) Lots(ticker string, asOf Date) []Lot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.LotBook(ticker, asOf).OpenLots()
}

func (s *MemoryStore) AddPriceBars(bars ...PriceBar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.AddBars(bars...)
}

func (s *MemoryStore) PriceBars(ticker string, from, to Date) []PriceBar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Bars(ticker, from, to)
}

func (s *MemoryStore) AddBenchmark(points ...BenchmarkPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.AddBenchmark(points...)
}

func (s *MemoryStore) BenchmarkSeries(symbol string, from, to Date) []BenchmarkPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Benchmark(symbol, from, to)
}

func (s *MemoryStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings replaces the singleton settings in place.
func (s *MemoryStore) UpdateSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.UpdatedAt = Today().String()
	s.settings = settings
}

func (s *MemoryStore) TargetAllocations() []TargetAllocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TargetAllocation, len(s.targets))
	copy(out, s.targets)
	return out
}

func (s *MemoryStore) UpdateTargetAllocations(targets []TargetAllocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = make([]TargetAllocation, len(targets))
	copy(s.targets, targets)
}

var _ Store = (*MemoryStore)(nil)
