// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/invdash/invdash"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&rebalanceCmd{}, "reports")
	c.Register(&perfCmd{}, "reports")
	c.Register(&pricesCmd{}, "reports")

	c.Register(&targetsCmd{}, "configuration")
	c.Register(&settingsCmd{}, "configuration")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var settingsFile = flag.String("settings-file", "settings.json", "Path to the settings file (JSON format)")

// config is the persisted shape of the settings file: computation thresholds
// plus the target allocations they apply to.
type config struct {
	Settings invdash.Settings           `json:"settings"`
	Targets  []invdash.TargetAllocation `json:"targets,omitempty"`
}

// DecodeLedger loads the app ledger file. A missing file yields an empty
// ledger, so every command works on a fresh directory.
func DecodeLedger() (*invdash.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return invdash.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return invdash.DecodeLedger(f)
}

// DecodeConfig loads the app settings file, falling back to defaults when it
// does not exist.
func DecodeConfig() (config, error) {
	cfg := config{Settings: invdash.DefaultSettings()}
	data, err := os.ReadFile(*settingsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cannot open settings file %q: %w", *settingsFile, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse settings file %q: %w", *settingsFile, err)
	}
	return cfg, nil
}

// EncodeConfig persists the settings file.
func EncodeConfig(cfg config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal settings: %w", err)
	}
	if err := os.WriteFile(*settingsFile, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("cannot write settings file %q: %w", *settingsFile, err)
	}
	return nil
}

// appendTransaction appends a single transaction into the app ledger file.
func appendTransaction(tx invdash.Transaction) subcommands.ExitStatus {
	filename := *ledgerFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := invdash.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}

// newEngine wires a store loaded from the app files with a market data
// source: the deterministic simulator by default, the live EODHD feed with
// -live.
func newEngine(live bool) (*invdash.Engine, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	cfg, err := DecodeConfig()
	if err != nil {
		return nil, err
	}
	store := invdash.NewMemoryStoreFromLedger(ledger)
	store.UpdateSettings(cfg.Settings)
	store.UpdateTargetAllocations(cfg.Targets)

	var market invdash.MarketData
	if live {
		market = invdash.NewEODHD("")
	} else {
		market = invdash.NewSimulator()
	}
	return invdash.NewEngine(store, market), nil
}
