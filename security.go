package invdash

import (
	"fmt"
	"regexp"
)

// tickerRegex checks the ticker format: 1 to 10 uppercase letters, digits or dots.
var tickerRegex = regexp.MustCompile(`^[A-Z0-9.]{1,10}$`)

// AssetClass categorizes a security for allocation purposes.
type AssetClass string

const (
	AssetStock AssetClass = "Stock"
	AssetETF   AssetClass = "ETF"
	AssetBond  AssetClass = "Bond"
	AssetCash  AssetClass = "Cash"
)

// Security identifies an instrument that can be held in the portfolio.
// Identity (Ticker) is immutable once the security is referenced by lots or
// transactions; Name and AssetClass are mutable metadata.
type Security struct {
	Ticker     string     `json:"ticker"`
	Name       string     `json:"name,omitempty"`
	AssetClass AssetClass `json:"assetClass,omitempty"`
}

// NewSecurity creates a new security record with a validated ticker.
func NewSecurity(ticker, name string, class AssetClass) (Security, error) {
	if err := ValidateTicker(ticker); err != nil {
		return Security{}, err
	}
	if class == "" {
		class = AssetStock
	}
	return Security{Ticker: ticker, Name: name, AssetClass: class}, nil
}

// ValidateTicker checks that a ticker is well-formed: non-empty, at most 10
// characters, uppercase alphanumeric.
func ValidateTicker(ticker string) error {
	if ticker == "" {
		return fmt.Errorf("ticker is missing")
	}
	if !tickerRegex.MatchString(ticker) {
		return fmt.Errorf("invalid ticker %q: want 1-10 uppercase letters, digits or dots", ticker)
	}
	return nil
}
