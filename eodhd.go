package invdash

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const eodhd_api_key = "EODHD_API_KEY"

var eodhdApiFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read for the environment variable \""+eodhd_api_key+"\". You can get one at https://eodhd.com/")

func eodhdApiKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *eodhdApiFlag == "" {
		*eodhdApiFlag = os.Getenv(eodhd_api_key)
	}
	return *eodhdApiFlag
}

// EODHD is a MarketData source backed by the eodhd.com REST API. Responses
// are cached on disk with a daily expiry, so repeated lookups within a day
// hit the network at most once per (ticker, endpoint).
//
// An unavailable price (unknown ticker, exhausted quota, network failure) is
// reported as a missing value, the same way the engine expects it from any
// source.
type EODHD struct {
	apiKey string
}

// NewEODHD creates an EODHD source. An empty key falls back to the
// -eodhd-api-key flag and then the EODHD_API_KEY environment variable.
func NewEODHD(apiKey string) *EODHD {
	if apiKey == "" {
		apiKey = eodhdApiKey()
	}
	return &EODHD{apiKey: apiKey}
}

// eodhdLive queries the real-time endpoint for one or more tickers and
// extracts close prices with a jsonpath, since the payload shape differs
// between the single (object) and bulk (array) forms.
func (e *EODHD) eodhdLive(tickers []string) (map[string]*decimal.Decimal, error) {
	// https://eodhd.com/api/real-time/AAPL.US?fmt=json&api_token=...&s=MSFT.US,TSLA.US
	// single:  { "code": "AAPL.US", "close": 189.95, ... }
	// bulk:    [ { "code": "AAPL.US", "close": 189.95, ... }, ... ]
	if len(tickers) == 0 {
		return map[string]*decimal.Decimal{}, nil
	}
	addr := fmt.Sprintf("https://eodhd.com/api/real-time/%s?fmt=json&api_token=%s",
		url.PathEscape(tickers[0]), e.apiKey)
	if len(tickers) > 1 {
		addr += "&s=" + url.QueryEscape(strings.Join(tickers[1:], ","))
	}

	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, err
	}

	// Normalize the single-object form into a one-element list.
	items, ok := jobj.([]any)
	if !ok {
		items = []any{jobj}
	}

	want := make(map[string]bool, len(tickers))
	for _, ticker := range tickers {
		want[ticker] = true
	}

	prices := make(map[string]*decimal.Decimal, len(tickers))
	for _, item := range items {
		jcode, err := jsonpath.Get("$.code", item)
		if err != nil {
			continue
		}
		code, ok := jcode.(string)
		if !ok {
			continue
		}
		// The API echoes codes with an exchange suffix ("AAPL.US") even when
		// queried bare; map them back to the requested ticker.
		if !want[code] {
			if i := strings.LastIndex(code, "."); i > 0 && want[code[:i]] {
				code = code[:i]
			}
		}
		jclose, err := jsonpath.Get("$.close", item)
		if err != nil {
			continue
		}
		// eodhd reports "NA" instead of a number when the ticker is unknown.
		val, ok := jclose.(float64)
		if !ok {
			log.Printf("eodhd: no close for %q: %v", code, jclose)
			continue
		}
		p := decimal.NewFromFloat(val)
		prices[code] = &p
	}
	return prices, nil
}

// CurrentPrice implements MarketData using the real-time endpoint.
func (e *EODHD) CurrentPrice(ticker string) (decimal.Decimal, bool) {
	prices, err := e.eodhdLive([]string{ticker})
	if err != nil {
		log.Printf("eodhd: live price for %q: %v", ticker, err)
		return decimal.Zero, false
	}
	p := prices[ticker]
	if p == nil {
		return decimal.Zero, false
	}
	return *p, true
}

// CurrentPrices implements MarketData with a single bulk request. Every
// requested ticker is present in the result; an unavailable price maps to nil.
func (e *EODHD) CurrentPrices(tickers []string) map[string]*decimal.Decimal {
	prices, err := e.eodhdLive(tickers)
	if err != nil {
		log.Printf("eodhd: live prices: %v", err)
		prices = map[string]*decimal.Decimal{}
	}
	out := make(map[string]*decimal.Decimal, len(tickers))
	for _, ticker := range tickers {
		out[ticker] = prices[ticker] // nil when missing
	}
	return out
}

// DailyPrices implements MarketData using the end-of-day endpoint.
// Closes are split-adjusted; a failed request yields an empty series.
func (e *EODHD) DailyPrices(ticker string, from, to Date) []PriceBar {
	// https://eodhd.com/api/eod/NVD.F?fmt=json&api_token=...&from=...&to=...
	// [ { "date": "2024-02-13", "open": 675.066, "high": 684.219,
	//     "low": 648.659, "close": 668.445, "adjusted_close": 67.705,
	//     "volume": 0 }, ... ]
	// Bounds are included in the response; free subscriptions are limited to
	// one year of history.
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		url.PathEscape(ticker), e.apiKey, from, to)
	type Info struct {
		Date   Date    `json:"date"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"adjusted_close"`
		Volume int64   `json:"volume"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := jwget(daily(), addr, &content); err != nil {
		log.Printf("eodhd: daily prices for %q: %v", ticker, err)
		return nil
	}

	bars := make([]PriceBar, 0, len(content))
	for _, info := range content {
		open := decimal.NewFromFloat(info.Open)
		high := decimal.NewFromFloat(info.High)
		low := decimal.NewFromFloat(info.Low)
		volume := info.Volume
		bars = append(bars, PriceBar{
			Ticker: ticker,
			Date:   info.Date,
			Close:  decimal.NewFromFloat(info.Close),
			Open:   &open,
			High:   &high,
			Low:    &low,
			Volume: &volume,
		})
	}
	return bars
}

var _ MarketData = (*EODHD)(nil)
