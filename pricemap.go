package networth

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file builds the per-token price maps from the configured source
// documents. Structural problems (a document whose top-level shape is not the
// one its format tag promises) abort the whole run: no partial price data is
// safely usable across an unknown malformed structure. Problems inside a
// single entry only drop that entry.

// Market holds the daily price histories for a set of tokens, keyed by the
// currency designator appearing in the transaction export. It is built once
// per run and never mutated afterwards.
type Market struct {
	tokens map[string]*History
}

// NewMarket returns a new empty market data collection.
func NewMarket() *Market {
	return &Market{tokens: make(map[string]*History)}
}

func (m *Market) add(code string, h *History) { m.tokens[code] = h }

// Has reports whether the market holds a price history for code.
func (m *Market) Has(code string) bool {
	_, ok := m.tokens[code]
	return ok
}

// Price returns the price of one unit of code in USD on the given day.
func (m *Market) Price(code string, day Date) (float64, bool) {
	h, ok := m.tokens[code]
	if !ok {
		return 0, false
	}
	return h.Get(day)
}

// History returns the full price history for code.
func (m *Market) History(code string) (*History, bool) {
	h, ok := m.tokens[code]
	return h, ok
}

// Tokens returns the configured token codes in lexical order.
func (m *Market) Tokens() []string {
	codes := make([]string, 0, len(m.tokens))
	for code := range m.tokens {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// BuildMarket loads every configured price source exactly once and returns
// the resulting market. Any structural error is returned immediately.
func BuildMarket(cfg *Config) (*Market, error) {
	m := NewMarket()
	for _, t := range cfg.Tokens {
		h, err := loadHistory(t)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", t.Code, err)
		}
		log.Printf("%s: loaded %d daily prices", t.Code, h.Len())
		m.add(t.Code, h)
	}
	return m, nil
}

func loadHistory(t Token) (*History, error) {
	data, err := os.ReadFile(t.PriceFile)
	if err != nil {
		return nil, fmt.Errorf("cannot read price file: %w", err)
	}
	switch t.Format {
	case FormatStats:
		return ParseStatsSeries(t.PriceFile, data)
	case FormatXY:
		return ParseXYSeries(t.PriceFile, data)
	case FormatOHLC:
		return ParseOHLCSeries(t.PriceFile, data)
	case FormatChained:
		base, err := ParseOHLCSeries(t.PriceFile, data)
		if err != nil {
			return nil, err
		}
		qdata, err := os.ReadFile(t.QuoteFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read quote file: %w", err)
		}
		quote, err := ParseXYSeries(t.QuoteFile, qdata)
		if err != nil {
			return nil, err
		}
		h := DeriveChained(base, quote)
		log.Printf("%s: %d of %d base dates also covered by %s", t.PriceFile, h.Len(), base.Len(), t.QuoteFile)
		return h, nil
	default:
		return nil, fmt.Errorf("unknown source format %q", t.Format)
	}
}

// ParseStatsSeries parses the old "stats" shape:
//
//	{"stats": [[1696723200000, 131165.672], ...]}
//
// Timestamps are epoch milliseconds, truncated to their UTC calendar date.
// Malformed pairs are skipped.
func ParseStatsSeries(name string, data []byte) (*History, error) {
	var doc struct {
		Stats []json.RawMessage `json:"stats"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unexpected JSON structure in %s: %w", name, err)
	}

	h := new(History)
	for _, raw := range doc.Stats {
		// decimal accepts both numeric and quoted-numeric JSON values.
		var pair []decimal.Decimal
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) < 2 {
			continue
		}
		h.Append(DateOfEpochMillis(pair[0].IntPart()), pair[1].InexactFloat64())
	}
	return h, nil
}

// ParseXYSeries parses the x/y shape, either a top-level list or an object
// with a "data" key:
//
//	{"success": true, "data": [{"x": "2022-03-20T22:00:00Z", "y": 0.0035164}, ...]}
//
// The x timestamp is an ISO-8601 string, optionally suffixed with 'Z'.
// Entries with a missing field or an unparsable timestamp or price are
// skipped with a warning; a single bad entry never aborts the series.
func ParseXYSeries(name string, data []byte) (*History, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unexpected JSON structure in %s: %w", name, err)
	}

	var entries []any
	switch v := doc.(type) {
	case []any:
		entries = v
	case map[string]any:
		// A document without a "data" key is an empty series, not a
		// malformed one.
		if jval, err := jsonpath.Get("$.data", doc); err == nil {
			list, ok := jval.([]any)
			if !ok {
				return nil, fmt.Errorf("unexpected JSON structure in %s: \"data\" is not a list", name)
			}
			entries = list
		}
	default:
		return nil, fmt.Errorf("unexpected JSON structure in %s", name)
	}

	h := new(History)
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			log.Printf("%s: entry is not an object, skipped", name)
			continue
		}
		x, okx := obj["x"]
		y, oky := obj["y"]
		if !okx || !oky {
			log.Printf("%s: entry missing x or y, skipped", name)
			continue
		}
		day, err := ParseTimestamp(fmt.Sprint(x))
		if err != nil {
			log.Printf("%s: %v, entry skipped", name, err)
			continue
		}
		price, ok := asFloat(y)
		if !ok {
			log.Printf("%s: cannot parse price %v on %s, entry skipped", name, y, day)
			continue
		}
		h.Append(day, price)
	}
	return h, nil
}

// ParseOHLCSeries parses a top-level list of OHLC entries:
//
//	[{"open": 892.34, "close": 902.08, "timestamp": "2026-01-01T00:00:00.000Z"}, ...]
//
// The daily price is (open + close) / 2. Entries missing any of the three
// fields are skipped.
func ParseOHLCSeries(name string, data []byte) (*History, error) {
	var doc []json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s is expected to be a list of OHLC entries: %w", name, err)
	}

	h := new(History)
	for _, raw := range doc {
		var entry struct {
			Open      *decimal.Decimal `json:"open"`
			Close     *decimal.Decimal `json:"close"`
			Timestamp *string          `json:"timestamp"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			log.Printf("%s: cannot parse entry: %v, skipped", name, err)
			continue
		}
		if entry.Open == nil || entry.Close == nil || entry.Timestamp == nil {
			continue
		}
		day, err := ParseTimestamp(*entry.Timestamp)
		if err != nil {
			log.Printf("%s: %v, entry skipped", name, err)
			continue
		}
		h.Append(day, (entry.Open.InexactFloat64()+entry.Close.InexactFloat64())/2)
	}
	return h, nil
}

// DeriveChained composes two price series through a shared intermediate
// asset: base expresses token/intermediate, quote expresses
// intermediate/USD, the result expresses token/USD. It is restricted to the
// dates present in both inputs; a date covered by only one source cannot be
// priced and is dropped.
func DeriveChained(base, quote *History) *History {
	h := new(History)
	for day, b := range base.Values() {
		if q, ok := quote.Get(day); ok {
			h.Append(day, b*q)
		}
	}
	return h
}

// asFloat converts a decoded JSON value to a float64. Some sources quote
// their numbers ("y": "0.0059"), so strings holding a number are accepted.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return 0, false
		}
		return d.InexactFloat64(), true
	default:
		return 0, false
	}
}
