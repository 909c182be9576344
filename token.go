package networth

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SourceFormat identifies the shape of a price-history JSON document.
type SourceFormat string

const (
	// FormatStats is the old "stats" shape: {"stats": [[epoch_millis, price], ...]}.
	FormatStats SourceFormat = "stats"
	// FormatXY is the x/y shape: [{"x": iso_ts, "y": price}, ...] or
	// {"data": [{"x": ..., "y": ...}, ...]}.
	FormatXY SourceFormat = "xy"
	// FormatOHLC is a list of OHLC entries: [{"open": ..., "close": ..., "timestamp": ...}, ...].
	FormatOHLC SourceFormat = "ohlc"
	// FormatChained derives token/USD from an OHLC token/intermediate series
	// multiplied by an x/y intermediate/USD series.
	FormatChained SourceFormat = "chained"
)

// Token declares where and in which shape the daily prices of a token are found.
//
// The code is the currency designator as it appears in the export, e.g.
// "STX;1770845". QuoteFile is only meaningful for the chained format, where
// PriceFile holds the token/intermediate OHLC series and QuoteFile the
// intermediate/USD x/y series.
type Token struct {
	Code      string       `json:"code"`
	Format    SourceFormat `json:"format"`
	PriceFile string       `json:"price_file"`
	QuoteFile string       `json:"quote_file,omitempty"`
}

// Columns names the export columns the tool reads and writes. Zero values
// fall back to the Koinly export headers.
type Columns struct {
	Date             string `json:"date,omitempty"`
	ToCurrency       string `json:"to_currency,omitempty"`
	ToAmount         string `json:"to_amount,omitempty"`
	FromCurrency     string `json:"from_currency,omitempty"`
	FromAmount       string `json:"from_amount,omitempty"`
	NetWorthAmount   string `json:"net_worth_amount,omitempty"`
	NetWorthCurrency string `json:"net_worth_currency,omitempty"`
}

// DefaultColumns returns the Koinly export headers.
func DefaultColumns() Columns {
	return Columns{
		Date:             "Date (UTC)",
		ToCurrency:       "To Currency",
		ToAmount:         "To Amount",
		FromCurrency:     "From Currency",
		FromAmount:       "From Amount",
		NetWorthAmount:   "Net Worth Amount",
		NetWorthCurrency: "Net Worth Currency",
	}
}

// or returns the column names with zero values replaced by defaults.
func (c Columns) or(def Columns) Columns {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Columns{
		Date:             pick(c.Date, def.Date),
		ToCurrency:       pick(c.ToCurrency, def.ToCurrency),
		ToAmount:         pick(c.ToAmount, def.ToAmount),
		FromCurrency:     pick(c.FromCurrency, def.FromCurrency),
		FromAmount:       pick(c.FromAmount, def.FromAmount),
		NetWorthAmount:   pick(c.NetWorthAmount, def.NetWorthAmount),
		NetWorthCurrency: pick(c.NetWorthCurrency, def.NetWorthCurrency),
	}
}

// Config is the static per-run configuration: the priced tokens with their
// sources, the stable assets treated one-to-one with USD, and the net-worth
// currency designator written on every filled row.
type Config struct {
	Quote   string   `json:"quote"`
	Stable  []string `json:"stable"`
	Tokens  []Token  `json:"tokens"`
	Columns Columns  `json:"columns"`
}

// DefaultQuote is the net-worth currency designator used when the
// configuration leaves it blank.
const DefaultQuote = "USD;10"

// ReadConfig decodes and validates a configuration document.
func ReadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("cannot parse configuration: %w", err)
	}
	if cfg.Quote == "" {
		cfg.Quote = DefaultQuote
	}
	cfg.Columns = cfg.Columns.or(DefaultColumns())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open configuration %q: %w", path, err)
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for mistakes that would make a run
// meaningless. It is called before any price file is opened.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for _, t := range c.Tokens {
		if t.Code == "" {
			return fmt.Errorf("token with empty code")
		}
		if seen[t.Code] {
			return fmt.Errorf("token %q configured twice", t.Code)
		}
		seen[t.Code] = true

		switch t.Format {
		case FormatStats, FormatXY, FormatOHLC:
			if t.QuoteFile != "" {
				return fmt.Errorf("token %q: quote_file is only valid with the chained format", t.Code)
			}
		case FormatChained:
			if t.QuoteFile == "" {
				return fmt.Errorf("token %q: chained format requires a quote_file", t.Code)
			}
		default:
			return fmt.Errorf("token %q: unknown format %q", t.Code, t.Format)
		}
		if t.PriceFile == "" {
			return fmt.Errorf("token %q: missing price_file", t.Code)
		}
	}
	for _, s := range c.Stable {
		if s == "" {
			return fmt.Errorf("empty stable asset code")
		}
	}
	return nil
}

// IsStable reports whether code is configured as a 1:1 USD asset.
func (c *Config) IsStable(code string) bool {
	for _, s := range c.Stable {
		if s == code {
			return true
		}
	}
	return false
}
