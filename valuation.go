package networth

import (
	"log"
	"strconv"
	"strings"
)

// Entry is the slice of a transaction row the valuation engine reads. All
// fields are the raw column strings from the export.
type Entry struct {
	Date         string // "Date (UTC)", strict YYYY-MM-DD HH:MM:SS
	ToCurrency   string
	ToAmount     string
	FromCurrency string
	FromAmount   string
	NetWorth     string // current "Net Worth Amount"
}

// Outcome classifies what the engine decided for one row.
type Outcome int

const (
	// RowUnchanged means the row was not for us: already priced, or neither
	// side matches a configured token.
	RowUnchanged Outcome = iota
	// RowSkipped means the row matched a configured token but could not be
	// priced; it passes through unmodified.
	RowSkipped
	// RowUpdated means the net-worth fields were filled.
	RowUpdated
)

// Valuation is the result of pricing one row.
type Valuation struct {
	Amount   string  // new "Net Worth Amount", 8 decimal places
	Currency string  // new "Net Worth Currency" designator
	Token    string  // the token that matched
	USD      float64 // the filled value, for the run totals
}

// Valuer decides, per row, whether and how to fill a missing net-worth
// value. It is a pure function of the row's fields plus the immutable market
// built at startup; no state persists across rows.
type Valuer struct {
	cfg    *Config
	market *Market
}

// NewValuer returns a Valuer filling rows from the given market.
func NewValuer(cfg *Config, market *Market) *Valuer {
	return &Valuer{cfg: cfg, market: market}
}

// Value evaluates one row.
//
// A row whose net worth is already non-zero passes through unchanged, which
// makes reruns on the tool's own output idempotent. Otherwise the candidate
// token is selected with a fixed precedence: priced tokens before stable
// assets, and within a category the "to" side before the "from" side.
func (v *Valuer) Value(e Entry) (Valuation, Outcome) {
	if safeFloat(e.NetWorth) != 0 {
		return Valuation{}, RowUnchanged
	}

	var token, amount string
	var stable bool
	switch {
	case v.market.Has(e.ToCurrency):
		token, amount = e.ToCurrency, e.ToAmount
	case v.market.Has(e.FromCurrency):
		token, amount = e.FromCurrency, e.FromAmount
	case v.cfg.IsStable(e.ToCurrency):
		token, amount, stable = e.ToCurrency, e.ToAmount, true
	case v.cfg.IsStable(e.FromCurrency):
		token, amount, stable = e.FromCurrency, e.FromAmount, true
	default:
		// Neither side is one of our known tokens.
		return Valuation{}, RowUnchanged
	}

	// A zero-amount transfer is never considered priced.
	amt := safeFloat(amount)
	if amt == 0 {
		return Valuation{Token: token}, RowSkipped
	}

	if stable {
		// One-to-one with USD: copy the amount, no lookup.
		return Valuation{
			Amount:   formatAmount(amt),
			Currency: v.cfg.Quote,
			Token:    token,
			USD:      amt,
		}, RowUpdated
	}

	day, err := ParseLedgerTimestamp(e.Date)
	if err != nil {
		log.Printf("WARNING: %v", err)
		return Valuation{Token: token}, RowSkipped
	}
	price, ok := v.market.Price(token, day)
	if !ok {
		log.Printf("no price for token %s on %s, row skipped", token, day)
		return Valuation{Token: token}, RowSkipped
	}

	usd := amt * price
	return Valuation{
		Amount:   formatAmount(usd),
		Currency: v.cfg.Quote,
		Token:    token,
		USD:      usd,
	}, RowUpdated
}

// formatAmount renders a net-worth value with fixed 8 decimal places.
func formatAmount(v float64) string { return strconv.FormatFloat(v, 'f', 8, 64) }

// safeFloat parses a column value as a float, treating blank or unparsable
// values as zero.
func safeFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
