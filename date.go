package networth

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// LedgerTimestampFormat is the exact layout of the export's "Date (UTC)"
// column. No timezone offset, no fractional seconds.
const LedgerTimestampFormat = "2006-01-02 15:04:05"

// timestampLayouts are the ISO-8601 layouts accepted in price-source
// documents, tried in order after an optional trailing 'Z' is stripped.
// The fractional part is optional in the first layout.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// DateOf returns the UTC calendar date of an instant.
func DateOf(t time.Time) Date { return NewDate(t.UTC().Date()) }

// DateOfEpochMillis returns the UTC calendar date of an epoch-milliseconds
// instant, the timestamp unit of the epoch-pair price format.
func DateOfEpochMillis(ms int64) Date { return DateOf(time.UnixMilli(ms)) }

// ParseTimestamp parses an ISO-8601 timestamp from a price-source document
// and truncates it to its calendar date. A trailing 'Z' is accepted and
// ignored; no other timezone offsets are expected.
func ParseTimestamp(s string) (Date, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("cannot parse timestamp %q", s)
}

// ParseLedgerTimestamp parses the "Date (UTC)" column of a transaction row
// and truncates it to its calendar date. The layout is strict.
func ParseLedgerTimestamp(s string) (Date, error) {
	t, err := time.Parse(LedgerTimestampFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("cannot parse ledger timestamp %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }
