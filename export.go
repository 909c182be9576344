package networth

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// customPriceTime is the time component written in the Date column of a
// custom-price file. Koinly's sample uses a time component, the value itself
// does not matter for daily rates.
const customPriceTime = "12:00:00"

// ExportCustomPrices writes the price history of one configured token as a
// Koinly custom-price CSV: a "Date,Rate" header, one row per covered day in
// chronological order, rates with 12 decimal places.
//
// Its main use is publishing a chained series (for which the aggregator has
// no source at all) back to the aggregator.
func ExportCustomPrices(w io.Writer, m *Market, code string) error {
	h, ok := m.History(code)
	if !ok {
		return fmt.Errorf("token %q is not configured", code)
	}

	out := csv.NewWriter(w)
	if err := out.Write([]string{"Date", "Rate"}); err != nil {
		return fmt.Errorf("cannot write custom-price header: %w", err)
	}
	for day, price := range h.Values() {
		rec := []string{
			day.String() + " " + customPriceTime,
			strconv.FormatFloat(price, 'f', 12, 64),
		}
		if err := out.Write(rec); err != nil {
			return fmt.Errorf("cannot write custom-price row: %w", err)
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("cannot flush custom-price file: %w", err)
	}
	return nil
}
