package networth

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
)

// EnrichLedger streams a transaction export from r to w, filling missing
// net-worth values using v. Every input row produces exactly one output row,
// in input order, with all untouched columns preserved. The net-worth
// currency column is appended to the schema when the input lacks it.
//
// A missing required column or an unreadable header aborts before any output
// is written.
func EnrichLedger(r io.Reader, w io.Writer, v *Valuer) (*RunReport, error) {
	in := csv.NewReader(r)
	header, err := in.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header row: %w", err)
	}

	cols := v.cfg.Columns
	index := func(name string) (int, error) {
		if i := slices.Index(header, name); i >= 0 {
			return i, nil
		}
		return -1, fmt.Errorf("missing required column %q", name)
	}
	iDate, err := index(cols.Date)
	if err != nil {
		return nil, err
	}
	iToCur, err := index(cols.ToCurrency)
	if err != nil {
		return nil, err
	}
	iToAmt, err := index(cols.ToAmount)
	if err != nil {
		return nil, err
	}
	iFromCur, err := index(cols.FromCurrency)
	if err != nil {
		return nil, err
	}
	iFromAmt, err := index(cols.FromAmount)
	if err != nil {
		return nil, err
	}
	iWorth, err := index(cols.NetWorthAmount)
	if err != nil {
		return nil, err
	}
	// The currency column is the only one we may create.
	iCur := slices.Index(header, cols.NetWorthCurrency)
	appended := iCur < 0
	if appended {
		header = append(header, cols.NetWorthCurrency)
		iCur = len(header) - 1
	}

	out := csv.NewWriter(w)
	if err := out.Write(header); err != nil {
		return nil, fmt.Errorf("cannot write header row: %w", err)
	}

	report := &RunReport{ByToken: make(map[string]int)}
	for {
		rec, err := in.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read row %d: %w", report.Rows+2, err)
		}
		if appended {
			rec = append(rec, "")
		}
		report.Rows++

		val, outcome := v.Value(Entry{
			Date:         rec[iDate],
			ToCurrency:   rec[iToCur],
			ToAmount:     rec[iToAmt],
			FromCurrency: rec[iFromCur],
			FromAmount:   rec[iFromAmt],
			NetWorth:     rec[iWorth],
		})
		switch outcome {
		case RowUpdated:
			rec[iWorth] = val.Amount
			rec[iCur] = val.Currency
			report.Updated++
			report.ByToken[val.Token]++
			report.Total = report.Total.Add(M(val.USD, isoCode(v.cfg.Quote)))
		case RowSkipped:
			report.Skipped++
		}

		if err := out.Write(rec); err != nil {
			return nil, fmt.Errorf("cannot write row: %w", err)
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return nil, fmt.Errorf("cannot flush output: %w", err)
	}
	return report, nil
}
