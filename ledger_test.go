package networth

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func testLedgerValuer() *Valuer {
	cfg := &Config{
		Quote:   DefaultQuote,
		Stable:  []string{"USDC;7483231"},
		Columns: DefaultColumns(),
	}
	market := NewMarket()
	h := new(History)
	h.Append(NewDate(2024, time.March, 5), 2.0)
	market.add("STX;1770845", h)
	return NewValuer(cfg, market)
}

const ledgerHeader = "Date (UTC),From Amount,From Currency,To Amount,To Currency,Net Worth Amount,Net Worth Currency"

func TestEnrichLedger(t *testing.T) {
	input := strings.Join([]string{
		ledgerHeader,
		`2024-03-05 10:00:00,,,3,STX;1770845,,`,          // priced: 3 × 2.0
		`2024-03-05 11:00:00,,,150.25,USDC;7483231,,`,    // stable copy
		`2024-03-06 10:00:00,,,3,STX;1770845,,`,          // no price coverage
		`2024-03-05 12:00:00,,,1,BTC;3,,`,                // not ours
		`2024-03-05 13:00:00,,,5,STX;1770845,42.5,USD;10`, // already priced
		`2024-03-05 14:00:00,,,0,STX;1770845,,`,          // zero amount
	}, "\n") + "\n"

	var out strings.Builder
	report, err := EnrichLedger(strings.NewReader(input), &out, testLedgerValuer())
	if err != nil {
		t.Fatalf("EnrichLedger: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	// Coverage invariant: one output row per input row, plus the header.
	if len(records) != 7 {
		t.Fatalf("output has %d records, want 7", len(records))
	}

	if report.Rows != 6 || report.Updated != 2 || report.Skipped != 2 {
		t.Errorf("report = %d rows, %d updated, %d skipped; want 6, 2, 2", report.Rows, report.Updated, report.Skipped)
	}
	if report.ByToken["STX;1770845"] != 1 || report.ByToken["USDC;7483231"] != 1 {
		t.Errorf("ByToken = %v", report.ByToken)
	}

	// The priced row.
	if got := records[1][5]; got != "6.00000000" {
		t.Errorf("priced net worth = %q, want 6.00000000", got)
	}
	if got := records[1][6]; got != "USD;10" {
		t.Errorf("priced net worth currency = %q, want USD;10", got)
	}
	// The stable row copies the amount at 8 decimal places.
	if got := records[2][5]; got != "150.25000000" {
		t.Errorf("stable net worth = %q, want 150.25000000", got)
	}
	// Skipped and foreign rows keep their original (empty) net worth.
	for _, i := range []int{3, 4, 6} {
		if got := records[i][5]; got != "" {
			t.Errorf("row %d net worth = %q, want untouched", i, got)
		}
	}
	// The already-priced row is byte-for-byte preserved.
	if got := records[5][5]; got != "42.5" {
		t.Errorf("already-priced net worth = %q, want 42.5", got)
	}
	// Untouched columns and order are preserved.
	if records[1][0] != "2024-03-05 10:00:00" || records[1][4] != "STX;1770845" {
		t.Errorf("row 1 columns disturbed: %v", records[1])
	}
}

func TestEnrichLedgerIdempotent(t *testing.T) {
	input := strings.Join([]string{
		ledgerHeader,
		`2024-03-05 10:00:00,,,3,STX;1770845,,`,
		`2024-03-05 11:00:00,,,150.25,USDC;7483231,,`,
	}, "\n") + "\n"

	var first strings.Builder
	if _, err := EnrichLedger(strings.NewReader(input), &first, testLedgerValuer()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	var second strings.Builder
	report, err := EnrichLedger(strings.NewReader(first.String()), &second, testLedgerValuer())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Updated != 0 {
		t.Errorf("second run updated %d rows, want 0", report.Updated)
	}
	if second.String() != first.String() {
		t.Error("second run changed the output")
	}
}

func TestEnrichLedgerAppendsCurrencyColumn(t *testing.T) {
	// No "Net Worth Currency" column in the input: it is appended.
	input := strings.Join([]string{
		"Date (UTC),From Amount,From Currency,To Amount,To Currency,Net Worth Amount",
		`2024-03-05 10:00:00,,,3,STX;1770845,`,
	}, "\n") + "\n"

	var out strings.Builder
	if _, err := EnrichLedger(strings.NewReader(input), &out, testLedgerValuer()); err != nil {
		t.Fatalf("EnrichLedger: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	header := records[0]
	if header[len(header)-1] != "Net Worth Currency" {
		t.Fatalf("header = %v, want Net Worth Currency appended", header)
	}
	if got := records[1][len(header)-1]; got != "USD;10" {
		t.Errorf("appended currency = %q, want USD;10", got)
	}
}

func TestEnrichLedgerMissingRequiredColumn(t *testing.T) {
	columns := []string{
		"Date (UTC)", "From Amount", "From Currency", "To Amount", "To Currency", "Net Worth Amount",
	}
	for _, missing := range columns {
		t.Run(missing, func(t *testing.T) {
			var kept []string
			for _, c := range columns {
				if c != missing {
					kept = append(kept, c)
				}
			}
			input := strings.Join(kept, ",") + "\n"
			var out strings.Builder
			_, err := EnrichLedger(strings.NewReader(input), &out, testLedgerValuer())
			if err == nil {
				t.Fatal("expected a fatal error for a missing required column")
			}
			if out.Len() != 0 {
				t.Error("output written despite a fatal startup error")
			}
		})
	}
}

func TestEnrichLedgerUnreadableHeader(t *testing.T) {
	var out strings.Builder
	if _, err := EnrichLedger(strings.NewReader(""), &out, testLedgerValuer()); err == nil {
		t.Fatal("expected an error for an empty input")
	}
}
