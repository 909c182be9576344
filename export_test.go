package networth

import (
	"strings"
	"testing"
	"time"
)

func TestExportCustomPrices(t *testing.T) {
	market := NewMarket()
	h := new(History)
	h.Append(NewDate(2024, time.January, 2), 0.5)
	h.Append(NewDate(2024, time.January, 1), 1.5)
	market.add("MAG;8678551", h)

	var out strings.Builder
	if err := ExportCustomPrices(&out, market, "MAG;8678551"); err != nil {
		t.Fatalf("ExportCustomPrices: %v", err)
	}

	want := "Date,Rate\n" +
		"2024-01-01 12:00:00,1.500000000000\n" +
		"2024-01-02 12:00:00,0.500000000000\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestExportCustomPricesUnknownToken(t *testing.T) {
	var out strings.Builder
	if err := ExportCustomPrices(&out, NewMarket(), "NOPE;1"); err == nil {
		t.Error("expected an error for an unconfigured token")
	}
	if out.Len() != 0 {
		t.Error("output written for an unconfigured token")
	}
}
