package networth

import (
	"strings"
	"testing"
)

func TestReadConfig(t *testing.T) {
	doc := `{
		"stable": ["USDC;7483231"],
		"tokens": [
			{"code": "STX;1770845", "format": "xy", "price_file": "stx_price.json"},
			{"code": "MAG;8678551", "format": "chained", "price_file": "mag_price.json", "quote_file": "xrp_price.json"}
		]
	}`
	cfg, err := ReadConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Quote != DefaultQuote {
		t.Errorf("quote = %q, want the %q default", cfg.Quote, DefaultQuote)
	}
	if cfg.Columns.Date != "Date (UTC)" {
		t.Errorf("date column = %q, want the Koinly default", cfg.Columns.Date)
	}
	if !cfg.IsStable("USDC;7483231") || cfg.IsStable("STX;1770845") {
		t.Error("IsStable misclassifies")
	}
}

func TestReadConfigColumnOverride(t *testing.T) {
	doc := `{"tokens": [], "columns": {"date": "Timestamp (UTC)"}}`
	cfg, err := ReadConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Columns.Date != "Timestamp (UTC)" {
		t.Errorf("date column = %q, want the override", cfg.Columns.Date)
	}
	if cfg.Columns.ToAmount != "To Amount" {
		t.Errorf("to amount column = %q, want the default kept", cfg.Columns.ToAmount)
	}
}

func TestReadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `hello`},
		{"unknown field", `{"tokens": [], "stables": []}`},
		{"empty code", `{"tokens": [{"code": "", "format": "xy", "price_file": "x.json"}]}`},
		{"duplicate code", `{"tokens": [
			{"code": "A;1", "format": "xy", "price_file": "a.json"},
			{"code": "A;1", "format": "xy", "price_file": "b.json"}]}`},
		{"unknown format", `{"tokens": [{"code": "A;1", "format": "candles", "price_file": "a.json"}]}`},
		{"missing price file", `{"tokens": [{"code": "A;1", "format": "xy"}]}`},
		{"chained without quote file", `{"tokens": [{"code": "A;1", "format": "chained", "price_file": "a.json"}]}`},
		{"quote file on plain format", `{"tokens": [{"code": "A;1", "format": "xy", "price_file": "a.json", "quote_file": "b.json"}]}`},
		{"empty stable code", `{"tokens": [], "stable": [""]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadConfig(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
