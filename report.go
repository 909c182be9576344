package networth

import (
	"bytes"
	"fmt"
	"sort"

	md "github.com/nao1215/markdown"
)

// RunReport summarizes one enrichment run: how many rows were read, filled
// and skipped, the filled value per token, and where the output went.
type RunReport struct {
	Rows    int
	Updated int
	Skipped int
	Total   Money          // total value written, in the quote currency
	ByToken map[string]int // rows filled per token code
	Output  string         // output location, set by the caller
}

// Markdown renders the report for terminal display.
func (r *RunReport) Markdown() string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Net Worth Update")
	doc.PlainText(fmt.Sprintf("%d rows read, %d updated, %d skipped.", r.Rows, r.Updated, r.Skipped))
	if !r.Total.IsZero() {
		doc.PlainText(fmt.Sprintf("Total value written: %s.", r.Total))
	}

	if len(r.ByToken) > 0 {
		doc.H2("Fills by token")
		codes := make([]string, 0, len(r.ByToken))
		for code := range r.ByToken {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		rows := make([][]string, 0, len(codes))
		for _, code := range codes {
			rows = append(rows, []string{code, fmt.Sprintf("%d", r.ByToken[code])})
		}
		doc.Table(md.TableSet{
			Header: []string{"Token", "Rows filled"},
			Rows:   rows,
		})
	}

	if r.Output != "" {
		doc.PlainText(fmt.Sprintf("Wrote %s.", r.Output))
	}
	return doc.String()
}

// CoverageMarkdown renders, for each configured token, the number of price
// points and the covered date range.
func CoverageMarkdown(m *Market) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Price Coverage")
	rows := make([][]string, 0)
	for _, code := range m.Tokens() {
		h, _ := m.History(code)
		if h.Len() == 0 {
			rows = append(rows, []string{code, "0", "-", "-"})
			continue
		}
		first, last := h.Bounds()
		rows = append(rows, []string{code, fmt.Sprintf("%d", h.Len()), first.String(), last.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Token", "Days", "First", "Last"},
		Rows:   rows,
	})
	return doc.String()
}
