package networth

import (
	"testing"
	"time"
)

func TestHistoryAppendKeepsChronologicalOrder(t *testing.T) {
	h := new(History)
	h.Append(NewDate(2024, time.January, 3), 3).
		Append(NewDate(2024, time.January, 1), 1).
		Append(NewDate(2024, time.January, 2), 2)

	var days []Date
	for day := range h.Values() {
		days = append(days, day)
	}
	for i := 1; i < len(days); i++ {
		if !days[i-1].Before(days[i]) {
			t.Fatalf("history not chronological: %v", days)
		}
	}
}

func TestHistoryAppendLastWins(t *testing.T) {
	// Several intraday entries on the same calendar date: the last appended
	// price replaces the previous one.
	h := new(History)
	day := NewDate(2024, time.March, 5)
	h.Append(day, 1.5)
	h.Append(day, 2.5)

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if price, ok := h.Get(day); !ok || price != 2.5 {
		t.Errorf("Get() = %v, %v, want 2.5, true", price, ok)
	}
}

func TestHistoryGetMissing(t *testing.T) {
	h := new(History)
	h.Append(NewDate(2024, time.March, 5), 1.5)
	if _, ok := h.Get(NewDate(2024, time.March, 6)); ok {
		t.Error("Get() found a price for an uncovered date")
	}
}

func TestHistoryBounds(t *testing.T) {
	h := new(History)
	if first, last := h.Bounds(); !first.IsZero() || !last.IsZero() {
		t.Errorf("empty Bounds() = %v, %v", first, last)
	}
	h.Append(NewDate(2024, time.February, 1), 1)
	h.Append(NewDate(2024, time.January, 1), 1)
	h.Append(NewDate(2024, time.March, 1), 1)
	first, last := h.Bounds()
	if first != NewDate(2024, time.January, 1) || last != NewDate(2024, time.March, 1) {
		t.Errorf("Bounds() = %v, %v", first, last)
	}
}
