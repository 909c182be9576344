package networth

import (
	"iter"
	"slices"
	"sort"
)

// History stores a chronological series of daily prices, each associated with
// a calendar date. It ensures that dates are unique and the series is always
// sorted.
type History struct {
	days   []Date
	prices []float64
}

// Len returns the number of points in the history.
func (h *History) Len() int { return len(h.days) }

// chronological is a private implementation to make this history chronologically sorted.
type chronological struct{ *History }

func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }

func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.prices[i], s.prices[j] = s.prices[j], s.prices[i]
}

// sort sorts the history in chronological order.
func (h *History) sort() { sort.Sort(chronological{h}) }

// Append adds a price point to the history.
//
// An existing price at that date is overwritten: when several intraday
// timestamps truncate to the same calendar date, the last one appended wins.
func (h *History) Append(on Date, price float64) *History {
	if i := slices.Index(h.days, on); i >= 0 {
		h.prices[i] = price
		return h
	}
	h.days, h.prices = append(h.days, on), append(h.prices, price)
	h.sort()
	return h
}

// Get returns the price at 'day' and true, or zero and false.
func (h *History) Get(day Date) (float64, bool) {
	if i := slices.Index(h.days, day); i >= 0 {
		return h.prices[i], true
	}
	return 0, false
}

// Values returns an iterator over all date/price pairs in the history, in
// chronological order.
func (h *History) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range h.days {
			if !yield(on, h.prices[i]) {
				return
			}
		}
	}
}

// Bounds returns the first and last covered dates. Both are zero when the
// history is empty.
func (h *History) Bounds() (first, last Date) {
	if len(h.days) == 0 {
		return Date{}, Date{}
	}
	return h.days[0], h.days[len(h.days)-1]
}
