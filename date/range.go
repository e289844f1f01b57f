package date

import "iter"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// LastDays returns the range of the n days ending on end (included).
//
// A range of zero days is empty: it contains no date and Days yields nothing.
func LastDays(end Date, n int) Range {
	return Range{From: end.Add(1 - n), To: end}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Len returns the number of days in the range.
func (r Range) Len() int {
	if r.From.After(r.To) {
		return 0
	}
	return int(r.To.time().Sub(r.From.time())/Day) + 1
}

// Days returns an iterator over every day of the range, oldest first.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}
