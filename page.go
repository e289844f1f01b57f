package payview

import (
	"slices"
	"time"
)

// Timestamped is anything that occurred at an instant.
type Timestamped interface {
	Time() time.Time
}

// SortByRecency returns a copy of items sorted from the most recent to the
// oldest. Items with the same instant keep their relative order.
func SortByRecency[T Timestamped](items []T) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return b.Time().Compare(a.Time())
	})
	return sorted
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"` // 1-indexed, 0 when the list is empty
	Size       int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// First returns the 1-indexed position of the first item of the page in the
// whole list, 0 for an empty page.
func (p Page[T]) First() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Number-1)*p.Size + 1
}

// Last returns the 1-indexed position of the last item of the page in the
// whole list, 0 for an empty page.
func (p Page[T]) Last() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.First() + len(p.Items) - 1
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// Paginate returns the page number of items split in pages of size items.
//
// number is 1-indexed and silently clamped to [1, TotalPages]. An empty list
// has no page: the result is empty with Number and TotalPages set to 0.
func Paginate[T any](items []T, number, size int) (Page[T], error) {
	if size <= 0 {
		return Page[T]{}, invalidf("page size %d must be positive", size)
	}
	total := len(items)
	p := Page[T]{Items: []T{}, Size: size, TotalCount: total, TotalPages: (total + size - 1) / size}
	if total == 0 {
		return p, nil
	}
	p.Number = max(1, min(number, p.TotalPages))
	start := (p.Number - 1) * size
	end := min(start+size, total)
	p.Items = slices.Clone(items[start:end])
	return p, nil
}
