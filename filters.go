package payview

import (
	"slices"
	"strings"
	"time"

	"github.com/etnz/payview/date"
)

// ParseWindow parses a rolling window name (all, today, week, month, quarter,
// threeMonths, year).
func ParseWindow(s string) (date.Window, error) {
	w, err := date.ParseWindow(s)
	if err != nil {
		return w, invalidf("%v", err)
	}
	return w, nil
}

// FilterByDateRange keeps the transactions that occurred at or after the
// window's cutoff relative to now. The All window keeps everything.
func FilterByDateRange(txs []Transaction, w date.Window, now time.Time) ([]Transaction, error) {
	if !w.Valid() {
		return nil, invalidf("unknown window %v", w)
	}
	cutoff, ok := w.Cutoff(now)
	if !ok {
		return slices.Clone(txs), nil
	}
	return keep(txs, func(tx Transaction) bool { return !tx.Timestamp.Before(cutoff) }), nil
}

// TypeFilter selects transactions by direction.
type TypeFilter int

const (
	AllTypes TypeFilter = iota
	DebitOnly
	CreditOnly
)

func (f TypeFilter) String() string {
	switch f {
	case AllTypes:
		return "all"
	case DebitOnly:
		return "debit"
	case CreditOnly:
		return "credit"
	default:
		return "unknown"
	}
}

// ParseTypeFilter parses "all", "debit" or "credit", ignoring case.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return AllTypes, nil
	case "debit":
		return DebitOnly, nil
	case "credit":
		return CreditOnly, nil
	default:
		return AllTypes, invalidf("unknown transaction type %q", s)
	}
}

// FilterByType keeps debits (sent by viewer) or credits (everything else).
func FilterByType(txs []Transaction, viewer int64, f TypeFilter) ([]Transaction, error) {
	switch f {
	case AllTypes:
		return slices.Clone(txs), nil
	case DebitOnly, CreditOnly:
	default:
		return nil, invalidf("unknown transaction type %v", int(f))
	}
	if err := checkViewer(viewer); err != nil {
		return nil, err
	}
	debit := f == DebitOnly
	return keep(txs, func(tx Transaction) bool { return (tx.SenderID == viewer) == debit }), nil
}

// AllStatuses is the status filter that keeps everything.
const AllStatuses = "all"

// FilterByStatus keeps the transactions whose stored status is exactly status.
//
// status must be "all" or name a known status (pending, completed, failed);
// the comparison itself is case-sensitive, so "COMPLETED" only keeps records
// stored as "COMPLETED".
func FilterByStatus(txs []Transaction, status string) ([]Transaction, error) {
	if status == AllStatuses {
		return slices.Clone(txs), nil
	}
	if ParseStatus(status) == StatusUnknown {
		return nil, invalidf("unknown status %q", status)
	}
	return keep(txs, func(tx Transaction) bool { return tx.Status == status }), nil
}

// keep returns a new slice with the transactions accepted by f.
func keep(txs []Transaction, f func(Transaction) bool) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f(tx) {
			out = append(out, tx)
		}
	}
	return out
}
