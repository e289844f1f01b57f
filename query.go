package payview

import (
	"time"

	"github.com/etnz/payview/date"
)

// DefaultPageSize is the number of transactions shown per page by the dashboard.
const DefaultPageSize = 15

// Query is the set of filters of the transaction history view.
type Query struct {
	Window   date.Window
	Type     TypeFilter
	Status   string // "all" or a stored status, see FilterByStatus
	Page     int    // 1-indexed
	PageSize int    // DefaultPageSize when zero
}

// Report is the outcome of a Query.
type Report struct {
	Query   Query
	Summary Summary // flows of every filtered transaction, not only the page
	Page    Page[ProcessedTransaction]
}

// Run filters txs by window, type and status, classifies what remains for
// viewer, sorts it by recency and returns the requested page together with
// the summary of the whole filtered set.
func (q Query) Run(txs []Transaction, viewer int64, now time.Time) (Report, error) {
	if q.Status == "" {
		q.Status = AllStatuses
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page == 0 {
		q.Page = 1
	}

	filtered, err := FilterByType(txs, viewer, q.Type)
	if err != nil {
		return Report{}, err
	}
	if filtered, err = FilterByStatus(filtered, q.Status); err != nil {
		return Report{}, err
	}
	if filtered, err = FilterByDateRange(filtered, q.Window, now); err != nil {
		return Report{}, err
	}

	summary, err := Summarize(filtered, viewer)
	if err != nil {
		return Report{}, err
	}
	processed, err := Classify(filtered, viewer)
	if err != nil {
		return Report{}, err
	}
	page, err := Paginate(SortByRecency(processed), q.Page, q.PageSize)
	if err != nil {
		return Report{}, err
	}
	return Report{Query: q, Summary: summary, Page: page}, nil
}

// Processed returns every filtered transaction of txs classified for viewer
// and sorted by recency, ignoring pagination. It is what gets exported.
func (q Query) Processed(txs []Transaction, viewer int64, now time.Time) ([]ProcessedTransaction, error) {
	q.Page, q.PageSize = 1, max(1, len(txs))
	r, err := q.Run(txs, viewer, now)
	if err != nil {
		return nil, err
	}
	return r.Page.Items, nil
}
