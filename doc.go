// Package payview computes the analytics behind the PayClone dashboard.
//
// It works on an in-memory snapshot of a user's transactions, as returned by
// the payment backend, and derives the views the dashboard displays:
//   - Classification: each transaction seen from the viewing user is a DEBIT
//     (money sent) or a CREDIT (money received), with its counterparty.
//   - Filtering: by rolling time window, by direction and by status.
//   - Summaries: inflow, outflow, net flow and volume of completed transactions,
//     computed with exact decimal arithmetic.
//   - Time series: zero-filled daily sent/received buckets and activity counts.
//   - Pagination: stable recency ordering and clamped, 1-indexed pages.
//
// Every operation is a pure function: inputs are never mutated, nothing is
// read from a global clock (callers pass `now`), and invalid inputs are
// reported with errors wrapping ErrInvalidArgument. They are safe to call
// concurrently.
//
// The package also decodes the backend payloads (JSON arrays or JSONL files)
// and exports processed transactions as CSV. Fetching the snapshot is the job
// of the api package.
package payview
