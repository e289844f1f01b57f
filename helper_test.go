package payview

import (
	"time"

	"github.com/shopspring/decimal"
)

// viewer is the user looking at the dashboard in most tests.
const viewer int64 = 5

// T0 is the reference instant of the fixtures, a Monday afternoon.
var T0 = time.Date(2025, time.March, 31, 15, 0, 0, 0, time.UTC)

// newTx builds a transaction; amount is a decimal literal.
func newTx(id, from, to int64, amount, status string, on time.Time) Transaction {
	return Transaction{
		ID:          id,
		SenderID:    from,
		RecipientID: to,
		Amount:      M(decimal.RequireFromString(amount), DefaultCurrency),
		Status:      status,
		Timestamp:   on,
	}
}

// inr is a shortcut for an amount in the default currency.
func inr(amount string) Money { return M(decimal.RequireFromString(amount), DefaultCurrency) }

// fixture is a small history of user 5 with users 7 and 9.
func fixture() []Transaction {
	return []Transaction{
		newTx(1, 5, 7, "100", "completed", T0.Add(-48*time.Hour)),
		newTx(2, 7, 5, "40", "completed", T0.Add(-24*time.Hour)),
		newTx(3, 5, 9, "15.50", "PENDING", T0.Add(-2*time.Hour)),
		newTx(4, 9, 5, "0.10", "COMPLETED", T0.Add(-1*time.Hour)),
		newTx(5, 5, 7, "0.20", "failed", T0.Add(-40*24*time.Hour)),
		newTx(6, 9, 5, "12", "reversed", T0.Add(-400*24*time.Hour)),
	}
}

func txIDs(txs []Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func processedIDs(txs []ProcessedTransaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}
