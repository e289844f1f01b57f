package payview

import (
	"encoding/json"
	"strings"
	"time"
)

// StatusKind is the normalized status of a transaction.
type StatusKind int

const (
	// StatusUnknown is any stored status outside the known set. It is reported
	// distinctly and never counted as completed.
	StatusUnknown StatusKind = iota
	StatusPending
	StatusCompleted
	StatusFailed
)

func (s StatusKind) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseStatus maps a stored status onto its kind, ignoring case.
func ParseStatus(s string) StatusKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending
	case "completed":
		return StatusCompleted
	case "failed":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// Transaction is a money transfer between two users, as stored by the backend.
type Transaction struct {
	ID          int64
	SenderID    int64
	RecipientID int64
	Amount      Money
	Status      string // stored value, case as received
	Timestamp   time.Time
	Description string
}

// Time returns the instant the transaction occurred.
func (t Transaction) Time() time.Time { return t.Timestamp }

// StatusKind returns the normalized status.
func (t Transaction) StatusKind() StatusKind { return ParseStatus(t.Status) }

// Completed reports whether the transaction counts in flow totals.
func (t Transaction) Completed() bool { return t.StatusKind() == StatusCompleted }

// Involves reports whether user is the sender or the recipient.
func (t Transaction) Involves(user int64) bool { return t.SenderID == user || t.RecipientID == user }

// MarshalJSON writes the transaction with the backend field names and order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	t.appendTo(&w)
	return w.MarshalJSON()
}

func (t Transaction) appendTo(w *jsonObjectWriter) {
	w.Append("id", t.ID)
	w.Append("senderId", t.SenderID)
	w.Append("recipientId", t.RecipientID)
	w.Append("amount", t.Amount.number())
	w.Append("status", t.Status)
	w.Append("timestamp", t.Timestamp.Format(time.RFC3339Nano))
	w.Optional("description", t.Description)
}

// Direction tells how money moved from the viewing user's point of view.
type Direction int

const (
	Debit  Direction = iota + 1 // the viewing user sent the money
	Credit                      // the viewing user received the money
)

func (d Direction) String() string {
	switch d {
	case Debit:
		return "DEBIT"
	case Credit:
		return "CREDIT"
	default:
		return "UNCLASSIFIED"
	}
}

func (d Direction) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// ProcessedTransaction is a Transaction seen by a viewing user.
type ProcessedTransaction struct {
	Transaction
	Direction      Direction
	CounterpartyID int64 // the other party: recipient of a debit, sender of a credit
}

func (p ProcessedTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	p.Transaction.appendTo(&w)
	w.Append("type", p.Direction)
	w.Append("counterpartyId", p.CounterpartyID)
	return w.MarshalJSON()
}

// Classify annotates every transaction with its direction and counterparty as
// seen by viewer. Nothing is filtered out.
func Classify(txs []Transaction, viewer int64) ([]ProcessedTransaction, error) {
	if err := checkViewer(viewer); err != nil {
		return nil, err
	}
	out := make([]ProcessedTransaction, len(txs))
	for i, tx := range txs {
		out[i] = classify(tx, viewer)
	}
	return out, nil
}

func classify(tx Transaction, viewer int64) ProcessedTransaction {
	if tx.SenderID == viewer {
		return ProcessedTransaction{Transaction: tx, Direction: Debit, CounterpartyID: tx.RecipientID}
	}
	return ProcessedTransaction{Transaction: tx, Direction: Credit, CounterpartyID: tx.SenderID}
}

func checkViewer(viewer int64) error {
	if viewer <= 0 {
		return invalidf("viewing user id %d must be a positive integer", viewer)
	}
	return nil
}
