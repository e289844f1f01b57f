package payview

import (
	"strings"
	"time"
)

// RequestStatus is the normalized status of a money request.
type RequestStatus int

const (
	RequestUnknown RequestStatus = iota
	RequestPending
	RequestApproved
	RequestRejected
)

func (s RequestStatus) String() string {
	switch s {
	case RequestPending:
		return "pending"
	case RequestApproved:
		return "approved"
	case RequestRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ParseRequestStatus maps a stored request status onto its kind, ignoring case.
func ParseRequestStatus(s string) RequestStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return RequestPending
	case "approved":
		return RequestApproved
	case "rejected":
		return RequestRejected
	default:
		return RequestUnknown
	}
}

// MoneyRequest is a request from RequesterID asking RecipientID to pay Amount.
type MoneyRequest struct {
	ID          int64
	RequesterID int64
	RecipientID int64
	Amount      Money
	Message     string
	Status      string
	Timestamp   time.Time
}

// Time returns the instant the request was made.
func (r MoneyRequest) Time() time.Time { return r.Timestamp }

// StatusKind returns the normalized status.
func (r MoneyRequest) StatusKind() RequestStatus { return ParseRequestStatus(r.Status) }

func (r MoneyRequest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("requesterId", r.RequesterID)
	w.Append("recipientId", r.RecipientID)
	w.Append("amount", r.Amount.number())
	w.Optional("message", r.Message)
	w.Append("status", r.Status)
	w.Append("timestamp", r.Timestamp.Format(time.RFC3339Nano))
	return w.MarshalJSON()
}

// SplitRequests separates the requests viewer has to answer (incoming) from
// the ones viewer made (outgoing), each sorted by recency. Requests that do
// not involve viewer are dropped.
func SplitRequests(reqs []MoneyRequest, viewer int64) (incoming, outgoing []MoneyRequest, err error) {
	if err := checkViewer(viewer); err != nil {
		return nil, nil, err
	}
	incoming, outgoing = []MoneyRequest{}, []MoneyRequest{}
	for _, r := range reqs {
		switch viewer {
		case r.RecipientID:
			incoming = append(incoming, r)
		case r.RequesterID:
			outgoing = append(outgoing, r)
		}
	}
	return SortByRecency(incoming), SortByRecency(outgoing), nil
}

// PendingIncoming counts the pending requests viewer has to answer.
func PendingIncoming(reqs []MoneyRequest, viewer int64) int {
	n := 0
	for _, r := range reqs {
		if r.RecipientID == viewer && r.StatusKind() == RequestPending {
			n++
		}
	}
	return n
}
