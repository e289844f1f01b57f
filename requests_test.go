package payview

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newRequest(id, from, to int64, status string, on time.Time) MoneyRequest {
	return MoneyRequest{
		ID:          id,
		RequesterID: from,
		RecipientID: to,
		Amount:      M(decimal.NewFromInt(id), DefaultCurrency),
		Status:      status,
		Timestamp:   on,
	}
}

func requestIDs(reqs []MoneyRequest) []int64 {
	out := make([]int64, len(reqs))
	for i, r := range reqs {
		out[i] = r.ID
	}
	return out
}

func TestSplitRequests(t *testing.T) {
	reqs := []MoneyRequest{
		newRequest(1, 7, 5, "PENDING", T0.Add(-3*time.Hour)),
		newRequest(2, 5, 9, "PENDING", T0.Add(-2*time.Hour)),
		newRequest(3, 9, 5, "APPROVED", T0.Add(-1*time.Hour)),
		newRequest(4, 7, 9, "PENDING", T0),
		newRequest(5, 9, 5, "pending", T0.Add(-4*time.Hour)),
	}
	incoming, outgoing, err := SplitRequests(reqs, viewer)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(requestIDs(incoming), []int64{3, 1, 5}) {
		t.Errorf("SplitRequests() incoming = %v, want [3 1 5]", requestIDs(incoming))
	}
	if !slices.Equal(requestIDs(outgoing), []int64{2}) {
		t.Errorf("SplitRequests() outgoing = %v, want [2]", requestIDs(outgoing))
	}
	if got := PendingIncoming(reqs, viewer); got != 2 {
		t.Errorf("PendingIncoming() = %d, want 2", got)
	}

	if _, _, err := SplitRequests(reqs, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SplitRequests(viewer=0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseRequestStatus(t *testing.T) {
	testCases := []struct {
		in   string
		want RequestStatus
	}{
		{"PENDING", RequestPending},
		{"approved", RequestApproved},
		{" Rejected ", RequestRejected},
		{"cancelled", RequestUnknown},
		{"", RequestUnknown},
	}
	for _, tc := range testCases {
		if got := ParseRequestStatus(tc.in); got != tc.want {
			t.Errorf("ParseRequestStatus(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
