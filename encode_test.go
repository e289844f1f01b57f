package payview

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

var utc = DecodeOptions{Location: time.UTC}

func TestDecodeTransactions(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    []int64
	}{
		{"array", `[{"id":1,"senderId":5,"recipientId":7,"amount":100,"status":"COMPLETED","timestamp":"2025-03-29T15:00:00Z"},
			{"id":2,"senderId":7,"recipientId":5,"amount":"40.5","status":"PENDING","timestamp":"2025-03-30T15:00:00Z"}]`, []int64{1, 2}},
		{"wrapped", `{"transactions":[{"id":3,"senderId":5,"recipientId":7,"amount":1,"status":"FAILED","timestamp":"2025-03-29T15:00:00Z"}]}`, []int64{3}},
		{"jsonl", `{"id":4,"senderId":5,"recipientId":7,"amount":1,"status":"COMPLETED","timestamp":"2025-03-29T15:00:00Z"}

{"id":5,"senderId":5,"recipientId":7,"amount":2,"status":"COMPLETED","timestamp":"2025-03-29T16:00:00Z"}
`, []int64{4, 5}},
		{"empty", "", nil},
		{"null", " null\n", nil},
		{"empty array", "[]", nil},
		{"null wrapped", `{"transactions":null}`, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeTransactions(strings.NewReader(tc.payload), utc)
			if err != nil {
				t.Fatalf("DecodeTransactions() error = %v", err)
			}
			if !slices.Equal(txIDs(got), tc.want) {
				t.Errorf("DecodeTransactions() = %v, want %v", txIDs(got), tc.want)
			}
		})
	}
}

func TestDecodeTransactions_Values(t *testing.T) {
	payload := `[{"id":2,"senderId":7,"recipientId":5,"amount":40.10,"status":"PENDING","timestamp":"2025-03-30T20:00:00+05:30","description":"rent"}]`
	got, err := DecodeTransactions(strings.NewReader(payload), DecodeOptions{Currency: "EUR", Location: time.UTC})
	if err != nil {
		t.Fatal(err)
	}
	tx := got[0]
	if tx.SenderID != 7 || tx.RecipientID != 5 || tx.Status != "PENDING" || tx.Description != "rent" {
		t.Errorf("DecodeTransactions() = %+v", tx)
	}
	if !tx.Amount.Equal(M(40.1, "EUR")) {
		t.Errorf("DecodeTransactions() amount = %v %s", tx.Amount.Decimal(), tx.Amount.Currency())
	}
	if want := time.Date(2025, time.March, 30, 14, 30, 0, 0, time.UTC); !tx.Timestamp.Equal(want) || tx.Timestamp.Location() != time.UTC {
		t.Errorf("DecodeTransactions() timestamp = %v, want %v", tx.Timestamp, want)
	}
}

// TestDecodeTransactions_Zoneless checks that timestamps without offset are read in the configured location.
func TestDecodeTransactions_Zoneless(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	for _, ts := range []string{"2025-03-31T01:30:00", "2025-03-31T01:30:00.000", "2025-03-31 01:30:00", "2025-03-31T01:30"} {
		payload := `[{"id":1,"senderId":7,"recipientId":5,"amount":1,"status":"COMPLETED","timestamp":"` + ts + `"}]`
		got, err := DecodeTransactions(strings.NewReader(payload), DecodeOptions{Location: ist})
		if err != nil {
			t.Fatalf("DecodeTransactions(%q) error = %v", ts, err)
		}
		if want := time.Date(2025, time.March, 30, 20, 0, 0, 0, time.UTC); !got[0].Timestamp.Equal(want) {
			t.Errorf("DecodeTransactions(%q) = %v, want %v", ts, got[0].Timestamp, want)
		}
	}
}

func TestDecodeTransactions_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"not json", `"hello"`, "JSON array"},
		{"broken array", `[{"id":1}`, "JSON array"},
		{"missing id", `[{"amount":1,"timestamp":"2025-03-29T15:00:00Z"}]`, "item 0"},
		{"missing amount", `[{"id":1,"timestamp":"2025-03-29T15:00:00Z"}]`, "amount"},
		{"negative amount", `[{"id":1,"amount":-4,"timestamp":"2025-03-29T15:00:00Z"}]`, "negative"},
		{"bad timestamp", `[{"id":1,"amount":4,"timestamp":"yesterday"}]`, "ISO-8601"},
		{"bad line", "{\"id\":1,\"amount\":1,\"timestamp\":\"2025-03-29T15:00:00Z\"}\n{\"id\":2,", "line 2"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeTransactions(strings.NewReader(tc.payload), utc)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("DecodeTransactions() error = %v, want ErrInvalidArgument", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("DecodeTransactions() error = %q, want it to mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestEncodeTransactions_RoundTrip(t *testing.T) {
	want := fixture()
	want[0].Description = "groceries"
	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeTransactions(&buf, utc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("round trip returned %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.SenderID != w.SenderID || g.RecipientID != w.RecipientID || g.Status != w.Status || g.Description != w.Description {
			t.Errorf("round trip %d = %+v, want %+v", i, g, w)
		}
		if !g.Amount.Equal(w.Amount) || !g.Timestamp.Equal(w.Timestamp) {
			t.Errorf("round trip %d = %v at %v, want %v at %v", i, g.Amount.Decimal(), g.Timestamp, w.Amount.Decimal(), w.Timestamp)
		}
	}
}

func TestDecodeRequests(t *testing.T) {
	payload := `{"requests":[
		{"id":10,"requesterId":7,"recipientId":5,"amount":250,"message":"movie","status":"PENDING","timestamp":"2025-03-30T10:00:00"},
		{"id":11,"requesterId":5,"recipientId":9,"amount":12.5,"status":"REJECTED","timestamp":"2025-03-29T10:00:00"}]}`
	got, err := DecodeRequests(strings.NewReader(payload), utc)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(requestIDs(got), []int64{10, 11}) {
		t.Fatalf("DecodeRequests() = %v", requestIDs(got))
	}
	if got[0].Message != "movie" || got[0].StatusKind() != RequestPending || !got[0].Amount.Equal(inr("250")) {
		t.Errorf("DecodeRequests()[0] = %+v", got[0])
	}
	if got[1].StatusKind() != RequestRejected {
		t.Errorf("DecodeRequests()[1] status = %v", got[1].StatusKind())
	}
}
