package payview

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// This file decodes the payloads of the payment backend.
//
// The same decoders read a REST payload (a JSON array, possibly wrapped in an
// object) and a local snapshot file in JSONL (one object per line). Amounts
// are read as exact decimals, never through float64.

// DecodeOptions controls how raw payloads become values.
type DecodeOptions struct {
	Currency string         // currency of every amount, DefaultCurrency when empty
	Location *time.Location // location of timestamps without offset, and of decoded timestamps; time.Local when nil
}

func (o DecodeOptions) currency() string {
	if o.Currency == "" {
		return DefaultCurrency
	}
	return o.Currency
}

func (o DecodeOptions) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// jtransaction is the transaction as found on the wire.
type jtransaction struct {
	ID          *int64       `json:"id"`
	SenderID    int64        `json:"senderId"`
	RecipientID int64        `json:"recipientId"`
	Amount      *json.Number `json:"amount"`
	Status      string       `json:"status"`
	Timestamp   string       `json:"timestamp"`
	Description string       `json:"description"`
}

// jrequest is the money request as found on the wire.
type jrequest struct {
	ID          *int64       `json:"id"`
	RequesterID int64        `json:"requesterId"`
	RecipientID int64        `json:"recipientId"`
	Amount      *json.Number `json:"amount"`
	Message     string       `json:"message"`
	Status      string       `json:"status"`
	Timestamp   string       `json:"timestamp"`
}

// DecodeTransactions reads transactions from a JSON array or from JSONL.
// An empty or null payload is an empty list.
func DecodeTransactions(r io.Reader, opts DecodeOptions) ([]Transaction, error) {
	items, err := decodeItems(r, "transactions")
	if err != nil {
		return nil, err
	}
	txs := make([]Transaction, 0, len(items))
	for _, it := range items {
		tx, err := decodeTransaction(it.raw, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", it.pos, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// DecodeRequests reads money requests from a JSON array, an object holding a
// "requests" array (the backend payload) or JSONL.
func DecodeRequests(r io.Reader, opts DecodeOptions) ([]MoneyRequest, error) {
	items, err := decodeItems(r, "requests")
	if err != nil {
		return nil, err
	}
	reqs := make([]MoneyRequest, 0, len(items))
	for _, it := range items {
		req, err := decodeRequest(it.raw, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", it.pos, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// item is a raw JSON object with its position in the payload, for error messages.
type item struct {
	pos string
	raw []byte
}

// decodeItems splits a payload into raw objects.
//
// A payload starting with '[' is a JSON array. A payload starting with '{' is
// either a single object wrapping an array under the wrapper key, or JSONL.
func decodeItems(r io.Reader, wrapper string) ([]item, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read payload: %w", err)
	}
	content = bytes.TrimSpace(content)
	if len(content) == 0 || bytes.Equal(content, []byte("null")) {
		return nil, nil
	}

	switch content[0] {
	case '[':
		return decodeArray(content)
	case '{':
		// a single object with the wrapper key holds the list.
		var jobj map[string]json.RawMessage
		if err := json.Unmarshal(content, &jobj); err == nil {
			if list, ok := jobj[wrapper]; ok {
				trimmed := bytes.TrimSpace(list)
				if bytes.Equal(trimmed, []byte("null")) {
					return nil, nil
				}
				return decodeArray(trimmed)
			}
		}
		return decodeLines(content)
	default:
		return nil, invalidf("payload must be a JSON array or JSON lines, found %q", content[0])
	}
}

func decodeArray(content []byte) ([]item, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, invalidf("not a correct JSON array: %v", err)
	}
	items := make([]item, len(list))
	for i, raw := range list {
		items[i] = item{pos: fmt.Sprintf("item %d", i), raw: raw}
	}
	return items, nil
}

func decodeLines(content []byte) ([]item, error) {
	var items []item
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		line := bytes.TrimSpace(scanner.Bytes())
		// Start simply ignoring empty lines.
		if len(line) == 0 {
			continue
		}
		items = append(items, item{pos: fmt.Sprintf("line %d", i), raw: bytes.Clone(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read lines: %w", err)
	}
	return items, nil
}

func decodeTransaction(raw []byte, opts DecodeOptions) (Transaction, error) {
	var jt jtransaction
	if err := json.Unmarshal(raw, &jt); err != nil {
		return Transaction{}, invalidf("not a correct transaction: %v", err)
	}
	if jt.ID == nil {
		return Transaction{}, invalidf("missing the property %q", "id")
	}
	amount, err := decodeAmount(jt.Amount, opts)
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction %d: %w", *jt.ID, err)
	}
	on, err := parseTimestamp(jt.Timestamp, opts.location())
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction %d: %w", *jt.ID, err)
	}
	return Transaction{
		ID:          *jt.ID,
		SenderID:    jt.SenderID,
		RecipientID: jt.RecipientID,
		Amount:      amount,
		Status:      jt.Status,
		Timestamp:   on,
		Description: jt.Description,
	}, nil
}

func decodeRequest(raw []byte, opts DecodeOptions) (MoneyRequest, error) {
	var jr jrequest
	if err := json.Unmarshal(raw, &jr); err != nil {
		return MoneyRequest{}, invalidf("not a correct money request: %v", err)
	}
	if jr.ID == nil {
		return MoneyRequest{}, invalidf("missing the property %q", "id")
	}
	amount, err := decodeAmount(jr.Amount, opts)
	if err != nil {
		return MoneyRequest{}, fmt.Errorf("request %d: %w", *jr.ID, err)
	}
	on, err := parseTimestamp(jr.Timestamp, opts.location())
	if err != nil {
		return MoneyRequest{}, fmt.Errorf("request %d: %w", *jr.ID, err)
	}
	return MoneyRequest{
		ID:          *jr.ID,
		RequesterID: jr.RequesterID,
		RecipientID: jr.RecipientID,
		Amount:      amount,
		Message:     jr.Message,
		Status:      jr.Status,
		Timestamp:   on,
	}, nil
}

// decodeAmount reads an exact, non negative amount.
func decodeAmount(n *json.Number, opts DecodeOptions) (Money, error) {
	if n == nil {
		return Money{}, invalidf("missing the property %q", "amount")
	}
	value, err := decimal.NewFromString(n.String())
	if err != nil {
		return Money{}, invalidf("amount %q is not a finite number", n.String())
	}
	if value.IsNegative() {
		return Money{}, invalidf("amount %s is negative", value)
	}
	return M(value, opts.currency()), nil
}

// zoneless timestamp layouts, as produced by a server side LocalDateTime.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTimestamp reads an ISO-8601 timestamp. Timestamps without an offset
// are read in loc; the result is always expressed in loc.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, invalidf("missing the property %q", "timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalidf("timestamp %q is not ISO-8601", s)
}

// EncodeTransactions writes transactions as JSONL, one per line, in the
// backend field order. The output can be decoded back by DecodeTransactions.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		line, err := tx.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot encode transaction %d: %w", tx.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
