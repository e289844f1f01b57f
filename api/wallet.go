package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/payview"
	"github.com/shopspring/decimal"
)

// The wallet and notification payloads carry more than we need and change
// shape across backend versions; single values are picked with JSONPath.

// Balance returns the wallet balance of user.
func (c *Client) Balance(ctx context.Context, user int64) (payview.Money, error) {
	jval, err := c.pick(ctx, fmt.Sprintf("/wallets/user/%d", user), "$.balance")
	if err != nil {
		return payview.Money{}, fmt.Errorf("cannot get wallet of user %d: %w", user, err)
	}
	var value decimal.Decimal
	switch v := jval.(type) {
	case json.Number:
		value, err = decimal.NewFromString(v.String())
	case string:
		value, err = decimal.NewFromString(v)
	default:
		err = fmt.Errorf("balance is %T", jval)
	}
	if err != nil {
		return payview.Money{}, fmt.Errorf("cannot read wallet of user %d: %w", user, err)
	}
	cur := c.decode.Currency
	if cur == "" {
		cur = payview.DefaultCurrency
	}
	return payview.M(value, cur), nil
}

// UnreadCount returns the number of unread notifications of user.
func (c *Client) UnreadCount(ctx context.Context, user int64) (int, error) {
	jval, err := c.pick(ctx, fmt.Sprintf("/notifications/user/%d/unread-count", user), "$.unreadCount")
	if err != nil {
		return 0, fmt.Errorf("cannot get unread notifications of user %d: %w", user, err)
	}
	n, ok := jval.(json.Number)
	if !ok {
		return 0, fmt.Errorf("unread count of user %d is %T", user, jval)
	}
	count, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("unread count of user %d: %w", user, err)
	}
	return int(count), nil
}

// pick GETs path and evaluates the JSONPath expression on the response.
// Numbers are kept as json.Number.
func (c *Client) pick(ctx context.Context, path, expr string) (any, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var jobj any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid response from %s: %w", path, err)
	}
	jval, err := jsonpath.Get(expr, jobj)
	if err != nil {
		return nil, fmt.Errorf("no %s in response from %s: %w", expr, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}
