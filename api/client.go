// Package api is a client of the PayClone REST backend.
//
// Every call carries the session's bearer token and a fresh X-Request-ID so
// that backend logs can be matched with the client's.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/payview"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrNoSession    = errors.New("no session, please login first")
)

// Client talks to the PayClone backend on behalf of one session.
type Client struct {
	base    *url.URL
	http    *http.Client
	session *Session
	log     zerolog.Logger
	decode  payview.DecodeOptions
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger of requests, silent by default.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// WithCurrency sets the currency of every amount read, payview.DefaultCurrency by default.
func WithCurrency(cur string) Option { return func(c *Client) { c.decode.Currency = cur } }

// WithLocation sets the location of timestamps read, time.Local by default.
func WithLocation(loc *time.Location) Option { return func(c *Client) { c.decode.Location = loc } }

// New returns a client of the API at baseURL, e.g. "http://localhost:8080/api".
// session may be nil until Login.
func New(baseURL string, session *Session, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q: scheme and host are required", baseURL)
	}
	c := &Client{
		base:    base,
		http:    http.DefaultClient,
		session: session,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session returns the client's session, nil before Login.
func (c *Client) Session() *Session { return c.session }

// WithSession returns a copy of c acting on behalf of s.
func (c *Client) WithSession(s *Session) *Client {
	cp := *c
	cp.session = s
	return &cp
}

// Login authenticates with the backend and keeps the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	in := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
		ID    int64  `json:"id"`
		Name  string `json:"name"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/users/login", in, &out); err != nil {
		return nil, fmt.Errorf("cannot login as %q: %w", email, err)
	}
	s := &Session{Token: out.Token, UserID: out.ID, Name: out.Name}
	if !s.Valid() {
		return nil, fmt.Errorf("cannot login as %q: the backend returned an incomplete session", email)
	}
	c.session = s
	return s, nil
}

// Transactions returns every transaction involving user.
func (c *Client) Transactions(ctx context.Context, user int64) ([]payview.Transaction, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/user/%d", user), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot get transactions of user %d: %w", user, err)
	}
	txs, err := payview.DecodeTransactions(bytes.NewReader(body), c.decode)
	if err != nil {
		return nil, fmt.Errorf("cannot read transactions of user %d: %w", user, err)
	}
	return txs, nil
}

// Requests returns the money requests involving user.
func (c *Client) Requests(ctx context.Context, user int64) ([]payview.MoneyRequest, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/requests/user/%d", user), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot get requests of user %d: %w", user, err)
	}
	reqs, err := payview.DecodeRequests(bytes.NewReader(body), c.decode)
	if err != nil {
		return nil, fmt.Errorf("cannot read requests of user %d: %w", user, err)
	}
	return reqs, nil
}

// User is a PayClone account.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FullName returns the display name of the user.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// User returns the account id.
func (c *Client) User(ctx context.Context, id int64) (User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		return User{}, fmt.Errorf("cannot get user %d: %w", id, err)
	}
	return u, nil
}

// PartyNames returns a namer that looks users up once each. Users that
// cannot be fetched are named by payview.DefaultPartyName.
func (c *Client) PartyNames(ctx context.Context) payview.PartyNamer {
	cache := make(map[int64]string)
	return func(id int64) string {
		if name, ok := cache[id]; ok {
			return name
		}
		name := payview.DefaultPartyName(id)
		if u, err := c.User(ctx, id); err == nil && u.FullName() != "" {
			name = u.FullName()
		} else if err != nil {
			c.log.Debug().Err(err).Int64("user", id).Msg("party name fallback")
		}
		cache[id] = name
		return name
	}
}

// doJSON performs a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid response from %s %s: %w", method, path, err)
	}
	return nil
}

// do performs a request and returns the body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		content, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(content)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("request_id", requestID).Str("method", method).Str("path", path).Msg("request failed")
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response of %s %s: %w", method, path, err)
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(body))
	}
	return body, nil
}
