package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/payview"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "t0k3n"

// backend is a fake PayClone API.
func backend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+token {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
				http.Error(w, "missing request id", http.StatusBadRequest)
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in["password"] != "secret" {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"token":"` + token + `","id":5,"name":"Asha Rao"}`))
	})
	mux.HandleFunc("GET /api/transactions/user/5", auth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"senderId":5,"recipientId":7,"amount":100.25,"status":"COMPLETED","timestamp":"2025-03-29T15:00:00"},
			{"id":2,"senderId":7,"recipientId":5,"amount":40,"status":"PENDING","timestamp":"2025-03-30T15:00:00","description":"tea"}
		]`))
	}))
	mux.HandleFunc("GET /api/transactions/user/6", auth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	mux.HandleFunc("GET /api/requests/user/5", auth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"requests":[{"id":9,"requesterId":7,"recipientId":5,"amount":12,"message":"lunch","status":"PENDING","timestamp":"2025-03-30T12:00:00"}]}`))
	}))
	mux.HandleFunc("GET /api/wallets/user/5", auth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":3,"userId":5,"balance":1520.75,"updatedAt":"2025-03-30T12:00:00"}`))
	}))
	mux.HandleFunc("GET /api/notifications/user/5/unread-count", auth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unreadCount":4}`))
	}))
	mux.HandleFunc("GET /api/users/7", auth(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":7,"firstName":"Ravi","lastName":"Kumar","email":"ravi@example.com"}`))
	}))
	mux.HandleFunc("GET /api/users/500", auth(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server, s *Session) *Client {
	t.Helper()
	c, err := New(srv.URL+"/api/", s, WithLocation(time.UTC), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return c
}

func session() *Session { return &Session{Token: token, UserID: 5} }

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("localhost:8080", nil)
	assert.Error(t, err)
	_, err = New("/api", nil)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	srv := backend(t)
	c := newClient(t, srv, nil)

	_, err := c.Login(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, c.Session())

	s, err := c.Login(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, &Session{Token: token, UserID: 5, Name: "Asha Rao"}, s)
	assert.Same(t, s, c.Session())

	// the session is now used.
	_, err = c.Transactions(context.Background(), 5)
	assert.NoError(t, err)
}

func TestTransactions(t *testing.T) {
	srv := backend(t)
	c := newClient(t, srv, session())

	txs, err := c.Transactions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.EqualValues(t, 1, txs[0].ID)
	assert.True(t, txs[0].Amount.Equal(payview.M(decimal.RequireFromString("100.25"), "INR")))
	assert.Equal(t, time.Date(2025, time.March, 29, 15, 0, 0, 0, time.UTC), txs[0].Timestamp)
	assert.Equal(t, "tea", txs[1].Description)

	empty, err := c.Transactions(context.Background(), 6)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUnauthorized(t *testing.T) {
	srv := backend(t)
	c := newClient(t, srv, &Session{Token: "expired", UserID: 5})
	_, err := c.Transactions(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNotFound(t *testing.T) {
	srv := backend(t)
	c := newClient(t, srv, session())
	_, err := c.Balance(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServerError(t *testing.T) {
	srv := backend(t)
	c := newClient(t, srv, session())
	_, err := c.User(context.Background(), 500)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestBalanceAndUnread(t *testing.T) {
	srv := backend(t)
	c := newClient(t, srv, session())

	balance, err := c.Balance(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "1520.75", balance.Fixed())
	assert.Equal(t, "INR", balance.Currency())

	n, err := c.UnreadCount(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRequests(t *testing.T) {
	srv := backend(t)
	c := newClient(t, srv, session())

	reqs, err := c.Requests(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "lunch", reqs[0].Message)
	assert.Equal(t, payview.RequestPending, reqs[0].StatusKind())
}

func TestPartyNames(t *testing.T) {
	srv := backend(t)
	c := newClient(t, srv, session())
	names := c.PartyNames(context.Background())
	assert.Equal(t, "Ravi Kumar", names(7))
	assert.Equal(t, "User #500", names(500))
}

func TestWithSession(t *testing.T) {
	srv := backend(t)
	anonymous := newClient(t, srv, nil)
	c := anonymous.WithSession(session())
	assert.Nil(t, anonymous.Session())
	_, err := c.Transactions(context.Background(), 5)
	assert.NoError(t, err)
}

func TestLogging(t *testing.T) {
	srv := backend(t)
	var buf bytes.Buffer
	c, err := New(srv.URL+"/api", session(), WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)
	_, err = c.UnreadCount(context.Background(), 5)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/notifications/user/5/unread-count", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payview", "session.json")

	_, err := LoadSession(path)
	assert.ErrorIs(t, err, ErrNoSession)

	assert.Error(t, SaveSession(path, &Session{}))
	require.NoError(t, SaveSession(path, &Session{Token: token, UserID: 5, Name: "Asha"}))
	s, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, &Session{Token: token, UserID: 5, Name: "Asha"}, s)

	require.NoError(t, DeleteSession(path))
	require.NoError(t, DeleteSession(path))
	_, err = LoadSession(path)
	assert.ErrorIs(t, err, ErrNoSession)
}
