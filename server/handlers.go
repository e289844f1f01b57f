package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/etnz/payview"
	"github.com/etnz/payview/api"
	"github.com/etnz/payview/date"
	"github.com/go-chi/chi/v5"
)

var errUnauthenticated = fmt.Errorf("missing or malformed bearer token: %w", api.ErrUnauthorized)

// maxDays bounds the daily series and calendar length.
const maxDays = 366

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, _, txs, ok := s.load(w, r)
	if !ok {
		return
	}
	window, err := payview.ParseWindow(r.URL.Query().Get("range"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	filtered, err := payview.FilterByDateRange(txs, window, s.now().In(s.loc))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary, err := payview.Summarize(filtered, user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		UserID  int64           `json:"userId"`
		Range   string          `json:"range"`
		Summary payview.Summary `json:"summary"`
	}{user, window.String(), summary})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	user, _, txs, ok := s.load(w, r)
	if !ok {
		return
	}
	report, err := q.Run(txs, user, s.now().In(s.loc))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		UserID  int64                                      `json:"userId"`
		Range   string                                     `json:"range"`
		Type    string                                     `json:"type"`
		Status  string                                     `json:"status"`
		Summary payview.Summary                            `json:"summary"`
		Page    payview.Page[payview.ProcessedTransaction] `json:"page"`
	}{user, report.Query.Window.String(), report.Query.Type.String(), report.Query.Status, report.Summary, report.Page})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	user, src, txs, ok := s.load(w, r)
	if !ok {
		return
	}
	now := s.now().In(s.loc)
	processed, err := q.Processed(txs, user, now)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="transactions-%d-%s.csv"`, user, date.Of(now)))
	var names payview.PartyNamer
	if n, ok := src.(Namer); ok {
		names = n.PartyNames(r.Context())
	}
	if err := payview.ExportCSV(w, processed, names); err != nil {
		// headers are gone, only log.
		s.log.Error().Err(err).Int64("user", user).Msg("csv export failed")
	}
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", 7)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if days > maxDays {
		s.writeError(w, r, fmt.Errorf("%w: at most %d days", payview.ErrInvalidArgument, maxDays))
		return
	}
	user, _, txs, ok := s.load(w, r)
	if !ok {
		return
	}
	buckets, err := payview.DailySeries(txs, user, days, s.now().In(s.loc))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		UserID int64                 `json:"userId"`
		Days   []payview.DailyBucket `json:"days"`
		Trend  payview.Trend         `json:"trend"`
	}{user, buckets, payview.TrendOf(buckets)})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", 30)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if days > maxDays {
		s.writeError(w, r, fmt.Errorf("%w: at most %d days", payview.ErrInvalidArgument, maxDays))
		return
	}
	user, _, txs, ok := s.load(w, r)
	if !ok {
		return
	}
	cal, err := payview.ActivityCalendar(txs, days, s.now().In(s.loc))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		UserID int64              `json:"userId"`
		Days   []payview.DayCount `json:"days"`
	}{user, cal})
}

// load reads the user id of the route and fetches the user's transactions
// from the source serving r. On failure the error response is written and ok
// is false.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (user int64, src Source, txs []payview.Transaction, ok bool) {
	user, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || user <= 0 {
		s.writeError(w, r, fmt.Errorf("%w: user id %q", payview.ErrInvalidArgument, chi.URLParam(r, "id")))
		return 0, nil, nil, false
	}
	if src, err = s.sourceFor(r, user); err != nil {
		s.writeError(w, r, err)
		return 0, nil, nil, false
	}
	if txs, err = src.Transactions(r.Context(), user); err != nil {
		s.writeError(w, r, err)
		return 0, nil, nil, false
	}
	return user, src, txs, true
}

// parseQuery reads the history filters from the query string.
func parseQuery(r *http.Request) (payview.Query, error) {
	var q payview.Query
	var err error
	values := r.URL.Query()
	if q.Window, err = payview.ParseWindow(values.Get("range")); err != nil {
		return q, err
	}
	if q.Type, err = payview.ParseTypeFilter(values.Get("type")); err != nil {
		return q, err
	}
	q.Status = strings.TrimSpace(values.Get("status"))
	if q.Page, err = intParam(r, "page", 1); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(r, "size", payview.DefaultPageSize); err != nil {
		return q, err
	}
	if q.PageSize <= 0 {
		return q, fmt.Errorf("%w: page size %d must be positive", payview.ErrInvalidArgument, q.PageSize)
	}
	return q, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a non negative integer", payview.ErrInvalidArgument, name, v)
	}
	return n, nil
}

// statusOf maps an error onto the HTTP status reported to the client.
func statusOf(err error) int {
	switch {
	case errors.Is(err, payview.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	evt := s.log.Warn()
	if status >= 500 {
		evt = s.log.Error()
	}
	evt.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are gone, only log.
		s.log.Error().Err(err).Int("status", status).Msg("cannot write response")
	}
}
