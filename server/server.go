// Package server exposes the payview aggregates over HTTP, as a backend for
// dashboards that should not compute them in the browser.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/payview"
	"github.com/etnz/payview/api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Source provides the transactions of a user.
type Source interface {
	Transactions(ctx context.Context, user int64) ([]payview.Transaction, error)
}

// Namer is implemented by sources that know account names, like *api.Client.
type Namer interface {
	PartyNames(ctx context.Context) payview.PartyNamer
}

// Config holds server configuration
type Config struct {
	Addr   string
	Log    zerolog.Logger
	Source Source // used for requests without a bearer token
	// Owner, when positive, is the only user Source serves. Other users
	// need a bearer token.
	Owner int64
	// ForToken returns the Source acting on behalf of the bearer token of a
	// request. Tokens are rejected when nil.
	ForToken func(token string) Source
	Now      func() time.Time // time.Now when nil
	Location *time.Location   // calendar days location, time.Local when nil
	// CORS allowed origins. When empty, any origin is allowed if there is no
	// Source, none otherwise.
	Origins []string
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	source   Source
	owner    int64
	forToken func(string) Source
	now      func() time.Time
	loc      *time.Location
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		source:   cfg.Source,
		owner:    cfg.Owner,
		forToken: cfg.ForToken,
		now:      cfg.Now,
		loc:      cfg.Location,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}

	s.setupMiddleware(cfg.Origins)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))

	if len(origins) == 0 {
		if s.source != nil {
			// anonymous requests use the server's own credentials.
			return
		}
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/users/{id}", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/transactions", s.handleTransactions)
		r.Get("/transactions.csv", s.handleExport)
		r.Get("/daily", s.handleDaily)
		r.Get("/calendar", s.handleCalendar)
	})
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// sourceFor returns the source serving the transactions of user for r.
func (s *Server) sourceFor(r *http.Request, user int64) (Source, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		if s.source == nil {
			return nil, errUnauthenticated
		}
		if s.owner > 0 && user != s.owner {
			return nil, fmt.Errorf("user %d needs a bearer token: %w", user, api.ErrUnauthorized)
		}
		return s.source, nil
	}
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" || s.forToken == nil {
		return nil, errUnauthenticated
	}
	return s.forToken(token), nil
}
