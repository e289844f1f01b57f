package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/etnz/payview"
	"github.com/etnz/payview/api"
	"github.com/etnz/payview/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr    string
	origins string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the aggregates over HTTP" }
func (*serveCmd) Usage() string {
	return `pvw serve [-addr <host:port>] [-origins <list>]

  Starts an HTTP server exposing the summary, history, export, daily series
  and calendar of any user:

    GET /api/users/{id}/summary?range=week
    GET /api/users/{id}/transactions?range=&type=&status=&page=&size=
    GET /api/users/{id}/transactions.csv
    GET /api/users/{id}/daily?days=7
    GET /api/users/{id}/calendar?days=30

  Transactions come from -file, or from the PayClone API. A bearer token in a
  request is forwarded to the API. Without one, only the logged in user can be
  read, with the saved session, and cross-origin requests are refused unless
  -origins names them.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listen address, defaults to :$PAYVIEW_PORT (localhost only when serving the logged in user)")
	f.StringVar(&c.origins, "origins", "", "comma separated CORS allowed origins")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cfg, err := c.config(a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	srv := server.New(cfg)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Msg("server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			a.log.Error().Err(err).Msg("server forced to shutdown")
			return subcommands.ExitFailure
		}
	}
	a.log.Info().Msg("server exited")
	return subcommands.ExitSuccess
}

// config returns the server configuration: the -file transactions, or the
// API with the saved session for the logged in user.
func (c *serveCmd) config(a *app) (server.Config, error) {
	cfg := server.Config{
		Log:      a.log,
		Location: a.loc,
	}
	if c.origins != "" {
		cfg.Origins = strings.Split(c.origins, ",")
	}
	if *dataFile != "" {
		txs, err := a.decodeFile(*dataFile)
		if err != nil {
			return cfg, err
		}
		cfg.Source = fileSource(txs)
	} else {
		client := a.client
		if session := client.Session(); session != nil && session.Token != "" && a.viewer > 0 {
			// requests without a token read the logged in user only.
			cfg.Source, cfg.Owner = client, a.viewer
		}
		cfg.ForToken = func(token string) server.Source {
			return client.WithSession(&api.Session{Token: token})
		}
	}
	cfg.Addr = c.addr
	if cfg.Addr == "" {
		cfg.Addr = a.cfg.Addr()
		if cfg.Owner > 0 {
			cfg.Addr = "localhost" + cfg.Addr
		}
	}
	return cfg, nil
}

// fileSource serves transactions read once from a file.
type fileSource []payview.Transaction

func (s fileSource) Transactions(ctx context.Context, user int64) ([]payview.Transaction, error) {
	var txs []payview.Transaction
	for _, tx := range s {
		if tx.Involves(user) {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}
