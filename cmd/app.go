// Package cmd implements the CLI application to review PayClone payments.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/payview"
	"github.com/etnz/payview/api"
	"github.com/etnz/payview/config"
	"github.com/etnz/payview/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists every subcommand with its group.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
var Commands = []struct {
	Group   string
	Command subcommands.Command
}{
	{"session", &loginCmd{}},
	{"session", &logoutCmd{}},
	{"reports", &summaryCmd{}},
	{"reports", &transactionsCmd{}},
	{"reports", &dailyCmd{}},
	{"reports", &requestsCmd{}},
	{"reports", &insightCmd{}},
	{"files", &exportCmd{}},
	{"files", &chartCmd{}},
	{"server", &serveCmd{}},
	{"help", &topicCmd{}},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, e := range Commands {
		c.Register(e.Command, e.Group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	apiURL   = flag.String("api", "", "Base URL of the PayClone API. Defaults to $PAYVIEW_API_URL.")
	dataFile = flag.String("file", "", "Read transactions from a JSON or JSONL file instead of the API.")
	userID   = flag.Int64("user", 0, "Viewing user id. Defaults to $PAYVIEW_USER_ID or the logged in user.")
	token    = flag.String("token", "", "Bearer token. Defaults to $PAYVIEW_TOKEN or the logged in session.")
)

// app is what every command needs, resolved from the configuration, the
// global flags and the saved session.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	loc    *time.Location
	client *api.Client
	viewer int64
}

// newApp resolves the configuration. The viewer is required only when needViewer.
func newApp(needViewer bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg: cfg,
		log: logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty}),
		loc: loc,
	}

	session := &api.Session{Token: cfg.Token, UserID: cfg.UserID}
	if saved, err := api.LoadSession(cfg.SessionFile); err == nil {
		if session.Token == "" {
			session.Token = saved.Token
		}
		if session.UserID == 0 {
			session.UserID = saved.UserID
		}
		session.Name = saved.Name
	} else if !errors.Is(err, api.ErrNoSession) {
		a.log.Warn().Err(err).Msg("ignoring session file")
	}
	if *token != "" {
		session.Token = *token
	}
	if *userID != 0 {
		session.UserID = *userID
	}
	a.viewer = session.UserID

	a.client, err = api.New(cfg.APIURL, session,
		api.WithLogger(a.log),
		api.WithCurrency(cfg.Currency),
		api.WithLocation(loc),
	)
	if err != nil {
		return nil, err
	}
	if needViewer && a.viewer <= 0 {
		return nil, fmt.Errorf("unknown viewing user: use -user, $PAYVIEW_USER_ID or 'pvw login'")
	}
	return a, nil
}

// now returns the current time in the configured location.
func (a *app) now() time.Time { return time.Now().In(a.loc) }

func (a *app) decodeOptions() payview.DecodeOptions {
	return payview.DecodeOptions{Currency: a.cfg.Currency, Location: a.loc}
}

// transactions returns the viewer's transactions, from -file when set, from the API otherwise.
func (a *app) transactions(ctx context.Context) ([]payview.Transaction, error) {
	if *dataFile != "" {
		return a.decodeFile(*dataFile)
	}
	if a.client.Session().Token == "" {
		return nil, api.ErrNoSession
	}
	return a.client.Transactions(ctx, a.viewer)
}

func (a *app) decodeFile(name string) ([]payview.Transaction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := payview.DecodeTransactions(f, a.decodeOptions())
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", name, err)
	}
	return txs, nil
}

// names returns the party namer: account names from the API, unless reading a file.
func (a *app) names(ctx context.Context) payview.PartyNamer {
	if *dataFile != "" || a.client.Session().Token == "" {
		return payview.DefaultPartyName
	}
	return a.client.PartyNames(ctx)
}

// parseQuery reads the history filters shared by several commands.
func parseQuery(window, typ, status string) (payview.Query, error) {
	var q payview.Query
	var err error
	if q.Window, err = payview.ParseWindow(window); err != nil {
		return q, err
	}
	if q.Type, err = payview.ParseTypeFilter(typ); err != nil {
		return q, err
	}
	q.Status = status
	return q, nil
}
