package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payview/api"
	"github.com/google/subcommands"
)

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in to PayClone and save the session" }
func (*loginCmd) Usage() string {
	return `pvw login -email <email> [-password <password>]

  Logs in to the PayClone API and saves the session token in the session file,
  so that other commands act on behalf of the logged in user.

  The password can also be passed in $PAYVIEW_PASSWORD.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "account email")
	f.StringVar(&c.password, "password", "", "account password, defaults to $PAYVIEW_PASSWORD")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.password == "" {
		c.password = os.Getenv("PAYVIEW_PASSWORD")
	}
	if c.email == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "Error: -email and a password are required")
		return subcommands.ExitUsageError
	}
	a, err := newApp(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	session, err := a.client.Login(ctx, c.email, c.password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := api.SaveSession(a.cfg.SessionFile, session); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Logged in as %s (user #%d)\n", session.Name, session.UserID)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "forget the saved session" }
func (*logoutCmd) Usage() string {
	return `pvw logout

  Deletes the session file.
`
}

func (*logoutCmd) SetFlags(f *flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := api.DeleteSession(a.cfg.SessionFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
