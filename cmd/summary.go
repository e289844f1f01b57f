package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/payview"
	"github.com/etnz/payview/date"
	"github.com/etnz/payview/renderer"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type summaryCmd struct {
	window string
	watch  int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the money flows of a period" }
func (*summaryCmd) Usage() string {
	return `pvw summary [-range <window>] [-w <seconds>]

  Displays the dashboard summary of the viewing user: money received and sent
  over the period, the net flow and the number of transactions per status.

  When reading from the API, it also shows the wallet balance and the number
  of unread notifications.

  Windows: all, today, week, month, quarter, 3months, year.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "range", "all", "date window")
	f.IntVar(&c.watch, "w", 0, "refresh every n seconds")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	window, err := payview.ParseWindow(c.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for {
		md, err := c.render(ctx, a, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.watch > 0 {
			fmt.Println("\033[2J")
		}
		printMarkdown(md)

		if c.watch <= 0 {
			break
		}
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case <-time.After(time.Duration(c.watch) * time.Second):
		}
	}
	return subcommands.ExitSuccess
}

func (c *summaryCmd) render(ctx context.Context, a *app, window date.Window) (string, error) {
	opts := renderer.SummaryOptions{User: a.client.Session().Name, Window: window}
	var txs []payview.Transaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		txs, err = a.transactions(gctx)
		return err
	})
	if *dataFile == "" {
		// balance and notifications are extras: the summary stands without them.
		g.Go(func() error {
			if balance, err := a.client.Balance(gctx, a.viewer); err == nil {
				opts.Balance = &balance
			} else {
				a.log.Warn().Err(err).Msg("no wallet balance")
			}
			return nil
		})
		g.Go(func() error {
			if unread, err := a.client.UnreadCount(gctx, a.viewer); err == nil {
				opts.Unread = unread
			} else {
				a.log.Warn().Err(err).Msg("no unread count")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	txs, err := payview.FilterByDateRange(txs, window, a.now())
	if err != nil {
		return "", err
	}
	s, err := payview.Summarize(txs, a.viewer)
	if err != nil {
		return "", err
	}
	return renderer.RenderSummary(s, opts), nil
}
