package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payview"
	"github.com/etnz/payview/renderer"
	"github.com/google/subcommands"
)

type transactionsCmd struct {
	window string
	typ    string
	status string
	page   int
	size   int
	json   bool
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "display the transaction history" }
func (*transactionsCmd) Usage() string {
	return `pvw transactions [-range <window>] [-type all|debit|credit] [-status <status>] [-page <n>] [-size <n>] [-json]

  Displays one page of the transaction history of the viewing user, most
  recent first.

  -status is "all" or a status exactly as stored by the backend (e.g.
  "completed", "PENDING").
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "range", "all", "date window: all, today, week, month, quarter, 3months, year")
	f.StringVar(&c.typ, "type", "all", "transaction type: all, debit or credit")
	f.StringVar(&c.status, "status", payview.AllStatuses, "transaction status")
	f.IntVar(&c.page, "page", 1, "page number")
	f.IntVar(&c.size, "size", payview.DefaultPageSize, "page size")
	f.BoolVar(&c.json, "json", false, "print the page as JSON")
}

func (c *transactionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := parseQuery(c.window, c.typ, c.status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.size <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -size must be positive")
		return subcommands.ExitUsageError
	}
	q.Page, q.PageSize = c.page, c.size

	a, err := newApp(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	txs, err := a.transactions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := q.Run(txs, a.viewer, a.now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report.Page); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderPage(report.Page, a.names(ctx)))
	return subcommands.ExitSuccess
}
