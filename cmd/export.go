package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/payview"
	"github.com/google/subcommands"
)

type exportCmd struct {
	window string
	typ    string
	status string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the transaction history as CSV" }
func (*exportCmd) Usage() string {
	return `pvw export [-range <window>] [-type all|debit|credit] [-status <status>] [-o <file>]

  Writes every transaction matching the filters, most recent first, as CSV.
  The counterparty columns hold account names when they can be fetched.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "range", "all", "date window: all, today, week, month, quarter, 3months, year")
	f.StringVar(&c.typ, "type", "all", "transaction type: all, debit or credit")
	f.StringVar(&c.status, "status", payview.AllStatuses, "transaction status")
	f.StringVar(&c.output, "o", "", "output file, stdout when empty")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := parseQuery(c.window, c.typ, c.status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
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
	processed, err := q.Processed(txs, a.viewer, a.now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		buf := bufio.NewWriter(file)
		defer buf.Flush()
		w = buf
	}
	if err := payview.ExportCSV(w, processed, a.names(ctx)); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Fprintf(os.Stderr, "%d transactions written to %s\n", len(processed), c.output)
	}
	return subcommands.ExitSuccess
}
