package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payview"
	"github.com/etnz/payview/chart"
	"github.com/google/subcommands"
)

type chartCmd struct {
	days   int
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the daily activity chart as PNG" }
func (*chartCmd) Usage() string {
	return `pvw chart [-days <n>] [-o <file.png>]

  Draws the money sent and received per day over the last n days.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "number of days, at least 2")
	f.StringVar(&c.output, "o", "daily.png", "output file")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.days < 2 {
		fmt.Fprintln(os.Stderr, "Error: -days must be at least 2")
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
	buckets, err := payview.DailySeries(txs, a.viewer, c.days, a.now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	file, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	title := fmt.Sprintf("Last %d days", c.days)
	if err := chart.DailyChart(file, buckets, title); err != nil {
		fmt.Fprintf(os.Stderr, "Error drawing chart: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "chart written to %s\n", c.output)
	return subcommands.ExitSuccess
}
