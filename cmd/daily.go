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

type dailyCmd struct {
	days int
	json bool
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display money sent and received per day" }
func (*dailyCmd) Usage() string {
	return `pvw daily [-days <n>] [-json]

  Displays, for each of the last n calendar days ending today, the completed
  money sent and received by the viewing user, with the trend of the period.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 7, "number of days")
	f.BoolVar(&c.json, "json", false, "print the series as JSON")
}

func (c *dailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.days < 0 {
		fmt.Fprintln(os.Stderr, "Error: -days cannot be negative")
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
	trend := payview.TrendOf(buckets)

	if c.json {
		out := struct {
			Days  []payview.DailyBucket `json:"days"`
			Trend payview.Trend         `json:"trend"`
		}{buckets, trend}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderDaily(buckets, trend))
	return subcommands.ExitSuccess
}
