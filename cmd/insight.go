package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/payview"
	"github.com/etnz/payview/date"
	"github.com/etnz/payview/insight"
	"github.com/etnz/payview/renderer"
	"github.com/google/subcommands"
)

type insightCmd struct {
	window string
	days   int
	chat   bool
	dry    bool
}

func (*insightCmd) Name() string     { return "insight" }
func (*insightCmd) Synopsis() string { return "narrate the activity of a period with Gemini" }
func (*insightCmd) Usage() string {
	return `pvw insight [-range <window>] [-days <n>] [-chat] [-dry] [question...]

  Sends the summary and the daily trend of the viewing user to Gemini and
  prints its narrative. Requires $GEMINI_API_KEY.

  With -chat, starts an interactive session about the activity instead,
  the arguments being the first questions.

  With -dry, prints the prompt without calling Gemini.
`
}

func (c *insightCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "range", "month", "date window of the summary")
	f.IntVar(&c.days, "days", 30, "number of days of the trend")
	f.BoolVar(&c.chat, "chat", false, "start an interactive session")
	f.BoolVar(&c.dry, "dry", false, "print the prompt only")
}

func (c *insightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	window, err := payview.ParseWindow(c.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.days < 0 {
		fmt.Fprintln(os.Stderr, "Error: -days cannot be negative")
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	prompt, err := c.prompt(ctx, a, window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.dry {
		fmt.Println(prompt)
		return subcommands.ExitSuccess
	}

	client, err := insight.NewClient(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.chat {
		chat := insight.NewChat(os.Stdout, os.Stdin, prompt)
		chat.Model = a.cfg.GeminiModel
		if err := chat.Run(ctx, client, f.Args()...); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	text, err := insight.Narrate(ctx, client, a.cfg.GeminiModel, prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(text + "\n")
	return subcommands.ExitSuccess
}

func (c *insightCmd) prompt(ctx context.Context, a *app, window date.Window) (string, error) {
	txs, err := a.transactions(ctx)
	if err != nil {
		return "", err
	}
	inWindow, err := payview.FilterByDateRange(txs, window, a.now())
	if err != nil {
		return "", err
	}
	s, err := payview.Summarize(inWindow, a.viewer)
	if err != nil {
		return "", err
	}
	buckets, err := payview.DailySeries(txs, a.viewer, c.days, a.now())
	if err != nil {
		return "", err
	}
	period := strings.ToLower(renderer.PeriodLabel(window))
	return insight.Prompt(period, s, payview.TrendOf(buckets)), nil
}
