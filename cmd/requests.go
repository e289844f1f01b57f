package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payview"
	"github.com/etnz/payview/renderer"
	"github.com/google/subcommands"
)

type requestsCmd struct {
	file string
}

func (*requestsCmd) Name() string     { return "requests" }
func (*requestsCmd) Synopsis() string { return "display money requests" }
func (*requestsCmd) Usage() string {
	return `pvw requests [-f <file>]

  Displays the money requests received and sent by the viewing user, most
  recent first, with the number of incoming requests still pending.
`
}

func (c *requestsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "read requests from a JSON or JSONL file instead of the API")
}

func (c *requestsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	reqs, err := c.load(ctx, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading requests: %v\n", err)
		return subcommands.ExitFailure
	}
	incoming, outgoing, err := payview.SplitRequests(reqs, a.viewer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	names := payview.DefaultPartyName
	if c.file == "" {
		names = a.names(ctx)
	}
	printMarkdown(renderer.RenderRequests(incoming, outgoing, names))
	return subcommands.ExitSuccess
}

func (c *requestsCmd) load(ctx context.Context, a *app) ([]payview.MoneyRequest, error) {
	if c.file == "" {
		return a.client.Requests(ctx, a.viewer)
	}
	file, err := os.Open(c.file)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return payview.DecodeRequests(file, a.decodeOptions())
}
