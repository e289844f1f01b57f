// Command pvw reviews the payments of a PayClone account.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/payview/cmd"
	"github.com/google/subcommands"
)

func main() {
	// answers shell completion requests, and exits, when run by the shell.
	cmd.Completion().Complete("pvw")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
