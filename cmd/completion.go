package cmd

import (
	"flag"

	"github.com/etnz/payview/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of flag values by flag name. Other flags take any value.
var predictors = map[string]complete.Predictor{
	"range":  predict.Set{"all", "today", "week", "month", "quarter", "3months", "year"},
	"type":   predict.Set{"all", "debit", "credit"},
	"status": predict.Set{"all", "completed", "pending", "failed"},
	"o":      predict.Files("*"),
	"f":      predict.Files("*.json*"),
	"file":   predict.Files("*.json*"),
}

// Completion returns the shell completion of the application, derived from
// the flags of the global flag set and of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, e := range Commands {
		fs := flag.NewFlagSet(e.Command.Name(), flag.ContinueOnError)
		e.Command.SetFlags(fs)
		root.Sub[e.Command.Name()] = &complete.Command{Flags: flagPredictors(fs)}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case predictors[f.Name] != nil:
			flags[f.Name] = predictors[f.Name]
		case isBool(f):
			flags[f.Name] = predict.Nothing
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
