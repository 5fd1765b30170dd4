package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// fileFlags are the flags taking a path.
var fileFlags = map[string]complete.Predictor{
	"ledger-file": predict.Files("*"),
	"config":      predict.Files("*.toml"),
	"to":          predict.Files("*"),
	"png":         predict.Files("*.png"),
	"d":           predict.Something,
}

// Completion returns the shell completion tree of pcs, from the flags of
// every command.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(f)}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch p, ok := fileFlags[fl.Name]; {
		case ok:
			res[fl.Name] = p
		case isBool(fl):
			res[fl.Name] = predict.Nothing
		default:
			res[fl.Name] = predict.Something
		}
	})
	return res
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// IsCommand reports whether name is a pcs command rather than an extension.
func IsCommand(name string) bool {
	_, ok := Completion(flag.NewFlagSet("", flag.ContinueOnError)).Sub[name]
	return ok
}
