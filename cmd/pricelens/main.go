// Command pricelens ingests daily price spreadsheets and writes performance
// analytics: KPI and time-series CSVs, charts and an optional PDF dashboard.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "", "Path to the YAML config (default $PRICELENS_CONFIG or configs/config.yaml).")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

var commands = []subcommands.Command{
	&fetchCmd{},
	&ingestCmd{},
	&analyzeCmd{},
	&runCmd{},
	&watchCmd{},
	&historyCmd{},
}
