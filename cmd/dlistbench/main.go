// Command dlistbench is the Go-native counterpart of
// original_source/benches/dlist_bench.rs: it drives synthetic workloads
// through a dlist.DList and reports timings, the external benchmark
// harness the core spec explicitly treats as an out-of-scope collaborator.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	appName    = "dlistbench"
	appUsage   = "benchmark harness for the dlist distance-indexed ordered list"
	defaultDB  = "dlistbench_history.db"
)

func main() {
	app := &cli.App{
		Name:  appName,
		Usage: appUsage,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Value: defaultDB,
				Usage: "sqlite database used to record run history",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			historyCommand(),
			queryCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dlistbench:", err)
		os.Exit(1)
	}
}
