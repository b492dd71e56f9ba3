// Command algoviz loads datasets, runs algorithms on the compute service,
// and draws or exports their results.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(ctx, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "algoviz:", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Every command shares one Session built
// from the global flags in Before.
func newApp(ctx context.Context, stdout, stderr io.Writer) *cli.App {
	e := &env{ctx: ctx, stdout: stdout, stderr: stderr}

	app := cli.NewApp()
	app.Name = "algoviz"
	app.Usage = "run and visualize algorithms on a compute service"
	app.Version = version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "config file (yaml, json or toml)",
			EnvVar: "ALGOVIZ_CONFIG",
		},
		cli.StringFlag{
			Name:  "base-url",
			Usage: "compute service URL, overrides service.base_url",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "log debug output to stderr",
		},
	}
	app.Before = e.setup
	app.Commands = []cli.Command{
		{
			Name:   "algorithms",
			Usage:  "list the algorithms offered by the service",
			Action: e.algorithms,
		},
		{
			Name:  "run",
			Usage: "run one algorithm on a dataset",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "algorithm, a", Usage: "algorithm name", Required: true},
				cli.StringFlag{Name: "dataset, d", Usage: "dataset JSON file", Required: true, TakesFile: true},
				cli.StringFlag{Name: "svg", Usage: "write the drawing as SVG to `FILE`", TakesFile: true},
				cli.StringFlag{Name: "png", Usage: "write the drawing as PNG to `FILE`", TakesFile: true},
				cli.StringFlag{Name: "csv-dir", Usage: "export the path as result.csv into `DIR`"},
			},
			Action: e.run,
		},
		{
			Name:  "bench",
			Usage: "benchmark algorithms on a dataset",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "dataset, d", Usage: "dataset JSON file", Required: true, TakesFile: true},
				cli.StringSliceFlag{Name: "algorithm, a", Usage: "algorithm to include (repeatable, default all)"},
				cli.StringFlag{Name: "lang", Usage: "number formatting language", Value: "en"},
			},
			Action: e.bench,
		},
		{
			Name:      "search",
			Usage:     "query the service search index",
			ArgsUsage: "<query>",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "k", Usage: "number of matches", Value: 5},
			},
			Action: e.search,
		},
		{
			Name:   "logs",
			Usage:  "follow the service log stream",
			Action: e.logs,
		},
		{
			Name:      "history",
			Usage:     "list stored results, or show one",
			ArgsUsage: "[id]",
			Action:    e.history,
		},
		{
			Name:  "serve",
			Usage: "serve the dashboard",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "addr", Usage: "listen address, overrides server.addr"},
			},
			Action: e.serve,
		},
	}
	return app
}
