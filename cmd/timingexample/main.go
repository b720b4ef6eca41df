// Command timingexample runs a number of latency-bound tasks, first one
// after the other and then in one goroutine each, and prints how long
// both runs took.
//
// By default every task sleeps to simulate an I/O operation. With -fetch,
// every task requests a random page from -url instead.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/exascience/parpatterns/internal/cli"
	"github.com/exascience/parpatterns/internal/logger"
	"github.com/exascience/parpatterns/internal/report"
	"github.com/exascience/parpatterns/latency"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Error("timingexample", "%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := cli.New("timingexample", "", stderr)
	fetch := cmd.FlagSet.Bool("fetch", false, "fetch random pages instead of sleeping")
	url := cmd.FlagSet.String("url", "", "random page endpoint used with -fetch")
	tasks := cmd.FlagSet.Int("tasks", 0, "number of tasks (default from configuration, 8)")
	wait := cmd.FlagSet.Duration("latency", 0, "simulated latency per task (default from configuration, 2s)")
	cfg, err := cmd.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}
	var invalid error
	cmd.FlagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tasks":
			if *tasks < 0 {
				invalid = errors.New("tasks must be non-negative")
			}
			cfg.Tasks = *tasks
		case "latency":
			if *wait < 0 {
				invalid = errors.New("latency must be non-negative")
			}
			cfg.Latency = *wait
		case "url":
			cfg.URL = *url
		}
	})
	if invalid != nil {
		return invalid
	}

	r := report.New(stdout)
	task := latency.Sleeper(cfg.Latency, r)
	if *fetch {
		logger.Debug("timingexample", "fetching from %s", cfg.URL)
		task = latency.Fetcher(context.Background(), http.DefaultClient, cfg.URL, r)
	}

	r.Banner("Using a loop ...")
	elapsed, err := latency.RunSequential(cfg.Tasks, task)
	if err != nil {
		return err
	}
	r.Status("The loop took %v.", elapsed.Round(time.Millisecond))

	r.Blank()
	r.Banner("Using goroutines ...")
	elapsed, err = latency.RunConcurrent(cfg.Tasks, task)
	r.Status("The goroutines took %v.", elapsed.Round(time.Millisecond))
	return err
}
