// Command starmapexample multiplies fixed pairs of numbers with a pool of
// workers and prints one line per pair.
package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/exascience/parpatterns"
	"github.com/exascience/parpatterns/internal/cli"
	"github.com/exascience/parpatterns/internal/logger"
	"github.com/exascience/parpatterns/internal/report"
	"github.com/exascience/parpatterns/stats"
)

var pairs = []parpatterns.Pair[int, int]{
	{First: 1, Second: 3},
	{First: 5, Second: 9},
	{First: 2, Second: 3},
	{First: 4, Second: 5},
	{First: 10, Second: 30},
	{First: 5, Second: 7},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Error("starmapexample", "%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := cli.New("starmapexample", "", stderr)
	cfg, err := cmd.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}
	return stats.RunProducts(cfg.Workers, pairs, report.New(stdout))
}
