// Command mapexample converts random Fahrenheit temperatures to Celsius
// with a pool of workers and prints one line per temperature.
package main

import (
	"errors"
	"flag"
	"io"
	"math/rand/v2"
	"os"

	"github.com/exascience/parpatterns/internal/cli"
	"github.com/exascience/parpatterns/internal/logger"
	"github.com/exascience/parpatterns/internal/report"
	"github.com/exascience/parpatterns/temperature"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Error("mapexample", "%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := cli.New("mapexample", "Converts -items random temperatures using -workers workers.", stderr)
	seed := cmd.FlagSet.Uint64("seed", 0, "random seed (0 picks a random seed)")
	cfg, err := cmd.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = rand.Uint64()
	}
	temps := temperature.Random(cfg.Items, rand.New(rand.NewPCG(s, s)))
	logger.Debug("mapexample", "converting %d temperatures with %d workers", len(temps), cfg.Workers)
	return temperature.Run(cfg.Workers, temps, report.New(stdout))
}
