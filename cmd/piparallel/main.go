// Command piparallel estimates π with the midpoint rule, splitting the
// steps over a pool of workers.
//
// Usage:
//
//	piparallel [options] <nSteps>
//
// Try nSteps up to 100000000.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/exascience/parpatterns/internal/cli"
	"github.com/exascience/parpatterns/internal/config"
	"github.com/exascience/parpatterns/internal/logger"
	"github.com/exascience/parpatterns/internal/report"
	"github.com/exascience/parpatterns/pi"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Error("piparallel", "%v", err)
		os.Exit(1)
	}
}

// steps returns the number of steps from the first positional argument,
// falling back to the configuration.
func steps(args []string, cfg config.Config) (int, error) {
	switch {
	case len(args) > 0:
		return pi.ParseSteps(args[0])
	case cfg.Steps > 0:
		return cfg.Steps, nil
	default:
		return 0, fmt.Errorf("missing number of steps: %w", pi.ErrInvalidSteps)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := cli.New("piparallel", "Arguments:\n  nSteps  number of midpoints, for example 100000000", stderr)
	cfg, err := cmd.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}
	n, err := steps(cmd.Args(), cfg)
	if err != nil {
		return err
	}

	logger.Debug("piparallel", "estimating with %d steps over %d workers", n, cfg.Workers)
	estimate, err := pi.Parallel(n, cfg.Workers)
	if err != nil {
		return err
	}
	report.New(stdout).Line("%v", estimate)
	return nil
}
