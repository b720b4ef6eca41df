// Command piserial estimates π with the midpoint rule in a single loop.
// It is the sequential baseline for piparallel.
//
// Usage:
//
//	piserial [options] <nSteps>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/exascience/parpatterns/internal/cli"
	"github.com/exascience/parpatterns/internal/logger"
	"github.com/exascience/parpatterns/internal/report"
	"github.com/exascience/parpatterns/pi"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Error("piserial", "%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := cli.New("piserial", "Arguments:\n  nSteps  number of midpoints, for example 100000000", stderr)
	cfg, err := cmd.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	n := cfg.Steps
	if args := cmd.Args(); len(args) > 0 {
		if n, err = pi.ParseSteps(args[0]); err != nil {
			return err
		}
	}
	if n <= 0 {
		return fmt.Errorf("missing number of steps: %w", pi.ErrInvalidSteps)
	}

	start := time.Now()
	estimate, err := pi.Serial(n)
	if err != nil {
		return err
	}
	logger.Debug("piserial", "%d steps took %v", n, time.Since(start))
	report.New(stdout).Line("%v", estimate)
	return nil
}
