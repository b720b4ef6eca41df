// Command processexample runs three independent computations over the
// same list at the same time, and prints "Done." once all of them have
// finished.
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
	"github.com/exascience/parpatterns/stats"
)

var x = []float64{1, 3, 5, 7, 9}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Error("processexample", "%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := cli.New("processexample", "", stderr)
	if _, err := cmd.Parse(args); errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return stats.RunTasks(x, rng, report.New(stdout))
}
