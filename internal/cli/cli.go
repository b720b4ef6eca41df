// Package cli holds the flag handling shared by the programs under cmd/.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/exascience/parpatterns/internal/config"
	"github.com/exascience/parpatterns/internal/logger"
)

// A Command parses the common flags of a program. Programs can register
// additional flags on FlagSet before calling Parse.
type Command struct {
	FlagSet *flag.FlagSet

	configFile string
	workers    int
	verbose    bool
}

// New returns a command named name. usage is printed after the flag
// defaults when the program is invoked with -h.
func New(name, usage string, stderr io.Writer) *Command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	c := &Command{FlagSet: fs}
	fs.StringVar(&c.configFile, "config", "", "configuration file (YAML or JSON)")
	fs.IntVar(&c.workers, "workers", 0, "number of workers (default from configuration, 4)")
	fs.BoolVar(&c.verbose, "v", false, "log debug messages to standard error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage of %s:\n", name)
		fs.PrintDefaults()
		if usage != "" {
			fmt.Fprintf(stderr, "\n%s\n", usage)
		}
	}
	return c
}

// Parse parses args and returns the resolved configuration. It returns
// flag.ErrHelp if -h was given.
func (c *Command) Parse(args []string) (config.Config, error) {
	if err := c.FlagSet.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return cfg, err
	}
	if c.workers < 0 {
		return cfg, errors.New("workers must be non-negative")
	}
	if c.workers > 0 {
		cfg.Workers = c.workers
	}
	if c.verbose {
		cfg.LogLevel = "debug"
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	logger.Default.SetLevel(level)
	logger.Debug(c.FlagSet.Name(), "configuration: %+v", cfg)
	return cfg, nil
}

// Args returns the positional arguments left after Parse.
func (c *Command) Args() []string {
	return c.FlagSet.Args()
}
