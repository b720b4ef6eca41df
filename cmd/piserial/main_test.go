package main

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/exascience/parpatterns/pi"
)

func TestRun(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"10000"}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	estimate, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		t.Fatalf("output is not a number: %q", stdout.String())
	}
	if math.Abs(estimate-math.Pi) >= 1e-3 {
		t.Errorf("estimate %v too far from π", estimate)
	}
}

func TestRunMissingArgument(t *testing.T) {
	if err := run(nil, &bytes.Buffer{}, &bytes.Buffer{}); !errors.Is(err, pi.ErrInvalidSteps) {
		t.Errorf("got %v", err)
	}
}
