// Package config turns raw command-line input into an immutable run
// configuration: validated targets, the requested metric list, interval,
// datapoint count and output mode.
package config

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/joyent/promstat/model"
)

// OutputMode selects how datapoints are rendered.
type OutputMode string

const (
	OutputAuto    OutputMode = "auto"    // decide from the first datapoint
	OutputCompact OutputMode = "compact" // one row per target per round
	OutputFull    OutputMode = "full"    // multi-line block per round
)

// Usage is the synopsis printed alongside every usage error.
const Usage = `usage: promstat -t URL [-t URL ...] -m METRIC [-m METRIC ...] [-o MODE] [INTERVAL [COUNT]]
       promstat -t URL [-t URL ...] -l [-v]

  -t, --target URL     metrics endpoint to poll (repeatable, http only)
  -m, --metric NAME    metric to report (repeatable)
  -l, --list           list metrics exposed by the targets and exit
  -o, --output MODE    force output mode: compact or full
  -v, --verbose        with -l, include metric help text
  INTERVAL             sampling interval in whole seconds (default 1)
  COUNT                stop after this many datapoints (default unbounded)
`

// UsageError is any problem with command-line input. The cmd layer prints it
// with the synopsis and exits non-zero before any polling starts.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// RunConfig is the accumulated argument state. Built once by Parse and
// read-only afterwards.
type RunConfig struct {
	Metrics  []string       // requested metric names, in order
	Targets  []model.Target // validated targets, in order
	Interval time.Duration  // sampling interval, default 1s
	Count    int            // datapoint limit; 0 means unbounded
	Output   OutputMode
	ListOnly bool
	Verbose  bool
}

var metricNameRe = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

// Parse consumes the program arguments (without the program name) and
// finalizes them into a RunConfig, enforcing every cross-option rule. The
// first violation wins; no error aggregation.
func Parse(args []string) (*RunConfig, error) {
	fs := flag.NewFlagSet("promstat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		rawTargets stringsFlag
		rawMetrics stringsFlag
		list       boolFlag
		verbose    boolFlag
		output     strFlag
	)
	fs.Var(&rawTargets, "t", "metrics endpoint URL")
	fs.Var(&rawTargets, "target", "metrics endpoint URL (alias)")
	fs.Var(&rawMetrics, "m", "metric name to report")
	fs.Var(&rawMetrics, "metric", "metric name to report (alias)")
	fs.Var(&list, "l", "list metrics and exit")
	fs.Var(&list, "list", "list metrics and exit (alias)")
	fs.Var(&output, "o", "output mode: compact or full")
	fs.Var(&output, "output", "output mode: compact or full (alias)")
	fs.Var(&verbose, "v", "include metric help text in the listing")
	fs.Var(&verbose, "verbose", "include metric help text in the listing (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{msg: err.Error()}
	}

	cfg := &RunConfig{
		Interval: time.Second,
		Output:   OutputAuto,
		ListOnly: list.v,
		Verbose:  verbose.v,
	}

	if list.v && len(rawMetrics.v) > 0 {
		return nil, usageErrorf("-l and -m are mutually exclusive")
	}
	if list.v && output.set {
		return nil, usageErrorf("-l and -o are mutually exclusive")
	}
	if list.v && fs.NArg() > 0 {
		return nil, usageErrorf("-l takes no positional arguments")
	}
	if verbose.v && !list.v {
		return nil, usageErrorf("-v is only valid with -l")
	}

	if output.set {
		switch OutputMode(output.v) {
		case OutputCompact, OutputFull:
			cfg.Output = OutputMode(output.v)
		default:
			return nil, usageErrorf("-o must be %q or %q", OutputCompact, OutputFull)
		}
	}

	if len(rawTargets.v) == 0 {
		return nil, usageErrorf("at least one -t target is required")
	}
	for _, raw := range rawTargets.v {
		t, err := ParseTarget(raw)
		if err != nil {
			return nil, &UsageError{msg: err.Error()}
		}
		cfg.Targets = append(cfg.Targets, t)
	}

	if !list.v && len(rawMetrics.v) == 0 {
		return nil, usageErrorf("at least one -m metric is required")
	}
	for _, name := range rawMetrics.v {
		if !metricNameRe.MatchString(name) {
			return nil, usageErrorf("invalid metric name %q", name)
		}
		cfg.Metrics = append(cfg.Metrics, name)
	}

	rest := fs.Args()
	if len(rest) > 2 {
		return nil, usageErrorf("too many positional arguments")
	}
	if len(rest) >= 1 {
		sec, err := parsePositive(rest[0])
		if err != nil {
			return nil, usageErrorf("interval must be a positive number of seconds")
		}
		cfg.Interval = time.Duration(sec) * time.Second
	}
	if len(rest) == 2 {
		n, err := parsePositive(rest[1])
		if err != nil {
			return nil, usageErrorf("count must be positive")
		}
		cfg.Count = n
	}

	return cfg, nil
}

// parsePositive treats zero the same as garbage: both are rejected.
func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("not positive: %d", n)
	}
	return n, nil
}
