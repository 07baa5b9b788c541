// Command promstat periodically samples named metrics from one or more
// Prometheus-style HTTP endpoints and prints them to the terminal, either as
// a compact table or as a verbose per-target listing.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/joyent/promstat/internal/buildinfo"
	"github.com/joyent/promstat/internal/config"
	"github.com/joyent/promstat/internal/poller"
	"github.com/joyent/promstat/internal/report"
	"github.com/joyent/promstat/model"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fatal(run(ctx, os.Args[1:], os.Stdout))
}

func fatal(err error) {
	if err == nil {
		return
	}
	var uerr *config.UsageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(os.Stderr, "promstat: %s\n\n%s", uerr, config.Usage)
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "promstat: %v\n", err)
	os.Exit(1)
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug(buildinfo.Banner())

	p := poller.New(cfg.Interval, logger)
	for _, t := range cfg.Targets {
		p.AddTarget(t)
	}
	for _, m := range cfg.Metrics {
		p.AddMetric(m)
	}

	if cfg.ListOnly {
		infos, warnings, err := p.ListMetrics(ctx)
		if err != nil {
			return err
		}
		report.NewMetadata(out, cfg.Verbose).Report(infos)
		for _, w := range warnings {
			logger.Warn(w)
		}
		return nil
	}

	sel := report.NewSelector(cfg.Output)
	var rep report.Reporter
	err = p.Run(ctx, cfg.Count, func(dp *model.Datapoint) {
		for _, w := range dp.Warnings {
			logger.Warn(w)
		}
		if rep == nil {
			if sel.Decide(dp) == config.OutputCompact {
				rep = report.NewTabular(out, cfg.Metrics)
			} else {
				rep = report.NewFull(out)
			}
		}
		rep.Report(dp)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newLogger builds the diagnostic logger. Report output goes to stdout;
// everything else (warnings, debug) goes to stderr so the two streams can be
// separated in a pipeline.
func newLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
