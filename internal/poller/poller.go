// Package poller periodically scrapes Prometheus text-exposition endpoints
// and assembles one datapoint per round across all configured targets. It
// keeps exactly one previous observation per target and metric so counters
// and histograms can be reported as deltas.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/joyent/promstat/model"
)

// maxConcurrentScrapes caps the per-round fan-out across targets.
const maxConcurrentScrapes = 8

// Poller drives the sampling loop. Configure with AddTarget/AddMetric, then
// Run or ListMetrics; configuration calls after start are ignored.
type Poller struct {
	logger   *zap.SugaredLogger
	client   httpDoer
	interval time.Duration
	sem      chan struct{}

	targets []model.Target
	metrics []string
	started bool

	prevMu sync.Mutex
	prev   map[string]map[string]*model.Sample // target label -> metric name -> last raw
}

func New(interval time.Duration, logger *zap.SugaredLogger) *Poller {
	return &Poller{
		logger:   logger,
		client:   newHTTPClient(interval),
		interval: interval,
		sem:      make(chan struct{}, maxConcurrentScrapes),
		prev:     make(map[string]map[string]*model.Sample),
	}
}

// AddTarget registers one endpoint. No effect once started.
func (p *Poller) AddTarget(t model.Target) {
	if p.started {
		p.logger.Warnf("ignoring target %s added after start", t.Label)
		return
	}
	p.targets = append(p.targets, t)
}

// AddMetric registers one metric name to sample. No effect once started.
func (p *Poller) AddMetric(name string) {
	if p.started {
		p.logger.Warnf("ignoring metric %s added after start", name)
		return
	}
	p.metrics = append(p.metrics, name)
}

// Run samples all targets immediately and then once per interval, delivering
// each round to fn in arrival order from a single goroutine. It returns nil
// after count datapoints when count > 0, or the context error on
// cancellation.
func (p *Poller) Run(ctx context.Context, count int, fn func(*model.Datapoint)) error {
	p.started = true

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	delivered := 0
	for {
		dp := p.collect(ctx)
		fn(dp)
		delivered++
		if count > 0 && delivered >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// collect runs one sampling round: all targets scraped concurrently under
// the semaphore, results reassembled in configured target order.
func (p *Poller) collect(ctx context.Context) *model.Datapoint {
	dp := &model.Datapoint{Time: time.Now()}

	samples := make([]model.TargetSample, len(p.targets))
	failures := make([]string, len(p.targets))

	var wg sync.WaitGroup
	for i, t := range p.targets {
		wg.Add(1)
		go func(i int, t model.Target) {
			defer wg.Done()
			select {
			case p.sem <- struct{}{}:
				defer func() { <-p.sem }()
			case <-ctx.Done():
				samples[i] = model.TargetSample{Label: t.Label, Values: p.values(t, nil, ctx.Err())}
				return
			}

			fams, err := p.scrape(ctx, t)
			if err != nil {
				failures[i] = fmt.Sprintf("target %s: %v", t.Label, err)
				p.logger.Debugf("scrape failed: target=%s err=%v", t.Label, err)
			}
			samples[i] = model.TargetSample{Label: t.Label, Values: p.values(t, fams, err)}
		}(i, t)
	}
	wg.Wait()

	dp.Targets = samples
	for _, w := range failures {
		if w != "" {
			dp.Warnings = append(dp.Warnings, w)
		}
	}
	return dp
}

// values builds the per-metric values for one target, in configured metric
// order, updating the delta baseline for every metric actually observed.
func (p *Poller) values(t model.Target, fams familySet, scrapeErr error) []model.MetricValue {
	out := make([]model.MetricValue, 0, len(p.metrics))
	for _, name := range p.metrics {
		mv := model.MetricValue{Name: name}
		if scrapeErr != nil {
			mv.Err = scrapeErr
			out = append(out, mv)
			continue
		}

		fam, ok := fams[name]
		if !ok {
			// endpoint does not expose this metric; renders as "no data"
			out = append(out, mv)
			continue
		}

		mv.Meta = &model.Metadata{Kind: kindOf(fam), Name: name, Help: fam.GetHelp()}
		mv.Raw = sampleOf(fam)
		if mv.Raw != nil {
			if prevS := p.previous(t.Label, name); prevS != nil {
				mv.Delta = deltaSample(mv.Meta.Kind, prevS, mv.Raw)
			}
			p.remember(t.Label, name, mv.Raw)
		}
		out = append(out, mv)
	}
	return out
}

func (p *Poller) previous(label, name string) *model.Sample {
	p.prevMu.Lock()
	defer p.prevMu.Unlock()
	return p.prev[label][name]
}

func (p *Poller) remember(label, name string, s *model.Sample) {
	p.prevMu.Lock()
	defer p.prevMu.Unlock()
	byMetric, ok := p.prev[label]
	if !ok {
		byMetric = make(map[string]*model.Sample)
		p.prev[label] = byMetric
	}
	byMetric[name] = s
}
