package poller

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/joyent/promstat/model"
)

// ListMetrics scrapes every target once and merges the discovered metric
// families into one listing. When some targets fail their failures come back
// as warnings alongside the partial listing; when every target fails there
// is nothing to print and the error is fatal.
func (p *Poller) ListMetrics(ctx context.Context) ([]model.MetricInfo, []string, error) {
	p.started = true

	sets := make([]familySet, len(p.targets))
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
				failures[i] = fmt.Sprintf("target %s: %v", t.Label, ctx.Err())
				return
			}
			fams, err := p.scrape(ctx, t)
			if err != nil {
				failures[i] = fmt.Sprintf("target %s: %v", t.Label, err)
				return
			}
			sets[i] = fams
		}(i, t)
	}
	wg.Wait()

	merged := make(map[string]*model.MetricInfo)
	failed := 0
	var warnings []string
	for i := range p.targets {
		if failures[i] != "" {
			failed++
			warnings = append(warnings, failures[i])
			continue
		}
		for name, fam := range sets[i] {
			info, ok := merged[name]
			if !ok {
				info = &model.MetricInfo{Kind: kindOf(fam), Name: name, Help: fam.GetHelp()}
				merged[name] = info
			}
			info.NTargets++
		}
	}

	if len(p.targets) > 0 && failed == len(p.targets) {
		return nil, nil, fmt.Errorf("no metadata from any target: %s", strings.Join(warnings, "; "))
	}

	infos := make([]model.MetricInfo, 0, len(merged))
	for _, info := range merged {
		infos = append(infos, *info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, warnings, nil
}
