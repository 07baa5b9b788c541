package poller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/joyent/promstat/model"
)

// familySet is one parsed scrape: metric family name -> family.
type familySet map[string]*dto.MetricFamily

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// newHTTPClient derives the per-request timeout from the sampling interval:
// a scrape slower than the interval is useless, but never wait less than a
// second or longer than ten.
func newHTTPClient(interval time.Duration) *http.Client {
	timeout := interval
	if timeout < time.Second {
		timeout = time.Second
	}
	if timeout > 10*time.Second {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// scrape fetches and parses one target's exposition text.
func (p *Poller) scrape(ctx context.Context, t model.Target) (familySet, error) {
	path := t.Path
	if path == "" {
		path = "/metrics"
	}
	u := fmt.Sprintf("http://%s:%d%s", t.Hostname, t.Port, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var parser expfmt.TextParser
	fams, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse metrics: %w", err)
	}
	return fams, nil
}

func kindOf(f *dto.MetricFamily) model.Kind {
	switch f.GetType() {
	case dto.MetricType_COUNTER:
		return model.Counter
	case dto.MetricType_GAUGE:
		return model.Gauge
	case dto.MetricType_HISTOGRAM:
		return model.Histogram
	}
	return model.Untyped
}

// sampleOf extracts the observation from a family's first metric. promstat
// reports unlabeled series; for labeled families the first series stands in
// for the whole family.
func sampleOf(f *dto.MetricFamily) *model.Sample {
	if len(f.Metric) == 0 {
		return nil
	}
	m := f.Metric[0]
	switch f.GetType() {
	case dto.MetricType_COUNTER:
		if m.Counter == nil {
			return nil
		}
		return &model.Sample{Value: m.Counter.GetValue()}
	case dto.MetricType_GAUGE:
		if m.Gauge == nil {
			return nil
		}
		return &model.Sample{Value: m.Gauge.GetValue()}
	case dto.MetricType_HISTOGRAM:
		h := m.Histogram
		if h == nil {
			return nil
		}
		d := &model.Distribution{Count: h.GetSampleCount(), Sum: h.GetSampleSum()}
		for _, b := range h.Bucket {
			d.Buckets = append(d.Buckets, model.Bucket{
				UpperBound: b.GetUpperBound(),
				Count:      b.GetCumulativeCount(),
			})
		}
		return &model.Sample{Dist: d}
	case dto.MetricType_UNTYPED:
		if m.Untyped == nil {
			return nil
		}
		return &model.Sample{Value: m.Untyped.GetValue()}
	}
	return nil
}
