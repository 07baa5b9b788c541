package poller

import "github.com/joyent/promstat/model"

// deltaSample computes the change since the previous observation. Gauges
// never get deltas; their raw value is the report.
func deltaSample(kind model.Kind, prev, cur *model.Sample) *model.Sample {
	switch kind {
	case model.Counter:
		return &model.Sample{Value: cur.Value - prev.Value}
	case model.Histogram:
		if prev.Dist == nil || cur.Dist == nil {
			return nil
		}
		d := diffDistribution(prev.Dist, cur.Dist)
		if d == nil {
			return nil
		}
		return &model.Sample{Dist: d}
	}
	return nil
}

// diffDistribution subtracts bucket by bucket. A changed bucket layout means
// the scraped process restarted; no delta for that round.
func diffDistribution(prev, cur *model.Distribution) *model.Distribution {
	if len(prev.Buckets) != len(cur.Buckets) {
		return nil
	}
	out := &model.Distribution{
		Count: cur.Count - prev.Count,
		Sum:   cur.Sum - prev.Sum,
	}
	for i, b := range cur.Buckets {
		if prev.Buckets[i].UpperBound != b.UpperBound {
			return nil
		}
		out.Buckets = append(out.Buckets, model.Bucket{
			UpperBound: b.UpperBound,
			Count:      b.Count - prev.Buckets[i].Count,
		})
	}
	return out
}
