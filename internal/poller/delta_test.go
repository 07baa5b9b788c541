package poller

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joyent/promstat/model"
)

func TestDeltaSample_Counter(t *testing.T) {
	d := deltaSample(model.Counter, &model.Sample{Value: 10}, &model.Sample{Value: 25})
	require.NotNil(t, d)
	require.Equal(t, 15.0, d.Value)
}

func TestDeltaSample_GaugeHasNoDelta(t *testing.T) {
	require.Nil(t, deltaSample(model.Gauge, &model.Sample{Value: 1}, &model.Sample{Value: 2}))
}

func TestDiffDistribution(t *testing.T) {
	prev := &model.Distribution{
		Count: 6, Sum: 2.5,
		Buckets: []model.Bucket{
			{UpperBound: 0.1, Count: 3},
			{UpperBound: math.Inf(1), Count: 6},
		},
	}
	cur := &model.Distribution{
		Count: 8, Sum: 3.5,
		Buckets: []model.Bucket{
			{UpperBound: 0.1, Count: 4},
			{UpperBound: math.Inf(1), Count: 8},
		},
	}

	d := diffDistribution(prev, cur)
	require.NotNil(t, d)
	require.Equal(t, uint64(2), d.Count)
	require.InDelta(t, 1.0, d.Sum, 1e-9)
	require.Equal(t, uint64(1), d.Buckets[0].Count)
	require.Equal(t, uint64(2), d.Buckets[1].Count)
}

func TestDiffDistribution_BucketLayoutChanged(t *testing.T) {
	prev := &model.Distribution{Buckets: []model.Bucket{{UpperBound: 0.1}}}

	// different bucket count
	cur := &model.Distribution{Buckets: []model.Bucket{{UpperBound: 0.1}, {UpperBound: 1}}}
	require.Nil(t, diffDistribution(prev, cur))

	// same count, different boundary
	cur = &model.Distribution{Buckets: []model.Bucket{{UpperBound: 0.5}}}
	require.Nil(t, diffDistribution(prev, cur))
}
