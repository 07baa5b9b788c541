package report

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joyent/promstat/model"
)

func meta(kind model.Kind) *model.Metadata {
	return &model.Metadata{Kind: kind, Name: "m"}
}

func scalar(v float64) *model.Sample {
	return &model.Sample{Value: v}
}

func dist() *model.Sample {
	return &model.Sample{Dist: &model.Distribution{
		Count: 6,
		Sum:   2.5,
		Buckets: []model.Bucket{
			{UpperBound: 0.1, Count: 3},
			{UpperBound: 1, Count: 5},
			{UpperBound: math.Inf(1), Count: 6},
		},
	}}
}

func TestFormatValue_NoData(t *testing.T) {
	require.Equal(t, "no data", FormatValue(model.MetricValue{Name: "m"}, true))
	require.Equal(t, "no data", FormatValue(model.MetricValue{Name: "m"}, false))

	// metadata present but never observed still counts as no data
	v := model.MetricValue{Name: "m", Meta: meta(model.Gauge)}
	require.Equal(t, "no data", FormatValue(v, true))
}

func TestFormatValue_Error(t *testing.T) {
	v := model.MetricValue{Name: "m", Err: errors.New("connection refused")}
	require.Equal(t, "connection refused", FormatValue(v, true))
	require.Equal(t, "connection refused", FormatValue(v, false))
}

func TestFormatValue_CounterWithDelta(t *testing.T) {
	v := model.MetricValue{Name: "m", Meta: meta(model.Counter), Raw: scalar(105), Delta: scalar(5)}
	require.Equal(t, "5", FormatValue(v, true))
	require.Equal(t, "5", FormatValue(v, false))
}

func TestFormatValue_CounterFirstObservation(t *testing.T) {
	v := model.MetricValue{Name: "m", Meta: meta(model.Counter), Raw: scalar(10)}
	require.Equal(t, "10*", FormatValue(v, true))
}

func TestFormatValue_Gauge(t *testing.T) {
	for raw, want := range map[float64]string{
		0:    "0",
		42:   "42",
		36.6: "36.6",
		-2.5: "-2.5",
	} {
		v := model.MetricValue{Name: "m", Meta: meta(model.Gauge), Raw: scalar(raw)}
		require.Equal(t, want, FormatValue(v, true))
	}
}

func TestFormatValue_HistogramCompact(t *testing.T) {
	v := model.MetricValue{Name: "m", Meta: meta(model.Histogram), Raw: dist()}
	require.Equal(t, "(histogram)", FormatValue(v, true))
}

func TestFormatValue_HistogramFull(t *testing.T) {
	v := model.MetricValue{Name: "m", Meta: meta(model.Histogram), Raw: dist()}
	out := FormatValue(v, false)
	require.True(t, strings.HasPrefix(out, "\n"))
	require.Greater(t, strings.Count(out, "\n"), 2)
	require.Contains(t, out, "+Inf")
	require.Contains(t, out, "count 6, sum 2.5")
}

func TestFormatValue_HistogramFullPrefersDelta(t *testing.T) {
	delta := &model.Sample{Dist: &model.Distribution{
		Count:   2,
		Sum:     0.5,
		Buckets: []model.Bucket{{UpperBound: math.Inf(1), Count: 2}},
	}}
	v := model.MetricValue{Name: "m", Meta: meta(model.Histogram), Raw: dist(), Delta: delta}
	out := FormatValue(v, false)
	require.Contains(t, out, "count 2, sum 0.5")
	require.NotContains(t, out, "count 6")
}

func TestFormatValue_UnsupportedKind(t *testing.T) {
	v := model.MetricValue{Name: "m", Meta: meta(model.Untyped), Raw: scalar(1)}
	require.Equal(t, "unsupported type", FormatValue(v, true))

	// a value without metadata cannot be rendered either
	v = model.MetricValue{Name: "m", Raw: scalar(1)}
	require.Equal(t, "unsupported type", FormatValue(v, false))
}
