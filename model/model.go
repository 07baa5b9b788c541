// Package model contains core data types for promstat.
package model

import "time"

// Kind identifies the metric kind declared by an endpoint.
type Kind string

const (
	Counter   Kind = "counter"   // monotonically non-decreasing; reported as a delta when possible
	Gauge     Kind = "gauge"     // point-in-time value, always directly meaningful
	Histogram Kind = "histogram" // bucketed distribution
	Untyped   Kind = "untyped"   // anything promstat cannot render
)

// Target is one HTTP endpoint exposing metrics. Built once by validation,
// read-only afterwards, and handed around by value.
type Target struct {
	Label    string // hostname:port, display only; always includes the port
	Hostname string
	Port     int
	Path     string // empty means the endpoint default
}

// Metadata describes one metric as declared by an endpoint.
type Metadata struct {
	Kind Kind
	Name string
	Help string
}

// Bucket is one cumulative histogram bucket.
type Bucket struct {
	UpperBound float64
	Count      uint64
}

// Distribution is a bucketed histogram observation.
type Distribution struct {
	Count   uint64
	Sum     float64
	Buckets []Bucket
}

// Sample is a single observed value: a scalar, or a distribution for
// histograms (Dist set, Value zero).
type Sample struct {
	Value float64
	Dist  *Distribution
}

// MetricValue is one metric's state for one target in one sampling round.
//
// Raw and Err together model the three observation states: both nil means no
// data was ever observed, Err set means this round's fetch failed, Raw set
// carries the latest observation. Delta is present only for counters and
// histograms with a prior sample on the same target.
type MetricValue struct {
	Name  string
	Meta  *Metadata // nil if the endpoint never declared the metric
	Raw   *Sample
	Err   error
	Delta *Sample
}

// TargetSample groups one target's values for one round. Values follows the
// configured metric order, and every value also carries its metric name.
type TargetSample struct {
	Label  string
	Values []MetricValue
}

// Datapoint is one synchronized sampling round across all configured targets.
// Targets preserves the configured target order.
type Datapoint struct {
	Time     time.Time
	Targets  []TargetSample
	Warnings []string
}

// MetricInfo is one row of the metadata listing.
type MetricInfo struct {
	Kind     Kind
	Name     string
	Help     string
	NTargets int
}
