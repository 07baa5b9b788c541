// Package report renders datapoints to a terminal: per-kind value
// formatting, one-shot output mode selection, and the tabular, full and
// metadata reporters.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joyent/promstat/model"
)

// Reporter consumes one datapoint per sampling round.
type Reporter interface {
	Report(dp *model.Datapoint)
}

// FormatValue renders one metric's observed value as a display string.
//
// Counters report their delta when one exists; a first observation has no
// delta yet, so the raw cumulative value is shown with a "*" suffix instead
// of a guessed zero. Histograms cannot fit a single table cell, so compact
// mode shows a placeholder and full mode a multi-line distribution starting
// with a newline. Pure function; never mutates v.
func FormatValue(v model.MetricValue, compact bool) string {
	if v.Raw == nil && v.Err == nil {
		return "no data"
	}
	if v.Err != nil {
		return v.Err.Error()
	}

	kind := model.Untyped
	if v.Meta != nil {
		kind = v.Meta.Kind
	}

	switch kind {
	case model.Counter:
		if v.Delta != nil {
			return formatNumber(v.Delta.Value)
		}
		return formatNumber(v.Raw.Value) + "*"
	case model.Gauge:
		return formatNumber(v.Raw.Value)
	case model.Histogram:
		if compact {
			return "(histogram)"
		}
		s := v.Raw
		if v.Delta != nil {
			s = v.Delta
		}
		return "\n" + formatDistribution(s.Dist)
	default:
		return "unsupported type"
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatDistribution(d *model.Distribution) string {
	var b strings.Builder
	if d == nil {
		b.WriteString("            (no distribution data)\n")
		return b.String()
	}
	for _, bk := range d.Buckets {
		fmt.Fprintf(&b, "            <= %-10s %d\n", formatUpperBound(bk.UpperBound), bk.Count)
	}
	fmt.Fprintf(&b, "            count %d, sum %s\n", d.Count, formatNumber(d.Sum))
	return b.String()
}

func formatUpperBound(ub float64) string {
	if math.IsInf(ub, +1) {
		return "+Inf"
	}
	return formatNumber(ub)
}
