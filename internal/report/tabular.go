package report

import (
	"fmt"
	"io"

	"github.com/joyent/promstat/model"
)

const (
	timeColWidth   = 8
	targetColWidth = 35
	minMetricWidth = 6
)

// Tabular prints one row per target per datapoint. The column layout is
// built from the configured metric list on the first datapoint and never
// recomputed.
type Tabular struct {
	out     io.Writer
	metrics []string
	widths  map[string]int
	built   bool
}

func NewTabular(out io.Writer, metrics []string) *Tabular {
	return &Tabular{out: out, metrics: metrics}
}

func (t *Tabular) Report(dp *model.Datapoint) {
	if !t.built {
		t.buildLayout()
	}
	for _, ts := range dp.Targets {
		fmt.Fprintf(t.out, "%-*s %-*s", timeColWidth, dp.Time.Format("15:04:05"), targetColWidth, ts.Label)
		for _, v := range ts.Values {
			fmt.Fprintf(t.out, " %*s", t.width(v.Name), FormatValue(v, true))
		}
		fmt.Fprintln(t.out)
	}
}

func (t *Tabular) buildLayout() {
	t.widths = make(map[string]int, len(t.metrics))
	fmt.Fprintf(t.out, "%-*s %-*s", timeColWidth, "TIME", targetColWidth, "TARGET")
	for _, name := range t.metrics {
		t.widths[name] = columnWidth(name)
		fmt.Fprintf(t.out, " %*s", t.widths[name], name)
	}
	fmt.Fprintln(t.out)
	t.built = true
}

func (t *Tabular) width(name string) int {
	if w, ok := t.widths[name]; ok {
		return w
	}
	return columnWidth(name)
}

func columnWidth(name string) int {
	if len(name) < minMetricWidth {
		return minMetricWidth
	}
	return len(name)
}
