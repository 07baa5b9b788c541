package report

import (
	"fmt"
	"io"
	"time"

	"github.com/joyent/promstat/model"
)

// Full prints a human-readable multi-line block per datapoint: the
// timestamp, then each target's label with one line per metric beneath it,
// and a blank line as a datapoint separator.
type Full struct {
	out io.Writer
}

func NewFull(out io.Writer) *Full {
	return &Full{out: out}
}

func (f *Full) Report(dp *model.Datapoint) {
	fmt.Fprintln(f.out, dp.Time.Format(time.RFC3339))
	for _, ts := range dp.Targets {
		fmt.Fprintf(f.out, "    %s\n", ts.Label)
		for _, v := range ts.Values {
			fmt.Fprintf(f.out, "        %s: %s\n", v.Name, FormatValue(v, false))
		}
	}
	fmt.Fprintln(f.out)
}
