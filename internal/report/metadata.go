package report

import (
	"fmt"
	"io"

	"github.com/joyent/promstat/model"
)

// Metadata prints the one-shot metric listing. It never consumes
// datapoints; list mode ends after a single table.
type Metadata struct {
	out     io.Writer
	verbose bool
}

func NewMetadata(out io.Writer, verbose bool) *Metadata {
	return &Metadata{out: out, verbose: verbose}
}

func (m *Metadata) Report(infos []model.MetricInfo) {
	fmt.Fprintf(m.out, "%-10s %-40s %6s\n", "TYPE", "METRIC", "NTARGS")
	for _, info := range infos {
		fmt.Fprintf(m.out, "%-10s %-40s %6d\n", info.Kind, info.Name, info.NTargets)
		if m.verbose && info.Help != "" {
			fmt.Fprintf(m.out, "    %s\n", info.Help)
		}
	}
}
