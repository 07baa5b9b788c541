package report

import (
	"github.com/joyent/promstat/internal/config"
	"github.com/joyent/promstat/model"
)

// Selector commits the run to one output mode. An explicit -o mode is
// committed up front; otherwise the first datapoint decides, and the
// decision never changes afterwards, so a histogram showing up on a later
// round cannot flip the report layout mid-run.
type Selector struct {
	mode    config.OutputMode
	decided bool
}

func NewSelector(mode config.OutputMode) *Selector {
	return &Selector{mode: mode, decided: mode != config.OutputAuto}
}

// Decide returns the committed mode, inspecting dp only on the first call.
func (s *Selector) Decide(dp *model.Datapoint) config.OutputMode {
	if s.decided {
		return s.mode
	}
	s.mode = pickMode(dp)
	s.decided = true
	return s.mode
}

// pickMode goes compact only when every value of the first target carries
// metadata and each kind fits a single table cell.
func pickMode(dp *model.Datapoint) config.OutputMode {
	if len(dp.Targets) == 0 {
		return config.OutputFull
	}
	for _, v := range dp.Targets[0].Values {
		if v.Meta == nil {
			return config.OutputFull
		}
		if v.Meta.Kind != model.Counter && v.Meta.Kind != model.Gauge {
			return config.OutputFull
		}
	}
	return config.OutputCompact
}
