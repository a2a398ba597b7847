package wizard

import (
	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/format"
	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

// View is a detached copy of the wizard state for rendering.
type View struct {
	Step           Step                   `json:"step"`
	StepName       string                 `json:"stepName"`
	Specs          packaging.Specs        `json:"specs"`
	Usage          packaging.Usage        `json:"usage"`
	NotSure        packaging.NotSureFlags `json:"notSure"`
	DisabledInputs []string               `json:"disabledInputs"`
	Results        *estimator.Results     `json:"results"`
	CanAdvance     bool                   `json:"canAdvance"`
	CanBack        bool                   `json:"canBack"`
	CanSubmit      bool                   `json:"canSubmit"`
	Closed         bool                   `json:"closed"`
}

// View snapshots the current state.
func (c *Controller) View() View {
	v := View{
		Step:           c.step,
		StepName:       c.step.String(),
		Specs:          c.specs.Clone(),
		Usage:          c.usage.Clone(),
		NotSure:        c.notSure,
		DisabledInputs: c.notSure.DisabledInputs(),
		Closed:         c.closed,
	}
	if c.results != nil {
		r := *c.results
		v.Results = &r
	}
	if !c.closed {
		_, v.CanAdvance = lookup(c.step, EventAdvance)
		_, v.CanBack = lookup(c.step, EventBack)
		v.CanSubmit = c.step == StepResults && c.results != nil
	}
	return v
}

// Display renders the results for the wizard's locale.
func (c *Controller) Display() (format.Display, bool) {
	if c.results == nil {
		return format.Display{}, false
	}
	return c.formatter.Results(*c.results), true
}
