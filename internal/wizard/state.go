package wizard

import "fmt"

// Step is a position in the wizard.
type Step int

const (
	StepCategory Step = iota + 1
	StepSpecs
	StepUsage
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepCategory:
		return "category"
	case StepSpecs:
		return "specs"
	case StepUsage:
		return "usage"
	case StepResults:
		return "results"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Event names a requested transition.
type Event string

const (
	EventAdvance Event = "advance"
	EventBack    Event = "back"
	EventReset   Event = "reset"
	EventSubmit  Event = "submit"
)

type transition struct {
	to      Step
	compute bool
}

// transitions is the complete step graph. A missing entry is a no-op. Only
// usage→results computes, so results are produced at most once per run.
var transitions = map[Step]map[Event]transition{
	StepCategory: {
		EventAdvance: {to: StepSpecs},
	},
	StepSpecs: {
		EventAdvance: {to: StepUsage},
		EventBack:    {to: StepCategory},
	},
	StepUsage: {
		EventAdvance: {to: StepResults, compute: true},
		EventBack:    {to: StepSpecs},
	},
	StepResults: {},
}

func lookup(from Step, ev Event) (transition, bool) {
	t, ok := transitions[from][ev]
	return t, ok
}

// Transition records an applied state change.
type Transition struct {
	Event Event
	From  Step
	To    Step
}
