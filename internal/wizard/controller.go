package wizard

import (
	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/format"
	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

// Controller is one wizard run.
type Controller struct {
	step    Step
	specs   packaging.Specs
	usage   packaging.Usage
	notSure packaging.NotSureFlags
	results *estimator.Results
	closed  bool

	engine    estimator.Engine
	submitter Submitter
	formatter format.Formatter
	observer  func(Transition)
}

// Option configures a Controller.
type Option func(*Controller)

// WithEngine overrides the estimator, primarily for tests.
func WithEngine(engine estimator.Engine) Option {
	return func(c *Controller) {
		c.engine = engine
	}
}

// WithSubmitter sets the collaborator that receives submitted estimates.
func WithSubmitter(s Submitter) Option {
	return func(c *Controller) {
		c.submitter = s
	}
}

// WithLocale sets the locale of the hand-off summary.
func WithLocale(locale string) Option {
	return func(c *Controller) {
		c.formatter = format.New(locale)
	}
}

// WithObserver registers a callback for every applied transition.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// New creates a Controller positioned on the category step.
func New(opts ...Option) *Controller {
	c := &Controller{
		engine:    estimator.New(),
		submitter: discardSubmitter{},
		formatter: format.New(format.DefaultLocale),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.clear()
	return c
}

func (c *Controller) clear() {
	c.step = StepCategory
	c.specs = packaging.NewSpecs()
	c.usage = packaging.NewUsage()
	c.notSure = packaging.NotSureFlags{}
	c.results = nil
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.step
}

// Closed reports whether the wizard was submitted.
func (c *Controller) Closed() bool {
	return c.closed
}

// Results returns a copy of the computed results, if any.
func (c *Controller) Results() (estimator.Results, bool) {
	if c.results == nil {
		return estimator.Results{}, false
	}
	return *c.results, true
}

// editable reports whether the draft may still change.
func (c *Controller) editable() bool {
	return !c.closed && c.step != StepResults
}

// SelectCategory sets the packaging category. Only valid on the category step.
func (c *Controller) SelectCategory(category packaging.Category) bool {
	if c.closed || c.step != StepCategory {
		return false
	}
	if !category.Valid() {
		category = packaging.CategoryUnknown
	}
	c.specs.Category = category
	return true
}

// SetSpecs replaces dimensions, weight and material. The category is kept.
func (c *Controller) SetSpecs(specs packaging.Specs) bool {
	if !c.editable() {
		return false
	}
	category := c.specs.Category
	c.specs = specs.Clone()
	c.specs.Category = category
	return true
}

// SetUsage replaces the usage draft.
func (c *Controller) SetUsage(usage packaging.Usage) bool {
	if !c.editable() {
		return false
	}
	c.usage = usage.Clone()
	return true
}

// SetNotSure replaces the not-sure flags.
func (c *Controller) SetNotSure(flags packaging.NotSureFlags) bool {
	if !c.editable() {
		return false
	}
	c.notSure = flags
	return true
}

// Advance moves forward one step. Leaving the usage step freezes the draft
// and computes results. Returns false when there is nowhere to go.
func (c *Controller) Advance() bool {
	return c.fire(EventAdvance)
}

// Back moves back one step. Returns false on the first and last step.
func (c *Controller) Back() bool {
	return c.fire(EventBack)
}

func (c *Controller) fire(ev Event) bool {
	if c.closed {
		return false
	}
	t, ok := lookup(c.step, ev)
	if !ok {
		return false
	}
	if t.compute {
		snapshot := estimator.Resolve(c.specs, c.usage, c.notSure)
		results := c.engine.Estimate(snapshot)
		c.results = &results
	}
	c.move(ev, t.to)
	return true
}

// Reset discards the draft and results and returns to the category step.
func (c *Controller) Reset() bool {
	if c.closed {
		return false
	}
	from := c.step
	c.clear()
	c.notify(Transition{Event: EventReset, From: from, To: StepCategory})
	return true
}

// Submit hands the results to the submitter and closes the wizard. Only
// valid on the results step.
func (c *Controller) Submit() (Handoff, bool) {
	if c.closed || c.step != StepResults || c.results == nil {
		return Handoff{}, false
	}
	results := *c.results
	h := Handoff{
		Category:                  c.specs.Category,
		TotalAnnualSavings:        results.CostSavings.TotalAnnualSavings,
		CO2ReductionKgPerYear:     results.EnvironmentalImpact.CO2ReductionKgPerYear,
		PlasticReductionKgPerYear: results.EnvironmentalImpact.PlasticReductionKgPerYear,
		Message:                   c.formatter.Summary(results),
		Results:                   results,
	}
	c.submitter.Submit(h)
	c.closed = true
	c.notify(Transition{Event: EventSubmit, From: StepResults, To: StepResults})
	return h, true
}

func (c *Controller) move(ev Event, to Step) {
	from := c.step
	c.step = to
	c.notify(Transition{Event: ev, From: from, To: to})
}

func (c *Controller) notify(t Transition) {
	if c.observer != nil {
		c.observer(t)
	}
}
