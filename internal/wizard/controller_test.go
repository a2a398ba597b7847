package wizard

import (
	"strings"
	"testing"

	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

type countingEngine struct {
	calls     int
	snapshots []estimator.Snapshot
}

func (e *countingEngine) Estimate(s estimator.Snapshot) estimator.Results {
	e.calls++
	e.snapshots = append(e.snapshots, s)
	return estimator.Estimate(s)
}

func newCountingController(opts ...Option) (*Controller, *countingEngine) {
	engine := &countingEngine{}
	opts = append([]Option{WithEngine(engine)}, opts...)
	return New(opts...), engine
}

func TestAdvanceComputesOnceOnLastTransition(t *testing.T) {
	t.Parallel()

	c, engine := newCountingController()

	wantSteps := []Step{StepSpecs, StepUsage, StepResults}
	for i, want := range wantSteps {
		if !c.Advance() {
			t.Fatalf("advance %d: expected transition", i)
		}
		if c.Step() != want {
			t.Fatalf("advance %d: expected %s, got %s", i, want, c.Step())
		}
		wantCalls := 0
		if want == StepResults {
			wantCalls = 1
		}
		if engine.calls != wantCalls {
			t.Fatalf("advance %d: expected %d engine calls, got %d", i, wantCalls, engine.calls)
		}
	}

	if c.Advance() {
		t.Fatalf("expected advance from results to be a no-op")
	}
	if engine.calls != 1 {
		t.Fatalf("expected engine to run exactly once, got %d", engine.calls)
	}

	results, ok := c.Results()
	if !ok {
		t.Fatalf("expected results on the results step")
	}
	if results.CostSavings.MaterialSavings.String() != "2400" {
		t.Fatalf("expected default material savings 2400, got %s", results.CostSavings.MaterialSavings)
	}
}

func TestBackTransitions(t *testing.T) {
	t.Parallel()

	c := New()
	if c.Back() {
		t.Fatalf("expected back on the first step to be a no-op")
	}

	c.Advance()
	c.Advance()
	if !c.Back() || c.Step() != StepSpecs {
		t.Fatalf("expected back to specs, got %s", c.Step())
	}
	if !c.Back() || c.Step() != StepCategory {
		t.Fatalf("expected back to category, got %s", c.Step())
	}

	c.Advance()
	c.Advance()
	c.Advance()
	if c.Back() {
		t.Fatalf("expected back on the results step to be a no-op")
	}
	if c.Step() != StepResults {
		t.Fatalf("expected to stay on results, got %s", c.Step())
	}
}

func TestRecomputeAfterBackIsImpossible(t *testing.T) {
	t.Parallel()

	c, engine := newCountingController()
	c.Advance()
	c.Advance()
	c.Back()
	c.Advance()
	if engine.calls != 0 {
		t.Fatalf("expected no computation before results, got %d", engine.calls)
	}
	c.Advance()
	c.Advance()
	if engine.calls != 1 {
		t.Fatalf("expected one computation, got %d", engine.calls)
	}
}

func TestSelectCategoryOnlyOnFirstStep(t *testing.T) {
	t.Parallel()

	c := New()
	if !c.SelectCategory(packaging.CategoryGlass) {
		t.Fatalf("expected category selection on step 1")
	}
	if c.Step() != StepCategory {
		t.Fatalf("expected no auto-advance, got %s", c.Step())
	}

	c.Advance()
	if c.SelectCategory(packaging.CategoryMetal) {
		t.Fatalf("expected category selection to be rejected on step 2")
	}
	if got := c.View().Specs.Category; got != packaging.CategoryGlass {
		t.Fatalf("expected glass to be kept, got %s", got)
	}

	c.Back()
	c.SelectCategory(packaging.Category("bamboo"))
	if got := c.View().Specs.Category; got != packaging.CategoryUnknown {
		t.Fatalf("expected unknown category, got %s", got)
	}
}

func TestDraftFrozenOnResults(t *testing.T) {
	t.Parallel()

	c, engine := newCountingController()
	c.SelectCategory(packaging.CategoryMetal)
	c.Advance()
	if !c.SetSpecs(packaging.Specs{Category: packaging.CategoryFlexible, Weight: packaging.Float(120)}) {
		t.Fatalf("expected specs edit on step 2")
	}
	c.Advance()
	if !c.SetUsage(packaging.Usage{UnitsPerMonth: 5000}) {
		t.Fatalf("expected usage edit on step 3")
	}
	c.Advance()

	if c.SetSpecs(packaging.NewSpecs()) || c.SetUsage(packaging.NewUsage()) || c.SetNotSure(packaging.NotSureFlags{Weight: true}) {
		t.Fatalf("expected edits to be rejected on the results step")
	}

	s := engine.snapshots[0]
	if s.Category() != packaging.CategoryMetal {
		t.Fatalf("expected SetSpecs to keep the selected category, got %s", s.Category())
	}
	if s.WeightGrams() != 120 || s.UnitsPerMonth() != 5000 {
		t.Fatalf("unexpected snapshot weight=%v units=%d", s.WeightGrams(), s.UnitsPerMonth())
	}
}

func TestNotSureOverridesStaleDraft(t *testing.T) {
	t.Parallel()

	c, engine := newCountingController()
	c.Advance()
	c.SetSpecs(packaging.Specs{Weight: packaging.Float(999)})
	c.SetNotSure(packaging.NotSureFlags{Weight: true})
	c.Advance()
	c.Advance()

	if got := engine.snapshots[0].WeightGrams(); got != 50 {
		t.Fatalf("expected default weight 50, got %v", got)
	}
	if got := c.View().DisabledInputs; len(got) != 1 || got[0] != "weight" {
		t.Fatalf("expected weight input disabled, got %v", got)
	}
}

func TestResetFromResults(t *testing.T) {
	t.Parallel()

	c := New()
	c.SelectCategory(packaging.CategoryCardboard)
	c.Advance()
	c.SetSpecs(packaging.Specs{Weight: packaging.Float(10), Material: packaging.String("kraft")})
	c.SetNotSure(packaging.NotSureFlags{Costs: true})
	c.Advance()
	c.SetUsage(packaging.Usage{UnitsPerMonth: 42, ShippingDistanceKm: packaging.Float(10)})
	c.Advance()

	if !c.Reset() {
		t.Fatalf("expected reset to apply")
	}

	v := c.View()
	if v.Step != StepCategory || v.Results != nil {
		t.Fatalf("expected step 1 with no results, got %s / %v", v.Step, v.Results)
	}
	if _, ok := c.Results(); ok {
		t.Fatalf("expected results to be discarded")
	}
	if v.Specs.Category != packaging.CategoryRigidPlastic || v.Specs.Weight != nil || v.Specs.Material != nil {
		t.Fatalf("expected default specs, got %+v", v.Specs)
	}
	if v.Usage.UnitsPerMonth != packaging.DefaultUnitsPerMonth || v.Usage.ShippingDistanceKm != nil {
		t.Fatalf("expected default usage, got %+v", v.Usage)
	}
	if v.NotSure.Any() {
		t.Fatalf("expected flags cleared, got %+v", v.NotSure)
	}
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	var received []Handoff
	c := New(WithSubmitter(SubmitterFunc(func(h Handoff) {
		received = append(received, h)
	})))

	if _, ok := c.Submit(); ok {
		t.Fatalf("expected submit before results to be rejected")
	}

	c.Advance()
	c.Advance()
	c.Advance()

	h, ok := c.Submit()
	if !ok {
		t.Fatalf("expected submit on the results step")
	}
	results, _ := c.Results()
	if !h.TotalAnnualSavings.Equal(results.CostSavings.TotalAnnualSavings) ||
		h.CO2ReductionKgPerYear != results.EnvironmentalImpact.CO2ReductionKgPerYear ||
		h.PlasticReductionKgPerYear != results.EnvironmentalImpact.PlasticReductionKgPerYear {
		t.Fatalf("expected hand-off figures copied from results, got %+v", h)
	}
	if !strings.Contains(h.Message, "$2,751") {
		t.Fatalf("expected summary with total savings, got %q", h.Message)
	}
	if len(received) != 1 {
		t.Fatalf("expected exactly one submission, got %d", len(received))
	}

	if !c.Closed() {
		t.Fatalf("expected wizard to close after submit")
	}
	if _, ok := c.Submit(); ok {
		t.Fatalf("expected second submit to be rejected")
	}
	if c.Reset() || c.Advance() || c.Back() || c.SelectCategory(packaging.CategoryGlass) {
		t.Fatalf("expected closed wizard to ignore operations")
	}
}

func TestViewCapabilities(t *testing.T) {
	t.Parallel()

	c := New()
	v := c.View()
	if !v.CanAdvance || v.CanBack || v.CanSubmit {
		t.Fatalf("unexpected capabilities on step 1: %+v", v)
	}
	c.Advance()
	v = c.View()
	if !v.CanAdvance || !v.CanBack || v.CanSubmit {
		t.Fatalf("unexpected capabilities on step 2: %+v", v)
	}
	c.Advance()
	c.Advance()
	v = c.View()
	if v.CanAdvance || v.CanBack || !v.CanSubmit || v.Results == nil {
		t.Fatalf("unexpected capabilities on step 4: %+v", v)
	}
	if v.StepName != "results" {
		t.Fatalf("expected step name results, got %s", v.StepName)
	}
}

func TestViewIsDetached(t *testing.T) {
	t.Parallel()

	c := New()
	c.Advance()
	c.SetSpecs(packaging.Specs{Weight: packaging.Float(70)})

	v := c.View()
	*v.Specs.Weight = 1
	if got := *c.View().Specs.Weight; got != 70 {
		t.Fatalf("expected draft untouched, got %v", got)
	}
}

func TestObserverSeesTransitions(t *testing.T) {
	t.Parallel()

	var seen []Transition
	c := New(WithObserver(func(tr Transition) { seen = append(seen, tr) }))
	c.Back()
	c.Advance()
	c.Back()
	c.Reset()

	want := []Transition{
		{Event: EventAdvance, From: StepCategory, To: StepSpecs},
		{Event: EventBack, From: StepSpecs, To: StepCategory},
		{Event: EventReset, From: StepCategory, To: StepCategory},
	}
	if len(seen) != len(want) {
		t.Fatalf("expected %d transitions, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d: expected %+v, got %+v", i, want[i], seen[i])
		}
	}
}

func TestDisplayUsesLocale(t *testing.T) {
	t.Parallel()

	c := New(WithLocale("en-GB"))
	if _, ok := c.Display(); ok {
		t.Fatalf("expected no display before results")
	}
	c.Advance()
	c.Advance()
	c.Advance()

	d, ok := c.Display()
	if !ok {
		t.Fatalf("expected display on the results step")
	}
	if d.TotalAnnualSavings != "£2,751" || d.Currency != "GBP" {
		t.Fatalf("unexpected display: %+v", d)
	}
}
