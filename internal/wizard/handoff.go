package wizard

import (
	"github.com/shopspring/decimal"

	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

// Handoff is what the wizard passes to the quote-request collaborator. The
// three headline figures are copied from Results as they are.
type Handoff struct {
	Category                  packaging.Category `json:"category"`
	TotalAnnualSavings        decimal.Decimal    `json:"totalAnnualSavings"`
	CO2ReductionKgPerYear     float64            `json:"co2ReductionKgPerYear"`
	PlasticReductionKgPerYear float64            `json:"plasticReductionKgPerYear"`
	Message                   string             `json:"message"`
	Results                   estimator.Results  `json:"results"`
}

// Submitter receives completed estimates. Implementations must not block the
// caller for long; the wizard does not wait for or retry a submission.
type Submitter interface {
	Submit(h Handoff)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(h Handoff)

func (f SubmitterFunc) Submit(h Handoff) {
	f(h)
}

type discardSubmitter struct{}

func (discardSubmitter) Submit(Handoff) {}
