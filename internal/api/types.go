package api

import (
	"time"

	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/format"
	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
	"github.com/eugenenazirov/pouch-estimator/internal/wizard"
)

type estimateRequest struct {
	Specs   specsPayload           `json:"specs"`
	Usage   *usagePayload          `json:"usage"`
	NotSure packaging.NotSureFlags `json:"notSure"`
	Locale  string                 `json:"locale"`
}

type estimateResponse struct {
	Results   estimator.Results `json:"results"`
	Display   format.Display    `json:"display"`
	Summary   string            `json:"summary"`
	Defaulted []string          `json:"defaulted"`
}

type createWizardRequest struct {
	Locale string `json:"locale"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type wizardResponse struct {
	ID      string          `json:"id"`
	Applied bool            `json:"applied"`
	Wizard  wizard.View     `json:"wizard"`
	Display *format.Display `json:"display,omitempty"`
}

func newWizardResponse(id string, applied bool, c *wizard.Controller) wizardResponse {
	resp := wizardResponse{
		ID:      id,
		Applied: applied,
		Wizard:  c.View(),
	}
	if d, ok := c.Display(); ok {
		resp.Display = &d
	}
	return resp
}

type submitResponse struct {
	wizardResponse
	Handoff *wizard.Handoff `json:"handoff,omitempty"`
}

type categoriesResponse struct {
	Categories []packaging.Reference `json:"categories"`
	Reference  packaging.Reference   `json:"reference"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}
