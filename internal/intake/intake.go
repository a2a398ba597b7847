// Package intake receives completed estimates handed off by the wizard. The
// quote-request form itself lives elsewhere; this side only records them.
package intake

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/pouch-estimator/internal/metrics"
	"github.com/eugenenazirov/pouch-estimator/internal/wizard"
)

// LogSubmitter writes every hand-off to the structured log.
type LogSubmitter struct {
	logger *zap.Logger
}

// NewLogSubmitter creates a submitter that logs through logger.
func NewLogSubmitter(logger *zap.Logger) *LogSubmitter {
	return &LogSubmitter{logger: logger}
}

// Submit records the hand-off. It never blocks on anything but the logger.
func (s *LogSubmitter) Submit(h wizard.Handoff) {
	metrics.Submissions.WithLabelValues(string(h.Category)).Inc()
	s.logger.Info("estimate submitted",
		zap.String("category", string(h.Category)),
		zap.String("total_annual_savings", h.TotalAnnualSavings.String()),
		zap.Float64("co2_reduction_kg", h.CO2ReductionKgPerYear),
		zap.Float64("plastic_reduction_kg", h.PlasticReductionKgPerYear),
		zap.String("message", h.Message),
	)
}
