package estimator

import (
	"math"

	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

// ComputeEnvironmentalImpact derives annual CO2, plastic and water reductions.
// A snapshot already on the reference format saves no CO2 or plastic.
func ComputeEnvironmentalImpact(s Snapshot) EnvironmentalImpact {
	annual := float64(s.AnnualUnits())
	weight := s.WeightGrams()

	var out EnvironmentalImpact
	if s.Category() != packaging.CategoryFlexible {
		delta := weight - packaging.Flexible().WeightGrams
		out.CO2ReductionKgPerYear = nonNegative(delta * CO2KgPerGram * annual)
		out.PlasticReductionKgPerYear = nonNegative(delta * annual / 1000)
	}
	out.WaterSavingsLitersPerYear = nonNegative(weight * WaterLitersPerGram * WaterReduction * annual)

	trees := math.Round((out.CO2ReductionKgPerYear / 1000) * TreesPerTonCO2)
	if trees > 0 {
		out.TreesEquivalent = int(trees)
	}
	return out
}

// OperationalBenefitsReference returns the benchmark improvements. They do
// not depend on the customer's input.
func OperationalBenefitsReference() OperationalBenefits {
	return OperationalBenefits{
		StorageSpaceSavedPct:     StorageSpaceSavedPct,
		ShippingEfficiencyPct:    ShippingEfficiencyPct,
		HandlingTimeReductionPct: HandlingTimeReductionPct,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
