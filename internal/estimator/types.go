package estimator

import "github.com/shopspring/decimal"

// CostSavings are annual currency figures. Components are never negative.
type CostSavings struct {
	MaterialSavings    decimal.Decimal `json:"materialSavings" yaml:"material_savings"`
	ShippingSavings    decimal.Decimal `json:"shippingSavings" yaml:"shipping_savings"`
	StorageSavings     decimal.Decimal `json:"storageSavings" yaml:"storage_savings"`
	TotalAnnualSavings decimal.Decimal `json:"totalAnnualSavings" yaml:"total_annual_savings"`
}

// EnvironmentalImpact are annual physical reductions. Values are never negative.
type EnvironmentalImpact struct {
	CO2ReductionKgPerYear     float64 `json:"co2ReductionKgPerYear" yaml:"co2_reduction_kg_per_year"`
	PlasticReductionKgPerYear float64 `json:"plasticReductionKgPerYear" yaml:"plastic_reduction_kg_per_year"`
	WaterSavingsLitersPerYear float64 `json:"waterSavingsLitersPerYear" yaml:"water_savings_liters_per_year"`
	TreesEquivalent           int     `json:"treesEquivalent" yaml:"trees_equivalent"`
}

// OperationalBenefits are benchmark percentages.
type OperationalBenefits struct {
	StorageSpaceSavedPct     float64 `json:"storageSpaceSavedPct" yaml:"storage_space_saved_pct"`
	ShippingEfficiencyPct    float64 `json:"shippingEfficiencyPct" yaml:"shipping_efficiency_pct"`
	HandlingTimeReductionPct float64 `json:"handlingTimeReductionPct" yaml:"handling_time_reduction_pct"`
}

// Results is the complete outcome of one estimator run.
type Results struct {
	CostSavings         CostSavings         `json:"costSavings" yaml:"cost_savings"`
	EnvironmentalImpact EnvironmentalImpact `json:"environmentalImpact" yaml:"environmental_impact"`
	OperationalBenefits OperationalBenefits `json:"operationalBenefits" yaml:"operational_benefits"`
}

// Engine describes the behaviour required from a savings estimator.
type Engine interface {
	Estimate(snapshot Snapshot) Results
}
