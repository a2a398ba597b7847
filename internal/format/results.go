package format

import (
	"fmt"

	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
)

// Display holds every result figure as a display string.
type Display struct {
	Locale                string `json:"locale" yaml:"locale"`
	Currency              string `json:"currency" yaml:"currency"`
	MaterialSavings       string `json:"materialSavings" yaml:"material_savings"`
	ShippingSavings       string `json:"shippingSavings" yaml:"shipping_savings"`
	StorageSavings        string `json:"storageSavings" yaml:"storage_savings"`
	TotalAnnualSavings    string `json:"totalAnnualSavings" yaml:"total_annual_savings"`
	CO2Reduction          string `json:"co2Reduction" yaml:"co2_reduction"`
	PlasticReduction      string `json:"plasticReduction" yaml:"plastic_reduction"`
	WaterSavings          string `json:"waterSavings" yaml:"water_savings"`
	TreesEquivalent       string `json:"treesEquivalent" yaml:"trees_equivalent"`
	StorageSpaceSaved     string `json:"storageSpaceSaved" yaml:"storage_space_saved"`
	ShippingEfficiency    string `json:"shippingEfficiency" yaml:"shipping_efficiency"`
	HandlingTimeReduction string `json:"handlingTimeReduction" yaml:"handling_time_reduction"`
}

// Results renders every figure of r.
func (f Formatter) Results(r estimator.Results) Display {
	c, e, o := r.CostSavings, r.EnvironmentalImpact, r.OperationalBenefits
	return Display{
		Locale:                f.Locale(),
		Currency:              f.CurrencyCode(),
		MaterialSavings:       f.Currency(c.MaterialSavings),
		ShippingSavings:       f.Currency(c.ShippingSavings),
		StorageSavings:        f.Currency(c.StorageSavings),
		TotalAnnualSavings:    f.Currency(c.TotalAnnualSavings),
		CO2Reduction:          f.Number(e.CO2ReductionKgPerYear),
		PlasticReduction:      f.Number(e.PlasticReductionKgPerYear),
		WaterSavings:          f.Number(e.WaterSavingsLitersPerYear),
		TreesEquivalent:       f.Number(float64(e.TreesEquivalent)),
		StorageSpaceSaved:     FormatPercentage(o.StorageSpaceSavedPct),
		ShippingEfficiency:    FormatPercentage(o.ShippingEfficiencyPct),
		HandlingTimeReduction: FormatPercentage(o.HandlingTimeReductionPct),
	}
}

// Summary is the hand-off text that pre-fills a quote request. It embeds the
// total savings, CO2 and plastic reduction straight from r.
func (f Formatter) Summary(r estimator.Results) string {
	return fmt.Sprintf(
		"I'm interested in switching to flexible pouches. The savings estimator shows "+
			"estimated annual savings of %s, a CO2 reduction of %s kg per year "+
			"and a plastic reduction of %s kg per year.",
		f.Currency(r.CostSavings.TotalAnnualSavings),
		f.Number(r.EnvironmentalImpact.CO2ReductionKgPerYear),
		f.Number(r.EnvironmentalImpact.PlasticReductionKgPerYear),
	)
}
