package estimator

import (
	"github.com/shopspring/decimal"

	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

// Field names reported by Snapshot.Defaulted.
const (
	FieldWeight        = "weight"
	FieldVolume        = "volume"
	FieldMaterial      = "material"
	FieldUnitsPerMonth = "unitsPerMonth"
	FieldDistance      = "shippingDistanceKm"
	FieldPackagingCost = "currentPackagingCostPerUnit"
	FieldShippingCost  = "currentShippingCostPerUnit"
)

// Snapshot is the fully resolved, default-free input of every calculation.
// It is built once by Resolve and cannot be modified afterwards.
type Snapshot struct {
	category      packaging.Category
	weightGrams   float64
	volumeM3      float64
	material      string
	unitsPerMonth int
	distanceKm    float64
	frequency     packaging.ShippingFrequency
	packagingCost decimal.Decimal
	shippingCost  decimal.Decimal
	defaulted     []string
}

// Resolve merges the draft with the category defaults. A not-sure flag wins
// over any value still present in the draft.
func Resolve(specs packaging.Specs, usage packaging.Usage, notSure packaging.NotSureFlags) Snapshot {
	s := Snapshot{
		category:  specs.Category,
		frequency: packaging.ParseShippingFrequency(string(usage.ShippingFrequency)),
	}
	if !s.category.Valid() {
		s.category = packaging.CategoryUnknown
	}
	ref := packaging.Defaults(s.category)

	if w, ok := packaging.Measurement(specs.Weight); ok && !notSure.Weight {
		s.weightGrams = w
	} else {
		s.weightGrams = ref.WeightGrams
		s.markDefaulted(FieldWeight)
	}

	if specs.Dimensions.Complete() && !notSure.Dimensions && !notSure.Volume {
		s.volumeM3 = packaging.VolumeM3(specs.Dimensions)
	} else {
		s.volumeM3 = packaging.MinimalVolumeM3
		s.markDefaulted(FieldVolume)
	}

	if specs.Material != nil && !notSure.Material {
		s.material = *specs.Material
	} else {
		s.markDefaulted(FieldMaterial)
	}

	switch s.unitsPerMonth = usage.UnitsPerMonth; {
	case s.unitsPerMonth <= 0:
		s.unitsPerMonth = packaging.DefaultUnitsPerMonth
		s.markDefaulted(FieldUnitsPerMonth)
	case s.unitsPerMonth > MaxUnitsPerMonth:
		s.unitsPerMonth = MaxUnitsPerMonth
	}

	if d, ok := packaging.Measurement(usage.ShippingDistanceKm); ok && !notSure.Shipping {
		s.distanceKm = d
	} else {
		s.distanceKm = DefaultShippingDistanceKm
		s.markDefaulted(FieldDistance)
	}

	if c, ok := packaging.Measurement(usage.CurrentPackagingCostPerUnit); ok && !notSure.Costs {
		s.packagingCost = decimal.NewFromFloat(c)
	} else {
		s.packagingCost = ref.UnitCost
		s.markDefaulted(FieldPackagingCost)
	}

	if c, ok := packaging.Measurement(usage.CurrentShippingCostPerUnit); ok && !notSure.Costs && !notSure.Shipping {
		s.shippingCost = decimal.NewFromFloat(c)
	} else {
		s.shippingCost = derivedShippingCost(s.weightGrams, s.distanceKm)
		s.markDefaulted(FieldShippingCost)
	}

	return s
}

// derivedShippingCost prices one unit by weight and distance.
func derivedShippingCost(weightGrams, distanceKm float64) decimal.Decimal {
	weightKg := decimal.NewFromFloat(weightGrams).Shift(-3)
	hundredsOfKm := decimal.NewFromFloat(distanceKm).Shift(-2)
	return weightKg.Mul(ShippingRatePerKgPer100Km).Mul(hundredsOfKm)
}

func (s *Snapshot) markDefaulted(field string) {
	s.defaulted = append(s.defaulted, field)
}

// Category is the resolved packaging category.
func (s Snapshot) Category() packaging.Category { return s.category }

// WeightGrams is the resolved package weight.
func (s Snapshot) WeightGrams() float64 { return s.weightGrams }

// VolumeM3 is the resolved package volume in cubic meters.
func (s Snapshot) VolumeM3() float64 { return s.volumeM3 }

// Material is the material description, empty when unknown.
func (s Snapshot) Material() string { return s.material }

// UnitsPerMonth is the resolved monthly volume, at most MaxUnitsPerMonth.
func (s Snapshot) UnitsPerMonth() int { return s.unitsPerMonth }

// DistanceKm is the resolved average shipping distance.
func (s Snapshot) DistanceKm() float64 { return s.distanceKm }

// Frequency is the shipping cadence. No formula depends on it.
func (s Snapshot) Frequency() packaging.ShippingFrequency { return s.frequency }

// PackagingCostPerUnit is the current cost of one package.
func (s Snapshot) PackagingCostPerUnit() decimal.Decimal { return s.packagingCost }

// ShippingCostPerUnit is the current cost of shipping one unit, given or
// derived from weight and distance.
func (s Snapshot) ShippingCostPerUnit() decimal.Decimal { return s.shippingCost }

// AnnualUnits is the yearly unit count every delta is multiplied by.
func (s Snapshot) AnnualUnits() int {
	return s.unitsPerMonth * monthsPerYear
}

// Defaulted lists the fields that were filled from reference constants.
func (s Snapshot) Defaulted() []string {
	out := make([]string, len(s.defaulted))
	copy(out, s.defaulted)
	return out
}
