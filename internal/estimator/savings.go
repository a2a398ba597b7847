package estimator

import (
	"github.com/shopspring/decimal"

	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

// ComputeSavings derives annual material, shipping and storage savings.
func ComputeSavings(s Snapshot) CostSavings {
	annual := decimal.NewFromInt(int64(s.AnnualUnits()))

	out := CostSavings{
		MaterialSavings: materialSavings(s, annual),
		ShippingSavings: shippingSavings(s, annual),
		StorageSavings:  storageSavings(s, annual),
	}
	out.TotalAnnualSavings = out.MaterialSavings.Add(out.ShippingSavings).Add(out.StorageSavings)
	return out
}

// materialSavings is zero for customers already on the reference format.
func materialSavings(s Snapshot, annual decimal.Decimal) decimal.Decimal {
	if s.Category() == packaging.CategoryFlexible {
		return decimal.Zero
	}
	delta := s.PackagingCostPerUnit().Sub(packaging.Flexible().UnitCost)
	return clampZero(delta.Mul(annual))
}

func shippingSavings(s Snapshot, annual decimal.Decimal) decimal.Decimal {
	current := s.ShippingCostPerUnit()
	reduced := current.Mul(decimal.NewFromInt(1).Sub(ShippingReduction))
	return clampZero(current.Sub(reduced).Mul(annual))
}

func storageSavings(s Snapshot, annual decimal.Decimal) decimal.Decimal {
	saved := decimal.NewFromFloat(s.VolumeM3()).Mul(VolumeReduction)
	months := decimal.NewFromInt(monthsPerYear)
	return clampZero(saved.Mul(annual).Mul(StorageCostPerM3PerMonth).Mul(months))
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
