package packaging

import "github.com/shopspring/decimal"

// Reference holds the constants assumed for a category when the customer
// cannot supply a measurement.
type Reference struct {
	Category    Category        `json:"category" yaml:"category"`
	WeightGrams float64         `json:"weightGrams" yaml:"weight_grams"`
	UnitCost    decimal.Decimal `json:"unitCost" yaml:"unit_cost"`
}

// Defaults resolves the reference constants for a category. Unknown packaging
// is treated as rigid plastic.
func Defaults(c Category) Reference {
	switch c {
	case CategoryRigidPlastic, CategoryUnknown:
		return Reference{Category: c, WeightGrams: 50, UnitCost: decimal.New(50, -2)}
	case CategoryGlass:
		return Reference{Category: c, WeightGrams: 250, UnitCost: decimal.New(80, -2)}
	case CategoryMetal:
		return Reference{Category: c, WeightGrams: 80, UnitCost: decimal.New(65, -2)}
	case CategoryCardboard:
		return Reference{Category: c, WeightGrams: 40, UnitCost: decimal.New(35, -2)}
	case CategoryFlexible:
		return Reference{Category: c, WeightGrams: 15, UnitCost: decimal.New(30, -2)}
	default:
		return Defaults(CategoryUnknown)
	}
}

// DefaultWeight returns the reference unit weight in grams.
func DefaultWeight(c Category) float64 {
	return Defaults(c).WeightGrams
}

// DefaultUnitCost returns the reference packaging cost per unit.
func DefaultUnitCost(c Category) decimal.Decimal {
	return Defaults(c).UnitCost
}

// Flexible is the reference pouch format every saving is measured against.
func Flexible() Reference {
	return Defaults(CategoryFlexible)
}

// DefaultTable returns the reference constants of every category.
func DefaultTable() []Reference {
	cats := Categories()
	out := make([]Reference, 0, len(cats))
	for _, c := range cats {
		out = append(out, Defaults(c))
	}
	return out
}
