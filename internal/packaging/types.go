package packaging

import "strings"

// Category classifies the packaging a customer currently uses.
type Category string

const (
	CategoryRigidPlastic Category = "rigid-plastic"
	CategoryGlass        Category = "glass"
	CategoryMetal        Category = "metal"
	CategoryCardboard    Category = "cardboard"
	CategoryFlexible     Category = "flexible"
	CategoryUnknown      Category = "unknown"
)

// DefaultCategory is the category a fresh wizard starts with.
const DefaultCategory = CategoryRigidPlastic

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryRigidPlastic,
		CategoryGlass,
		CategoryMetal,
		CategoryCardboard,
		CategoryFlexible,
		CategoryUnknown,
	}
}

// ParseCategory maps a raw value onto a Category. Anything unrecognised is
// CategoryUnknown.
func ParseCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.Valid() {
		return c
	}
	return CategoryUnknown
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRigidPlastic, CategoryGlass, CategoryMetal,
		CategoryCardboard, CategoryFlexible, CategoryUnknown:
		return true
	}
	return false
}

// ShippingFrequency is how often the customer ships.
type ShippingFrequency string

const (
	ShippingDaily   ShippingFrequency = "daily"
	ShippingWeekly  ShippingFrequency = "weekly"
	ShippingMonthly ShippingFrequency = "monthly"
)

// ParseShippingFrequency falls back to ShippingMonthly for unknown values.
func ParseShippingFrequency(raw string) ShippingFrequency {
	switch f := ShippingFrequency(strings.ToLower(strings.TrimSpace(raw))); f {
	case ShippingDaily, ShippingWeekly, ShippingMonthly:
		return f
	}
	return ShippingMonthly
}

// DefaultUnitsPerMonth is used when no positive monthly volume is supplied.
const DefaultUnitsPerMonth = 1000

// Dimensions are package measurements in millimeters. A nil field is absent.
type Dimensions struct {
	Length *float64 `json:"length,omitempty" yaml:"length,omitempty"`
	Width  *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height *float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// Complete reports whether every dimension is a usable measurement.
func (d Dimensions) Complete() bool {
	_, okL := Measurement(d.Length)
	_, okW := Measurement(d.Width)
	_, okH := Measurement(d.Height)
	return okL && okW && okH
}

// Specs is the physical description of the current package.
type Specs struct {
	Category   Category   `json:"category" yaml:"category"`
	Dimensions Dimensions `json:"dimensions" yaml:"dimensions"`
	// Weight in grams.
	Weight   *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Material *string  `json:"material,omitempty" yaml:"material,omitempty"`
}

// Usage describes volume, logistics and current spend.
type Usage struct {
	UnitsPerMonth               int               `json:"unitsPerMonth" yaml:"units_per_month"`
	ShippingDistanceKm          *float64          `json:"shippingDistanceKm,omitempty" yaml:"shipping_distance_km,omitempty"`
	ShippingFrequency           ShippingFrequency `json:"shippingFrequency" yaml:"shipping_frequency"`
	CurrentPackagingCostPerUnit *float64          `json:"currentPackagingCostPerUnit,omitempty" yaml:"current_packaging_cost_per_unit,omitempty"`
	CurrentShippingCostPerUnit  *float64          `json:"currentShippingCostPerUnit,omitempty" yaml:"current_shipping_cost_per_unit,omitempty"`
}

// NotSureFlags force default resolution of the matching fields, whatever value
// is still sitting in the draft.
type NotSureFlags struct {
	Dimensions bool `json:"dimensions" yaml:"dimensions"`
	Weight     bool `json:"weight" yaml:"weight"`
	Material   bool `json:"material" yaml:"material"`
	Volume     bool `json:"volume" yaml:"volume"`
	Shipping   bool `json:"shipping" yaml:"shipping"`
	Costs      bool `json:"costs" yaml:"costs"`
}

// Any reports whether at least one flag is set.
func (f NotSureFlags) Any() bool {
	return f.Dimensions || f.Weight || f.Material || f.Volume || f.Shipping || f.Costs
}

// DisabledInputs lists the input controls a UI must disable for the flags.
func (f NotSureFlags) DisabledInputs() []string {
	out := []string{}
	if f.Dimensions || f.Volume {
		out = append(out, "length", "width", "height")
	}
	if f.Weight {
		out = append(out, "weight")
	}
	if f.Material {
		out = append(out, "material")
	}
	if f.Shipping {
		out = append(out, "shippingDistanceKm", "currentShippingCostPerUnit")
	}
	if f.Costs {
		out = append(out, "currentPackagingCostPerUnit")
		if !f.Shipping {
			out = append(out, "currentShippingCostPerUnit")
		}
	}
	return out
}

// NewSpecs returns the specs a fresh wizard starts with.
func NewSpecs() Specs {
	return Specs{Category: DefaultCategory}
}

// NewUsage returns the usage a fresh wizard starts with.
func NewUsage() Usage {
	return Usage{
		UnitsPerMonth:     DefaultUnitsPerMonth,
		ShippingFrequency: ShippingMonthly,
	}
}

// Float returns a pointer to v, for building optional measurements.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Clone returns a deep copy of s.
func (s Specs) Clone() Specs {
	s.Dimensions = Dimensions{
		Length: cloneFloat(s.Dimensions.Length),
		Width:  cloneFloat(s.Dimensions.Width),
		Height: cloneFloat(s.Dimensions.Height),
	}
	s.Weight = cloneFloat(s.Weight)
	if s.Material != nil {
		s.Material = String(*s.Material)
	}
	return s
}

// Clone returns a deep copy of u.
func (u Usage) Clone() Usage {
	u.ShippingDistanceKm = cloneFloat(u.ShippingDistanceKm)
	u.CurrentPackagingCostPerUnit = cloneFloat(u.CurrentPackagingCostPerUnit)
	u.CurrentShippingCostPerUnit = cloneFloat(u.CurrentShippingCostPerUnit)
	return u
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v)
}
