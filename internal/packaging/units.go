package packaging

import "math"

const (
	// MinimalVolumeM3 is assumed when any dimension is missing (100 cm³).
	MinimalVolumeM3 = 1e-4

	cubicMillimetersPerM3 = 1e9
	gramsPerKg            = 1000.0
)

// Measurement reports a usable value: present, finite and strictly positive.
// Anything else counts as absent and must be defaulted.
func Measurement(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	x := *v
	if math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 {
		return 0, false
	}
	return x, true
}

// VolumeM3 converts millimeter dimensions to cubic meters.
func VolumeM3(d Dimensions) float64 {
	if !d.Complete() {
		return MinimalVolumeM3
	}
	return (*d.Length * *d.Width * *d.Height) / cubicMillimetersPerM3
}

// GramsToKg converts grams to kilograms.
func GramsToKg(grams float64) float64 {
	return grams / gramsPerKg
}
