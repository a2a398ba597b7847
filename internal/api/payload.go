package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

// Form inputs arrive loosely typed. A numeric field holding anything that is
// not a number, or a string that parses as one, is treated as absent so that
// the estimator falls back to its default instead of the request failing.

// lenientFloat decodes a JSON number or numeric string.
type lenientFloat struct {
	value *float64
}

func (f *lenientFloat) UnmarshalJSON(data []byte) error {
	f.value = nil
	if v, ok := parseNumber(data); ok {
		f.value = &v
	}
	return nil
}

// lenientInt decodes like lenientFloat and truncates toward zero.
type lenientInt struct {
	value int
}

func (n *lenientInt) UnmarshalJSON(data []byte) error {
	n.value = 0
	v, ok := parseNumber(data)
	if !ok || math.IsNaN(v) {
		return nil
	}
	switch {
	case v >= math.MaxInt64:
		n.value = math.MaxInt64
	case v <= math.MinInt64:
		n.value = math.MinInt64
	default:
		n.value = int(v)
	}
	return nil
}

// lenientString keeps JSON strings and drops every other value.
type lenientString struct {
	value *string
}

func (s *lenientString) UnmarshalJSON(data []byte) error {
	s.value = nil
	var v string
	if err := json.Unmarshal(data, &v); err == nil {
		s.value = &v
	}
	return nil
}

func (s lenientString) String() string {
	if s.value == nil {
		return ""
	}
	return *s.value
}

func parseNumber(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

type dimensionsPayload struct {
	Length lenientFloat `json:"length"`
	Width  lenientFloat `json:"width"`
	Height lenientFloat `json:"height"`
}

// UnmarshalJSON leaves every dimension absent when the value is not an object.
func (d *dimensionsPayload) UnmarshalJSON(data []byte) error {
	type plain dimensionsPayload
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*d = dimensionsPayload{}
		return nil
	}
	*d = dimensionsPayload(p)
	return nil
}

type specsPayload struct {
	Category   lenientString     `json:"category"`
	Dimensions dimensionsPayload `json:"dimensions"`
	Weight     lenientFloat      `json:"weight"`
	Material   lenientString     `json:"material"`
}

func (p specsPayload) specs() packaging.Specs {
	specs := packaging.Specs{
		Category: packaging.DefaultCategory,
		Dimensions: packaging.Dimensions{
			Length: p.Dimensions.Length.value,
			Width:  p.Dimensions.Width.value,
			Height: p.Dimensions.Height.value,
		},
		Weight:   p.Weight.value,
		Material: p.Material.value,
	}
	if raw := p.Category.String(); raw != "" {
		specs.Category = packaging.ParseCategory(raw)
	}
	return specs
}

type usagePayload struct {
	UnitsPerMonth               lenientInt    `json:"unitsPerMonth"`
	ShippingDistanceKm          lenientFloat  `json:"shippingDistanceKm"`
	ShippingFrequency           lenientString `json:"shippingFrequency"`
	CurrentPackagingCostPerUnit lenientFloat  `json:"currentPackagingCostPerUnit"`
	CurrentShippingCostPerUnit  lenientFloat  `json:"currentShippingCostPerUnit"`
}

func (p usagePayload) usage() packaging.Usage {
	return packaging.Usage{
		UnitsPerMonth:               p.UnitsPerMonth.value,
		ShippingDistanceKm:          p.ShippingDistanceKm.value,
		ShippingFrequency:           packaging.ParseShippingFrequency(p.ShippingFrequency.String()),
		CurrentPackagingCostPerUnit: p.CurrentPackagingCostPerUnit.value,
		CurrentShippingCostPerUnit:  p.CurrentShippingCostPerUnit.value,
	}
}
