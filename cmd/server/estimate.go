package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/format"
	"github.com/eugenenazirov/pouch-estimator/internal/packaging"
)

// estimateInput mirrors the wizard inputs as command-line flags. Zero
// numeric values mean the field was not supplied.
type estimateInput struct {
	Category  *string
	Length    *float64
	Width     *float64
	Height    *float64
	Weight    *float64
	Material  *string
	Units     *int
	Distance  *float64
	Frequency *string
	Packaging *float64
	Shipping  *float64
	NotSure   *[]string
	Locale    *string
}

type estimateOutput struct {
	Category  packaging.Category `yaml:"category"`
	Results   estimator.Results  `yaml:"results"`
	Display   format.Display     `yaml:"display"`
	Summary   string             `yaml:"summary"`
	Defaulted []string           `yaml:"defaulted,omitempty"`
}

func registerEstimateFlags(cmd *kingpin.CmdClause) estimateInput {
	return estimateInput{
		Category:  cmd.Flag("category", "Current packaging category").Default(string(packaging.DefaultCategory)).String(),
		Length:    cmd.Flag("length", "Package length in millimeters").Float64(),
		Width:     cmd.Flag("width", "Package width in millimeters").Float64(),
		Height:    cmd.Flag("height", "Package height in millimeters").Float64(),
		Weight:    cmd.Flag("weight", "Package weight in grams").Float64(),
		Material:  cmd.Flag("material", "Free-text material description").String(),
		Units:     cmd.Flag("units", "Units shipped per month").Default(fmt.Sprint(packaging.DefaultUnitsPerMonth)).Int(),
		Distance:  cmd.Flag("distance", "Average shipping distance in kilometers").Float64(),
		Frequency: cmd.Flag("frequency", "Shipping frequency").Default(string(packaging.ShippingMonthly)).Enum("daily", "weekly", "monthly"),
		Packaging: cmd.Flag("packaging-cost", "Current packaging cost per unit").Float64(),
		Shipping:  cmd.Flag("shipping-cost", "Current shipping cost per unit").Float64(),
		NotSure: cmd.Flag("not-sure", "Fields to resolve from defaults (repeatable)").
			Enums("dimensions", "weight", "material", "volume", "shipping", "costs"),
		Locale: cmd.Flag("locale", "BCP 47 locale for formatted figures").Default(format.DefaultLocale).String(),
	}
}

func (in estimateInput) specs() packaging.Specs {
	specs := packaging.Specs{
		Category: packaging.ParseCategory(deref(in.Category)),
		Dimensions: packaging.Dimensions{
			Length: supplied(in.Length),
			Width:  supplied(in.Width),
			Height: supplied(in.Height),
		},
		Weight: supplied(in.Weight),
	}
	if m := deref(in.Material); m != "" {
		specs.Material = packaging.String(m)
	}
	return specs
}

func (in estimateInput) usage() packaging.Usage {
	usage := packaging.NewUsage()
	if in.Units != nil {
		usage.UnitsPerMonth = *in.Units
	}
	usage.ShippingDistanceKm = supplied(in.Distance)
	usage.ShippingFrequency = packaging.ParseShippingFrequency(deref(in.Frequency))
	usage.CurrentPackagingCostPerUnit = supplied(in.Packaging)
	usage.CurrentShippingCostPerUnit = supplied(in.Shipping)
	return usage
}

func (in estimateInput) notSure() packaging.NotSureFlags {
	var flags packaging.NotSureFlags
	if in.NotSure == nil {
		return flags
	}
	for _, name := range *in.NotSure {
		switch name {
		case "dimensions":
			flags.Dimensions = true
		case "weight":
			flags.Weight = true
		case "material":
			flags.Material = true
		case "volume":
			flags.Volume = true
		case "shipping":
			flags.Shipping = true
		case "costs":
			flags.Costs = true
		}
	}
	return flags
}

func runEstimate(w io.Writer, in estimateInput) error {
	snapshot := estimator.Resolve(in.specs(), in.usage(), in.notSure())
	results := estimator.Estimate(snapshot)
	f := format.New(deref(in.Locale))

	out := estimateOutput{
		Category:  snapshot.Category(),
		Results:   results,
		Display:   f.Results(results),
		Summary:   f.Summary(results),
		Defaulted: snapshot.Defaulted(),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode estimate: %w", err)
	}
	return enc.Close()
}

func supplied(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return packaging.Float(*v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
