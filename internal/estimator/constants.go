package estimator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Logistics reference figures.
var (
	// ShippingRatePerKgPer100Km is the freight cost of one kilogram over 100 km.
	ShippingRatePerKgPer100Km = decimal.New(15, -2)

	// ShippingReduction is the per-unit shipping cost cut from the lighter pouch.
	ShippingReduction = decimal.New(22, -2)

	// VolumeReduction is the share of storage volume a pouch saves.
	VolumeReduction = decimal.New(70, -2)

	// StorageCostPerM3PerMonth is the warehouse cost of one cubic meter.
	StorageCostPerM3PerMonth = decimal.NewFromInt(25)
)

// DefaultShippingDistanceKm applies when no usable distance is known.
const DefaultShippingDistanceKm = 500.0

// Environmental reference figures.
const (
	// CO2KgPerGram is the kg CO2e emitted per gram of packaging produced.
	CO2KgPerGram = 0.003

	// WaterLitersPerGram is the water footprint of one gram of packaging.
	WaterLitersPerGram = 0.1

	// WaterReduction is the water footprint share a pouch avoids.
	WaterReduction = 0.60

	// TreesPerTonCO2 is the number of trees absorbing one ton of CO2 a year.
	TreesPerTonCO2 = 45.0
)

// Operational benchmark percentages. They are typical improvements reported
// for pouch conversions, not per-customer figures.
const (
	StorageSpaceSavedPct     = 70.0
	ShippingEfficiencyPct    = 22.0
	HandlingTimeReductionPct = 35.0
)

const monthsPerYear = 12

// MaxUnitsPerMonth is the largest monthly volume Resolve accepts. Larger
// values are capped so that the annual unit count stays representable.
const MaxUnitsPerMonth = math.MaxInt64 / monthsPerYear
