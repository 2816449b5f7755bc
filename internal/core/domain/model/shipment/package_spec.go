package shipment

import "strconv"

// Default dimension and weight values, used both as the operator-facing
// initial values and as the silent fallback when an operator-entered field
// fails to parse at purchase time.
const (
	DefaultLength = "10"
	DefaultWidth  = "8"
	DefaultHeight = "4"
	DefaultPounds = "1"
	DefaultOunces = "0"
)

// PackageSpec holds the operator-entered package measurements for a shipment.
// Dimension and weight fields are kept as the raw text the operator typed:
// parsing happens at the moment a rate request or label request is built, and
// a malformed numeric field silently falls back to the matching default value
// rather than blocking the purchase.
//
// A PackageSpec is carried unchanged through a rate-shopping cycle until an
// explicit reset or a new order selection.
type PackageSpec struct {
	// Length, Width, and Height are package dimensions, unit-less but consistent.
	Length string
	Width  string
	Height string

	// Pounds and Ounces split the package weight.
	Pounds string
	Ounces string

	// InsuredValue is the declared value to insure, meaningful when Insured is set.
	InsuredValue string
	Insured      bool

	// SignatureRequired requests signature-on-delivery from the carrier.
	SignatureRequired bool
}

// DefaultPackageSpec returns the package specification a workflow starts with:
// a 10x8x4 package weighing 1 lb 0 oz, uninsured, no signature required.
func DefaultPackageSpec() PackageSpec {
	return PackageSpec{
		Length: DefaultLength,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Pounds: DefaultPounds,
		Ounces: DefaultOunces,
	}
}

// Measurements are the parsed numeric values of a PackageSpec, produced by
// PackageSpec.Measurements with per-field default substitution.
type Measurements struct {
	Length float64
	Width  float64
	Height float64
	Pounds float64
	Ounces float64
}

// Measurements parses the dimension and weight fields. Each field that fails
// to parse as a number is substituted with its default (10x8x4, 1 lb 0 oz)
// so that a malformed entry never blocks a purchase.
func (p PackageSpec) Measurements() Measurements {
	return Measurements{
		Length: parseOrDefault(p.Length, DefaultLength),
		Width:  parseOrDefault(p.Width, DefaultWidth),
		Height: parseOrDefault(p.Height, DefaultHeight),
		Pounds: parseOrDefault(p.Pounds, DefaultPounds),
		Ounces: parseOrDefault(p.Ounces, DefaultOunces),
	}
}

// parseOrDefault parses s as a float64, substituting the fallback text when
// s is not a number. The fallback constants are known-good numerics.
func parseOrDefault(s string, fallback string) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	v, _ := strconv.ParseFloat(fallback, 64)
	return v
}
