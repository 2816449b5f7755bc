package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Carrier identifies a supported shipping carrier.
// It is a value object that validates carrier values coming from external
// sources and provides string representations for persistence and display.
type Carrier int

const (
	// UnknownCarrier represents an invalid or undefined carrier.
	// This value (0) helps catch uninitialized Carrier values.
	UnknownCarrier Carrier = iota

	// USPS is the United States Postal Service.
	USPS

	// UPS is United Parcel Service.
	UPS

	// FedEx is Federal Express.
	FedEx
)

// getCarrierStrings returns a map of Carrier values to their string representations.
// All carriers are included for string conversion.
func getCarrierStrings() map[Carrier]string {
	return map[Carrier]string{
		UnknownCarrier: "Unknown",
		USPS:           "USPS",
		UPS:            "UPS",
		FedEx:          "FedEx",
	}
}

// getValidCarrierStrings returns a map of only valid Carrier values.
// Only valid carriers are included to support validation.
func getValidCarrierStrings() map[Carrier]string {
	//nolint:exhaustive // UnknownCarrier is intentionally excluded as it's invalid
	return map[Carrier]string{
		USPS:  "USPS",
		UPS:   "UPS",
		FedEx: "FedEx",
	}
}

// CarrierFromString parses a carrier from its string representation.
// The comparison is exact ("USPS", "UPS", "FedEx"). Returns an error for any
// other input, including the empty string.
func CarrierFromString(s string) (Carrier, error) {
	for carrier, name := range getValidCarrierStrings() {
		if name == s {
			return carrier, nil
		}
	}
	return UnknownCarrier, errs.NewValueIsInvalidErrorWithCause(
		"carrier is invalid", fmt.Errorf("%q is not a supported carrier", s))
}

// Validate checks if the Carrier value is valid.
//
// Valid carriers are: USPS, UPS, FedEx.
// UnknownCarrier (0) and any other values are invalid.
func (c Carrier) Validate() error {
	if _, ok := getValidCarrierStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"carrier is invalid", fmt.Errorf("%d is not a valid carrier", c))
	}
	return nil
}

// String returns the human-readable name of the carrier.
//
// Returns "USPS", "UPS", or "FedEx" for valid carriers and "Unknown" for
// invalid carrier values. Implements the fmt.Stringer interface and is safe
// to call on any Carrier value.
func (c Carrier) String() string {
	if str, ok := getCarrierStrings()[c]; ok {
		return str
	}
	return "Unknown"
}
