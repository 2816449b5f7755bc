package services

import (
	"fulfillment/internal/core/domain/model/shipment"
)

// RateCatalog is the static lookup table of service tiers offered per
// supported carrier. Each carrier lists three tiers in display order:
// a ground (or ground-equivalent) tier, a 2-3 day tier, and an
// overnight/express tier.
//
// The catalog has no network access and no state beyond the fixed table.
// Selecting a carrier in the workflow resets the selected service type to
// the first entry of that carrier's list.
type RateCatalog struct{}

// NewRateCatalog creates a new RateCatalog instance.
func NewRateCatalog() RateCatalog {
	return RateCatalog{}
}

// serviceTypes maps each supported carrier to its service tiers in display order.
func serviceTypes() map[shipment.Carrier][]string {
	return map[shipment.Carrier][]string{
		shipment.USPS:  {"Ground Advantage", "Priority Mail", "Priority Mail Express"},
		shipment.UPS:   {"Ground", "2nd Day Air", "Next Day Air"},
		shipment.FedEx: {"Ground", "2Day", "Standard Overnight"},
	}
}

// ServiceTypesFor returns the ordered service tiers for carrier.
// Returns an empty slice for unsupported carriers, including UnknownCarrier.
// The returned slice is a copy; callers may modify it freely.
func (RateCatalog) ServiceTypesFor(carrier shipment.Carrier) []string {
	tiers, ok := serviceTypes()[carrier]
	if !ok {
		return []string{}
	}

	out := make([]string, len(tiers))
	copy(out, tiers)
	return out
}

// DefaultServiceTypeFor returns the first service tier for carrier, which is
// the selection a carrier change resets to. Returns the empty string for
// unsupported carriers.
func (c RateCatalog) DefaultServiceTypeFor(carrier shipment.Carrier) string {
	tiers := c.ServiceTypesFor(carrier)
	if len(tiers) == 0 {
		return ""
	}
	return tiers[0]
}
