// Package services provides domain services for the fulfillment system:
// stateless business logic that doesn't naturally belong to a single aggregate.
//
// The package includes:
//   - AddressParser: extracts a destination postal code from free-form address text
//   - RateCatalog: the static table of supported carriers and their service tiers
//
// Both services are pure: no network access and no state beyond fixed tables.
package services
