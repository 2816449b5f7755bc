// Package order contains the marketplace-order domain model for the fulfillment core.
//
// The package includes:
//   - PendingOrder: a summary of a sale awaiting shipment, as listed by the marketplace
//   - Details: the full order record fetched when an operator selects a pending order
//   - LineItem: a purchased item within an order
//
// Orders originate from an external marketplace and are never mutated by the
// fulfillment core; Details instances are replaced wholesale on each order
// selection. Both types are immutable value objects created through validated
// constructors.
package order
