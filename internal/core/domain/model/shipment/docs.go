// Package shipment contains the shipping domain model for the fulfillment core:
// carriers and their service tiers, operator-entered package specifications,
// rate requests and quotes, label requests and results, the persisted record of
// a purchased shipment, and the workflow stage state machine.
//
// Rate quotes are totally ordered by ascending cost with deterministic
// tie-breaking, which makes the "cheapest rate" default selection reproducible.
// Label requests are built once per purchase attempt and never reused.
package shipment
