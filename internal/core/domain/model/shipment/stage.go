package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Stage represents the lifecycle state of a fulfillment workflow session.
// It implements a state machine with defined transitions so a session always
// moves through the order -> rate -> label sequence in order.
//
// Stage transitions:
//
//	Idle ──> OrdersLoaded ──> OrderSelected ──> RatesLoaded ──> RateSelected ──> LabelPurchased
//	              ^                                                                   │
//	              └──────────────────────── (next order) ─────────────────────────────┘
//
// Loading a fresh order list or cancelling returns the session to OrdersLoaded
// from any stage. Failed operations do not advance the stage: the workflow
// stays at the previous stable stage with a status message attached.
type Stage int

const (
	// Idle is the initial stage before any pending orders have been loaded.
	Idle Stage = iota

	// OrdersLoaded indicates a pending-order list is available for selection.
	OrdersLoaded

	// OrderSelected indicates order details have been fetched for one order.
	OrderSelected

	// RatesLoaded indicates a rate fetch completed, with zero or more quotes available.
	RatesLoaded

	// RateSelected indicates the operator explicitly picked a quote.
	RateSelected

	// LabelPurchased indicates a label was bought for the current order.
	// The session loops back to order selection readiness for the next order.
	LabelPurchased
)

// getStageStrings returns a map of Stage values to their string representations.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		Idle:           "Idle",
		OrdersLoaded:   "OrdersLoaded",
		OrderSelected:  "OrderSelected",
		RatesLoaded:    "RatesLoaded",
		RateSelected:   "RateSelected",
		LabelPurchased: "LabelPurchased",
	}
}

// Validate checks if the Stage value is valid.
func (s Stage) Validate() error {
	if _, ok := getStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the human-readable name of the stage.
// Implements the fmt.Stringer interface and is safe to call on any Stage value.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// HasOrder reports whether an order's details have been fetched at this stage.
func (s Stage) HasOrder() bool {
	return s >= OrderSelected
}

// LoadOrders transitions to OrdersLoaded. Allowed from any stage: loading a
// fresh order list invalidates any in-progress shipment.
func (s Stage) LoadOrders() Stage {
	return OrdersLoaded
}

// Cancel transitions to OrdersLoaded unconditionally, discarding any
// in-flight selection.
func (s Stage) Cancel() Stage {
	return OrdersLoaded
}

// SelectOrder transitions to OrderSelected.
//
// Valid from OrdersLoaded and every later stage (the operator may pick the
// next order directly after a purchase). Invalid from Idle, where no order
// list exists to select from.
func (s Stage) SelectOrder() (Stage, error) {
	if s < OrdersLoaded {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to select an order", s.String()),
		)
	}
	return OrderSelected, nil
}

// RefreshRates transitions to RatesLoaded.
//
// Valid from OrderSelected and every later stage; rate shopping requires
// fetched order details.
func (s Stage) RefreshRates() (Stage, error) {
	if !s.HasOrder() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to refresh rates", s.String()),
		)
	}
	return RatesLoaded, nil
}

// SelectRate transitions to RateSelected.
//
// Valid from RatesLoaded and later stages. Whether a quote list is actually
// populated is a data concern enforced by the workflow.
func (s Stage) SelectRate() (Stage, error) {
	if s < RatesLoaded {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to select a rate", s.String()),
		)
	}
	return RateSelected, nil
}

// PurchaseLabel transitions to LabelPurchased.
//
// Valid from RatesLoaded and later stages; the workflow additionally requires
// a non-nil selected quote and non-nil order details before purchasing.
func (s Stage) PurchaseLabel() (Stage, error) {
	if s < RatesLoaded {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to purchase a label", s.String()),
		)
	}
	return LabelPurchased, nil
}
