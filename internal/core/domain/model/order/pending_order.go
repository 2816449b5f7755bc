package order

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrPendingOrderIsNotConstructed = errors.New(
		"PendingOrder must be created via NewPendingOrder constructor",
	)
	ErrOrderIDIsRequired = errors.New("order id is required")
)

// shippable lists the marketplace shipping-status values (lowercased) that mark
// an order as still awaiting shipment. An empty status is treated the same way:
// some marketplaces omit the field entirely until a label exists.
var shippable = map[string]struct{}{
	"":           {},
	"notshipped": {},
	"pending":    {},
}

// PendingOrder is a summary of a marketplace sale awaiting fulfillment.
// It carries just enough to present a pick list to the operator: the
// marketplace order identifier, a display title, and the raw shipping-status
// flag reported by the marketplace.
//
// PendingOrder is produced by the order-source collaborator and is immutable;
// its lifecycle ends when the workflow selects a different order or refreshes
// the pending list.
//
// Example:
//
//	pending, err := order.NewPendingOrder("114-3941689-8772232", "Vintage camera lens", "NotShipped")
//	if err != nil {
//	    return err
//	}
//	if pending.NeedsShipping() {
//	    // include in the operator's pick list
//	}
type PendingOrder struct { //nolint:recvcheck //using for validation
	id             string
	title          string
	shippingStatus string

	guard guard.ConstructorGuard
}

// NewPendingOrder creates a pending-order summary.
// The marketplace order id must be non-empty; title and shipping status are
// carried verbatim from the marketplace, including an empty status.
func NewPendingOrder(id string, title string, shippingStatus string) (PendingOrder, error) {
	pending := PendingOrder{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pending.setID(id),
		pending.setTitle(title),
		pending.setShippingStatus(shippingStatus),
	); err != nil {
		return PendingOrder{}, err
	}

	return pending, nil
}

// Validate ensures the pending order was created through the constructor.
// Returns ErrPendingOrderIsNotConstructed if validation fails.
func (p PendingOrder) Validate() error {
	return p.guard.Validate(ErrPendingOrderIsNotConstructed)
}

// ID returns the marketplace order identifier.
func (p PendingOrder) ID() string {
	return p.id
}

// Title returns the display title shown in the operator's pick list.
func (p PendingOrder) Title() string {
	return p.title
}

// ShippingStatus returns the raw shipping-status flag as reported by the marketplace.
func (p PendingOrder) ShippingStatus() string {
	return p.shippingStatus
}

// NeedsShipping reports whether the order still awaits a shipping label.
// The comparison is case-insensitive; empty, "NotShipped", and "Pending"
// statuses all count as awaiting shipment.
func (p PendingOrder) NeedsShipping() bool {
	_, ok := shippable[strings.ToLower(strings.TrimSpace(p.shippingStatus))]
	return ok
}

func (p *PendingOrder) setID(id string) error {
	if id == "" {
		return ErrOrderIDIsRequired
	}
	p.id = id
	return nil
}

func (p *PendingOrder) setTitle(title string) error {
	p.title = title
	return nil
}

func (p *PendingOrder) setShippingStatus(status string) error {
	p.shippingStatus = status
	return nil
}
