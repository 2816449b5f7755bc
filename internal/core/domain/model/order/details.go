package order

import (
	"errors"

	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrDetailsAreNotConstructed = errors.New(
		"Details must be created via NewDetails constructor",
	)
	ErrOrderTotalIsNegative = errors.New("order total must not be negative")
)

// LineItem is a purchased item within a marketplace order.
type LineItem struct {
	Title    string
	Quantity int
	Price    decimal.Decimal
}

// Details is the full record of a marketplace order, fetched when the operator
// selects a pending order. It carries the buyer's free-form shipping address,
// the order total, and the purchased line items.
//
// Details is owned exclusively by the workflow instance that fetched it and is
// replaced wholesale on each order selection; it is never mutated after
// construction. The buyer address is kept verbatim as multi-line text; the
// destination postal code is extracted from it lazily at rate-request time,
// because the marketplace does not deliver structured addresses.
//
// Example:
//
//	details, err := order.NewDetails(
//	    "114-3941689-8772232",
//	    "John Smith\n123 Main St\nGrand Rapids, MI 49503",
//	    decimal.NewFromFloat(42.50),
//	    items,
//	)
type Details struct { //nolint:recvcheck //using for validation
	orderID      string
	buyerAddress string
	total        decimal.Decimal
	lineItems    []LineItem

	guard guard.ConstructorGuard
}

// NewDetails creates an order-details record.
// The order id must be non-empty and the total must not be negative.
// The buyer address may be empty or unparseable; downstream rate shopping
// rejects unusable destinations rather than this constructor.
func NewDetails(
	orderID string,
	buyerAddress string,
	total decimal.Decimal,
	lineItems []LineItem,
) (Details, error) {
	details := Details{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		details.setOrderID(orderID),
		details.setBuyerAddress(buyerAddress),
		details.setTotal(total),
		details.setLineItems(lineItems),
	); err != nil {
		return Details{}, err
	}

	return details, nil
}

// Validate ensures the details were created through the constructor.
// Returns ErrDetailsAreNotConstructed if validation fails.
func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsAreNotConstructed)
}

// OrderID returns the marketplace order identifier.
func (d Details) OrderID() string {
	return d.orderID
}

// BuyerAddress returns the buyer's shipping address as free-form multi-line text.
func (d Details) BuyerAddress() string {
	return d.buyerAddress
}

// Total returns the order total.
func (d Details) Total() decimal.Decimal {
	return d.total
}

// LineItems returns a copy of the purchased line items.
func (d Details) LineItems() []LineItem {
	items := make([]LineItem, len(d.lineItems))
	copy(items, d.lineItems)
	return items
}

func (d *Details) setOrderID(orderID string) error {
	if orderID == "" {
		return ErrOrderIDIsRequired
	}
	d.orderID = orderID
	return nil
}

func (d *Details) setBuyerAddress(buyerAddress string) error {
	d.buyerAddress = buyerAddress
	return nil
}

func (d *Details) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return ErrOrderTotalIsNegative
	}
	d.total = total
	return nil
}

func (d *Details) setLineItems(lineItems []LineItem) error {
	d.lineItems = make([]LineItem, len(lineItems))
	copy(d.lineItems, lineItems)
	return nil
}
