package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderShipmentsQueryIsNotConstructed = errors.New(
		"GetOrderShipmentsQuery must be created via NewGetOrderShipmentsQuery constructor",
	)
	ErrShipmentOrderIDIsRequired = errors.New("order id is required")
)

// GetOrderShipmentsQuery retrieves every label purchased for one marketplace
// order, newest first. Retried purchases after carrier failures can leave
// several records per order.
type GetOrderShipmentsQuery struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderShipmentsQuery creates a query for the shipments of the given
// marketplace order. The order id must be non-empty.
func NewGetOrderShipmentsQuery(orderID string) (GetOrderShipmentsQuery, error) {
	if orderID == "" {
		return GetOrderShipmentsQuery{}, ErrShipmentOrderIDIsRequired
	}
	return GetOrderShipmentsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderShipmentsQueryIsNotConstructed if validation fails.
func (q GetOrderShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderShipmentsQueryIsNotConstructed)
}

// OrderID returns the marketplace order whose shipments to retrieve.
func (q GetOrderShipmentsQuery) OrderID() string {
	return q.orderID
}
