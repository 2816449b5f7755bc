// Package ports defines the interfaces between the fulfillment core and its
// collaborators: the marketplace/carrier integration layer on the outbound
// side and the shipment-history persistence on the storage side. These
// interfaces establish contracts that enable dependency inversion and
// testability.
package ports

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
)

// ErrNotAuthenticated indicates the marketplace capability is unavailable or
// unauthenticated. It is surfaced to the operator without retry and blocks
// all order loading until the surrounding application re-authenticates.
var ErrNotAuthenticated = errors.New("marketplace session is not authenticated")

// OrderSource lists and resolves marketplace orders. It is implemented by the
// marketplace-integration layer, which owns authentication and the wire
// protocol; the core only consumes the results.
type OrderSource interface {
	// ListRecentOrders returns summaries of orders placed at or after since.
	// The core filters the result to orders still awaiting shipment.
	// Returns ErrNotAuthenticated when no marketplace session is available.
	ListRecentOrders(ctx context.Context, since time.Time) ([]order.PendingOrder, error)

	// GetOrderDetails fetches the full order record for a marketplace order id.
	// Returns errs.ObjectNotFoundError when the order does not exist and
	// ErrNotAuthenticated when no marketplace session is available.
	GetOrderDetails(ctx context.Context, orderID string) (order.Details, error)
}

// RateProvider shops carrier rates for a shipment.
type RateProvider interface {
	// GetShippingRates returns zero or more quotes for the request.
	// An empty result is valid (no carrier serves the lane); failures of the
	// underlying call are returned as errors and are not retried here.
	GetShippingRates(ctx context.Context, request shipment.RateRequest) ([]shipment.RateQuote, error)
}

// LabelProvider purchases shipping labels.
type LabelProvider interface {
	// PurchaseShippingLabel buys a label for the request, exactly once per
	// call. The result carries the provider's success/URL or failure/message
	// verbatim; carrier-specific error codes are not interpreted by the core.
	PurchaseShippingLabel(ctx context.Context, request shipment.LabelRequest) (shipment.LabelResult, error)
}
