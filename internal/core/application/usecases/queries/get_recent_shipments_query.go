package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetRecentShipmentsQueryIsNotConstructed = errors.New(
		"GetRecentShipmentsQuery must be created via NewGetRecentShipmentsQuery constructor",
	)
	ErrShipmentLimitIsNotPositive = errors.New("limit must be positive")
)

// GetRecentShipmentsQuery retrieves the most recently purchased shipping
// labels for back-office review, newest first.
//
// Example:
//
//	query, err := NewGetRecentShipmentsQuery(20)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetRecentShipmentsQueryHandler(db)
//
//	shipments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get recent shipments: %w", err)
//	}
//
//	for _, s := range shipments {
//	    fmt.Printf("%s %s %s $%s\n", s.OrderID, s.Carrier, s.Service, s.Cost)
//	}
type GetRecentShipmentsQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetRecentShipmentsQuery creates a query for the limit most recent
// shipment records. The limit must be positive.
func NewGetRecentShipmentsQuery(limit int) (GetRecentShipmentsQuery, error) {
	if limit <= 0 {
		return GetRecentShipmentsQuery{}, ErrShipmentLimitIsNotPositive
	}
	return GetRecentShipmentsQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRecentShipmentsQueryIsNotConstructed if validation fails.
func (q GetRecentShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentShipmentsQueryIsNotConstructed)
}

// Limit returns the maximum number of records to retrieve.
func (q GetRecentShipmentsQuery) Limit() int {
	return q.limit
}

// ShipmentResponse represents one purchased shipping label in query results.
type ShipmentResponse struct {
	ID             kernel.UUID
	OrderID        string
	Carrier        string
	Service        string
	Cost           decimal.Decimal
	TrackingNumber string
	LabelURL       string
	PurchasedAt    time.Time
}
