package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderShipmentsQueryHandler retrieves the purchase history of one
// marketplace order from the shipment-history store.
type GetOrderShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderShipmentsQueryHandler creates a handler for per-order shipment
// queries. Requires a GORM database connection for query execution.
func NewGetOrderShipmentsQueryHandler(db *gorm.DB) GetOrderShipmentsQueryHandler {
	return GetOrderShipmentsQueryHandler{db: db}
}

// Handle executes the query, returning all shipment records for the order,
// newest first. An order with no purchases yields an empty slice.
func (h GetOrderShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderShipmentsQuery,
) ([]ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]ShipmentResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			carrier,
			service,
			cost,
			tracking_number,
			label_url,
			purchased_at
		FROM shipments
		WHERE order_id = ?
		ORDER BY purchased_at DESC
	`, query.OrderID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ShipmentResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderID,
			&resp.Carrier,
			&resp.Service,
			&resp.Cost,
			&resp.TrackingNumber,
			&resp.LabelURL,
			&resp.PurchasedAt,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = shipmentID

		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
