package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRecentShipmentsQueryHandler retrieves recently purchased labels from the
// shipment-history store. Reads bypass the domain model and repository layer:
// the read side queries the shipments table directly.
type GetRecentShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetRecentShipmentsQueryHandler creates a handler for recent-shipment
// queries. Requires a GORM database connection for query execution.
func NewGetRecentShipmentsQueryHandler(db *gorm.DB) GetRecentShipmentsQueryHandler {
	return GetRecentShipmentsQueryHandler{db: db}
}

// Handle executes the query, returning at most query.Limit() shipment records
// ordered by purchase time, newest first.
func (h GetRecentShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetRecentShipmentsQuery,
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
		ORDER BY purchased_at DESC
		LIMIT ?
	`, query.Limit()).Rows()
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
