package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for purchased-shipment
// records. Records are append-only: a record is written once per successful
// label purchase and never updated.
type ShipmentRepository interface {
	// Add persists a new shipment record.
	// The record must be valid and not already exist in the repository.
	Add(ctx context.Context, record *shipment.Record) error

	// Get retrieves a shipment record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Record, error)

	// GetByOrderID retrieves all shipment records purchased for a marketplace
	// order, newest first. Retried purchases after carrier failures can leave
	// several records per order.
	GetByOrderID(ctx context.Context, orderID string) ([]*shipment.Record, error)
}

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control over shipment-history writes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ShipmentRepository returns a ShipmentRepository instance bound to the
	// current transaction. Repository will use the transaction started by Begin().
	ShipmentRepository() ShipmentRepository
}
