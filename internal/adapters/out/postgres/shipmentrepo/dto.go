// Package shipmentrepo provides data transfer objects and mapping functions for
// shipment-history persistence. This package implements the repository pattern
// for the shipment Record aggregate, handling the conversion between domain
// entities and database representations.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for persisting shipment records.
// Records are append-only and queried by marketplace order id and by purchase
// recency, so both columns carry indexes.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        string    `gorm:"index"`
	Carrier        string
	Service        string
	Cost           decimal.Decimal `gorm:"type:numeric(12,2)"`
	TrackingNumber string
	LabelURL       string
	PurchasedAt    time.Time `gorm:"index"`
}

// TableName specifies the database table name for shipment records.
// Overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment Record to its database representation.
func fromDomain(record *shipment.Record) ShipmentDTO {
	return ShipmentDTO{
		ID:             record.ID().Bytes(),
		OrderID:        record.OrderID(),
		Carrier:        record.Carrier().String(),
		Service:        record.Service(),
		Cost:           record.Cost(),
		TrackingNumber: record.TrackingNumber(),
		LabelURL:       record.LabelURL(),
		PurchasedAt:    record.PurchasedAt(),
	}
}

// toDomain converts a database DTO back to a shipment Record using RestoreRecord,
// so the same validation rules apply on the way out of the database.
func toDomain(dto ShipmentDTO) (*shipment.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrier, err := shipment.CarrierFromString(dto.Carrier)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreRecord(
		id,
		dto.OrderID,
		carrier,
		dto.Service,
		dto.Cost,
		dto.TrackingNumber,
		dto.LabelURL,
		dto.PurchasedAt,
	)
}
