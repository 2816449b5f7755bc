package shipment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not created
	// through the NewRecord or RestoreRecord factory methods.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

	ErrLabelURLIsRequired = errors.New("label URL is required")
	ErrCostIsNegative     = errors.New("cost must not be negative")
)

// Record is the persisted trace of a purchased shipping label. One Record is
// written for every successful label purchase; it exists for back-office
// history and is never consulted by the workflow's transition logic.
//
// Record follows these invariants:
//   - Must have a valid unique identifier and a marketplace order id
//   - Carrier must be a supported carrier
//   - Cost must not be negative
//   - Must carry the label URL returned by the carrier
//   - Can only be created through NewRecord or RestoreRecord
type Record struct {
	id             kernel.UUID
	orderID        string
	carrier        Carrier
	service        string
	cost           decimal.Decimal
	trackingNumber string
	labelURL       string
	purchasedAt    time.Time

	isConstructed bool
}

// NewRecord creates the history record for a freshly purchased label.
// All fields are validated; the purchase timestamp is supplied by the caller
// so that the workflow controls the clock.
func NewRecord(
	id kernel.UUID,
	orderID string,
	quote RateQuote,
	trackingNumber string,
	labelURL string,
	purchasedAt time.Time,
) (*Record, error) {
	record := &Record{
		service:        quote.Service,
		trackingNumber: trackingNumber,
		purchasedAt:    purchasedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		record.setID(id),
		record.setOrderID(orderID),
		record.setCarrier(quote.Carrier),
		record.setCost(quote.Cost),
		record.setLabelURL(labelURL),
	); err != nil {
		return nil, err
	}

	return record, nil
}

// RestoreRecord reconstructs a Record from persistence.
// The same validation rules apply as in NewRecord.
func RestoreRecord(
	id kernel.UUID,
	orderID string,
	carrier Carrier,
	service string,
	cost decimal.Decimal,
	trackingNumber string,
	labelURL string,
	purchasedAt time.Time,
) (*Record, error) {
	return NewRecord(
		id,
		orderID,
		RateQuote{Carrier: carrier, Service: service, Cost: cost},
		trackingNumber,
		labelURL,
		purchasedAt,
	)
}

// Validate ensures the Record instance was properly constructed through a factory.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the marketplace order the label was purchased for.
func (r *Record) OrderID() string {
	return r.orderID
}

// Carrier returns the carrier the label was purchased from.
func (r *Record) Carrier() Carrier {
	return r.carrier
}

// Service returns the carrier service tier of the purchased label.
func (r *Record) Service() string {
	return r.service
}

// Cost returns the purchased rate's cost.
func (r *Record) Cost() decimal.Decimal {
	return r.cost
}

// TrackingNumber returns the tracking reference bound to the label.
func (r *Record) TrackingNumber() string {
	return r.trackingNumber
}

// LabelURL returns the carrier-issued label document URL.
func (r *Record) LabelURL() string {
	return r.labelURL
}

// PurchasedAt returns the purchase timestamp.
func (r *Record) PurchasedAt() time.Time {
	return r.purchasedAt
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrderID(orderID string) error {
	if orderID == "" {
		return errors.New("order id is required")
	}
	r.orderID = orderID
	return nil
}

func (r *Record) setCarrier(carrier Carrier) error {
	if err := carrier.Validate(); err != nil {
		return err
	}
	r.carrier = carrier
	return nil
}

func (r *Record) setCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return ErrCostIsNegative
	}
	r.cost = cost
	return nil
}

func (r *Record) setLabelURL(labelURL string) error {
	if labelURL == "" {
		return ErrLabelURLIsRequired
	}
	r.labelURL = labelURL
	return nil
}
