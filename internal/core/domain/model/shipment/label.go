package shipment

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// LabelRequest is the payload for a single label-purchase attempt. It is built
// once per attempt and never reused after a failure: a retry rebuilds the
// request so it reflects any edits made in between.
type LabelRequest struct {
	OrderID string
	Carrier Carrier
	Service string

	// TrackingPlaceholder is a locally generated reference attached to the
	// purchase request. The carrier replaces it with a real tracking number
	// on the issued label.
	TrackingPlaceholder string

	Measurements Measurements
	Insured      bool
	InsuredValue string
	Signature    bool

	Origin      kernel.PostalCode
	Destination kernel.PostalCode
}

// NewTrackingPlaceholder generates the tracking reference attached to a label
// purchase request.
func NewTrackingPlaceholder() string {
	return fmt.Sprintf("TRK-%s", uuid.NewString())
}

// LabelResult is the outcome of a label purchase, reported verbatim from the
// label-purchase capability: either a label URL on success or the provider's
// error message on failure. The core does not interpret carrier-specific
// error codes.
type LabelResult struct {
	Success  bool
	LabelURL string
	Message  string

	// TrackingNumber is the carrier-issued tracking number, when the provider
	// reports one. May be empty on providers that only return the label URL.
	TrackingNumber string
}
