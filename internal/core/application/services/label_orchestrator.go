package services

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

// ErrPurchasePreconditionViolated indicates PurchaseLabel was invoked without
// order details or a selected rate. The workflow must have already disabled
// the action in that situation, so hitting this error is a programming
// mistake in the caller, not a recoverable runtime condition.
var ErrPurchasePreconditionViolated = errors.New(
	"label purchase requires order details and a selected rate")

// LabelPurchaseOrchestrator builds a purchase request from a selected rate and
// invokes the label-purchase capability exactly once per call, with no
// internal retry.
//
// Dimension and weight fields that fail to parse as numbers are silently
// substituted with fixed defaults (1 lb 0 oz, 10x8x4) so a malformed numeric
// field never blocks a purchase. The provider's success/URL or failure/message
// is returned verbatim; carrier-specific error codes are not interpreted.
type LabelPurchaseOrchestrator struct {
	provider ports.LabelProvider
}

// NewLabelPurchaseOrchestrator creates an orchestrator over the given label provider.
func NewLabelPurchaseOrchestrator(provider ports.LabelProvider) LabelPurchaseOrchestrator {
	return LabelPurchaseOrchestrator{provider: provider}
}

// PurchaseLabel buys a shipping label for orderDetails at the selectedRate.
//
// Both orderDetails and selectedRate must be non-nil; violating this returns
// ErrPurchasePreconditionViolated. A fresh LabelRequest is built on every
// call; requests are never reused after a failed purchase, so a retry
// reflects any edits made in between. Provider call failures are wrapped as
// LabelPurchaseFailedError; a provider-reported failure inside a successful
// call is returned as an unsuccessful LabelResult, not an error.
func (o LabelPurchaseOrchestrator) PurchaseLabel(
	ctx context.Context,
	orderDetails *order.Details,
	selectedRate *shipment.RateQuote,
	packageSpec shipment.PackageSpec,
	origin kernel.PostalCode,
	destination kernel.PostalCode,
) (shipment.LabelResult, error) {
	if orderDetails == nil || selectedRate == nil {
		return shipment.LabelResult{}, ErrPurchasePreconditionViolated
	}

	request := shipment.LabelRequest{
		OrderID:             orderDetails.OrderID(),
		Carrier:             selectedRate.Carrier,
		Service:             selectedRate.Service,
		TrackingPlaceholder: shipment.NewTrackingPlaceholder(),
		Measurements:        packageSpec.Measurements(),
		Insured:             packageSpec.Insured,
		InsuredValue:        packageSpec.InsuredValue,
		Signature:           packageSpec.SignatureRequired,
		Origin:              origin,
		Destination:         destination,
	}

	result, err := o.provider.PurchaseShippingLabel(ctx, request)
	if err != nil {
		return shipment.LabelResult{}, NewLabelPurchaseFailedError(err)
	}

	return result, nil
}
