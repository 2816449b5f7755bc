// Package services provides the application services of the fulfillment core:
// the rate-shopping engine and the label-purchase orchestrator. They compose
// the pure domain services with the external marketplace/carrier ports and
// define the failure taxonomy of the order -> rate -> label sequence.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDestination indicates the destination postal code could not be
	// parsed from the buyer address. It blocks a rate fetch pre-flight: no
	// network call is made.
	ErrInvalidDestination = errors.New("destination postal code could not be parsed")

	// ErrRateLookupFailed is the sentinel for rate-provider call failures.
	ErrRateLookupFailed = errors.New("rate lookup failed")

	// ErrLabelPurchaseFailed is the sentinel for label-provider call failures.
	ErrLabelPurchaseFailed = errors.New("label purchase failed")
)

// RateLookupFailedError wraps a rate-provider failure, carrying the underlying
// message for the operator. Rate failures are surfaced verbatim and never
// retried automatically; state is preserved for a manual retry.
type RateLookupFailedError struct {
	Cause error
}

// NewRateLookupFailedError creates a RateLookupFailedError wrapping cause.
func NewRateLookupFailedError(cause error) RateLookupFailedError {
	return RateLookupFailedError{Cause: cause}
}

// Error implements the error interface.
func (e RateLookupFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRateLookupFailed, e.Cause)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e RateLookupFailedError) Unwrap() error {
	return ErrRateLookupFailed
}

// LabelPurchaseFailedError wraps a label-provider failure, carrying the
// carrier's message verbatim for the operator.
type LabelPurchaseFailedError struct {
	Cause error
}

// NewLabelPurchaseFailedError creates a LabelPurchaseFailedError wrapping cause.
func NewLabelPurchaseFailedError(cause error) LabelPurchaseFailedError {
	return LabelPurchaseFailedError{Cause: cause}
}

// Error implements the error interface.
func (e LabelPurchaseFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrLabelPurchaseFailed, e.Cause)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e LabelPurchaseFailedError) Unwrap() error {
	return ErrLabelPurchaseFailed
}
