package services

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	domainservices "fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RateShoppingEngine builds a rate request from order and package data,
// invokes the carrier rate capability, and ranks the results.
//
// The engine is stateless; each FetchRates call recomputes the RateRequest
// snapshot because origin, destination, or package may change between fetches.
//
// Example:
//
//	engine := services.NewRateShoppingEngine(parser, provider)
//	quotes, err := engine.FetchRates(ctx, origin, details.BuyerAddress(), spec)
//	if errors.Is(err, services.ErrInvalidDestination) {
//	    // buyer address has no parseable ZIP; nothing was sent to the provider
//	}
type RateShoppingEngine struct {
	parser   domainservices.AddressParser
	provider ports.RateProvider
}

// NewRateShoppingEngine creates a rate-shopping engine over the given
// address parser and rate provider.
func NewRateShoppingEngine(
	parser domainservices.AddressParser,
	provider ports.RateProvider,
) RateShoppingEngine {
	return RateShoppingEngine{
		parser:   parser,
		provider: provider,
	}
}

// FetchRates shops rates for a shipment from origin to the address in
// destinationAddressText carrying packageSpec.
//
// The destination postal code is parsed first; an unusable destination fails
// with ErrInvalidDestination before any network call is made. Provider
// failures are wrapped as RateLookupFailedError. A provider result of zero
// quotes is returned as a valid empty slice, not an error. Otherwise the
// quotes are returned sorted ascending by cost with deterministic
// tie-breaking, and the caller is expected to auto-select the first entry as
// the default highlighted choice.
func (e RateShoppingEngine) FetchRates(
	ctx context.Context,
	origin kernel.PostalCode,
	destinationAddressText string,
	packageSpec shipment.PackageSpec,
) ([]shipment.RateQuote, error) {
	destination := e.parser.ExtractPostalCode(destinationAddressText)
	if !destination.IsUsable() {
		return nil, ErrInvalidDestination
	}

	request := shipment.RateRequest{
		Origin:      origin,
		Destination: destination,
		Package:     packageSpec,
	}

	quotes, err := e.provider.GetShippingRates(ctx, request)
	if err != nil {
		return nil, NewRateLookupFailedError(err)
	}

	if len(quotes) == 0 {
		return []shipment.RateQuote{}, nil
	}

	return shipment.SortQuotes(quotes), nil
}
