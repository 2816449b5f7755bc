package services_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	domainservices "fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateProvider struct{ mock.Mock }

func (m *MockRateProvider) GetShippingRates(
	ctx context.Context, request shipment.RateRequest,
) ([]shipment.RateQuote, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipment.RateQuote), args.Error(1)
}

func mustPostalCode(t *testing.T, s string) kernel.PostalCode {
	t.Helper()
	code, err := kernel.NewPostalCode(s)
	require.NoError(t, err)
	return code
}

func newEngine(provider *MockRateProvider) services.RateShoppingEngine {
	return services.NewRateShoppingEngine(domainservices.NewAddressParser(), provider)
}

func TestRateShoppingEngine_FetchRates_SortsAndRanks(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	provider := new(MockRateProvider)

	provider.On("GetShippingRates", ctx, mock.AnythingOfType("shipment.RateRequest")).
		Return([]shipment.RateQuote{
			{Carrier: shipment.USPS, Service: "Ground", Cost: decimal.RequireFromString("8.40")},
			{Carrier: shipment.UPS, Service: "Ground", Cost: decimal.RequireFromString("8.40")},
			{Carrier: shipment.USPS, Service: "Priority", Cost: decimal.RequireFromString("12.10")},
		}, nil).Once()

	quotes, err := newEngine(provider).FetchRates(
		ctx, origin, "123 Main St\nGrand Rapids, MI 10001", shipment.DefaultPackageSpec())

	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.Equal(t, shipment.UPS, quotes[0].Carrier)
	assert.Equal(t, shipment.USPS, quotes[1].Carrier)
	assert.Equal(t, "Ground", quotes[1].Service)
	assert.Equal(t, "Priority", quotes[2].Service)
	provider.AssertExpectations(t)
}

func TestRateShoppingEngine_FetchRates_BuildsRequestSnapshot(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	spec := shipment.DefaultPackageSpec()
	spec.Pounds = "2"
	provider := new(MockRateProvider)

	provider.On("GetShippingRates", ctx, mock.MatchedBy(func(req shipment.RateRequest) bool {
		return req.Origin.String() == "49503" &&
			req.Destination.String() == "10001" &&
			req.Package.Pounds == "2"
	})).Return([]shipment.RateQuote{
		{Carrier: shipment.USPS, Service: "Ground", Cost: decimal.RequireFromString("8.40")},
	}, nil).Once()

	_, err := newEngine(provider).FetchRates(ctx, origin, "New York, NY 10001", spec)

	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestRateShoppingEngine_FetchRates_InvalidDestinationSkipsNetwork(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	provider := new(MockRateProvider)

	_, err := newEngine(provider).FetchRates(ctx, origin, "", shipment.DefaultPackageSpec())

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidDestination)
	provider.AssertNotCalled(t, "GetShippingRates", mock.Anything, mock.Anything)
}

func TestRateShoppingEngine_FetchRates_UnparseableAddressSkipsNetwork(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	provider := new(MockRateProvider)

	_, err := newEngine(provider).FetchRates(
		ctx, origin, "John Smith\nSomewhere, MI", shipment.DefaultPackageSpec())

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidDestination)
	provider.AssertNotCalled(t, "GetShippingRates", mock.Anything, mock.Anything)
}

func TestRateShoppingEngine_FetchRates_ProviderFailure(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	provider := new(MockRateProvider)

	provider.On("GetShippingRates", ctx, mock.AnythingOfType("shipment.RateRequest")).
		Return(nil, errors.New("rate service unavailable")).Once()

	_, err := newEngine(provider).FetchRates(
		ctx, origin, "New York, NY 10001", shipment.DefaultPackageSpec())

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrRateLookupFailed)
	assert.Contains(t, err.Error(), "rate service unavailable")
}

func TestRateShoppingEngine_FetchRates_EmptyResultIsNotAnError(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	provider := new(MockRateProvider)

	provider.On("GetShippingRates", ctx, mock.AnythingOfType("shipment.RateRequest")).
		Return([]shipment.RateQuote{}, nil).Once()

	quotes, err := newEngine(provider).FetchRates(
		ctx, origin, "New York, NY 10001", shipment.DefaultPackageSpec())

	require.NoError(t, err)
	assert.Empty(t, quotes)
}
