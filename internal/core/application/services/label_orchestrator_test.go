package services_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLabelProvider struct{ mock.Mock }

func (m *MockLabelProvider) PurchaseShippingLabel(
	ctx context.Context, request shipment.LabelRequest,
) (shipment.LabelResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(shipment.LabelResult), args.Error(1)
}

func newDetails(t *testing.T) *order.Details {
	t.Helper()
	details, err := order.NewDetails(
		"114-001", "Grand Rapids, MI 10001", decimal.NewFromInt(42), nil)
	require.NoError(t, err)
	return &details
}

func newSelectedRate() *shipment.RateQuote {
	return &shipment.RateQuote{
		Carrier: shipment.USPS,
		Service: "Ground Advantage",
		Cost:    decimal.RequireFromString("8.40"),
	}
}

func TestLabelPurchaseOrchestrator_PurchaseLabel_Success(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	destination := mustPostalCode(t, "10001")
	provider := new(MockLabelProvider)

	provider.On("PurchaseShippingLabel", ctx, mock.MatchedBy(func(req shipment.LabelRequest) bool {
		return req.OrderID == "114-001" &&
			req.Carrier == shipment.USPS &&
			req.Service == "Ground Advantage" &&
			req.Origin.String() == "49503" &&
			req.Destination.String() == "10001" &&
			req.TrackingPlaceholder != ""
	})).Return(shipment.LabelResult{
		Success:  true,
		LabelURL: "https://labels.example/1.pdf",
	}, nil).Once()

	result, err := services.NewLabelPurchaseOrchestrator(provider).PurchaseLabel(
		ctx, newDetails(t), newSelectedRate(), shipment.DefaultPackageSpec(), origin, destination)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "https://labels.example/1.pdf", result.LabelURL)
	provider.AssertExpectations(t)
}

func TestLabelPurchaseOrchestrator_PurchaseLabel_MalformedDimensionsFallBack(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	destination := mustPostalCode(t, "10001")
	provider := new(MockLabelProvider)

	spec := shipment.PackageSpec{
		Length: "abc",
		Width:  "",
		Height: "oops",
		Pounds: "??",
		Ounces: "not a number",
	}

	provider.On("PurchaseShippingLabel", ctx, mock.MatchedBy(func(req shipment.LabelRequest) bool {
		m := req.Measurements
		return m.Length == 10 && m.Width == 8 && m.Height == 4 && m.Pounds == 1 && m.Ounces == 0
	})).Return(shipment.LabelResult{Success: true, LabelURL: "https://labels.example/2.pdf"}, nil).Once()

	result, err := services.NewLabelPurchaseOrchestrator(provider).PurchaseLabel(
		ctx, newDetails(t), newSelectedRate(), spec, origin, destination)

	require.NoError(t, err)
	assert.True(t, result.Success)
	provider.AssertExpectations(t)
}

func TestLabelPurchaseOrchestrator_PurchaseLabel_PreconditionViolations(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	destination := mustPostalCode(t, "10001")
	provider := new(MockLabelProvider)
	orchestrator := services.NewLabelPurchaseOrchestrator(provider)

	t.Run("nil_order_details", func(t *testing.T) {
		_, err := orchestrator.PurchaseLabel(
			ctx, nil, newSelectedRate(), shipment.DefaultPackageSpec(), origin, destination)
		require.ErrorIs(t, err, services.ErrPurchasePreconditionViolated)
	})

	t.Run("nil_selected_rate", func(t *testing.T) {
		_, err := orchestrator.PurchaseLabel(
			ctx, newDetails(t), nil, shipment.DefaultPackageSpec(), origin, destination)
		require.ErrorIs(t, err, services.ErrPurchasePreconditionViolated)
	})

	provider.AssertNotCalled(t, "PurchaseShippingLabel", mock.Anything, mock.Anything)
}

func TestLabelPurchaseOrchestrator_PurchaseLabel_ProviderError(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	destination := mustPostalCode(t, "10001")
	provider := new(MockLabelProvider)

	provider.On("PurchaseShippingLabel", ctx, mock.AnythingOfType("shipment.LabelRequest")).
		Return(shipment.LabelResult{}, errors.New("label service timed out")).Once()

	_, err := services.NewLabelPurchaseOrchestrator(provider).PurchaseLabel(
		ctx, newDetails(t), newSelectedRate(), shipment.DefaultPackageSpec(), origin, destination)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrLabelPurchaseFailed)
	assert.Contains(t, err.Error(), "label service timed out")
}

func TestLabelPurchaseOrchestrator_PurchaseLabel_CarrierFailureReturnedVerbatim(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	destination := mustPostalCode(t, "10001")
	provider := new(MockLabelProvider)

	provider.On("PurchaseShippingLabel", ctx, mock.AnythingOfType("shipment.LabelRequest")).
		Return(shipment.LabelResult{Success: false, Message: "insufficient postage balance"}, nil).Once()

	result, err := services.NewLabelPurchaseOrchestrator(provider).PurchaseLabel(
		ctx, newDetails(t), newSelectedRate(), shipment.DefaultPackageSpec(), origin, destination)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "insufficient postage balance", result.Message)
}

func TestLabelPurchaseOrchestrator_PurchaseLabel_FreshRequestPerAttempt(t *testing.T) {
	ctx := t.Context()
	origin := mustPostalCode(t, "49503")
	destination := mustPostalCode(t, "10001")
	provider := new(MockLabelProvider)
	orchestrator := services.NewLabelPurchaseOrchestrator(provider)

	var placeholders []string
	provider.On("PurchaseShippingLabel", ctx, mock.AnythingOfType("shipment.LabelRequest")).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(shipment.LabelRequest)
			placeholders = append(placeholders, req.TrackingPlaceholder)
		}).
		Return(shipment.LabelResult{Success: false, Message: "carrier rejected"}, nil).Twice()

	_, err := orchestrator.PurchaseLabel(
		ctx, newDetails(t), newSelectedRate(), shipment.DefaultPackageSpec(), origin, destination)
	require.NoError(t, err)
	_, err = orchestrator.PurchaseLabel(
		ctx, newDetails(t), newSelectedRate(), shipment.DefaultPackageSpec(), origin, destination)
	require.NoError(t, err)

	require.Len(t, placeholders, 2)
	assert.NotEqual(t, placeholders[0], placeholders[1])
}
