package shipment_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStages = []shipment.Stage{
	shipment.Idle,
	shipment.OrdersLoaded,
	shipment.OrderSelected,
	shipment.RatesLoaded,
	shipment.RateSelected,
	shipment.LabelPurchased,
}

func TestStage_Validate(t *testing.T) {
	for _, s := range allStages {
		require.NoError(t, s.Validate(), "stage %s should be valid", s)
	}
	require.Error(t, shipment.Stage(42).Validate())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "Idle", shipment.Idle.String())
	assert.Equal(t, "OrdersLoaded", shipment.OrdersLoaded.String())
	assert.Equal(t, "OrderSelected", shipment.OrderSelected.String())
	assert.Equal(t, "RatesLoaded", shipment.RatesLoaded.String())
	assert.Equal(t, "RateSelected", shipment.RateSelected.String())
	assert.Equal(t, "LabelPurchased", shipment.LabelPurchased.String())
	assert.Equal(t, "Unknown", shipment.Stage(42).String())
}

func TestStage_LoadOrdersAndCancelFromAnyStage(t *testing.T) {
	for _, s := range allStages {
		assert.Equal(t, shipment.OrdersLoaded, s.LoadOrders(), "LoadOrders from %s", s)
		assert.Equal(t, shipment.OrdersLoaded, s.Cancel(), "Cancel from %s", s)
	}
}

func TestStage_SelectOrder(t *testing.T) {
	t.Run("rejected_from_idle", func(t *testing.T) {
		_, err := shipment.Idle.SelectOrder()
		require.Error(t, err)
	})

	t.Run("allowed_from_orders_loaded_and_later", func(t *testing.T) {
		for _, s := range allStages[1:] {
			next, err := s.SelectOrder()
			require.NoError(t, err, "SelectOrder from %s", s)
			assert.Equal(t, shipment.OrderSelected, next)
		}
	})
}

func TestStage_RefreshRates(t *testing.T) {
	t.Run("rejected_without_order", func(t *testing.T) {
		for _, s := range []shipment.Stage{shipment.Idle, shipment.OrdersLoaded} {
			assert.False(t, s.HasOrder())
			_, err := s.RefreshRates()
			require.Error(t, err, "RefreshRates from %s", s)
		}
	})

	t.Run("allowed_with_order", func(t *testing.T) {
		for _, s := range allStages[2:] {
			assert.True(t, s.HasOrder())
			next, err := s.RefreshRates()
			require.NoError(t, err, "RefreshRates from %s", s)
			assert.Equal(t, shipment.RatesLoaded, next)
		}
	})
}

func TestStage_SelectRateAndPurchase(t *testing.T) {
	t.Run("rejected_before_rates_loaded", func(t *testing.T) {
		for _, s := range allStages[:3] {
			_, err := s.SelectRate()
			require.Error(t, err, "SelectRate from %s", s)
			_, err = s.PurchaseLabel()
			require.Error(t, err, "PurchaseLabel from %s", s)
		}
	})

	t.Run("allowed_from_rates_loaded_and_later", func(t *testing.T) {
		for _, s := range allStages[3:] {
			next, err := s.SelectRate()
			require.NoError(t, err)
			assert.Equal(t, shipment.RateSelected, next)

			next, err = s.PurchaseLabel()
			require.NoError(t, err)
			assert.Equal(t, shipment.LabelPurchased, next)
		}
	})
}
