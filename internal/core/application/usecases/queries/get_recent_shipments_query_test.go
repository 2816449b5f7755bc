package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetRecentShipmentsQuery(t *testing.T) {
	t.Run("valid_limit", func(t *testing.T) {
		query, err := queries.NewGetRecentShipmentsQuery(20)
		require.NoError(t, err)
		assert.Equal(t, 20, query.Limit())
		assert.NoError(t, query.Validate())
	})

	t.Run("zero_limit", func(t *testing.T) {
		_, err := queries.NewGetRecentShipmentsQuery(0)
		require.ErrorIs(t, err, queries.ErrShipmentLimitIsNotPositive)
	})

	t.Run("negative_limit", func(t *testing.T) {
		_, err := queries.NewGetRecentShipmentsQuery(-5)
		require.ErrorIs(t, err, queries.ErrShipmentLimitIsNotPositive)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var query queries.GetRecentShipmentsQuery
		require.ErrorIs(t, query.Validate(), queries.ErrGetRecentShipmentsQueryIsNotConstructed)
	})
}

func TestNewGetOrderShipmentsQuery(t *testing.T) {
	t.Run("valid_order_id", func(t *testing.T) {
		query, err := queries.NewGetOrderShipmentsQuery("114-001")
		require.NoError(t, err)
		assert.Equal(t, "114-001", query.OrderID())
		assert.NoError(t, query.Validate())
	})

	t.Run("empty_order_id", func(t *testing.T) {
		_, err := queries.NewGetOrderShipmentsQuery("")
		require.ErrorIs(t, err, queries.ErrShipmentOrderIDIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var query queries.GetOrderShipmentsQuery
		require.ErrorIs(t, query.Validate(), queries.ErrGetOrderShipmentsQueryIsNotConstructed)
	})
}
