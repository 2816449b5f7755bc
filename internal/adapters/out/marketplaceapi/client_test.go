package marketplaceapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/marketplaceapi"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, serverURL string) *marketplaceapi.Client {
	t.Helper()
	client, err := marketplaceapi.NewClient(serverURL, "test-api-key", nil)
	require.NoError(t, err)
	return client
}

func mustPostalCode(t *testing.T, s string) kernel.PostalCode {
	t.Helper()
	code, err := kernel.NewPostalCode(s)
	require.NoError(t, err)
	return code
}

func TestNewClient_Validation(t *testing.T) {
	t.Run("missing_base_url", func(t *testing.T) {
		_, err := marketplaceapi.NewClient("", "key", nil)
		require.Error(t, err)
	})

	t.Run("missing_api_key", func(t *testing.T) {
		_, err := marketplaceapi.NewClient("https://api.example", "", nil)
		require.Error(t, err)
	})
}

func TestClient_ListRecentOrders(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, since.Format(time.RFC3339), r.URL.Query().Get("since"))

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "114-001", "title": "Vintage camera lens", "shipping_status": "pending"},
			{"id": "114-002", "title": "Record player belt", "shipping_status": "shipped"},
		})
	}))
	defer server.Close()

	orders, err := newClient(t, server.URL).ListRecentOrders(t.Context(), since)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "114-001", orders[0].ID())
	assert.Equal(t, "Vintage camera lens", orders[0].Title())
	assert.True(t, orders[0].NeedsShipping())
	assert.False(t, orders[1].NeedsShipping())
}

func TestClient_ListRecentOrders_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).ListRecentOrders(t.Context(), time.Now())

	require.ErrorIs(t, err, ports.ErrNotAuthenticated)
}

func TestClient_GetOrderDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/114-001", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "114-001",
			"buyer_address": "John Smith\n123 Main St\nNew York, NY 10001",
			"total":         "42.50",
			"line_items": []map[string]any{
				{"title": "Vintage camera lens", "quantity": 1, "price": "42.50"},
			},
		})
	}))
	defer server.Close()

	details, err := newClient(t, server.URL).GetOrderDetails(t.Context(), "114-001")

	require.NoError(t, err)
	assert.Equal(t, "114-001", details.OrderID())
	assert.Contains(t, details.BuyerAddress(), "New York, NY 10001")
	assert.True(t, decimal.RequireFromString("42.50").Equal(details.Total()))
	require.Len(t, details.LineItems(), 1)
	assert.Equal(t, "Vintage camera lens", details.LineItems()[0].Title)
}

func TestClient_GetShippingRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rates", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "49503", payload["origin"])
		assert.Equal(t, "10001", payload["destination"])
		assert.Equal(t, "1", payload["pounds"])

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"carrier": "USPS", "service": "Ground Advantage", "cost": "8.40"},
			{"carrier": "DHL", "service": "Express", "cost": "22.00"},
			{"carrier": "UPS", "service": "Ground", "cost": "9.75"},
		})
	}))
	defer server.Close()

	request := shipment.RateRequest{
		Origin:      mustPostalCode(t, "49503"),
		Destination: mustPostalCode(t, "10001"),
		Package:     shipment.DefaultPackageSpec(),
	}

	quotes, err := newClient(t, server.URL).GetShippingRates(t.Context(), request)

	require.NoError(t, err)
	// The unsupported DHL quote is dropped, not an error.
	require.Len(t, quotes, 2)
	assert.Equal(t, shipment.USPS, quotes[0].Carrier)
	assert.Equal(t, shipment.UPS, quotes[1].Carrier)
}

func TestClient_PurchaseShippingLabel(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/labels", r.URL.Path)

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "114-001", payload["order_id"])
			assert.Equal(t, "USPS", payload["carrier"])
			assert.NotEmpty(t, payload["tracking"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"success":         true,
				"label_url":       "https://labels.example/1.pdf",
				"tracking_number": "9400100000000000000001",
			})
		}))
		defer server.Close()

		request := shipment.LabelRequest{
			OrderID:             "114-001",
			Carrier:             shipment.USPS,
			Service:             "Ground Advantage",
			TrackingPlaceholder: shipment.NewTrackingPlaceholder(),
			Measurements:        shipment.DefaultPackageSpec().Measurements(),
			Origin:              mustPostalCode(t, "49503"),
			Destination:         mustPostalCode(t, "10001"),
		}

		result, err := newClient(t, server.URL).PurchaseShippingLabel(t.Context(), request)

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "https://labels.example/1.pdf", result.LabelURL)
		assert.Equal(t, "9400100000000000000001", result.TrackingNumber)
	})

	t.Run("carrier_rejection_is_not_an_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "insufficient postage balance",
			})
		}))
		defer server.Close()

		result, err := newClient(t, server.URL).PurchaseShippingLabel(t.Context(), shipment.LabelRequest{
			Origin:      mustPostalCode(t, "49503"),
			Destination: mustPostalCode(t, "10001"),
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "insufficient postage balance", result.Message)
	})
}

func TestClient_CircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	for range 5 {
		_, err := client.ListRecentOrders(t.Context(), time.Now())
		require.Error(t, err)
	}
	require.EqualValues(t, 5, hits.Load())

	// Breaker is open now; further calls fail fast without reaching the API.
	_, err := client.ListRecentOrders(t.Context(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marketplace API unavailable")
	assert.EqualValues(t, 5, hits.Load())
}
