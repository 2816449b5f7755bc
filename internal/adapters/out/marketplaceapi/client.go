// Package marketplaceapi implements the outbound HTTP adapter for the
// marketplace's seller API: order listing, order details, rate shopping, and
// label purchase. One Client serves all three ports so the whole seller API
// surface shares a single circuit breaker and authentication setup.
package marketplaceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/sony/gobreaker"
)

const (
	defaultRequestTimeout = 15 * time.Second

	// breakerConsecutiveFailures trips the circuit after this many failed
	// calls in a row; while open, calls fail fast without hitting the API.
	breakerConsecutiveFailures = 5
	breakerOpenTimeout         = 30 * time.Second
)

// maxErrorBodyBytes bounds how much of an error response body is carried into
// error messages.
const maxErrorBodyBytes = 512

// Client is an HTTP client for the marketplace seller API. It implements
// ports.OrderSource, ports.RateProvider, and ports.LabelProvider.
//
// All calls pass through a shared circuit breaker: after repeated failures the
// breaker opens and calls return immediately with an error, which the
// application layer surfaces the same way as any other provider failure.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a marketplace API client for the given base URL. The API
// key is sent as a bearer token on every request.
func NewClient(baseURL string, apiKey string, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "marketplace_api")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "marketplace-api",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		// Auth failures say nothing about service health; they must not
		// open the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ports.ErrNotAuthenticated)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		breaker:    breaker,
		logger:     logger,
	}, nil
}

// ListRecentOrders retrieves orders placed since the given time. The
// marketplace's own shipping-status filtering is not relied upon; callers
// filter for shippable statuses themselves.
func (c *Client) ListRecentOrders(ctx context.Context, since time.Time) ([]order.PendingOrder, error) {
	endpoint := fmt.Sprintf("/orders?since=%s", url.QueryEscape(since.UTC().Format(time.RFC3339)))

	var dtos []pendingOrderDTO
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &dtos); err != nil {
		return nil, err
	}

	orders := make([]order.PendingOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("order listing contains invalid entry %q: %w", dto.ID, err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetOrderDetails retrieves the full details of one order, including the
// buyer's free-form shipping address.
func (c *Client) GetOrderDetails(ctx context.Context, orderID string) (order.Details, error) {
	if orderID == "" {
		return order.Details{}, errs.NewValueIsRequiredError("orderID")
	}

	var dto orderDetailsDTO
	endpoint := "/orders/" + url.PathEscape(orderID)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &dto); err != nil {
		return order.Details{}, err
	}

	return dto.toDomain()
}

// GetShippingRates shops carrier rates for the given request. Quotes whose
// carrier the workflow does not support are dropped with a log line rather
// than failing the whole lookup.
func (c *Client) GetShippingRates(
	ctx context.Context, request shipment.RateRequest,
) ([]shipment.RateQuote, error) {
	var dtos []rateQuoteDTO
	if err := c.doJSON(ctx, http.MethodPost, "/rates", rateRequestFromDomain(request), &dtos); err != nil {
		return nil, err
	}

	quotes := make([]shipment.RateQuote, 0, len(dtos))
	for _, dto := range dtos {
		quote, err := dto.toDomain()
		if err != nil {
			c.logger.WarnContext(ctx, "Dropping quote from unsupported carrier",
				"carrier", dto.Carrier, "service", dto.Service)
			continue
		}
		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// PurchaseShippingLabel buys a label for the given request. A purchase the
// carrier rejects comes back as an unsuccessful LabelResult, not an error.
func (c *Client) PurchaseShippingLabel(
	ctx context.Context, request shipment.LabelRequest,
) (shipment.LabelResult, error) {
	var dto labelResultDTO
	if err := c.doJSON(ctx, http.MethodPost, "/labels", labelRequestFromDomain(request), &dto); err != nil {
		return shipment.LabelResult{}, err
	}

	return dto.toDomain(), nil
}

// doJSON performs one API call through the circuit breaker: marshals body (if
// any), sends the request, maps auth failures to ErrNotAuthenticated, and
// decodes a 2xx response into out.
func (c *Client) doJSON(ctx context.Context, method string, endpoint string, body any, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		var payload io.Reader
		if body != nil {
			raw, marshalErr := json.Marshal(body)
			if marshalErr != nil {
				return nil, marshalErr
			}
			payload = bytes.NewReader(raw)
		}

		req, reqErr := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, ports.ErrNotAuthenticated
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
			return nil, fmt.Errorf("%s %s returned %d: %s",
				method, endpoint, resp.StatusCode, bytes.TrimSpace(snippet))
		}

		if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
			return nil, fmt.Errorf("decoding %s %s response: %w", method, endpoint, decodeErr)
		}

		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("marketplace API unavailable: %w", err)
	}

	return err
}
