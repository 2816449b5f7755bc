// Package http exposes the operator-facing HTTP surface of the fulfillment
// service: the workflow operations, the observable session state, and the
// shipment-history read side.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/application/usecases/workflow"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// defaultHistoryLimit bounds GET /shipments when no limit is given.
const defaultHistoryLimit = 50

// ErrorResponse is the JSON error body returned by every handler.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server wires HTTP requests to the fulfillment workflow and the read-side
// query handlers. One Server serves one workflow session.
type Server struct {
	workflow *workflow.FulfillmentWorkflow

	recentShipmentsHandler queries.GetRecentShipmentsQueryHandler
	orderShipmentsHandler  queries.GetOrderShipmentsQueryHandler
}

// NewServer creates an HTTP server over the given workflow session and query handlers.
func NewServer(
	wf *workflow.FulfillmentWorkflow,
	recentShipmentsHandler queries.GetRecentShipmentsQueryHandler,
	orderShipmentsHandler queries.GetOrderShipmentsQueryHandler,
) *Server {
	return &Server{
		workflow:               wf,
		recentShipmentsHandler: recentShipmentsHandler,
		orderShipmentsHandler:  orderShipmentsHandler,
	}
}

// RegisterRoutes mounts all handlers under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/state", s.GetState)
	api.POST("/orders/refresh", s.LoadPendingOrders)
	api.POST("/orders/:id/select", s.SelectOrder)
	api.POST("/rates/refresh", s.RefreshRates)
	api.POST("/rates/:index/select", s.SelectRate)
	api.PUT("/carrier", s.SelectCarrier)
	api.PUT("/package", s.UpdatePackage)
	api.POST("/labels", s.PurchaseLabel)
	api.POST("/cancel", s.Cancel)
	api.GET("/shipments", s.GetRecentShipments)
	api.GET("/orders/:id/shipments", s.GetOrderShipments)
}

// GetState handles GET /api/v1/state - returns the observable workflow state.
func (s *Server) GetState(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// LoadPendingOrders handles POST /api/v1/orders/refresh.
func (s *Server) LoadPendingOrders(ctx echo.Context) error {
	err := s.workflow.LoadPendingOrders(ctx.Request().Context(), workflow.NewLoadPendingOrdersCommand())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// SelectOrder handles POST /api/v1/orders/:id/select.
func (s *Server) SelectOrder(ctx echo.Context) error {
	cmd, err := workflow.NewSelectOrderCommand(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.workflow.SelectOrder(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// RefreshRates handles POST /api/v1/rates/refresh.
func (s *Server) RefreshRates(ctx echo.Context) error {
	err := s.workflow.RefreshRates(ctx.Request().Context(), workflow.NewRefreshRatesCommand())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// SelectRate handles POST /api/v1/rates/:index/select.
func (s *Server) SelectRate(ctx echo.Context) error {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Rate index must be a number",
		})
	}

	cmd, err := workflow.NewSelectRateCommand(index)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.workflow.SelectRate(cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// SelectCarrier handles PUT /api/v1/carrier.
func (s *Server) SelectCarrier(ctx echo.Context) error {
	var body SelectCarrierRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	carrier, err := shipment.CarrierFromString(body.Carrier)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := workflow.NewSelectCarrierCommand(carrier)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.workflow.SelectCarrier(cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// UpdatePackage handles PUT /api/v1/package.
func (s *Server) UpdatePackage(ctx echo.Context) error {
	var body PackageRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd := workflow.NewUpdatePackageCommand(body.toSpec())
	if err := s.workflow.UpdatePackage(cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// PurchaseLabel handles POST /api/v1/labels.
func (s *Server) PurchaseLabel(ctx echo.Context) error {
	err := s.workflow.PurchaseLabel(ctx.Request().Context(), workflow.NewPurchaseLabelCommand())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// Cancel handles POST /api/v1/cancel.
func (s *Server) Cancel(ctx echo.Context) error {
	if err := s.workflow.Cancel(workflow.NewCancelCommand()); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stateFromSnapshot(s.workflow.Snapshot()))
}

// GetRecentShipments handles GET /api/v1/shipments - recent purchase history.
func (s *Server) GetRecentShipments(ctx echo.Context) error {
	limit := defaultHistoryLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Limit must be a number",
			})
		}
		limit = parsed
	}

	query, err := queries.NewGetRecentShipmentsQuery(limit)
	if err != nil {
		return s.writeError(ctx, err)
	}

	shipments, err := s.recentShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentsFromResponses(shipments))
}

// GetOrderShipments handles GET /api/v1/orders/:id/shipments - the purchase
// history of one marketplace order.
func (s *Server) GetOrderShipments(ctx echo.Context) error {
	query, err := queries.NewGetOrderShipmentsQuery(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	shipments, err := s.orderShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentsFromResponses(shipments))
}

// writeError maps domain and application errors onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, workflow.ErrPreconditionViolation):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrNotAuthenticated):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, workflow.ErrSelectOrderIDIsRequired),
		errors.Is(err, workflow.ErrRateIndexIsNegative),
		errors.Is(err, queries.ErrShipmentLimitIsNotPositive):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}
