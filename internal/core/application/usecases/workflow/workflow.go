// Package workflow implements the operator-facing fulfillment session: the
// state controller that walks a pending marketplace order through rate
// shopping to a purchased shipping label.
//
// The workflow is single-instance per operator session. All state writes are
// serialized through one mutex, and every fetch carries a monotonically
// increasing request token: a response whose token is stale by the time it
// arrives is discarded, so only the most recent fetch of each kind may update
// shared state. Failed operations never leave the session in a worse state
// than before the call.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	appservices "fulfillment/internal/core/application/services"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	domainservices "fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrPreconditionViolation indicates an operation was invoked while disabled:
// the consumer surface must not offer an action whose guard does not hold, so
// hitting this error is a programming mistake in the consumer rather than a
// recoverable runtime condition.
var ErrPreconditionViolation = errors.New("action invoked while disabled")

// ErrOriginIsNotUsable indicates the workflow was constructed without a
// usable origin postal code.
var ErrOriginIsNotUsable = errors.New("origin postal code is not usable")

// defaultLookback bounds the ListRecentOrders query window.
const defaultLookback = 30 * 24 * time.Hour

// FulfillmentWorkflow is the top-level state controller of the fulfillment
// core. It composes the order source, the rate-shopping engine, and the
// label-purchase orchestrator, and exposes the operations an operator-facing
// surface calls.
//
// Exactly one pending order, one set of order details, and one rate selection
// are "current" at any time. Order details are never non-nil while no pending
// order is selected; the available-rate list is always empty while order
// details are nil; and a label purchase requires a non-nil selected quote and
// non-nil order details simultaneously.
type FulfillmentWorkflow struct {
	mu sync.Mutex

	origin       kernel.PostalCode
	source       ports.OrderSource
	engine       appservices.RateShoppingEngine
	orchestrator appservices.LabelPurchaseOrchestrator
	parser       domainservices.AddressParser
	catalog      domainservices.RateCatalog
	uowFactory   ports.UnitOfWorkFactory
	logger       *slog.Logger

	clock    func() time.Time
	lookback time.Duration

	stage               shipment.Stage
	pendingOrders       []order.PendingOrder
	selectedOrderID     string
	orderDetails        *order.Details
	availableRates      []shipment.RateQuote
	selectedRate        *shipment.RateQuote
	packageSpec         shipment.PackageSpec
	selectedCarrier     shipment.Carrier
	selectedServiceType string
	status              string

	// Request tokens, one per fetch kind. A fetch bumps its token before the
	// network call and applies the response only if the token is still
	// current, which makes the latest request the only possible writer.
	ordersToken  uint64
	detailsToken uint64
	ratesToken   uint64

	inflight   int
	purchasing bool
}

// NewFulfillmentWorkflow creates a workflow session shipping from origin.
//
// The session starts Idle with the default package specification, USPS as the
// selected carrier, and that carrier's first catalog tier as the selected
// service type. uowFactory may be nil, in which case purchased labels are not
// recorded to shipment history.
func NewFulfillmentWorkflow(
	origin kernel.PostalCode,
	source ports.OrderSource,
	engine appservices.RateShoppingEngine,
	orchestrator appservices.LabelPurchaseOrchestrator,
	catalog domainservices.RateCatalog,
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
) (*FulfillmentWorkflow, error) {
	if !origin.IsUsable() {
		return nil, ErrOriginIsNotUsable
	}
	if source == nil {
		return nil, errs.NewValueIsRequiredError("source")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FulfillmentWorkflow{
		origin:              origin,
		source:              source,
		engine:              engine,
		orchestrator:        orchestrator,
		parser:              domainservices.NewAddressParser(),
		catalog:             catalog,
		uowFactory:          uowFactory,
		logger:              logger.With("component", "fulfillment_workflow"),
		clock:               time.Now,
		lookback:            defaultLookback,
		stage:               shipment.Idle,
		packageSpec:         shipment.DefaultPackageSpec(),
		selectedCarrier:     shipment.USPS,
		selectedServiceType: catalog.DefaultServiceTypeFor(shipment.USPS),
	}, nil
}

// LoadPendingOrders refreshes the pending-order list from the marketplace.
//
// Allowed from any stage. Applying a fresh list clears the selected order,
// its details, the rate list, and the rate selection: loading a fresh order
// list invalidates any in-progress shipment. On failure the session is left
// exactly as it was, with the error reported through the status field.
func (w *FulfillmentWorkflow) LoadPendingOrders(ctx context.Context, cmd LoadPendingOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	w.ordersToken++
	token := w.ordersToken
	w.inflight++
	since := w.clock().Add(-w.lookback)
	w.mu.Unlock()

	listed, err := w.source.ListRecentOrders(ctx, since)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inflight--

	if token != w.ordersToken {
		// A later load or a cancel superseded this request.
		return nil
	}

	if err != nil {
		if errors.Is(err, ports.ErrNotAuthenticated) {
			w.status = "Not signed in to the marketplace"
		} else {
			w.status = fmt.Sprintf("Failed to load orders: %v", err)
		}
		return err
	}

	pending := make([]order.PendingOrder, 0, len(listed))
	for _, o := range listed {
		if o.NeedsShipping() {
			pending = append(pending, o)
		}
	}

	w.pendingOrders = pending
	w.stage = w.stage.LoadOrders()
	w.clearSelectionLocked()
	w.status = fmt.Sprintf("Loaded %d pending orders", len(pending))
	return nil
}

// SelectOrder picks a pending order and fetches its details.
//
// The order id must be present in the current pending list. On success the
// fetched details replace any previous ones wholesale, the rate list and
// selection are cleared, and the package specification resets to defaults.
// On failure the session is left unchanged; in particular the pending list
// survives. When two selections race, the later call's result wins and the
// earlier response is discarded.
func (w *FulfillmentWorkflow) SelectOrder(ctx context.Context, cmd SelectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if _, err := w.stage.SelectOrder(); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("%w: no pending orders loaded", ErrPreconditionViolation)
	}
	if !w.hasPendingOrderLocked(cmd.OrderID()) {
		w.mu.Unlock()
		return errs.NewObjectNotFoundError("orderId", cmd.OrderID())
	}
	w.detailsToken++
	token := w.detailsToken
	w.inflight++
	w.mu.Unlock()

	details, err := w.source.GetOrderDetails(ctx, cmd.OrderID())

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inflight--

	if token != w.detailsToken {
		return nil
	}

	if err != nil {
		w.status = fmt.Sprintf("Failed to fetch order %s: %v", cmd.OrderID(), err)
		return err
	}

	stage, stageErr := w.stage.SelectOrder()
	if stageErr != nil {
		// The pending list disappeared while the fetch was in flight.
		return fmt.Errorf("%w: no pending orders loaded", ErrPreconditionViolation)
	}

	w.stage = stage
	w.selectedOrderID = cmd.OrderID()
	w.orderDetails = &details
	w.availableRates = nil
	w.selectedRate = nil
	w.ratesToken++
	w.packageSpec = shipment.DefaultPackageSpec()
	w.status = fmt.Sprintf("Selected order %s", cmd.OrderID())
	return nil
}

// RefreshRates shops carrier rates for the selected order's destination.
//
// Enabled only once order details have been fetched. On success with at least
// one quote, the sorted list is stored and its first (cheapest) entry is
// auto-selected as the default highlighted choice. Zero quotes is a valid
// result: the list is stored empty, nothing is selected, and purchasing stays
// disabled. On error the session returns to OrderSelected with the rate list
// cleared; order details survive untouched.
func (w *FulfillmentWorkflow) RefreshRates(ctx context.Context, cmd RefreshRatesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if _, err := w.stage.RefreshRates(); err != nil || w.orderDetails == nil {
		w.mu.Unlock()
		return fmt.Errorf("%w: no order selected", ErrPreconditionViolation)
	}
	addressText := w.orderDetails.BuyerAddress()
	spec := w.packageSpec
	w.ratesToken++
	token := w.ratesToken
	w.inflight++
	w.mu.Unlock()

	quotes, err := w.engine.FetchRates(ctx, w.origin, addressText, spec)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inflight--

	if token != w.ratesToken {
		return nil
	}

	if err != nil {
		w.availableRates = nil
		w.selectedRate = nil
		if w.stage.HasOrder() {
			w.stage = shipment.OrderSelected
		}
		if errors.Is(err, appservices.ErrInvalidDestination) {
			w.status = "Buyer address has no usable postal code"
		} else {
			w.status = fmt.Sprintf("Rate lookup failed: %v", err)
		}
		return err
	}

	stage, stageErr := w.stage.RefreshRates()
	if stageErr != nil {
		return fmt.Errorf("%w: no order selected", ErrPreconditionViolation)
	}

	w.stage = stage
	w.availableRates = quotes
	if len(quotes) == 0 {
		w.selectedRate = nil
		w.status = "No rates available for this shipment"
		return nil
	}

	cheapest := quotes[0]
	w.selectedRate = &cheapest
	w.status = fmt.Sprintf("Found %d rates, cheapest is %s", len(quotes), cheapest.DisplayCost())
	return nil
}

// SelectRate highlights the quote at the commanded position in the stored
// rate list, replacing the auto-selected cheapest entry.
func (w *FulfillmentWorkflow) SelectRate(cmd SelectRateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.availableRates) == 0 {
		return fmt.Errorf("%w: no rates available", ErrPreconditionViolation)
	}
	if cmd.Index() >= len(w.availableRates) {
		return errs.NewValueIsOutOfRangeError("rate index", cmd.Index(), 0, len(w.availableRates)-1)
	}

	stage, err := w.stage.SelectRate()
	if err != nil {
		return fmt.Errorf("%w: no rates available", ErrPreconditionViolation)
	}

	selected := w.availableRates[cmd.Index()]
	w.stage = stage
	w.selectedRate = &selected
	w.status = fmt.Sprintf("Selected %s", selected.DisplayCost())
	return nil
}

// SelectCarrier switches the carrier used for manual service-type selection
// and resets the selected service type to the first entry of that carrier's
// catalog list.
func (w *FulfillmentWorkflow) SelectCarrier(cmd SelectCarrierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.selectedCarrier = cmd.Carrier()
	w.selectedServiceType = w.catalog.DefaultServiceTypeFor(cmd.Carrier())
	return nil
}

// UpdatePackage replaces the operator-entered package specification. The new
// specification is carried unchanged into subsequent rate fetches and label
// purchases until a cancel or a new order selection resets it.
func (w *FulfillmentWorkflow) UpdatePackage(cmd UpdatePackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.packageSpec = cmd.Spec()
	return nil
}

// PurchaseLabel buys a shipping label for the selected order at the selected
// rate. Enabled only while both a selected quote and order details exist, and
// only one purchase may be in flight at a time.
//
// On success the status reports the label URL and the purchase is recorded to
// shipment history; order details and the rate selection are left in place so
// the operator explicitly moves on to the next order. On failure the carrier
// error is reported and the session is unchanged, permitting a retry with the
// same or a different rate.
func (w *FulfillmentWorkflow) PurchaseLabel(ctx context.Context, cmd PurchaseLabelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if w.purchasing {
		w.mu.Unlock()
		return fmt.Errorf("%w: a purchase is already in flight", ErrPreconditionViolation)
	}
	if w.selectedRate == nil || w.orderDetails == nil {
		w.mu.Unlock()
		return fmt.Errorf("%w: purchase requires a selected rate and order details", ErrPreconditionViolation)
	}
	details := *w.orderDetails
	rate := *w.selectedRate
	spec := w.packageSpec
	destination := w.parser.ExtractPostalCode(details.BuyerAddress())
	w.purchasing = true
	w.inflight++
	w.mu.Unlock()

	result, err := w.orchestrator.PurchaseLabel(ctx, &details, &rate, spec, w.origin, destination)

	w.mu.Lock()
	w.inflight--
	w.purchasing = false

	if err != nil {
		w.status = fmt.Sprintf("Label purchase failed: %v", err)
		w.mu.Unlock()
		return err
	}
	if !result.Success {
		w.status = fmt.Sprintf("Label purchase failed: %s", result.Message)
		w.mu.Unlock()
		return appservices.NewLabelPurchaseFailedError(errors.New(result.Message))
	}

	if stage, stageErr := w.stage.PurchaseLabel(); stageErr == nil {
		w.stage = stage
	}
	w.status = fmt.Sprintf("Label purchased: %s", result.LabelURL)
	w.mu.Unlock()

	w.recordPurchase(ctx, details.OrderID(), rate, result)
	return nil
}

// Cancel abandons the in-progress shipment: the selected order, its details,
// the rate list, the rate selection, and the status are all reset, and the
// package specification returns to defaults. The session lands on
// OrdersLoaded unconditionally. In-flight fetches are invalidated through
// their tokens rather than cancelled; their late responses are discarded.
// Cancel is idempotent.
func (w *FulfillmentWorkflow) Cancel(cmd CancelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.ordersToken++
	w.stage = w.stage.Cancel()
	w.clearSelectionLocked()
	w.status = ""
	return nil
}

// Snapshot returns a consistent copy of the observable workflow state for the
// consumer surface. Derived display fields are pure functions of the
// underlying selection.
func (w *FulfillmentWorkflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snapshot := Snapshot{
		Stage:               w.stage,
		Busy:                w.inflight > 0,
		Status:              w.status,
		SelectedOrderID:     w.selectedOrderID,
		Package:             w.packageSpec,
		SelectedCarrier:     w.selectedCarrier,
		SelectedServiceType: w.selectedServiceType,
		ServiceTypes:        w.catalog.ServiceTypesFor(w.selectedCarrier),
	}

	snapshot.PendingOrders = make([]order.PendingOrder, len(w.pendingOrders))
	copy(snapshot.PendingOrders, w.pendingOrders)

	snapshot.AvailableRates = make([]shipment.RateQuote, len(w.availableRates))
	copy(snapshot.AvailableRates, w.availableRates)

	if w.orderDetails != nil {
		details := *w.orderDetails
		snapshot.OrderDetails = &details
	}
	if w.selectedRate != nil {
		rate := *w.selectedRate
		snapshot.SelectedRate = &rate
		snapshot.SelectedRateDisplay = rate.DisplayCost()
	}

	return snapshot
}

// Snapshot is the observable state of a workflow session at one instant.
type Snapshot struct {
	Stage               shipment.Stage
	Busy                bool
	Status              string
	PendingOrders       []order.PendingOrder
	SelectedOrderID     string
	OrderDetails        *order.Details
	AvailableRates      []shipment.RateQuote
	SelectedRate        *shipment.RateQuote
	SelectedRateDisplay string
	Package             shipment.PackageSpec
	SelectedCarrier     shipment.Carrier
	SelectedServiceType string
	ServiceTypes        []string
}

// clearSelectionLocked resets the per-order selection state and invalidates
// any in-flight detail or rate fetch. Callers must hold w.mu.
func (w *FulfillmentWorkflow) clearSelectionLocked() {
	w.detailsToken++
	w.ratesToken++
	w.selectedOrderID = ""
	w.orderDetails = nil
	w.availableRates = nil
	w.selectedRate = nil
	w.packageSpec = shipment.DefaultPackageSpec()
}

// hasPendingOrderLocked reports whether id is in the current pending list.
// Callers must hold w.mu.
func (w *FulfillmentWorkflow) hasPendingOrderLocked(id string) bool {
	for _, o := range w.pendingOrders {
		if o.ID() == id {
			return true
		}
	}
	return false
}

// recordPurchase appends the purchase to shipment history. History is
// observational: a recording failure is logged and never fails the purchase.
func (w *FulfillmentWorkflow) recordPurchase(
	ctx context.Context,
	orderID string,
	rate shipment.RateQuote,
	result shipment.LabelResult,
) {
	if w.uowFactory == nil {
		return
	}

	record, err := shipment.NewRecord(
		kernel.NewUUID(), orderID, rate, result.TrackingNumber, result.LabelURL, w.clock().UTC())
	if err != nil {
		w.logger.WarnContext(ctx, "Could not build shipment record", "orderId", orderID, "error", err)
		return
	}

	uow := w.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		w.logger.WarnContext(ctx, "Could not begin shipment history transaction", "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, record); err != nil {
		w.logger.WarnContext(ctx, "Could not record shipment", "orderId", orderID, "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		w.logger.WarnContext(ctx, "Could not commit shipment record", "orderId", orderID, "error", err)
	}
}
