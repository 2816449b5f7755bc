package workflow

import (
	"errors"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrLoadPendingOrdersCommandIsNotConstructed = errors.New(
		"LoadPendingOrdersCommand must be created via NewLoadPendingOrdersCommand constructor",
	)
	ErrSelectOrderCommandIsNotConstructed = errors.New(
		"SelectOrderCommand must be created via NewSelectOrderCommand constructor",
	)
	ErrRefreshRatesCommandIsNotConstructed = errors.New(
		"RefreshRatesCommand must be created via NewRefreshRatesCommand constructor",
	)
	ErrSelectRateCommandIsNotConstructed = errors.New(
		"SelectRateCommand must be created via NewSelectRateCommand constructor",
	)
	ErrSelectCarrierCommandIsNotConstructed = errors.New(
		"SelectCarrierCommand must be created via NewSelectCarrierCommand constructor",
	)
	ErrUpdatePackageCommandIsNotConstructed = errors.New(
		"UpdatePackageCommand must be created via NewUpdatePackageCommand constructor",
	)
	ErrPurchaseLabelCommandIsNotConstructed = errors.New(
		"PurchaseLabelCommand must be created via NewPurchaseLabelCommand constructor",
	)
	ErrCancelCommandIsNotConstructed = errors.New(
		"CancelCommand must be created via NewCancelCommand constructor",
	)

	ErrSelectOrderIDIsRequired = errors.New("order id is required")
	ErrRateIndexIsNegative     = errors.New("rate index must not be negative")
)

// LoadPendingOrdersCommand refreshes the operator's list of orders awaiting
// shipment from the marketplace.
type LoadPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewLoadPendingOrdersCommand creates a parameterless command to reload the
// pending-order list.
func NewLoadPendingOrdersCommand() LoadPendingOrdersCommand {
	return LoadPendingOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c LoadPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrLoadPendingOrdersCommandIsNotConstructed)
}

// SelectOrderCommand picks one pending order and fetches its details.
//
// Example:
//
//	cmd, err := workflow.NewSelectOrderCommand("114-3941689-8772232")
//	if err != nil {
//	    return err
//	}
//	if err := wf.SelectOrder(ctx, cmd); err != nil {
//	    // order not in the pending list, or the detail fetch failed
//	}
type SelectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewSelectOrderCommand creates a command to select the pending order with
// the given marketplace id. The id must be non-empty.
func NewSelectOrderCommand(orderID string) (SelectOrderCommand, error) {
	if orderID == "" {
		return SelectOrderCommand{}, ErrSelectOrderIDIsRequired
	}
	return SelectOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectOrderCommand) Validate() error {
	return c.guard.Validate(ErrSelectOrderCommandIsNotConstructed)
}

// OrderID returns the marketplace id of the order to select.
func (c SelectOrderCommand) OrderID() string {
	return c.orderID
}

// RefreshRatesCommand shops carrier rates for the currently selected order.
type RefreshRatesCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshRatesCommand creates a parameterless command to (re)fetch rates.
func NewRefreshRatesCommand() RefreshRatesCommand {
	return RefreshRatesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RefreshRatesCommand) Validate() error {
	return c.guard.Validate(ErrRefreshRatesCommandIsNotConstructed)
}

// SelectRateCommand highlights one quote from the available rate list.
type SelectRateCommand struct { //nolint:recvcheck //using for validation
	index int

	guard guard.ConstructorGuard
}

// NewSelectRateCommand creates a command to select the quote at the given
// position in the stored (sorted) rate list. The index must not be negative;
// bounds against the actual list are checked by the workflow.
func NewSelectRateCommand(index int) (SelectRateCommand, error) {
	if index < 0 {
		return SelectRateCommand{}, ErrRateIndexIsNegative
	}
	return SelectRateCommand{
		index: index,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectRateCommand) Validate() error {
	return c.guard.Validate(ErrSelectRateCommandIsNotConstructed)
}

// Index returns the position of the quote to select.
func (c SelectRateCommand) Index() int {
	return c.index
}

// SelectCarrierCommand changes the carrier used for manual service-type
// selection. Selecting a carrier resets the selected service type to the
// first entry of that carrier's catalog list.
type SelectCarrierCommand struct { //nolint:recvcheck //using for validation
	carrier shipment.Carrier

	guard guard.ConstructorGuard
}

// NewSelectCarrierCommand creates a command to switch to the given carrier.
// The carrier must be one of the supported carriers.
func NewSelectCarrierCommand(carrier shipment.Carrier) (SelectCarrierCommand, error) {
	if err := carrier.Validate(); err != nil {
		return SelectCarrierCommand{}, err
	}
	return SelectCarrierCommand{
		carrier: carrier,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectCarrierCommand) Validate() error {
	return c.guard.Validate(ErrSelectCarrierCommandIsNotConstructed)
}

// Carrier returns the carrier to switch to.
func (c SelectCarrierCommand) Carrier() shipment.Carrier {
	return c.carrier
}

// UpdatePackageCommand replaces the operator-entered package specification.
// Fields are carried as raw text; numeric validation is deliberately deferred
// to purchase time, where malformed fields fall back to defaults.
type UpdatePackageCommand struct { //nolint:recvcheck //using for validation
	spec shipment.PackageSpec

	guard guard.ConstructorGuard
}

// NewUpdatePackageCommand creates a command to replace the package spec.
func NewUpdatePackageCommand(spec shipment.PackageSpec) UpdatePackageCommand {
	return UpdatePackageCommand{
		spec:  spec,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c UpdatePackageCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackageCommandIsNotConstructed)
}

// Spec returns the replacement package specification.
func (c UpdatePackageCommand) Spec() shipment.PackageSpec {
	return c.spec
}

// PurchaseLabelCommand buys a label for the selected order at the selected rate.
type PurchaseLabelCommand struct {
	guard guard.ConstructorGuard
}

// NewPurchaseLabelCommand creates a parameterless command to purchase a label.
func NewPurchaseLabelCommand() PurchaseLabelCommand {
	return PurchaseLabelCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c PurchaseLabelCommand) Validate() error {
	return c.guard.Validate(ErrPurchaseLabelCommandIsNotConstructed)
}

// CancelCommand abandons the in-progress shipment and returns the session to
// the pending-order list.
type CancelCommand struct {
	guard guard.ConstructorGuard
}

// NewCancelCommand creates a parameterless command to cancel the in-progress shipment.
func NewCancelCommand() CancelCommand {
	return CancelCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c CancelCommand) Validate() error {
	return c.guard.Validate(ErrCancelCommandIsNotConstructed)
}
