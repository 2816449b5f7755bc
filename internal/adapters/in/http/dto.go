package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/application/usecases/workflow"
	"fulfillment/internal/core/domain/model/shipment"
)

// SelectCarrierRequest is the body of PUT /carrier.
type SelectCarrierRequest struct {
	Carrier string `json:"carrier"`
}

// PackageRequest is the body of PUT /package. Dimension and weight fields are
// raw text; malformed numbers fall back to defaults at purchase time.
type PackageRequest struct {
	Length            string `json:"length"`
	Width             string `json:"width"`
	Height            string `json:"height"`
	Pounds            string `json:"pounds"`
	Ounces            string `json:"ounces"`
	Insured           bool   `json:"insured"`
	InsuredValue      string `json:"insured_value"`
	SignatureRequired bool   `json:"signature_required"`
}

func (r PackageRequest) toSpec() shipment.PackageSpec {
	return shipment.PackageSpec{
		Length:            r.Length,
		Width:             r.Width,
		Height:            r.Height,
		Pounds:            r.Pounds,
		Ounces:            r.Ounces,
		Insured:           r.Insured,
		InsuredValue:      r.InsuredValue,
		SignatureRequired: r.SignatureRequired,
	}
}

// PackageResponse mirrors PackageRequest in state responses.
type PackageResponse struct {
	Length            string `json:"length"`
	Width             string `json:"width"`
	Height            string `json:"height"`
	Pounds            string `json:"pounds"`
	Ounces            string `json:"ounces"`
	Insured           bool   `json:"insured"`
	InsuredValue      string `json:"insured_value"`
	SignatureRequired bool   `json:"signature_required"`
}

// PendingOrderResponse is one row of the pending-order list.
type PendingOrderResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ShippingStatus string `json:"shipping_status"`
}

// LineItemResponse is one purchased item within order details.
type LineItemResponse struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// OrderDetailsResponse is the selected order's details.
type OrderDetailsResponse struct {
	ID           string             `json:"id"`
	BuyerAddress string             `json:"buyer_address"`
	Total        string             `json:"total"`
	LineItems    []LineItemResponse `json:"line_items"`
}

// RateResponse is one quote in the available-rate list.
type RateResponse struct {
	Carrier       string `json:"carrier"`
	Service       string `json:"service"`
	Cost          string `json:"cost"`
	International bool   `json:"international"`
	Display       string `json:"display"`
}

// StateResponse is the observable workflow state returned by every operation.
type StateResponse struct {
	Stage               string                 `json:"stage"`
	Busy                bool                   `json:"busy"`
	Status              string                 `json:"status"`
	PendingOrders       []PendingOrderResponse `json:"pending_orders"`
	SelectedOrderID     string                 `json:"selected_order_id,omitempty"`
	OrderDetails        *OrderDetailsResponse  `json:"order_details,omitempty"`
	AvailableRates      []RateResponse         `json:"available_rates"`
	SelectedRate        *RateResponse          `json:"selected_rate,omitempty"`
	Package             PackageResponse        `json:"package"`
	SelectedCarrier     string                 `json:"selected_carrier"`
	SelectedServiceType string                 `json:"selected_service_type"`
	ServiceTypes        []string               `json:"service_types"`
}

func rateFromQuote(quote shipment.RateQuote) RateResponse {
	return RateResponse{
		Carrier:       quote.Carrier.String(),
		Service:       quote.Service,
		Cost:          quote.Cost.StringFixed(2),
		International: quote.International,
		Display:       quote.DisplayCost(),
	}
}

func stateFromSnapshot(snapshot workflow.Snapshot) StateResponse {
	state := StateResponse{
		Stage:           snapshot.Stage.String(),
		Busy:            snapshot.Busy,
		Status:          snapshot.Status,
		SelectedOrderID: snapshot.SelectedOrderID,
		Package: PackageResponse{
			Length:            snapshot.Package.Length,
			Width:             snapshot.Package.Width,
			Height:            snapshot.Package.Height,
			Pounds:            snapshot.Package.Pounds,
			Ounces:            snapshot.Package.Ounces,
			Insured:           snapshot.Package.Insured,
			InsuredValue:      snapshot.Package.InsuredValue,
			SignatureRequired: snapshot.Package.SignatureRequired,
		},
		SelectedCarrier:     snapshot.SelectedCarrier.String(),
		SelectedServiceType: snapshot.SelectedServiceType,
		ServiceTypes:        snapshot.ServiceTypes,
	}

	state.PendingOrders = make([]PendingOrderResponse, len(snapshot.PendingOrders))
	for i, o := range snapshot.PendingOrders {
		state.PendingOrders[i] = PendingOrderResponse{
			ID:             o.ID(),
			Title:          o.Title(),
			ShippingStatus: o.ShippingStatus(),
		}
	}

	state.AvailableRates = make([]RateResponse, len(snapshot.AvailableRates))
	for i, quote := range snapshot.AvailableRates {
		state.AvailableRates[i] = rateFromQuote(quote)
	}

	if snapshot.OrderDetails != nil {
		details := OrderDetailsResponse{
			ID:           snapshot.OrderDetails.OrderID(),
			BuyerAddress: snapshot.OrderDetails.BuyerAddress(),
			Total:        snapshot.OrderDetails.Total().StringFixed(2),
		}
		details.LineItems = make([]LineItemResponse, len(snapshot.OrderDetails.LineItems()))
		for i, item := range snapshot.OrderDetails.LineItems() {
			details.LineItems[i] = LineItemResponse{
				Title:    item.Title,
				Quantity: item.Quantity,
				Price:    item.Price.StringFixed(2),
			}
		}
		state.OrderDetails = &details
	}

	if snapshot.SelectedRate != nil {
		selected := rateFromQuote(*snapshot.SelectedRate)
		state.SelectedRate = &selected
	}

	return state
}

// ShipmentHistoryResponse is one purchased label in history listings.
type ShipmentHistoryResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	Carrier        string    `json:"carrier"`
	Service        string    `json:"service"`
	Cost           string    `json:"cost"`
	TrackingNumber string    `json:"tracking_number"`
	LabelURL       string    `json:"label_url"`
	PurchasedAt    time.Time `json:"purchased_at"`
}

func shipmentsFromResponses(shipments []queries.ShipmentResponse) []ShipmentHistoryResponse {
	out := make([]ShipmentHistoryResponse, len(shipments))
	for i, s := range shipments {
		out[i] = ShipmentHistoryResponse{
			ID:             s.ID.String(),
			OrderID:        s.OrderID,
			Carrier:        s.Carrier,
			Service:        s.Service,
			Cost:           s.Cost.StringFixed(2),
			TrackingNumber: s.TrackingNumber,
			LabelURL:       s.LabelURL,
			PurchasedAt:    s.PurchasedAt,
		}
	}
	return out
}
