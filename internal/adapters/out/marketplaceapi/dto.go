package marketplaceapi

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
)

// pendingOrderDTO is the wire representation of one order in the marketplace
// order listing.
type pendingOrderDTO struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ShippingStatus string `json:"shipping_status"`
}

func (d pendingOrderDTO) toDomain() (order.PendingOrder, error) {
	return order.NewPendingOrder(d.ID, d.Title, d.ShippingStatus)
}

// lineItemDTO is the wire representation of one purchased item.
type lineItemDTO struct {
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// orderDetailsDTO is the wire representation of the order detail endpoint.
// BuyerAddress is free-form multi-line text, exactly as entered by the buyer.
type orderDetailsDTO struct {
	ID           string          `json:"id"`
	BuyerAddress string          `json:"buyer_address"`
	Total        decimal.Decimal `json:"total"`
	LineItems    []lineItemDTO   `json:"line_items"`
}

func (d orderDetailsDTO) toDomain() (order.Details, error) {
	items := make([]order.LineItem, 0, len(d.LineItems))
	for _, item := range d.LineItems {
		items = append(items, order.LineItem{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return order.NewDetails(d.ID, d.BuyerAddress, d.Total, items)
}

// rateRequestDTO is the payload sent to the rate-shopping endpoint.
type rateRequestDTO struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	Pounds       string `json:"pounds"`
	Ounces       string `json:"ounces"`
	Insured      bool   `json:"insured"`
	InsuredValue string `json:"insured_value,omitempty"`
	Signature    bool   `json:"signature"`
}

func rateRequestFromDomain(request shipment.RateRequest) rateRequestDTO {
	return rateRequestDTO{
		Origin:       request.Origin.String(),
		Destination:  request.Destination.String(),
		Length:       request.Package.Length,
		Width:        request.Package.Width,
		Height:       request.Package.Height,
		Pounds:       request.Package.Pounds,
		Ounces:       request.Package.Ounces,
		Insured:      request.Package.Insured,
		InsuredValue: request.Package.InsuredValue,
		Signature:    request.Package.SignatureRequired,
	}
}

// rateQuoteDTO is the wire representation of one carrier quote.
type rateQuoteDTO struct {
	Carrier       string          `json:"carrier"`
	Service       string          `json:"service"`
	Cost          decimal.Decimal `json:"cost"`
	International bool            `json:"international"`
}

func (d rateQuoteDTO) toDomain() (shipment.RateQuote, error) {
	carrier, err := shipment.CarrierFromString(d.Carrier)
	if err != nil {
		return shipment.RateQuote{}, err
	}

	return shipment.RateQuote{
		Carrier:       carrier,
		Service:       d.Service,
		Cost:          d.Cost,
		International: d.International,
	}, nil
}

// labelRequestDTO is the payload sent to the label-purchase endpoint.
type labelRequestDTO struct {
	OrderID      string  `json:"order_id"`
	Carrier      string  `json:"carrier"`
	Service      string  `json:"service"`
	Tracking     string  `json:"tracking"`
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Pounds       float64 `json:"pounds"`
	Ounces       float64 `json:"ounces"`
	Insured      bool    `json:"insured"`
	InsuredValue string  `json:"insured_value,omitempty"`
	Signature    bool    `json:"signature"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
}

func labelRequestFromDomain(request shipment.LabelRequest) labelRequestDTO {
	return labelRequestDTO{
		OrderID:      request.OrderID,
		Carrier:      request.Carrier.String(),
		Service:      request.Service,
		Tracking:     request.TrackingPlaceholder,
		Length:       request.Measurements.Length,
		Width:        request.Measurements.Width,
		Height:       request.Measurements.Height,
		Pounds:       request.Measurements.Pounds,
		Ounces:       request.Measurements.Ounces,
		Insured:      request.Insured,
		InsuredValue: request.InsuredValue,
		Signature:    request.Signature,
		Origin:       request.Origin.String(),
		Destination:  request.Destination.String(),
	}
}

// labelResultDTO is the wire representation of a label-purchase outcome.
type labelResultDTO struct {
	Success        bool   `json:"success"`
	LabelURL       string `json:"label_url"`
	TrackingNumber string `json:"tracking_number"`
	Message        string `json:"message"`
}

func (d labelResultDTO) toDomain() shipment.LabelResult {
	return shipment.LabelResult{
		Success:        d.Success,
		LabelURL:       d.LabelURL,
		TrackingNumber: d.TrackingNumber,
		Message:        d.Message,
	}
}
