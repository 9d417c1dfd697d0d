package response

import (
	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase"
)

type PayStartResponse struct {
	OK       bool   `json:"ok"`
	OrderRef string `json:"order_ref"`
	Product  string `json:"product"`
	URL      string `json:"url"`
}

func FromInvoice(inv usecase.Invoice) PayStartResponse {
	return PayStartResponse{
		OK:       true,
		OrderRef: inv.OrderRef,
		Product:  string(inv.Product.Code),
		URL:      inv.PayURL,
	}
}

type CheckoutStartResponse struct {
	OK         bool   `json:"ok"`
	PaymentURL string `json:"paymentUrl"`
	OrderRef   string `json:"order_ref"`
	Product    string `json:"product"`
	LeadID     string `json:"lead_id"`
}

func FromCheckoutInvoice(inv usecase.Invoice, leadID string) CheckoutStartResponse {
	return CheckoutStartResponse{
		OK:         true,
		PaymentURL: inv.PayURL,
		OrderRef:   inv.OrderRef,
		Product:    string(inv.Product.Code),
		LeadID:     leadID,
	}
}

type OrderCreateResponse struct {
	OK       bool    `json:"ok"`
	OrderRef string  `json:"order_ref"`
	Product  string  `json:"product"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

func FromCreatedOrder(o entities.Order) OrderCreateResponse {
	return OrderCreateResponse{
		OK:       true,
		OrderRef: o.OrderRef,
		Product:  string(o.ProductCode),
		Amount:   o.Amount,
		Currency: o.Currency,
		Status:   string(o.Status),
	}
}

// InvoiceErrorDetails is rendered as AppError details when the gateway
// call fails after the order was stored.
type InvoiceErrorDetails struct {
	OrderRef string `json:"order_ref,omitempty"`
	Raw      string `json:"raw,omitempty"`
}
