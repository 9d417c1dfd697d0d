package entities

import "time"

type PaymentEventType string

const (
	PaymentEventOrderPaid   PaymentEventType = "order_paid"
	PaymentEventOrderFailed PaymentEventType = "order_failed"
)

// PaymentEvent is emitted once per order, when its status leaves created.
type PaymentEvent struct {
	Type           PaymentEventType `json:"type"`
	OrderRef       string           `json:"order_ref"`
	ProductCode    ProductCode      `json:"product_code,omitempty"`
	Provider       string           `json:"provider"`
	ProviderTxID   string           `json:"provider_tx_id,omitempty"`
	ProviderStatus string           `json:"provider_status"`
	Amount         float64          `json:"amount,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}

func PaymentEventTypeFor(status OrderStatus) PaymentEventType {
	if status == OrderStatusPaid {
		return PaymentEventOrderPaid
	}
	return PaymentEventOrderFailed
}
