package response

import (
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase"
)

type OrderResponse struct {
	OrderRef    string    `json:"order_ref"`
	ProductCode string    `json:"product_code"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// PaymentRecordResponse is the public view of an audit row. The raw
// notification body carries card and client data and stays in the store.
type PaymentRecordResponse struct {
	ID            string    `json:"id"`
	Provider      string    `json:"provider"`
	ProviderTxID  string    `json:"provider_tx_id"`
	SyntheticTxID bool      `json:"synthetic_tx_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type OrderDetailsResponse struct {
	OK       bool                    `json:"ok"`
	Order    OrderResponse           `json:"order"`
	Payments []PaymentRecordResponse `json:"payments"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		OrderRef:    o.OrderRef,
		ProductCode: string(o.ProductCode),
		Amount:      o.Amount,
		Currency:    o.Currency,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func FromPaymentRecord(r entities.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:            r.ID,
		Provider:      r.Provider,
		ProviderTxID:  r.ProviderTxID,
		SyntheticTxID: r.Synthetic,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func FromOrderDetails(d usecase.OrderDetails) OrderDetailsResponse {
	payments := make([]PaymentRecordResponse, 0, len(d.Payments))
	for _, p := range d.Payments {
		payments = append(payments, FromPaymentRecord(p))
	}
	return OrderDetailsResponse{OK: true, Order: FromOrder(d.Order), Payments: payments}
}
