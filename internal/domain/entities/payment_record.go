package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const ProviderWayForPay = "wayforpay"

// PaymentRecord is the audit row written for every verified gateway notification.
//
// Storage model (DynamoDB):
//   - PK: id (provider#provider_tx_id)
//   - GSI (order_ref-index): order_ref
//
// RawPayload keeps the notification body verbatim. Status keeps the provider
// vocabulary untouched (e.g. "Approved", "InProcessing").
type PaymentRecord struct {
	ID           string    `json:"id"`
	Provider     string    `json:"provider"`
	OrderRef     string    `json:"order_ref"`
	ProviderTxID string    `json:"provider_tx_id"`
	Synthetic    bool      `json:"synthetic_tx_id"`
	Status       string    `json:"status"`
	RawPayload   string    `json:"raw_payload"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// paymentTxNamespace scopes the UUIDv5 ids synthesized for notifications
// that arrive without a transaction id.
var paymentTxNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://api.wayforpay.com/transactions"))

// SynthesizeProviderTxID derives a stable transaction id from the order
// reference and the raw status, so resends of the same notification map to
// the same audit row.
func SynthesizeProviderTxID(orderRef, providerStatus string) string {
	name := orderRef + "|" + strings.ToLower(strings.TrimSpace(providerStatus))
	return "synthetic-" + uuid.NewSHA1(paymentTxNamespace, []byte(name)).String()
}

func PaymentRecordID(provider, providerTxID string) string {
	return provider + "#" + providerTxID
}
