package interfaces

import (
	"context"

	"checkout_service/internal/domain/entities"
)

//go:generate mockgen -source=payment_record_repository_interface.go -destination=mocks/payment_record_repository_interface_mock.go -package=mocks

// IPaymentRecordRepository abstracts DynamoDB persistence for PaymentRecord.
// Upsert is keyed by provider#provider_tx_id and keeps the first created_at.
type IPaymentRecordRepository interface {
	Upsert(ctx context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error)
	ListByOrderRef(ctx context.Context, orderRef string) ([]entities.PaymentRecord, error)
}
