package interfaces

import (
	"context"

	"checkout_service/internal/domain/entities"
)

//go:generate mockgen -source=payment_event_publisher_interface.go -destination=mocks/payment_event_publisher_interface_mock.go -package=mocks

// IPaymentEventPublisher emits order_paid / order_failed events.
type IPaymentEventPublisher interface {
	Publish(ctx context.Context, event entities.PaymentEvent) error
}
