package interfaces

import (
	"context"

	"checkout_service/internal/domain/entities"
)

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/order_repository_interface_mock.go -package=mocks

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Create must fail on an existing order_ref instead of overwriting it.
// GetByRef returns a zero Order and a nil error when the ref is unknown.
// TransitionStatus moves an order out of created with a single conditional
// write; transitioned is false (with a nil error) when the order was missing
// or no longer created.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByRef(ctx context.Context, orderRef string) (entities.Order, error)
	TransitionStatus(ctx context.Context, orderRef string, to entities.OrderStatus) (order entities.Order, transitioned bool, err error)
}
