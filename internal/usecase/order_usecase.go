package usecase

import (
	"context"
	"errors"
	"strings"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidOrderRef = errors.New("invalid order_ref")
)

type OrderDetails struct {
	Order    entities.Order
	Payments []entities.PaymentRecord
}

// IOrderUseCase is the read side used by operators and status polling.
type IOrderUseCase interface {
	GetByRef(ctx context.Context, orderRef string) (OrderDetails, error)
}

type OrderUseCase struct {
	orders   interfaces.IOrderRepository
	payments interfaces.IPaymentRecordRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(orders interfaces.IOrderRepository, payments interfaces.IPaymentRecordRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, payments: payments}
}

func (u *OrderUseCase) GetByRef(ctx context.Context, orderRef string) (OrderDetails, error) {
	orderRef = strings.TrimSpace(orderRef)
	if orderRef == "" {
		return OrderDetails{}, ErrInvalidOrderRef
	}

	o, err := u.orders.GetByRef(ctx, orderRef)
	if err != nil {
		return OrderDetails{}, err
	}
	if o.OrderRef == "" {
		return OrderDetails{}, ErrOrderNotFound
	}

	payments, err := u.payments.ListByOrderRef(ctx, orderRef)
	if err != nil {
		return OrderDetails{}, err
	}
	if payments == nil {
		payments = []entities.PaymentRecord{}
	}
	return OrderDetails{Order: o, Payments: payments}, nil
}
