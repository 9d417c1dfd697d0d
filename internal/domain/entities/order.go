package entities

import (
	"errors"
	"time"
)

// ErrOrderAlreadyExists is returned by the order store when an order_ref is
// already taken. Orders are never overwritten.
var ErrOrderAlreadyExists = errors.New("order already exists")

// ProductCode identifies one of the products sold through the checkout.
type ProductCode string

const (
	ProductShort ProductCode = "short"
	ProductIrem  ProductCode = "irem"
)

// OrderStatus is the lifecycle of an order.
//
// created -> paid | failed. Both paid and failed are terminal: once an order
// left created no further status write is accepted.
type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

// Order is one checkout attempt.
//
// Storage model (DynamoDB):
//   - PK: order_ref
//
// OrderRef encodes product code, creation date and a random suffix
// ({product}_{YYYYMMDD}_{8 hex}) and never changes after creation.
type Order struct {
	OrderRef    string      `json:"order_ref"`
	ProductCode ProductCode `json:"product_code"`
	Amount      float64     `json:"amount"`
	Currency    string      `json:"currency"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
