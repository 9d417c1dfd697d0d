package interfaces

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_interface_mock.go -package=mocks

// IPaymentGateway abstracts the external payment provider (WayForPay).
//
// CreateInvoice posts a signed CREATE_INVOICE request and returns the raw
// response body. It only errors when no response could be read (transport
// failure, timeout, non-2xx); interpreting the body is up to the caller.
type IPaymentGateway interface {
	CreateInvoice(ctx context.Context, requestPayload json.RawMessage) (providerResponse []byte, err error)
}
