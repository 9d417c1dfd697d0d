package interfaces

import "context"

//go:generate mockgen -source=alert_recorder_interface.go -destination=mocks/alert_recorder_interface_mock.go -package=mocks

// Alert names recorded by the use cases.
const (
	AlertSignatureMismatch      = "WebhookSignatureMismatch"
	AlertAuditWriteFailed       = "PaymentRecordWriteFailed"
	AlertOrderStatusWriteFailed = "OrderStatusWriteFailed"
	AlertGatewayError           = "GatewayInvoiceError"
)

// IAlertRecorder counts operational alerts (CloudWatch in production).
// Implementations must not fail the caller.
type IAlertRecorder interface {
	RecordAlert(ctx context.Context, name string, dimensions map[string]string)
}
