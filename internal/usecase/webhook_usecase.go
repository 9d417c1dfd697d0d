package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/domain/signature"
	"checkout_service/internal/usecase/interfaces"
	"checkout_service/pkg/logger"

	"go.uber.org/zap"
)

var (
	ErrWebhookBadRequest      = errors.New("webhook payload missing orderReference")
	ErrSignatureMismatch      = errors.New("webhook signature mismatch")
	ErrAuditWriteFailed       = errors.New("payment record write failed")
	ErrOrderStatusWriteFailed = errors.New("order status write failed")
)

const (
	defaultStatusWriteAttempts = 3
	defaultStatusWriteBackoff  = 100 * time.Millisecond
)

// WebhookAck is the acknowledgement the gateway expects before it stops
// redelivering a notification.
type WebhookAck struct {
	OrderReference string `json:"orderReference"`
	Status         string `json:"status"`
	Time           int64  `json:"time"`
	Signature      string `json:"signature"`
}

type WebhookResult struct {
	Ack            WebhookAck
	OrderRef       string
	ProviderStatus string
	Outcome        entities.PaymentOutcome
	// Transitioned is true only for the delivery that moved the order out of created.
	Transitioned bool
	Order        entities.Order
}

// IWebhookUseCase reconciles gateway notifications with the order store.
//
// Errors:
//   - ErrWebhookBadRequest, ErrSignatureMismatch: rejected, nothing written.
//   - ErrAuditWriteFailed: returned together with a valid result; the
//     notification must still be acknowledged.
//   - ErrOrderStatusWriteFailed: not acknowledged, so the gateway redelivers.
type IWebhookUseCase interface {
	Reconcile(ctx context.Context, params entities.GatewayParams, rawBody []byte) (WebhookResult, error)
}

type WebhookUseCase struct {
	orders   interfaces.IOrderRepository
	payments interfaces.IPaymentRecordRepository
	events   interfaces.IPaymentEventPublisher
	alerts   interfaces.IAlertRecorder
	secret   string

	now            func() time.Time
	statusAttempts int
	statusBackoff  time.Duration
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

type WebhookOption func(*WebhookUseCase)

func WithWebhookClock(now func() time.Time) WebhookOption {
	return func(u *WebhookUseCase) { u.now = now }
}

// WithStatusWriteRetry sets how often a failed status write is attempted and
// the base backoff between attempts (doubled each time).
func WithStatusWriteRetry(attempts int, backoff time.Duration) WebhookOption {
	return func(u *WebhookUseCase) {
		if attempts > 0 {
			u.statusAttempts = attempts
		}
		if backoff >= 0 {
			u.statusBackoff = backoff
		}
	}
}

func NewWebhookUseCase(orders interfaces.IOrderRepository, payments interfaces.IPaymentRecordRepository, events interfaces.IPaymentEventPublisher, alerts interfaces.IAlertRecorder, secret string, opts ...WebhookOption) *WebhookUseCase {
	u := &WebhookUseCase{
		orders:         orders,
		payments:       payments,
		events:         events,
		alerts:         alerts,
		secret:         secret,
		now:            time.Now,
		statusAttempts: defaultStatusWriteAttempts,
		statusBackoff:  defaultStatusWriteBackoff,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *WebhookUseCase) Reconcile(ctx context.Context, params entities.GatewayParams, rawBody []byte) (WebhookResult, error) {
	orderRef := params.First("orderReference")
	if orderRef == "" {
		logger.Warn(ctx, "webhook rejected, no orderReference", zap.Int("payload_len", len(rawBody)))
		return WebhookResult{}, ErrWebhookBadRequest
	}
	if u.secret == "" {
		return WebhookResult{}, fmt.Errorf("%w: secret key", ErrConfigMissing)
	}

	if !signature.VerifyInbound(u.secret, params) {
		logger.Warn(ctx, "webhook signature mismatch",
			zap.Bool("security_event", true),
			zap.String("order_ref", orderRef),
			zap.String("merchant_account", params.Get("merchantAccount")),
			zap.String("transaction_status", params.Get("transactionStatus")),
		)
		recordAlert(ctx, u.alerts, interfaces.AlertSignatureMismatch, nil)
		return WebhookResult{}, ErrSignatureMismatch
	}

	// Only the signed field may drive the order status.
	providerStatus := strings.TrimSpace(params.Get("transactionStatus"))
	result := WebhookResult{
		OrderRef:       orderRef,
		ProviderStatus: providerStatus,
		Outcome:        entities.OutcomeForProviderStatus(providerStatus),
	}

	var auditErr error
	record := u.paymentRecord(orderRef, providerStatus, params, rawBody)
	if _, err := u.payments.Upsert(ctx, record); err != nil {
		logger.Error(ctx, "payment record upsert failed", err,
			zap.String("order_ref", orderRef),
			zap.String("provider_tx_id", record.ProviderTxID),
		)
		recordAlert(ctx, u.alerts, interfaces.AlertAuditWriteFailed, nil)
		auditErr = fmt.Errorf("%w: %w", ErrAuditWriteFailed, err)
	}

	if target, ok := result.Outcome.OrderStatus(); ok {
		order, transitioned, err := u.transitionWithRetry(ctx, orderRef, target)
		if err != nil {
			logger.Error(ctx, "order status write failed", err,
				zap.String("order_ref", orderRef),
				zap.String("status", string(target)),
				zap.Int("attempts", u.statusAttempts),
			)
			recordAlert(ctx, u.alerts, interfaces.AlertOrderStatusWriteFailed, map[string]string{"Status": string(target)})
			return WebhookResult{}, fmt.Errorf("%w: %w", ErrOrderStatusWriteFailed, err)
		}
		result.Transitioned = transitioned
		result.Order = order

		if transitioned {
			logger.Info(ctx, "order status changed",
				zap.String("order_ref", orderRef),
				zap.String("status", string(target)),
				zap.String("provider_status", providerStatus),
			)
			u.publish(ctx, target, order, record, providerStatus)
		} else {
			u.logSkippedTransition(ctx, orderRef, target)
		}
	} else {
		logger.Info(ctx, "webhook status does not move the order",
			zap.String("order_ref", orderRef),
			zap.String("provider_status", providerStatus),
		)
	}

	ts := u.now().Unix()
	result.Ack = WebhookAck{
		OrderReference: orderRef,
		Status:         signature.AckStatusAccept,
		Time:           ts,
		Signature:      signature.AckSignature(u.secret, orderRef, ts),
	}
	return result, auditErr
}

func (u *WebhookUseCase) paymentRecord(orderRef, providerStatus string, params entities.GatewayParams, rawBody []byte) entities.PaymentRecord {
	txID := params.First("transactionId")
	synthetic := false
	if txID == "" {
		txID = entities.SynthesizeProviderTxID(orderRef, providerStatus)
		synthetic = true
	}
	now := u.now().UTC()
	return entities.PaymentRecord{
		ID:           entities.PaymentRecordID(entities.ProviderWayForPay, txID),
		Provider:     entities.ProviderWayForPay,
		OrderRef:     orderRef,
		ProviderTxID: txID,
		Synthetic:    synthetic,
		Status:       providerStatus,
		RawPayload:   string(rawBody),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *WebhookUseCase) transitionWithRetry(ctx context.Context, orderRef string, to entities.OrderStatus) (entities.Order, bool, error) {
	var lastErr error
	backoff := u.statusBackoff
	for attempt := 1; attempt <= u.statusAttempts; attempt++ {
		order, transitioned, err := u.orders.TransitionStatus(ctx, orderRef, to)
		if err == nil {
			if !transitioned && lastErr != nil {
				return u.confirmAmbiguousWrite(ctx, orderRef, to)
			}
			return order, transitioned, nil
		}
		lastErr = err
		logger.Warn(ctx, "order status write attempt failed",
			zap.String("order_ref", orderRef),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt == u.statusAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return entities.Order{}, false, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return entities.Order{}, false, lastErr
}

// confirmAmbiguousWrite handles a condition failure that follows a failed
// attempt: the earlier write may have committed even though the client saw an
// error, so the order already holding the target status counts as our transition.
func (u *WebhookUseCase) confirmAmbiguousWrite(ctx context.Context, orderRef string, to entities.OrderStatus) (entities.Order, bool, error) {
	current, err := u.orders.GetByRef(ctx, orderRef)
	if err != nil {
		logger.Warn(ctx, "order re-read after ambiguous status write failed",
			zap.String("order_ref", orderRef),
			zap.Error(err),
		)
		return entities.Order{}, false, nil
	}
	if current.Status == to {
		logger.Info(ctx, "earlier status write committed",
			zap.String("order_ref", orderRef),
			zap.String("status", string(to)),
		)
		return current, true, nil
	}
	return entities.Order{}, false, nil
}

// logSkippedTransition reads the order only to say why nothing changed.
func (u *WebhookUseCase) logSkippedTransition(ctx context.Context, orderRef string, target entities.OrderStatus) {
	current, err := u.orders.GetByRef(ctx, orderRef)
	switch {
	case err != nil:
		logger.Warn(ctx, "order not transitioned, lookup failed",
			zap.String("order_ref", orderRef),
			zap.String("target", string(target)),
			zap.Error(err),
		)
	case current.OrderRef == "":
		logger.Warn(ctx, "order not transitioned, unknown order_ref",
			zap.String("order_ref", orderRef),
			zap.String("target", string(target)),
		)
	default:
		logger.Info(ctx, "order already terminal, duplicate notification",
			zap.String("order_ref", orderRef),
			zap.String("status", string(current.Status)),
			zap.String("target", string(target)),
		)
	}
}

func (u *WebhookUseCase) publish(ctx context.Context, status entities.OrderStatus, order entities.Order, record entities.PaymentRecord, providerStatus string) {
	if u.events == nil {
		return
	}
	event := entities.PaymentEvent{
		Type:           entities.PaymentEventTypeFor(status),
		OrderRef:       orderRefOr(order.OrderRef, record.OrderRef),
		ProductCode:    order.ProductCode,
		Provider:       record.Provider,
		ProviderTxID:   record.ProviderTxID,
		ProviderStatus: providerStatus,
		Amount:         order.Amount,
		Currency:       order.Currency,
		Timestamp:      u.now().UTC(),
	}
	if err := u.events.Publish(ctx, event); err != nil {
		logger.Error(ctx, "payment event publish failed", err,
			zap.String("order_ref", order.OrderRef),
			zap.String("event", string(event.Type)),
		)
	}
}

func orderRefOr(ref, fallback string) string {
	if ref != "" {
		return ref
	}
	return fallback
}
