package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/domain/signature"
	"checkout_service/internal/usecase/interfaces"
	mock_interfaces "checkout_service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var webhookNow = time.Unix(1771000000, 0).UTC()

func signedWebhook(orderRef, status string) entities.GatewayParams {
	p := entities.GatewayParams{
		"merchantAccount":   {testMerchant.Account},
		"orderReference":    {orderRef},
		"amount":            {"359"},
		"currency":          {"UAH"},
		"authCode":          {"541963"},
		"cardPan":           {"41****8217"},
		"transactionStatus": {status},
		"reasonCode":        {"1100"},
	}
	p[signature.FieldSignature] = []string{signature.Sign(testMerchant.SecretKey, signature.CallbackFields(p)...)}
	return p
}

type webhookMocks struct {
	orders   *mock_interfaces.MockIOrderRepository
	payments *mock_interfaces.MockIPaymentRecordRepository
	events   *mock_interfaces.MockIPaymentEventPublisher
	alerts   *mock_interfaces.MockIAlertRecorder
}

func newWebhookUseCaseWithMocks(t *testing.T) (*WebhookUseCase, webhookMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := webhookMocks{
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		payments: mock_interfaces.NewMockIPaymentRecordRepository(ctrl),
		events:   mock_interfaces.NewMockIPaymentEventPublisher(ctrl),
		alerts:   mock_interfaces.NewMockIAlertRecorder(ctrl),
	}
	uc := NewWebhookUseCase(m.orders, m.payments, m.events, m.alerts, testMerchant.SecretKey,
		WithWebhookClock(fixedClock(webhookNow)), WithStatusWriteRetry(3, 0))
	return uc, m
}

func TestWebhookUseCase_Reconcile_Rejections(t *testing.T) {
	t.Run("missing orderReference", func(t *testing.T) {
		uc, _ := newWebhookUseCaseWithMocks(t)
		p := signedWebhook("short_20260213_abcd1234", "Approved")
		delete(p, "orderReference")

		_, err := uc.Reconcile(context.Background(), p, []byte(`{}`))
		if !errors.Is(err, ErrWebhookBadRequest) {
			t.Fatalf("expected ErrWebhookBadRequest, got %v", err)
		}
	})

	t.Run("tampered transactionStatus", func(t *testing.T) {
		uc, m := newWebhookUseCaseWithMocks(t)
		p := signedWebhook("short_20260213_abcd1234", "Declined")
		p["transactionStatus"] = []string{"Approved"}

		m.alerts.EXPECT().RecordAlert(gomock.Any(), interfaces.AlertSignatureMismatch, gomock.Any())

		_, err := uc.Reconcile(context.Background(), p, []byte(`{}`))
		if !errors.Is(err, ErrSignatureMismatch) {
			t.Fatalf("expected ErrSignatureMismatch, got %v", err)
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		uc, m := newWebhookUseCaseWithMocks(t)
		p := signedWebhook("short_20260213_abcd1234", "Approved")
		delete(p, signature.FieldSignature)

		m.alerts.EXPECT().RecordAlert(gomock.Any(), interfaces.AlertSignatureMismatch, gomock.Any())

		_, err := uc.Reconcile(context.Background(), p, []byte(`{}`))
		if !errors.Is(err, ErrSignatureMismatch) {
			t.Fatalf("expected ErrSignatureMismatch, got %v", err)
		}
	})
}

func TestWebhookUseCase_Reconcile_Approved(t *testing.T) {
	uc, m := newWebhookUseCaseWithMocks(t)
	ref := "short_20260213_abcd1234"
	raw := []byte(`{"orderReference":"short_20260213_abcd1234","transactionStatus":"Approved"}`)
	paid := entities.Order{OrderRef: ref, ProductCode: entities.ProductShort, Amount: 359, Currency: "UAH", Status: entities.OrderStatusPaid}

	m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
		if r.OrderRef != ref || r.Status != "Approved" || r.Provider != entities.ProviderWayForPay {
			t.Fatalf("unexpected record %+v", r)
		}
		if !r.Synthetic || r.ProviderTxID != entities.SynthesizeProviderTxID(ref, "Approved") {
			t.Fatalf("expected synthesized tx id, got %+v", r)
		}
		if r.RawPayload != string(raw) {
			t.Fatalf("raw payload not kept verbatim: %q", r.RawPayload)
		}
		return r, nil
	})
	m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(paid, true, nil)
	m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.PaymentEvent) error {
		if e.Type != entities.PaymentEventOrderPaid || e.OrderRef != ref || e.ProductCode != entities.ProductShort || e.ProviderStatus != "Approved" {
			t.Fatalf("unexpected event %+v", e)
		}
		return nil
	})

	res, err := uc.Reconcile(context.Background(), signedWebhook(ref, "Approved"), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Transitioned || res.Outcome != entities.OutcomePaid {
		t.Fatalf("expected transition to paid, got %+v", res)
	}
	wantAck := WebhookAck{
		OrderReference: ref,
		Status:         "accept",
		Time:           webhookNow.Unix(),
		Signature:      signature.AckSignature(testMerchant.SecretKey, ref, webhookNow.Unix()),
	}
	if res.Ack != wantAck {
		t.Fatalf("unexpected ack %+v", res.Ack)
	}
}

func TestWebhookUseCase_Reconcile_DuplicateTerminal(t *testing.T) {
	uc, m := newWebhookUseCaseWithMocks(t)
	ref := "short_20260213_abcd1234"

	m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
		return r, nil
	})
	m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{}, false, nil)
	m.orders.EXPECT().GetByRef(gomock.Any(), ref).Return(entities.Order{OrderRef: ref, Status: entities.OrderStatusPaid}, nil)
	m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	res, err := uc.Reconcile(context.Background(), signedWebhook(ref, "Approved"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Transitioned {
		t.Fatalf("duplicate must not transition")
	}
	if res.Ack.Status != "accept" || res.Ack.OrderReference != ref {
		t.Fatalf("duplicate must still be acknowledged, got %+v", res.Ack)
	}
}

func TestWebhookUseCase_Reconcile_NonTerminalStatus(t *testing.T) {
	for _, status := range []string{"created", "pending", "InProcessing", "SomethingNew"} {
		t.Run(status, func(t *testing.T) {
			uc, m := newWebhookUseCaseWithMocks(t)
			ref := "irem_20260213_deadbeef"

			m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
				return r, nil
			})

			res, err := uc.Reconcile(context.Background(), signedWebhook(ref, status), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Outcome != entities.OutcomeNone || res.Transitioned {
				t.Fatalf("expected no-op, got %+v", res)
			}
			if res.Ack.Status != "accept" {
				t.Fatalf("expected ack, got %+v", res.Ack)
			}
		})
	}
}

func TestWebhookUseCase_Reconcile_UsesProviderTransactionID(t *testing.T) {
	uc, m := newWebhookUseCaseWithMocks(t)
	ref := "irem_20260213_deadbeef"
	p := signedWebhook(ref, "Pending")
	p["transactionId"] = []string{"98765"}

	m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
		if r.ProviderTxID != "98765" || r.Synthetic || r.ID != "wayforpay#98765" {
			t.Fatalf("unexpected record ids %+v", r)
		}
		return r, nil
	})

	if _, err := uc.Reconcile(context.Background(), p, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWebhookUseCase_Reconcile_WriteFailures(t *testing.T) {
	ref := "short_20260213_abcd1234"

	t.Run("audit write failure still acks", func(t *testing.T) {
		uc, m := newWebhookUseCaseWithMocks(t)
		m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, errors.New("throttled"))
		m.alerts.EXPECT().RecordAlert(gomock.Any(), interfaces.AlertAuditWriteFailed, gomock.Any())
		m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusFailed).Return(entities.Order{OrderRef: ref, Status: entities.OrderStatusFailed}, true, nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.Reconcile(context.Background(), signedWebhook(ref, "Declined"), nil)
		if !errors.Is(err, ErrAuditWriteFailed) {
			t.Fatalf("expected ErrAuditWriteFailed, got %v", err)
		}
		if res.Ack.Status != "accept" || !res.Transitioned {
			t.Fatalf("expected acked transition, got %+v", res)
		}
	})

	t.Run("status write retried then succeeds", func(t *testing.T) {
		uc, m := newWebhookUseCaseWithMocks(t)
		m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, nil)
		gomock.InOrder(
			m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{}, false, errors.New("timeout")),
			m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{OrderRef: ref, Status: entities.OrderStatusPaid}, true, nil),
		)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.Reconcile(context.Background(), signedWebhook(ref, "Approved"), nil)
		if err != nil || !res.Transitioned {
			t.Fatalf("expected transition after retry, got %+v %v", res, err)
		}
	})

	t.Run("timed out write that committed still publishes", func(t *testing.T) {
		uc, m := newWebhookUseCaseWithMocks(t)
		m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, nil)
		gomock.InOrder(
			m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{}, false, errors.New("timeout")),
			m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{}, false, nil),
		)
		m.orders.EXPECT().GetByRef(gomock.Any(), ref).Return(entities.Order{OrderRef: ref, Status: entities.OrderStatusPaid, Amount: 359}, nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.PaymentEvent) error {
			if e.Type != entities.PaymentEventOrderPaid || e.OrderRef != ref {
				t.Fatalf("unexpected event %+v", e)
			}
			return nil
		})

		res, err := uc.Reconcile(context.Background(), signedWebhook(ref, "Approved"), nil)
		if err != nil || !res.Transitioned {
			t.Fatalf("expected committed write to count as transition, got %+v %v", res, err)
		}
	})

	t.Run("retry finds a different terminal status", func(t *testing.T) {
		uc, m := newWebhookUseCaseWithMocks(t)
		m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, nil)
		gomock.InOrder(
			m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{}, false, errors.New("timeout")),
			m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{}, false, nil),
		)
		m.orders.EXPECT().GetByRef(gomock.Any(), ref).Return(entities.Order{OrderRef: ref, Status: entities.OrderStatusFailed}, nil).Times(2)

		res, err := uc.Reconcile(context.Background(), signedWebhook(ref, "Approved"), nil)
		if err != nil || res.Transitioned {
			t.Fatalf("expected no transition, got %+v %v", res, err)
		}
	})

	t.Run("status write keeps failing", func(t *testing.T) {
		uc, m := newWebhookUseCaseWithMocks(t)
		m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, nil)
		m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{}, false, errors.New("unavailable")).Times(3)
		m.alerts.EXPECT().RecordAlert(gomock.Any(), interfaces.AlertOrderStatusWriteFailed, gomock.Any())

		res, err := uc.Reconcile(context.Background(), signedWebhook(ref, "Approved"), nil)
		if !errors.Is(err, ErrOrderStatusWriteFailed) {
			t.Fatalf("expected ErrOrderStatusWriteFailed, got %v", err)
		}
		if res.Ack.Status != "" {
			t.Fatalf("status write failure must not be acknowledged, got %+v", res.Ack)
		}
	})

	t.Run("publish failure is not fatal", func(t *testing.T) {
		uc, m := newWebhookUseCaseWithMocks(t)
		m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, nil)
		m.orders.EXPECT().TransitionStatus(gomock.Any(), ref, entities.OrderStatusPaid).Return(entities.Order{OrderRef: ref, Status: entities.OrderStatusPaid}, true, nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("sns down"))

		if _, err := uc.Reconcile(context.Background(), signedWebhook(ref, "Approved"), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestWebhookUseCase_StatusMapping(t *testing.T) {
	cases := []struct {
		status string
		want   entities.OrderStatus
	}{
		{"APPROVED", entities.OrderStatusPaid},
		{"declined", entities.OrderStatusFailed},
		{"expired", entities.OrderStatusFailed},
		{"created", entities.OrderStatusCreated},
		{"pending", entities.OrderStatusCreated},
	}
	for _, tc := range cases {
		t.Run(strings.ToLower(tc.status), func(t *testing.T) {
			orders := newMemOrderStore()
			ref := "short_20260213_0000beef"
			_, _ = orders.Create(context.Background(), entities.Order{OrderRef: ref, ProductCode: entities.ProductShort, Status: entities.OrderStatusCreated})
			uc := NewWebhookUseCase(orders, newMemPaymentStore(), &recordingPublisher{}, nil, testMerchant.SecretKey)

			if _, err := uc.Reconcile(context.Background(), signedWebhook(ref, tc.status), nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := orders.orders[ref].Status; got != tc.want {
				t.Fatalf("status %q: got %q want %q", tc.status, got, tc.want)
			}
		})
	}
}

func TestWebhookUseCase_Reconcile_IgnoresUnsignedStatus(t *testing.T) {
	ref := "short_20260213_abcd1234"
	uc, m := newWebhookUseCaseWithMocks(t)
	m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, nil)

	p := signedWebhook(ref, "")
	p["status"] = []string{"Approved"}

	res, err := uc.Reconcile(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Transitioned || res.Outcome != entities.OutcomeNone || res.ProviderStatus != "" {
		t.Fatalf("unsigned status must not drive the order, got %+v", res)
	}
}
