package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"checkout_service/internal/domain/catalog"
	"checkout_service/internal/domain/entities"
	"checkout_service/internal/domain/signature"
	"checkout_service/internal/usecase/interfaces"
	mock_interfaces "checkout_service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var orderRefPattern = regexp.MustCompile(`^(short|irem)_\d{8}_[0-9a-f]{8}$`)

var testMerchant = MerchantSettings{
	Account:    "test_merch_n1",
	Domain:     "platform.centerway.net.ua",
	SecretKey:  "flk3409refn54t54t*FNJRET",
	AppBaseURL: "https://platform.centerway.net.ua",
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.DefaultProducts(), entities.ProductShort)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func fixedHex(s string) func(int) (string, error) {
	return func(int) (string, error) { return s, nil }
}

func echoCreate(_ context.Context, o entities.Order) (entities.Order, error) {
	return o, nil
}

func TestInvoiceUseCase_CreateInvoice_InsertsOrderBeforeGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	now := time.Date(2026, 2, 13, 23, 30, 0, 0, time.UTC)
	uc := NewInvoiceUseCase(orders, gateway, nil, testCatalog(t), testMerchant,
		WithInvoiceClock(fixedClock(now)), WithRandomHex(fixedHex("abcd1234")))

	var stored entities.Order
	var sent wayForPayInvoiceRequest
	gomock.InOrder(
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			stored = o
			return o, nil
		}),
		gateway.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, payload json.RawMessage) ([]byte, error) {
			if err := json.Unmarshal(payload, &sent); err != nil {
				t.Fatalf("payload is not json: %v", err)
			}
			return []byte(`{"reason":"Ok","reasonCode":1100,"invoiceUrl":"https://secure.wayforpay.com/invoice/i1"}`), nil
		}),
	)

	inv, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short", Locale: catalog.LocaleUA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.OrderRef != "short_20260213_abcd1234" {
		t.Fatalf("unexpected order ref %q", inv.OrderRef)
	}
	if inv.PayURL != "https://secure.wayforpay.com/invoice/i1" {
		t.Fatalf("unexpected pay url %q", inv.PayURL)
	}
	if stored.Status != entities.OrderStatusCreated || stored.Amount != 359 || stored.Currency != "UAH" || stored.ProductCode != entities.ProductShort {
		t.Fatalf("unexpected stored order %+v", stored)
	}

	if sent.TransactionType != "CREATE_INVOICE" || sent.APIVersion != 1 {
		t.Fatalf("unexpected request header fields %+v", sent)
	}
	if sent.ServiceURL != "https://platform.centerway.net.ua/api/wfp/webhook" {
		t.Fatalf("unexpected serviceUrl %q", sent.ServiceURL)
	}
	ret, err := url.Parse(sent.ReturnURL)
	if err != nil || ret.Path != "/pay/return" || ret.Query().Get("order_ref") != inv.OrderRef || ret.Query().Get("product") != "short" {
		t.Fatalf("unexpected returnUrl %q", sent.ReturnURL)
	}
	if sent.Language != "UA" || sent.OrderDate != now.Unix() {
		t.Fatalf("unexpected language/orderDate %q %d", sent.Language, sent.OrderDate)
	}
	if len(sent.ProductName) != 1 || sent.ProductCount[0] != 1 || sent.ProductPrice[0] != 359 {
		t.Fatalf("unexpected product arrays %+v", sent)
	}

	want := signature.SignInvoice(testMerchant.SecretKey, signature.InvoiceInput{
		MerchantAccount:    testMerchant.Account,
		MerchantDomainName: testMerchant.Domain,
		OrderReference:     inv.OrderRef,
		OrderDate:          now.Unix(),
		Amount:             359,
		Currency:           "UAH",
		ProductNames:       sent.ProductName,
		ProductCounts:      []int{1},
		ProductPrices:      []float64{359},
	})
	if sent.MerchantSignature != want {
		t.Fatalf("signature mismatch: got %s want %s", sent.MerchantSignature, want)
	}
}

func TestInvoiceUseCase_CreateInvoice_OrderRefFormat(t *testing.T) {
	for _, code := range []string{"short", "irem"} {
		t.Run(code, func(t *testing.T) {
			orders := newMemOrderStore()
			gw := &stubGateway{body: []byte(`{"invoiceUrl":"https://pay.example/x"}`)}
			uc := NewInvoiceUseCase(orders, gw, nil, testCatalog(t), testMerchant)

			inv, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: code, Locale: catalog.LocaleEN})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !orderRefPattern.MatchString(inv.OrderRef) || !strings.HasPrefix(inv.OrderRef, code+"_") {
				t.Fatalf("order ref %q does not match pattern", inv.OrderRef)
			}
			if len(orders.orders) != 1 {
				t.Fatalf("expected exactly one order, got %d", len(orders.orders))
			}
			if o := orders.orders[inv.OrderRef]; o.Status != entities.OrderStatusCreated {
				t.Fatalf("expected created order, got %+v", o)
			}
		})
	}
}

func TestInvoiceUseCase_CreateInvoice_UnknownProductFallsBack(t *testing.T) {
	orders := newMemOrderStore()
	gw := &stubGateway{body: []byte(`{"invoiceUrl":"https://pay.example/x"}`)}
	uc := NewInvoiceUseCase(orders, gw, nil, testCatalog(t), testMerchant)

	inv, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "vip", Locale: catalog.LocaleEN})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Product.Code != entities.ProductShort || !strings.HasPrefix(inv.OrderRef, "short_") {
		t.Fatalf("expected fallback product, got %q %q", inv.Product.Code, inv.OrderRef)
	}
}

func TestInvoiceUseCase_CreateInvoice_AlternateURLFields(t *testing.T) {
	for _, field := range []string{"url", "paymentUrl", "payUrl"} {
		t.Run(field, func(t *testing.T) {
			gw := &stubGateway{body: []byte(`{"` + field + `":" https://pay.example/` + field + ` "}`)}
			uc := NewInvoiceUseCase(newMemOrderStore(), gw, nil, testCatalog(t), testMerchant)

			inv, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "irem"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if inv.PayURL != "https://pay.example/"+field {
				t.Fatalf("unexpected pay url %q", inv.PayURL)
			}
		})
	}
}

func TestInvoiceUseCase_CreateInvoice_GatewayFailures(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		alerts := mock_interfaces.NewMockIAlertRecorder(ctrl)
		uc := NewInvoiceUseCase(orders, gateway, alerts, testCatalog(t), testMerchant, WithRandomHex(fixedHex("00ff00ff")))

		timeout := errors.New("context deadline exceeded")
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoCreate)
		gateway.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil, timeout)
		alerts.EXPECT().RecordAlert(gomock.Any(), interfaces.AlertGatewayError, gomock.Any())

		_, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short"})
		if !errors.Is(err, ErrGatewayUnreachable) || !errors.Is(err, timeout) {
			t.Fatalf("expected ErrGatewayUnreachable wrapping cause, got %v", err)
		}
		var invErr *InvoiceError
		if !errors.As(err, &invErr) || !strings.HasSuffix(invErr.OrderRef, "_00ff00ff") {
			t.Fatalf("expected InvoiceError with order ref, got %v", err)
		}
	})

	t.Run("no url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		alerts := mock_interfaces.NewMockIAlertRecorder(ctrl)
		uc := NewInvoiceUseCase(orders, gateway, alerts, testCatalog(t), testMerchant)

		raw := `{"reason":"Duplicate Order ID","reasonCode":1112}`
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoCreate)
		gateway.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return([]byte(raw), nil)
		alerts.EXPECT().RecordAlert(gomock.Any(), interfaces.AlertGatewayError, gomock.Any())

		_, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short"})
		var invErr *InvoiceError
		if !errors.As(err, &invErr) || !errors.Is(err, ErrGatewayNoURL) {
			t.Fatalf("expected ErrGatewayNoURL, got %v", err)
		}
		if invErr.Raw != raw {
			t.Fatalf("expected raw body to be kept, got %q", invErr.Raw)
		}
	})

	t.Run("error status with invoice url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewInvoiceUseCase(orders, gateway, nil, testCatalog(t), testMerchant)

		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoCreate)
		gateway.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
			Return([]byte(`{"invoiceUrl":"https://secure.wayforpay.com/invoice/abc"}`), errors.New("wayforpay returned non-2xx status: 500"))

		inv, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.PayURL != "https://secure.wayforpay.com/invoice/abc" {
			t.Fatalf("unexpected pay url %q", inv.PayURL)
		}
	})

	t.Run("error status without url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewInvoiceUseCase(orders, gateway, nil, testCatalog(t), testMerchant)

		raw := `{"reason":"Internal error"}`
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoCreate)
		gateway.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return([]byte(raw), errors.New("wayforpay returned non-2xx status: 503"))

		_, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short"})
		var invErr *InvoiceError
		if !errors.As(err, &invErr) || !errors.Is(err, ErrGatewayUnreachable) || invErr.Raw != raw {
			t.Fatalf("expected ErrGatewayUnreachable with raw body, got %v", err)
		}
	})

	t.Run("unparseable body", func(t *testing.T) {
		gw := &stubGateway{body: []byte(`<html>502</html>`)}
		uc := NewInvoiceUseCase(newMemOrderStore(), gw, nil, testCatalog(t), testMerchant)

		_, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short"})
		if !errors.Is(err, ErrGatewayNoURL) {
			t.Fatalf("expected ErrGatewayNoURL, got %v", err)
		}
	})
}

func TestInvoiceUseCase_CreateInvoice_Validations(t *testing.T) {
	t.Run("config missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		settings := testMerchant
		settings.SecretKey = ""
		uc := NewInvoiceUseCase(orders, gateway, nil, testCatalog(t), settings)

		_, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short"})
		if !errors.Is(err, ErrConfigMissing) {
			t.Fatalf("expected ErrConfigMissing, got %v", err)
		}
	})

	t.Run("insert collision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewInvoiceUseCase(orders, gateway, nil, testCatalog(t), testMerchant)

		orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Order{}, entities.ErrOrderAlreadyExists)

		_, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short"})
		if !errors.Is(err, ErrOrderInsertFailed) || !errors.Is(err, entities.ErrOrderAlreadyExists) {
			t.Fatalf("expected ErrOrderInsertFailed, got %v", err)
		}
	})

	t.Run("random source failure", func(t *testing.T) {
		uc := NewInvoiceUseCase(newMemOrderStore(), &stubGateway{}, nil, testCatalog(t), testMerchant,
			WithRandomHex(func(int) (string, error) { return "", errors.New("entropy") }))

		if _, err := uc.CreateInvoice(context.Background(), InvoiceRequest{ProductCode: "short"}); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestInvoiceUseCase_CreateOrder(t *testing.T) {
	orders := newMemOrderStore()
	uc := NewInvoiceUseCase(orders, nil, nil, testCatalog(t), MerchantSettings{})

	o, err := uc.CreateOrder(context.Background(), " IREM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ProductCode != entities.ProductIrem || o.Amount != 4100 || o.Status != entities.OrderStatusCreated {
		t.Fatalf("unexpected order %+v", o)
	}
	if !orderRefPattern.MatchString(o.OrderRef) {
		t.Fatalf("unexpected order ref %q", o.OrderRef)
	}
}

func TestReturnURL(t *testing.T) {
	got := ReturnURL("https://platform.centerway.net.ua", "irem_20260213_deadbeef", entities.ProductIrem)
	want := "https://platform.centerway.net.ua/pay/return?order_ref=irem_20260213_deadbeef&product=irem"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
