package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"checkout_service/internal/domain/catalog"
	"checkout_service/internal/domain/entities"
	"checkout_service/internal/domain/signature"
	"checkout_service/internal/usecase/interfaces"
	"checkout_service/pkg/logger"

	"go.uber.org/zap"
)

var (
	ErrConfigMissing      = errors.New("payment configuration missing")
	ErrOrderInsertFailed  = errors.New("order insert failed")
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")
	ErrGatewayNoURL       = errors.New("payment gateway returned no invoice url")
)

const (
	webhookPath = "/api/wfp/webhook"
	returnPath  = "/pay/return"
)

// invoiceURLFields are the response keys the gateway has used for the
// payment URL across API versions, in lookup order.
var invoiceURLFields = []string{"invoiceUrl", "url", "paymentUrl", "payUrl"}

// InvoiceError carries the diagnostics of a failed gateway call. The order
// stays in created; OrderRef and Raw are returned to the caller.
type InvoiceError struct {
	Err      error // ErrGatewayUnreachable or ErrGatewayNoURL
	OrderRef string
	Raw      string
	Cause    error
}

func (e *InvoiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: order_ref=%s: %v", e.Err, e.OrderRef, e.Cause)
	}
	return fmt.Sprintf("%v: order_ref=%s", e.Err, e.OrderRef)
}

func (e *InvoiceError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// MerchantSettings is the merchant identity used to sign invoices.
type MerchantSettings struct {
	Account    string
	Domain     string
	SecretKey  string
	AppBaseURL string
}

func (s MerchantSettings) missing() []string {
	var out []string
	if s.Account == "" {
		out = append(out, "merchant account")
	}
	if s.Domain == "" {
		out = append(out, "merchant domain")
	}
	if s.SecretKey == "" {
		out = append(out, "secret key")
	}
	if s.AppBaseURL == "" {
		out = append(out, "app base url")
	}
	return out
}

type InvoiceRequest struct {
	ProductCode string
	Locale      catalog.Locale
}

type Invoice struct {
	OrderRef string
	Product  catalog.Product
	PayURL   string
}

// IInvoiceUseCase creates orders and gateway invoices.
//
// Every CreateInvoice call mints a fresh order_ref and stores the order as
// created before the gateway is contacted, so a failed call can be retried
// as a whole.
type IInvoiceUseCase interface {
	CreateInvoice(ctx context.Context, req InvoiceRequest) (Invoice, error)
	CreateOrder(ctx context.Context, productCode string) (entities.Order, error)
}

type InvoiceUseCase struct {
	orders   interfaces.IOrderRepository
	gateway  interfaces.IPaymentGateway
	alerts   interfaces.IAlertRecorder
	catalog  *catalog.Catalog
	merchant MerchantSettings

	now       func() time.Time
	randomHex func(n int) (string, error)
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

type InvoiceOption func(*InvoiceUseCase)

func WithInvoiceClock(now func() time.Time) InvoiceOption {
	return func(u *InvoiceUseCase) { u.now = now }
}

// WithRandomHex replaces the source of the order_ref suffix.
func WithRandomHex(fn func(n int) (string, error)) InvoiceOption {
	return func(u *InvoiceUseCase) { u.randomHex = fn }
}

func NewInvoiceUseCase(orders interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, alerts interfaces.IAlertRecorder, cat *catalog.Catalog, merchant MerchantSettings, opts ...InvoiceOption) *InvoiceUseCase {
	u := &InvoiceUseCase{
		orders:    orders,
		gateway:   gateway,
		alerts:    alerts,
		catalog:   cat,
		merchant:  merchant,
		now:       time.Now,
		randomHex: cryptoRandomHex,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *InvoiceUseCase) CreateOrder(ctx context.Context, productCode string) (entities.Order, error) {
	product := u.catalog.Resolve(productCode)
	order, err := u.insertOrder(ctx, product)
	if err != nil {
		return entities.Order{}, err
	}
	logger.Info(ctx, "order created",
		zap.String("order_ref", order.OrderRef),
		zap.String("product", string(product.Code)),
	)
	return order, nil
}

func (u *InvoiceUseCase) CreateInvoice(ctx context.Context, req InvoiceRequest) (Invoice, error) {
	if missing := u.merchant.missing(); len(missing) > 0 {
		logger.Error(ctx, "invoice refused, merchant settings incomplete", nil, zap.Strings("missing", missing))
		return Invoice{}, fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(missing, ","))
	}
	if u.gateway == nil {
		return Invoice{}, fmt.Errorf("%w: payment gateway not configured", ErrConfigMissing)
	}

	product := u.catalog.Resolve(req.ProductCode)
	if requested := strings.TrimSpace(req.ProductCode); requested != "" && !strings.EqualFold(requested, string(product.Code)) {
		logger.Warn(ctx, "unknown product, using fallback",
			zap.String("requested", requested),
			zap.String("product", string(product.Code)),
		)
	}

	order, err := u.insertOrder(ctx, product)
	if err != nil {
		return Invoice{}, err
	}

	payload, err := json.Marshal(u.buildInvoiceRequest(order, product, req.Locale))
	if err != nil {
		return Invoice{}, fmt.Errorf("encode invoice request: %w", err)
	}

	logger.Info(ctx, "requesting invoice",
		zap.String("order_ref", order.OrderRef),
		zap.String("product", string(product.Code)),
		zap.Float64("amount", order.Amount),
		zap.String("locale", string(req.Locale)),
	)

	raw, err := u.gateway.CreateInvoice(ctx, payload)
	payURL, reason := parseInvoiceURL(raw)
	if err != nil {
		if payURL == "" {
			u.recordGatewayAlert(ctx, product, "unreachable")
			logger.Error(ctx, "gateway call failed", err, zap.String("order_ref", order.OrderRef))
			return Invoice{}, &InvoiceError{Err: ErrGatewayUnreachable, OrderRef: order.OrderRef, Raw: string(raw), Cause: err}
		}
		// A pay URL in the body is usable whatever the HTTP status.
		logger.Warn(ctx, "gateway error response carried an invoice url",
			zap.String("order_ref", order.OrderRef),
			zap.Error(err),
		)
	}

	if payURL == "" {
		u.recordGatewayAlert(ctx, product, "no_url")
		logger.Error(ctx, "gateway returned no invoice url", nil,
			zap.String("order_ref", order.OrderRef),
			zap.String("reason", reason),
			zap.ByteString("raw", raw),
		)
		return Invoice{}, &InvoiceError{Err: ErrGatewayNoURL, OrderRef: order.OrderRef, Raw: string(raw)}
	}

	logger.Info(ctx, "invoice created",
		zap.String("order_ref", order.OrderRef),
		zap.String("product", string(product.Code)),
	)
	return Invoice{OrderRef: order.OrderRef, Product: product, PayURL: payURL}, nil
}

func (u *InvoiceUseCase) insertOrder(ctx context.Context, product catalog.Product) (entities.Order, error) {
	if u.orders == nil {
		return entities.Order{}, fmt.Errorf("%w: order repository not configured", ErrConfigMissing)
	}
	now := u.now().UTC()
	ref, err := u.newOrderRef(product.Code, now)
	if err != nil {
		return entities.Order{}, err
	}
	order := entities.Order{
		OrderRef:    ref,
		ProductCode: product.Code,
		Amount:      product.Amount,
		Currency:    product.Currency,
		Status:      entities.OrderStatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := u.orders.Create(ctx, order)
	if err != nil {
		logger.Error(ctx, "order insert failed", err, zap.String("order_ref", ref))
		return entities.Order{}, fmt.Errorf("%w: %w", ErrOrderInsertFailed, err)
	}
	return created, nil
}

// newOrderRef builds {code}_{YYYYMMDD}_{8 hex}. The date is UTC.
func (u *InvoiceUseCase) newOrderRef(code entities.ProductCode, now time.Time) (string, error) {
	suffix, err := u.randomHex(4)
	if err != nil {
		return "", fmt.Errorf("order ref suffix: %w", err)
	}
	return fmt.Sprintf("%s_%s_%s", code, now.Format("20060102"), suffix), nil
}

// wayForPayInvoiceRequest is the CREATE_INVOICE body.
type wayForPayInvoiceRequest struct {
	TransactionType    string    `json:"transactionType"`
	APIVersion         int       `json:"apiVersion"`
	MerchantAccount    string    `json:"merchantAccount"`
	MerchantAuthType   string    `json:"merchantAuthType"`
	MerchantDomainName string    `json:"merchantDomainName"`
	MerchantSignature  string    `json:"merchantSignature"`
	Language           string    `json:"language"`
	ServiceURL         string    `json:"serviceUrl"`
	ReturnURL          string    `json:"returnUrl"`
	OrderReference     string    `json:"orderReference"`
	OrderDate          int64     `json:"orderDate"`
	Amount             float64   `json:"amount"`
	Currency           string    `json:"currency"`
	ProductName        []string  `json:"productName"`
	ProductPrice       []float64 `json:"productPrice"`
	ProductCount       []int     `json:"productCount"`
}

func (u *InvoiceUseCase) buildInvoiceRequest(order entities.Order, product catalog.Product, locale catalog.Locale) wayForPayInvoiceRequest {
	in := signature.InvoiceInput{
		MerchantAccount:    u.merchant.Account,
		MerchantDomainName: u.merchant.Domain,
		OrderReference:     order.OrderRef,
		OrderDate:          order.CreatedAt.Unix(),
		Amount:             order.Amount,
		Currency:           order.Currency,
		ProductNames:       []string{product.GatewayName(locale)},
		ProductCounts:      []int{1},
		ProductPrices:      []float64{order.Amount},
	}
	return wayForPayInvoiceRequest{
		TransactionType:    "CREATE_INVOICE",
		APIVersion:         1,
		MerchantAccount:    in.MerchantAccount,
		MerchantAuthType:   "SimpleSignature",
		MerchantDomainName: in.MerchantDomainName,
		MerchantSignature:  signature.SignInvoice(u.merchant.SecretKey, in),
		Language:           gatewayLanguage(locale),
		ServiceURL:         u.merchant.AppBaseURL + webhookPath,
		ReturnURL:          ReturnURL(u.merchant.AppBaseURL, order.OrderRef, product.Code),
		OrderReference:     in.OrderReference,
		OrderDate:          in.OrderDate,
		Amount:             in.Amount,
		Currency:           in.Currency,
		ProductName:        in.ProductNames,
		ProductPrice:       in.ProductPrices,
		ProductCount:       in.ProductCounts,
	}
}

// ReturnURL is the browser return address; product and order_ref are
// round-tripped by the gateway.
func ReturnURL(baseURL, orderRef string, product entities.ProductCode) string {
	q := url.Values{}
	q.Set("product", string(product))
	q.Set("order_ref", orderRef)
	return baseURL + returnPath + "?" + q.Encode()
}

func gatewayLanguage(locale catalog.Locale) string {
	if locale == catalog.LocaleUA {
		return "UA"
	}
	return "EN"
}

// parseInvoiceURL returns the payment URL and, when absent, the gateway's
// reason text for the log.
func parseInvoiceURL(raw []byte) (string, string) {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", "unparseable response"
	}
	for _, k := range invoiceURLFields {
		if s, ok := body[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), ""
		}
	}
	reason, _ := body["reason"].(string)
	return "", reason
}

func (u *InvoiceUseCase) recordGatewayAlert(ctx context.Context, product catalog.Product, kind string) {
	recordAlert(ctx, u.alerts, interfaces.AlertGatewayError, map[string]string{
		"Product": string(product.Code),
		"Kind":    kind,
	})
}

func recordAlert(ctx context.Context, alerts interfaces.IAlertRecorder, name string, dims map[string]string) {
	if alerts == nil {
		return
	}
	alerts.RecordAlert(ctx, name, dims)
}

func cryptoRandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
