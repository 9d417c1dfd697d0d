package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"checkout_service/internal/usecase/interfaces"
	"checkout_service/pkg/logger"

	"go.uber.org/zap"
)

// maxResponseBytes bounds how much of a gateway response is read.
const maxResponseBytes = 1 << 20

var (
	ErrWayForPayGatewayNotConfigured = errors.New("wayforpay gateway not configured")
	ErrWayForPayHTTPStatus           = errors.New("wayforpay returned non-2xx status")
)

// WayForPayGateway posts CREATE_INVOICE requests to the WayForPay API.
type WayForPayGateway struct {
	apiURL   string
	client   *http.Client
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*WayForPayGateway)(nil)

// NewWayForPayGateway returns a gateway bounded by timeout. In mock mode no
// request leaves the process and every invoice gets a fake URL.
func NewWayForPayGateway(apiURL string, timeout time.Duration, mockMode bool) *WayForPayGateway {
	if mockMode {
		logger.Log.Info("wayforpay gateway mock mode enabled")
	}
	return &WayForPayGateway{
		apiURL:   apiURL,
		client:   &http.Client{Timeout: timeout},
		mockMode: mockMode,
	}
}

func (g *WayForPayGateway) CreateInvoice(ctx context.Context, requestPayload json.RawMessage) ([]byte, error) {
	if g != nil && g.mockMode {
		return mockInvoiceResponse(requestPayload)
	}
	if g == nil || g.client == nil || g.apiURL == "" {
		return nil, ErrWayForPayGatewayNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(requestPayload))
	if err != nil {
		return nil, fmt.Errorf("build wayforpay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wayforpay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read wayforpay response: %w", err)
	}
	logger.Debug(ctx, "wayforpay response",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_len", len(body)),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, fmt.Errorf("%w: %d", ErrWayForPayHTTPStatus, resp.StatusCode)
	}
	return body, nil
}

func mockInvoiceResponse(requestPayload json.RawMessage) ([]byte, error) {
	var req struct {
		OrderReference string `json:"orderReference"`
	}
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		return nil, fmt.Errorf("mock invoice: %w", err)
	}
	return json.Marshal(map[string]any{
		"reason":     "Ok",
		"reasonCode": 1100,
		"invoiceUrl": "https://secure.wayforpay.com/invoice/mock-" + req.OrderReference,
		"qrCode":     "",
	})
}
