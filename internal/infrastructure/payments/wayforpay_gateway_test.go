package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWayForPayGateway_CreateInvoice(t *testing.T) {
	t.Run("posts json and returns body", func(t *testing.T) {
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
			}
			gotBody, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"invoiceUrl":"https://secure.wayforpay.com/invoice/x"}`))
		}))
		defer srv.Close()

		g := NewWayForPayGateway(srv.URL, time.Second, false)
		body, err := g.CreateInvoice(context.Background(), json.RawMessage(`{"orderReference":"short_1"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(gotBody) != `{"orderReference":"short_1"}` {
			t.Fatalf("payload altered: %s", gotBody)
		}
		if string(body) != `{"invoiceUrl":"https://secure.wayforpay.com/invoice/x"}` {
			t.Fatalf("unexpected body %s", body)
		}
	})

	t.Run("non-2xx keeps body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`upstream down`))
		}))
		defer srv.Close()

		body, err := NewWayForPayGateway(srv.URL, time.Second, false).CreateInvoice(context.Background(), json.RawMessage(`{}`))
		if !errors.Is(err, ErrWayForPayHTTPStatus) || string(body) != "upstream down" {
			t.Fatalf("expected status error with body, got %q %v", body, err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		if _, err := NewWayForPayGateway(srv.URL, 20*time.Millisecond, false).CreateInvoice(context.Background(), json.RawMessage(`{}`)); err == nil {
			t.Fatalf("expected timeout error")
		}
	})

	t.Run("not configured", func(t *testing.T) {
		if _, err := NewWayForPayGateway("", time.Second, false).CreateInvoice(context.Background(), json.RawMessage(`{}`)); !errors.Is(err, ErrWayForPayGatewayNotConfigured) {
			t.Fatalf("expected ErrWayForPayGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("mock mode", func(t *testing.T) {
		body, err := NewWayForPayGateway("", time.Second, true).CreateInvoice(context.Background(), json.RawMessage(`{"orderReference":"irem_20260213_deadbeef"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var resp map[string]any
		_ = json.Unmarshal(body, &resp)
		if resp["invoiceUrl"] != "https://secure.wayforpay.com/invoice/mock-irem_20260213_deadbeef" {
			t.Fatalf("unexpected mock response %s", body)
		}
	})
}
