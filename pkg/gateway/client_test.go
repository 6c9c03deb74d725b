package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/pkg"
)

func TestClient_CreatePaymentIntent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/create-payment-intent" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get(IdempotencyKeyHeader) != "key-1" {
				t.Errorf("missing idempotency key")
			}
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["amount"].(float64) != 140125 || body["customer_email"] != "jane@example.com" || body["currency"] != "cad" {
				t.Errorf("unexpected body: %v", body)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"clientSecret":"pi_1_secret_x","paymentIntentId":"pi_1"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL+"/", time.Second, nil)
		rec, err := c.CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{
			Amount: 140125, Currency: "cad", ReceiptEmail: "jane@example.com", IdempotencyKey: "key-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.ID != "pi_1" || rec.ClientSecret != "pi_1_secret_x" || rec.Amount != 140125 {
			t.Fatalf("unexpected record: %+v", rec)
		}
	})

	t.Run("below minimum never calls server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("server should not be called")
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second, nil).CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{Amount: 49})
		if !errors.Is(err, pkg.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("invalid amount response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid amount"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second, nil).CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{Amount: 50})
		if !errors.Is(err, pkg.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("upstream error keeps processor message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Your card was declined.","message":"Payment processing unavailable","code":"card_declined"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second, nil).CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{Amount: 5000})
		var upstream *pkg.UpstreamPaymentError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamPaymentError, got %v", err)
		}
		if upstream.Message != "Your card was declined." || upstream.Code != "card_declined" || upstream.HTTPStatus != 500 {
			t.Fatalf("unexpected upstream error: %+v", upstream)
		}
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, time.Second, nil).CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{Amount: 5000})
		if !errors.Is(err, pkg.ErrNetwork) {
			t.Fatalf("expected ErrNetwork, got %v", err)
		}
		if pkg.UserMessage(err) != "Payment failed. Please try again." {
			t.Fatalf("unexpected user message %q", pkg.UserMessage(err))
		}
	})
}
