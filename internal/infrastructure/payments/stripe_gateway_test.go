package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v79"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/pkg"
)

const testWebhookSecret = "whsec_test_secret"

func testBackend(url string) stripe.Backend {
	return stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(url),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
}

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts.Unix(), payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestNewStripeGateway(t *testing.T) {
	if _, err := NewStripeGateway(StripeGatewayConfig{}, nil); !errors.Is(err, ErrMissingStripeSecretKey) {
		t.Fatalf("expected ErrMissingStripeSecretKey, got %v", err)
	}
	if _, err := NewStripeGateway(StripeGatewayConfig{MockMode: true}, nil); err != nil {
		t.Fatalf("mock mode should not need a key: %v", err)
	}
}

func TestStripeGateway_CreatePaymentIntent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/v1/payment_intents" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer sk_test_123" || r.Header.Get("Idempotency-Key") != "idem-1" {
				t.Errorf("unexpected headers: %v", r.Header)
			}
			_ = r.ParseForm()
			if r.PostForm.Get("amount") != "140125" || r.PostForm.Get("currency") != "cad" ||
				r.PostForm.Get("metadata[service]") != "Interior Demolition" || r.PostForm.Get("receipt_email") != "jane@example.com" {
				t.Errorf("unexpected form: %v", r.PostForm)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","amount":140125,"currency":"cad","status":"requires_payment_method","client_secret":"pi_1_secret_abc"}`))
		}))
		defer srv.Close()

		g, err := NewStripeGateway(StripeGatewayConfig{SecretKey: "sk_test_123", Backend: testBackend(srv.URL)}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rec, err := g.CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{
			Amount:         140125,
			Currency:       "cad",
			ReceiptEmail:   "jane@example.com",
			Description:    "Deposit",
			Metadata:       map[string]string{"service": "Interior Demolition"},
			IdempotencyKey: "idem-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.ID != "pi_1" || rec.ClientSecret != "pi_1_secret_abc" || rec.Status != entities.PaymentIntentRequiresPaymentMethod {
			t.Fatalf("unexpected record: %+v", rec)
		}
	})

	t.Run("processor rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Amount must be at least $0.50 cad","code":"amount_too_small","type":"invalid_request_error"}}`))
		}))
		defer srv.Close()

		g, _ := NewStripeGateway(StripeGatewayConfig{SecretKey: "sk_test_123", Backend: testBackend(srv.URL)}, nil)
		_, err := g.CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{Amount: 50, Currency: "cad"})

		var upstream *pkg.UpstreamPaymentError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamPaymentError, got %v", err)
		}
		if upstream.Message != "Amount must be at least $0.50 cad" || upstream.Code != "amount_too_small" || upstream.HTTPStatus != http.StatusBadRequest {
			t.Fatalf("unexpected upstream error: %+v", upstream)
		}
	})

	t.Run("mock mode", func(t *testing.T) {
		g, _ := NewStripeGateway(StripeGatewayConfig{MockMode: true}, nil)
		rec, err := g.CreatePaymentIntent(context.Background(), entities.PaymentIntentRequest{Amount: 5000, Currency: "cad"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(rec.ID, "pi_mock_") || !strings.HasPrefix(rec.ClientSecret, rec.ID+"_secret_") {
			t.Fatalf("unexpected mock record: %+v", rec)
		}
	})
}

func TestStripeGateway_GetPaymentIntent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents/pi_missing" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"No such payment_intent: 'pi_missing'","code":"resource_missing","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	g, _ := NewStripeGateway(StripeGatewayConfig{SecretKey: "sk_test_123", Backend: testBackend(srv.URL)}, nil)
	_, err := g.GetPaymentIntent(context.Background(), "pi_missing")

	var upstream *pkg.UpstreamPaymentError
	if !errors.As(err, &upstream) || upstream.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404 upstream error, got %v", err)
	}
}

func TestStripeGateway_ConstructEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.payment_failed","created":1700000000,` +
		`"data":{"object":{"id":"pi_1","object":"payment_intent","amount":140125,"currency":"cad","status":"requires_payment_method",` +
		`"client_secret":"pi_1_secret_abc","last_payment_error":{"message":"Your card was declined.","code":"card_declined","type":"card_error"}}}}`)
	g, _ := NewStripeGateway(StripeGatewayConfig{MockMode: true, WebhookSecret: testWebhookSecret}, nil)

	t.Run("valid signature", func(t *testing.T) {
		ev, err := g.ConstructEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.ID != "evt_1" || ev.Type != entities.EventPaymentIntentPaymentFailed {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if ev.Intent.ID != "pi_1" || ev.Intent.LastError != "Your card was declined." || ev.Intent.ClientSecret != "" {
			t.Fatalf("unexpected intent: %+v", ev.Intent)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := g.ConstructEvent(payload, signPayload(payload, "whsec_other", time.Now()))
		if !errors.Is(err, pkg.ErrSignatureVerification) {
			t.Fatalf("expected ErrSignatureVerification, got %v", err)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		if _, err := g.ConstructEvent(payload, ""); !errors.Is(err, pkg.ErrSignatureVerification) {
			t.Fatalf("expected ErrSignatureVerification, got %v", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		sig := signPayload(payload, testWebhookSecret, time.Now())
		tampered := []byte(strings.Replace(string(payload), "140125", "1", 1))
		if _, err := g.ConstructEvent(tampered, sig); !errors.Is(err, pkg.ErrSignatureVerification) {
			t.Fatalf("expected ErrSignatureVerification, got %v", err)
		}
	})

	t.Run("no secret configured rejects everything", func(t *testing.T) {
		noSecret, _ := NewStripeGateway(StripeGatewayConfig{MockMode: true}, nil)
		_, err := noSecret.ConstructEvent(payload, signPayload(payload, "", time.Now()))
		if !errors.Is(err, pkg.ErrSignatureVerification) {
			t.Fatalf("expected ErrSignatureVerification, got %v", err)
		}
	})
}
