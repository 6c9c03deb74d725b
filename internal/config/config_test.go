package config

import (
	"errors"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("defaults in mock mode", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
		t.Setenv("STRIPE_SECRET_KEY", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != 3001 || cfg.DefaultCurrency != "cad" {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
		if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://greenprogroup.com" {
			t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
		}
		if cfg.PromoDiscountRate != 0.05 || cfg.DepositRate != 0.5 {
			t.Fatalf("unexpected rates: %v %v", cfg.PromoDiscountRate, cfg.DepositRate)
		}
	})

	t.Run("secret key required outside mock mode", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "false")
		t.Setenv("STRIPE_SECRET_KEY", "")

		_, err := Load()
		if !errors.Is(err, ErrMissingStripeSecretKey) {
			t.Fatalf("expected ErrMissingStripeSecretKey, got %v", err)
		}
	})

	t.Run("rates must be between zero and one", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
		t.Setenv("DEPOSIT_RATE", "1")

		_, err := Load()
		if !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("expected ErrInvalidRate, got %v", err)
		}
	})

	t.Run("currency normalized", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
		t.Setenv("DEFAULT_CURRENCY", " USD ")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DefaultCurrency != "usd" {
			t.Fatalf("expected usd, got %q", cfg.DefaultCurrency)
		}
	})
}

func TestLoadClient(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "false")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("API_BASE_URL", "https://api.greenprogroup.com")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("client config must not need the secret key: %v", err)
	}
	if cfg.APIBaseURL != "https://api.greenprogroup.com" {
		t.Fatalf("unexpected api base url %q", cfg.APIBaseURL)
	}

	t.Setenv("PROMO_DISCOUNT_RATE", "0")
	if _, err := LoadClient(); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
}

func TestConfig_Redacted(t *testing.T) {
	cfg := Config{StripeSecretKey: "sk_test_123", StripeWebhookSecret: "whsec_123", SMTPPassword: "pw", StripePublishableKey: "pk_test_1"}
	red := cfg.Redacted()
	if red.StripeSecretKey != "****" || red.StripeWebhookSecret != "****" || red.SMTPPassword != "****" {
		t.Fatalf("secrets not masked: %+v", red)
	}
	if red.StripePublishableKey != "pk_test_1" {
		t.Fatalf("publishable key should stay visible")
	}
	if cfg.StripeSecretKey != "sk_test_123" {
		t.Fatalf("original config must not be modified")
	}
}
