package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

var (
	ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")
	ErrInvalidRate            = errors.New("rate must be strictly between 0 and 1")
)

// Config is loaded once at process start. Secrets are only ever read from the environment.
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"production"`
	Port        int    `env:"PORT" envDefault:"3001"`

	StripeSecretKey      string `env:"STRIPE_SECRET_KEY"`
	StripePublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`
	StripeWebhookSecret  string `env:"STRIPE_WEBHOOK_SECRET"`
	PaymentGatewayMock   bool   `env:"PAYMENT_GATEWAY_MOCK" envDefault:"false"`
	DefaultCurrency      string `env:"DEFAULT_CURRENCY" envDefault:"cad"`

	CORSOrigins        []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"https://greenprogroup.com,https://www.greenprogroup.com"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`

	LeadRelayURL string `env:"LEAD_RELAY_URL"`
	APIBaseURL   string `env:"API_BASE_URL" envDefault:"http://localhost:3001"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AWSRegion           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID      string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	AWSSecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	DynamoDBEnabled     bool   `env:"DYNAMODB_ENABLED" envDefault:"false"`
	DynamoDBEndpoint    string `env:"DYNAMODB_ENDPOINT"`
	WebhookEventsTable  string `env:"WEBHOOK_EVENTS_TABLE" envDefault:"webhook_events"`
	PaymentIntentsTable string `env:"PAYMENT_INTENTS_TABLE" envDefault:"payment_intents"`

	SMTPHost        string `env:"SMTP_HOST"`
	SMTPPort        int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername    string `env:"SMTP_USERNAME"`
	SMTPPassword    string `env:"SMTP_PASSWORD"`
	NotifyFromEmail string `env:"NOTIFY_FROM_EMAIL"`
	NotifyToEmail   string `env:"NOTIFY_TO_EMAIL"`

	PromoDiscountRate float64 `env:"PROMO_DISCOUNT_RATE" envDefault:"0.05"`
	DepositRate       float64 `env:"DEPOSIT_RATE" envDefault:"0.5"`
}

// Load parses the environment into a Config for the API process and validates it.
func Load() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient is Load for the quote CLI, which talks to the API and never holds the
// Stripe secret key.
func LoadClient() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateShared(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !c.PaymentGatewayMock && strings.TrimSpace(c.StripeSecretKey) == "" {
		return ErrMissingStripeSecretKey
	}
	return c.validateShared()
}

func (c *Config) validateShared() error {
	if c.PromoDiscountRate <= 0 || c.PromoDiscountRate >= 1 {
		return fmt.Errorf("PROMO_DISCOUNT_RATE=%v: %w", c.PromoDiscountRate, ErrInvalidRate)
	}
	if c.DepositRate <= 0 || c.DepositRate >= 1 {
		return fmt.Errorf("DEPOSIT_RATE=%v: %w", c.DepositRate, ErrInvalidRate)
	}
	c.DefaultCurrency = strings.ToLower(strings.TrimSpace(c.DefaultCurrency))
	if c.DefaultCurrency == "" {
		c.DefaultCurrency = "cad"
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.NotifyFromEmail != "" && c.NotifyToEmail != ""
}

// Redacted returns a copy safe to log: every secret is masked.
func (c Config) Redacted() Config {
	c.StripeSecretKey = mask(c.StripeSecretKey)
	c.StripeWebhookSecret = mask(c.StripeWebhookSecret)
	c.RedisPassword = mask(c.RedisPassword)
	c.AWSSecretAccessKey = mask(c.AWSSecretAccessKey)
	c.SMTPPassword = mask(c.SMTPPassword)
	return c
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "****"
}
