package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/usecase/interfaces"
	"greenpro_billing/pkg"
)

var (
	ErrMissingStripeSecretKey     = errors.New("missing STRIPE_SECRET_KEY")
	ErrStripeGatewayNotConfigured = errors.New("stripe gateway not configured")
	ErrMissingWebhookSecret       = errors.New("webhook signing secret not configured")
)

// StripeGatewayConfig configures the server side Stripe client. Backend is only set by
// tests that point the SDK at a fake API.
type StripeGatewayConfig struct {
	SecretKey     string
	WebhookSecret string
	MockMode      bool
	Backend       stripe.Backend
}

type StripeGateway struct {
	intents       *paymentintent.Client
	webhookSecret string
	mockMode      bool
	logger        *zap.Logger
	now           func() time.Time
}

var _ interfaces.IPaymentProcessor = (*StripeGateway)(nil)

func NewStripeGateway(cfg StripeGatewayConfig, logger *zap.Logger) (*StripeGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &StripeGateway{webhookSecret: cfg.WebhookSecret, logger: logger, now: time.Now}
	if cfg.WebhookSecret == "" {
		logger.Warn("[payment][gateway] STRIPE_WEBHOOK_SECRET not set, every webhook will be rejected")
	}

	if cfg.MockMode {
		logger.Info("[payment][gateway] mock mode enabled")
		g.mockMode = true
		return g, nil
	}
	if cfg.SecretKey == "" {
		logger.Error("[payment][gateway] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}

	backend := cfg.Backend
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	g.intents = &paymentintent.Client{B: backend, Key: cfg.SecretKey}
	logger.Info("[payment][gateway] Stripe client initialized")
	return g, nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntentRecord, error) {
	if g != nil && g.mockMode {
		id := "pi_mock_" + strconv.FormatInt(g.now().UTC().UnixNano(), 10)
		g.logger.Info("[payment][gateway] mock create success", zap.String("payment_intent_id", id), zap.Int64("amount", req.Amount))
		return entities.PaymentIntentRecord{
			ID:           id,
			ClientSecret: id + "_secret_mock",
			Amount:       req.Amount,
			Currency:     req.Currency,
			Status:       entities.PaymentIntentRequiresPaymentMethod,
			ReceiptEmail: req.ReceiptEmail,
			Description:  req.Description,
			Metadata:     req.Metadata,
			UpdatedAt:    g.now().UTC(),
		}, nil
	}
	if g == nil || g.intents == nil {
		return entities.PaymentIntentRecord{}, ErrStripeGatewayNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	g.logger.Info("[payment][gateway] create start", zap.Int64("amount", req.Amount), zap.String("currency", req.Currency))
	pi, err := g.intents.New(params)
	if err != nil {
		g.logger.Warn("[payment][gateway] sdk create failed", zap.Error(err))
		return entities.PaymentIntentRecord{}, translateStripeError("create payment intent", err)
	}
	g.logger.Info("[payment][gateway] create success", zap.String("payment_intent_id", pi.ID), zap.String("status", string(pi.Status)))
	return recordFromStripe(pi), nil
}

func (g *StripeGateway) GetPaymentIntent(ctx context.Context, id string) (entities.PaymentIntentRecord, error) {
	if g != nil && g.mockMode {
		return entities.PaymentIntentRecord{ID: id, Status: entities.PaymentIntentRequiresPaymentMethod, UpdatedAt: g.now().UTC()}, nil
	}
	if g == nil || g.intents == nil {
		return entities.PaymentIntentRecord{}, ErrStripeGatewayNotConfigured
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.intents.Get(id, params)
	if err != nil {
		return entities.PaymentIntentRecord{}, translateStripeError("get payment intent", err)
	}
	rec := recordFromStripe(pi)
	rec.ClientSecret = ""
	return rec, nil
}

// ConstructEvent verifies the Stripe-Signature header before decoding anything from the payload.
func (g *StripeGateway) ConstructEvent(payload []byte, signatureHeader string) (entities.PaymentEvent, error) {
	if g == nil || g.webhookSecret == "" {
		return entities.PaymentEvent{}, fmt.Errorf("%w: %v", pkg.ErrSignatureVerification, ErrMissingWebhookSecret)
	}

	ev, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return entities.PaymentEvent{}, fmt.Errorf("%w: %v", pkg.ErrSignatureVerification, err)
	}

	out := entities.PaymentEvent{
		ID:      ev.ID,
		Type:    entities.PaymentEventType(ev.Type),
		Created: time.Unix(ev.Created, 0).UTC(),
	}
	if ev.Data == nil || len(ev.Data.Raw) == 0 {
		return out, nil
	}

	switch out.Type {
	case entities.EventPaymentIntentSucceeded, entities.EventPaymentIntentPaymentFailed, entities.EventPaymentIntentCanceled:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return entities.PaymentEvent{}, fmt.Errorf("decode payment intent from event %s: %w", ev.ID, err)
		}
		out.Intent = recordFromStripe(&pi)
		out.Intent.ClientSecret = ""
	}
	return out, nil
}

func recordFromStripe(pi *stripe.PaymentIntent) entities.PaymentIntentRecord {
	rec := entities.PaymentIntentRecord{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       entities.PaymentIntentStatus(pi.Status),
		ReceiptEmail: pi.ReceiptEmail,
		Description:  pi.Description,
		Metadata:     pi.Metadata,
		UpdatedAt:    time.Now().UTC(),
	}
	if pi.LastPaymentError != nil {
		rec.LastError = pi.LastPaymentError.Msg
	}
	return rec
}

// translateStripeError turns API rejections into UpstreamPaymentError and everything else
// (DNS, TLS, timeouts) into NetworkError.
func translateStripeError(op string, err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		return &pkg.UpstreamPaymentError{
			Message:    se.Msg,
			Code:       string(se.Code),
			Type:       string(se.Type),
			HTTPStatus: se.HTTPStatusCode,
		}
	}
	return &pkg.NetworkError{Op: op, Err: err}
}
