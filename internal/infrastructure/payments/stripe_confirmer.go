package payments

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/pkg"
)

var (
	ErrConfirmationInProgress = errors.New("a confirmation is already outstanding")
	ErrInvalidClientSecret    = errors.New("invalid client secret")
)

const (
	messageNotReady       = "Payment system not ready. Please try again."
	messageRequiresAction = "Additional authentication is required to complete this payment."
	messagePaymentFailed  = "Payment failed. Please try again."
)

// CardToken is a card already tokenized by the processor's client SDK.
type CardToken struct {
	Token string
}

func (c CardToken) Ready() bool           { return strings.TrimSpace(c.Token) != "" }
func (c CardToken) PaymentMethod() string { return strings.TrimSpace(c.Token) }

// StripeConfirmer confirms a payment intent with the publishable key and the intent's
// client secret, the way the browser SDK does. It never sees the secret key.
type StripeConfirmer struct {
	intents  *paymentintent.Client
	mockMode bool
	inFlight atomic.Bool
	logger   *zap.Logger
}

func NewStripeConfirmer(publishableKey string, backend stripe.Backend, mockMode bool, logger *zap.Logger) *StripeConfirmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeConfirmer{
		intents:  &paymentintent.Client{B: backend, Key: publishableKey},
		mockMode: mockMode,
		logger:   logger,
	}
}

// ConfirmCharge confirms the intent behind clientSecret. A declined card comes back as an
// unsuccessful outcome carrying the processor's message; errors are reserved for calls
// that could not be made.
func (c *StripeConfirmer) ConfirmCharge(ctx context.Context, clientSecret string, card entities.CardCapability, billing entities.BillingDetails) (entities.PaymentOutcome, error) {
	if card == nil || !card.Ready() {
		return entities.PaymentOutcome{Message: messageNotReady}, pkg.ErrCardNotReady
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return entities.PaymentOutcome{}, ErrConfirmationInProgress
	}
	defer c.inFlight.Store(false)

	id, ok := IntentIDFromClientSecret(clientSecret)
	if !ok {
		return entities.PaymentOutcome{}, ErrInvalidClientSecret
	}

	if c.mockMode {
		c.logger.Info("[payment][confirm] mock confirm success", zap.String("payment_intent_id", id))
		return entities.PaymentOutcome{Success: true, PaymentReference: id}, nil
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(card.PaymentMethod()),
	}
	params.Context = ctx
	params.AddExtra("client_secret", clientSecret)
	if billing.Email != "" {
		params.ReceiptEmail = stripe.String(billing.Email)
	}

	pi, err := c.intents.Confirm(id, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) {
			c.logger.Info("[payment][confirm] processor declined", zap.String("payment_intent_id", id), zap.String("code", string(se.Code)))
			msg := se.Msg
			if msg == "" {
				msg = messagePaymentFailed
			}
			return entities.PaymentOutcome{Message: msg}, nil
		}
		c.logger.Warn("[payment][confirm] confirm call failed", zap.String("payment_intent_id", id), zap.Error(err))
		return entities.PaymentOutcome{}, &pkg.NetworkError{Op: "confirm payment", Err: err}
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
		c.logger.Info("[payment][confirm] confirmed", zap.String("payment_intent_id", pi.ID), zap.String("status", string(pi.Status)))
		return entities.PaymentOutcome{Success: true, PaymentReference: pi.ID}, nil
	case stripe.PaymentIntentStatusRequiresAction:
		return entities.PaymentOutcome{Message: messageRequiresAction}, nil
	default:
		msg := messagePaymentFailed
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			msg = pi.LastPaymentError.Msg
		}
		return entities.PaymentOutcome{Message: msg}, nil
	}
}

// IntentIDFromClientSecret extracts "pi_123" from "pi_123_secret_abc".
func IntentIDFromClientSecret(secret string) (string, bool) {
	id, _, ok := strings.Cut(secret, "_secret_")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
