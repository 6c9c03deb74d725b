package interfaces

import (
	"context"

	"greenpro_billing/internal/domain/entities"
)

// IPaymentProcessor abstracts the card payment processor (Stripe).
//
// The billing service uses it to:
//   - create a payment intent and hand its client secret to the browser
//   - look up an intent's current status
//   - verify and decode signed webhook payloads
type IPaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntentRecord, error)
	GetPaymentIntent(ctx context.Context, id string) (entities.PaymentIntentRecord, error)
	ConstructEvent(payload []byte, signatureHeader string) (entities.PaymentEvent, error)
}
