package session

import (
	"context"

	"greenpro_billing/internal/domain/entities"
)

// PaymentIntentRequester asks the payment intent gateway for a new intent.
type PaymentIntentRequester interface {
	CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntentRecord, error)
}

// ChargeConfirmer confirms a charge with the processor on the customer's side.
// A declined card is reported as a failed outcome, not as an error.
type ChargeConfirmer interface {
	ConfirmCharge(ctx context.Context, clientSecret string, card entities.CardCapability, billing entities.BillingDetails) (entities.PaymentOutcome, error)
}

// LeadRelay forwards a lead to the business inbox.
type LeadRelay interface {
	Submit(ctx context.Context, lead entities.LeadSubmission) error
}

// EstimateCounter counts estimates shown, for lead analytics only.
type EstimateCounter interface {
	Increment(ctx context.Context) (int64, error)
}
