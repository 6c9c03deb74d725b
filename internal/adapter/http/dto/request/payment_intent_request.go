package request

import (
	"strings"

	"greenpro_billing/internal/domain/entities"
)

// CreatePaymentIntentRequest is the body of POST /create-payment-intent.
//
// Amount is in minor currency units. A missing amount fails binding and is reported
// as "Invalid amount", same as one below the minimum.
type CreatePaymentIntentRequest struct {
	Amount        *int64            `json:"amount" binding:"required"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Description   string            `json:"description"`
	Metadata      map[string]string `json:"metadata"`
}

func (r CreatePaymentIntentRequest) ToEntity(idempotencyKey string) entities.PaymentIntentRequest {
	var amount int64
	if r.Amount != nil {
		amount = *r.Amount
	}
	return entities.PaymentIntentRequest{
		Amount:         amount,
		Currency:       strings.TrimSpace(r.Currency),
		ReceiptEmail:   strings.TrimSpace(r.CustomerEmail),
		Description:    strings.TrimSpace(r.Description),
		Metadata:       r.Metadata,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
}
