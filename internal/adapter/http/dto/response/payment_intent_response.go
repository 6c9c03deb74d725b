package response

import (
	"time"

	"greenpro_billing/internal/domain/entities"
)

// CreatePaymentIntentResponse hands the client secret to the browser. It is the only
// response that ever carries it.
type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func FromCreatedPaymentIntent(rec entities.PaymentIntentRecord) CreatePaymentIntentResponse {
	return CreatePaymentIntentResponse{ClientSecret: rec.ClientSecret, PaymentIntentID: rec.ID}
}

type PaymentIntentResponse struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	ReceiptEmail string            `json:"receipt_email,omitempty"`
	Description  string            `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastError    string            `json:"last_error,omitempty"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
}

func FromPaymentIntentRecord(rec entities.PaymentIntentRecord) PaymentIntentResponse {
	res := PaymentIntentResponse{
		ID:           rec.ID,
		Amount:       rec.Amount,
		Currency:     rec.Currency,
		Status:       string(rec.Status),
		ReceiptEmail: rec.ReceiptEmail,
		Description:  rec.Description,
		Metadata:     rec.Metadata,
		LastError:    rec.LastError,
	}
	if !rec.UpdatedAt.IsZero() {
		t := rec.UpdatedAt
		res.UpdatedAt = &t
	}
	return res
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
