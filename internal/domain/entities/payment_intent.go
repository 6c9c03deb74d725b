package entities

import "time"

// PaymentIntentStatus is the processor defined lifecycle state of a payment intent.
type PaymentIntentStatus string

const (
	PaymentIntentRequiresPaymentMethod PaymentIntentStatus = "requires_payment_method"
	PaymentIntentRequiresConfirmation  PaymentIntentStatus = "requires_confirmation"
	PaymentIntentRequiresAction        PaymentIntentStatus = "requires_action"
	PaymentIntentProcessing            PaymentIntentStatus = "processing"
	PaymentIntentSucceeded             PaymentIntentStatus = "succeeded"
	PaymentIntentCanceled              PaymentIntentStatus = "canceled"
	// PaymentIntentPaymentFailed is never reported as a status by the processor; it is
	// recorded locally when a payment_intent.payment_failed event arrives.
	PaymentIntentPaymentFailed PaymentIntentStatus = "payment_failed"
)

// PaymentIntentRequest is what the gateway asks the processor to create.
// Amount is in minor currency units (cents).
type PaymentIntentRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	ReceiptEmail   string            `json:"receipt_email,omitempty"`
	Description    string            `json:"description,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	IdempotencyKey string            `json:"-"`
}

// PaymentIntentRecord is the application's view of a processor owned payment intent.
//
// Storage model (DynamoDB):
//   - PK: id
//
// ClientSecret is only populated on creation and is never persisted.
type PaymentIntentRecord struct {
	ID           string              `json:"id"`
	ClientSecret string              `json:"-"`
	Amount       int64               `json:"amount"`
	Currency     string              `json:"currency"`
	Status       PaymentIntentStatus `json:"status"`
	ReceiptEmail string              `json:"receipt_email,omitempty"`
	Description  string              `json:"description,omitempty"`
	Metadata     map[string]string   `json:"metadata,omitempty"`
	LastError    string              `json:"last_error,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// PaymentEventType names the webhook events the gateway reacts to.
type PaymentEventType string

const (
	EventPaymentIntentSucceeded     PaymentEventType = "payment_intent.succeeded"
	EventPaymentIntentPaymentFailed PaymentEventType = "payment_intent.payment_failed"
	EventPaymentIntentCanceled      PaymentEventType = "payment_intent.canceled"
)

// PaymentEvent is a verified webhook notification.
type PaymentEvent struct {
	ID      string
	Type    PaymentEventType
	Created time.Time
	Intent  PaymentIntentRecord
}

// ProcessedEvent marks a webhook event id as handled.
//
// Storage model (DynamoDB):
//   - PK: event_id
type ProcessedEvent struct {
	EventID     string
	Type        PaymentEventType
	ProcessedAt time.Time
}
