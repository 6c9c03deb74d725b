package entities

// CardCapability is the opaque, already tokenized card input handed over by the client SDK.
// The application never sees raw card data; it only forwards the token to the processor.
type CardCapability interface {
	// Ready reports whether the card input finished initializing.
	Ready() bool
	// PaymentMethod returns the processor token for the entered card.
	PaymentMethod() string
}

// BillingDetails are the contact details attached to a charge.
type BillingDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// PaymentOutcome is the result of confirming a charge on the customer's side.
type PaymentOutcome struct {
	Success          bool   `json:"success"`
	PaymentReference string `json:"payment_reference,omitempty"`
	Message          string `json:"message,omitempty"`
}

// PaymentReceipt records a deposit that was actually charged during a session.
type PaymentReceipt struct {
	PaymentIntentID string `json:"payment_intent_id"`
	AmountMinor     int64  `json:"amount_minor"`
	Currency        string `json:"currency"`
}
