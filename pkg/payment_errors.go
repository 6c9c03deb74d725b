package pkg

import (
	"errors"
	"fmt"
)

// MinimumChargeMinorUnits is the smallest amount the processor accepts ($0.50 equivalent).
const MinimumChargeMinorUnits int64 = 50

var (
	// ErrInvalidAmount blocks payment intent creation before any network call.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrSignatureVerification rejects a webhook whose signature does not match the configured secret.
	ErrSignatureVerification = errors.New("webhook signature verification failed")
	// ErrUpstreamPayment is matched by every *UpstreamPaymentError.
	ErrUpstreamPayment = errors.New("upstream payment error")
	// ErrNetwork is matched by every *NetworkError.
	ErrNetwork = errors.New("network error")
	// ErrCardNotReady means the card input has not finished initializing.
	ErrCardNotReady = errors.New("card input not ready")
)

// UpstreamPaymentError is a processor side rejection (card declined, invalid request...).
// Message is the processor's own text and is shown to the customer unmodified.
type UpstreamPaymentError struct {
	Message    string
	Code       string
	Type       string
	HTTPStatus int
}

func (e *UpstreamPaymentError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment processor rejected request (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("payment processor rejected request: %s", e.Message)
}

func (e *UpstreamPaymentError) Is(target error) bool {
	return target == ErrUpstreamPayment
}

// NetworkError means a request to the gateway or relay did not complete.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// UserMessage returns the text to show a customer for a payment failure.
// Processor messages pass through verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var upstream *UpstreamPaymentError
	if errors.As(err, &upstream) && upstream.Message != "" {
		return upstream.Message
	}
	if errors.Is(err, ErrInvalidAmount) {
		return "Invalid amount"
	}
	if errors.Is(err, ErrCardNotReady) {
		return "Payment system not ready. Please try again."
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Payment failed. Please try again."
	}
	return err.Error()
}
