package session

import (
	"errors"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/validation"
)

type State string

const (
	StateIdle              State = "idle"
	StateEstimateDisplayed State = "estimate_displayed"
	StatePaymentInProgress State = "payment_in_progress"
	StatePaymentSucceeded  State = "payment_succeeded"
	StatePaymentFailed     State = "payment_failed"
)

type BookingState string

const (
	BookingIdle       BookingState = "booking_idle"
	BookingSubmitting BookingState = "booking_submitting"
	BookingSubmitted  BookingState = "booking_submitted"
	BookingFailed     BookingState = "booking_failed"
)

const (
	MessageDepositPaid     = "Deposit paid successfully! You have received a 5% discount. We will contact you shortly to schedule."
	MessageQuoteSubmitted  = "Quote request submitted successfully! We will contact you soon."
	MessageBookingReceived = "Booking request submitted successfully! We will contact you to confirm."
	MessageNotReady        = "Payment system not ready. Please try again."
	MessageNoClientSecret  = "No client secret received from server"
)

var (
	ErrPaymentInProgress = errors.New("a deposit payment is already in progress")
	ErrBookingInProgress = errors.New("a booking is already being submitted")
	ErrNoEstimate        = errors.New("no estimate to act on")
	ErrInvalidTransition = errors.New("action not allowed in the current state")
	ErrPaymentFailed     = errors.New("deposit payment failed")
	// ErrSessionReset is returned when the session was reset or the payment canceled
	// while a call was outstanding; the late result is discarded.
	ErrSessionReset = errors.New("session was reset while the request was in flight")
)

// View is a copy of the session state for rendering.
type View struct {
	State       State
	Quote       entities.QuoteRequest
	FieldErrors validation.Errors
	Estimate    *entities.EstimateBreakdown
	Deposit     *entities.DepositQuote
	Receipt     *entities.PaymentReceipt
	LastError   string
	Message     string

	BookingState       BookingState
	Booking            entities.BookingRequest
	BookingFieldErrors validation.Errors
	BookingMessage     string
}

// CanPay reports whether a deposit payment may be started.
func (v View) CanPay() bool {
	return v.Estimate != nil && (v.State == StateEstimateDisplayed || v.State == StatePaymentFailed)
}

func submissionFailedMessage(form entities.FormType) string {
	return "There was an error submitting your " + string(form) + ". Please try again or contact us directly."
}
