// Package session drives one customer's quote, deposit and booking flow.
//
// Quote flow:
//
//	idle -> estimate_displayed -> payment_in_progress -> payment_succeeded | payment_failed
//
// A failed payment may be retried without recomputing the estimate. Reset returns to idle
// from any state. The booking form runs its own independent sub-machine.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/internal/domain/validation"
	"greenpro_billing/pkg"
)

var ErrConfirmInProgress = errors.New("quote confirmation already in progress")

type Option func(*Session)

func WithDepositPolicy(p pricing.DepositPolicy) Option {
	return func(s *Session) { s.policy = p }
}

func WithCurrency(currency string) Option {
	return func(s *Session) { s.currency = strings.ToLower(strings.TrimSpace(currency)) }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithIdempotencyKeys replaces the generator for payment intent idempotency keys.
func WithIdempotencyKeys(next func() string) Option {
	return func(s *Session) { s.newKey = next }
}

type Session struct {
	gateway   PaymentIntentRequester
	confirmer ChargeConfirmer
	relay     LeadRelay
	counter   EstimateCounter

	policy   pricing.DepositPolicy
	currency string
	now      func() time.Time
	logger   *zap.Logger
	newKey   func() string

	background sync.WaitGroup

	mu          sync.Mutex
	generation  uint64
	state       State
	quote       entities.QuoteRequest
	fieldErrors validation.Errors
	estimate    *entities.EstimateBreakdown
	deposit     *entities.DepositQuote
	receipt     *entities.PaymentReceipt
	lastError   string
	message     string
	paying      bool
	confirming  bool

	bookingState  BookingState
	booking       entities.BookingRequest
	bookingErrors validation.Errors
	bookingMsg    string
}

// New builds an idle session. A nil counter falls back to an in-memory one.
func New(gateway PaymentIntentRequester, confirmer ChargeConfirmer, relay LeadRelay, counter EstimateCounter, opts ...Option) *Session {
	if counter == nil {
		counter = NewMemoryCounter()
	}
	s := &Session{
		gateway:      gateway,
		confirmer:    confirmer,
		relay:        relay,
		counter:      counter,
		policy:       pricing.DefaultDepositPolicy,
		currency:     "cad",
		now:          time.Now,
		logger:       zap.NewNop(),
		newKey:       uuid.NewString,
		state:        StateIdle,
		quote:        entities.NewQuoteRequest(),
		bookingState: BookingIdle,
		booking:      entities.NewBookingRequest(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetQuote replaces the quote form contents.
func (s *Session) SetQuote(q entities.QuoteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paying {
		return ErrPaymentInProgress
	}
	s.quote = q
	return nil
}

// SubmitQuoteForm validates the form, prices it and shows the estimate. The lead for the
// estimate is sent in the background; its failure never affects the session.
func (s *Session) SubmitQuoteForm(ctx context.Context) (entities.EstimateBreakdown, error) {
	s.mu.Lock()
	if s.paying {
		s.mu.Unlock()
		return entities.EstimateBreakdown{}, ErrPaymentInProgress
	}
	if s.state == StatePaymentSucceeded {
		s.mu.Unlock()
		return entities.EstimateBreakdown{}, ErrInvalidTransition
	}
	if errs := validation.ValidateQuote(s.quote); len(errs) > 0 {
		s.fieldErrors = errs
		s.mu.Unlock()
		return entities.EstimateBreakdown{}, errs
	}

	estimate := pricing.EstimateFromQuote(s.quote)
	deposit := s.policy.ComputeDeposit(estimate)
	if _, err := pricing.ToMinorUnits(deposit.DepositAmount); err != nil {
		errs := validation.Errors{validation.FieldArea: validation.MessageAreaTooLarge}
		s.fieldErrors = errs
		s.mu.Unlock()
		return entities.EstimateBreakdown{}, errs
	}
	s.fieldErrors = nil
	s.estimate = &estimate
	s.deposit = &deposit
	s.state = StateEstimateDisplayed
	s.lastError = ""
	s.message = ""
	lead := entities.LeadFromQuote(s.quote, &estimate, &deposit, nil)
	s.mu.Unlock()

	s.logger.Info("[session] estimate computed",
		zap.String("service", string(estimate.Service)),
		zap.String("total", pricing.FormatAmount(estimate.TotalEstimate)),
		zap.String("deposit", pricing.FormatAmount(deposit.DepositAmount)))

	s.submitLeadAsync(ctx, lead, true)
	return estimate, nil
}

// RequestDeposit creates a payment intent for the deposit and confirms it with the given card.
// Only one payment may be outstanding; a second call while one is in flight creates nothing.
func (s *Session) RequestDeposit(ctx context.Context, card entities.CardCapability) (entities.PaymentOutcome, error) {
	s.mu.Lock()
	if s.paying {
		s.mu.Unlock()
		return entities.PaymentOutcome{}, ErrPaymentInProgress
	}
	if s.estimate == nil || (s.state != StateEstimateDisplayed && s.state != StatePaymentFailed) {
		s.mu.Unlock()
		return entities.PaymentOutcome{}, ErrNoEstimate
	}
	if errs := validation.RequireContact(s.quote.Name, s.quote.Email); len(errs) > 0 {
		s.fieldErrors = errs
		s.mu.Unlock()
		return entities.PaymentOutcome{}, errs
	}
	if card == nil || !card.Ready() {
		s.lastError = MessageNotReady
		s.mu.Unlock()
		return entities.PaymentOutcome{Message: MessageNotReady}, pkg.ErrCardNotReady
	}

	s.paying = true
	s.state = StatePaymentInProgress
	s.lastError = ""
	gen := s.generation
	quote := s.quote
	estimate := *s.estimate
	deposit := *s.deposit
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.paying = false
		s.mu.Unlock()
	}()

	amount, err := pricing.ToMinorUnits(deposit.DepositAmount)
	if err != nil {
		return s.failPayment(gen, pkg.UserMessage(err), err)
	}
	req := entities.PaymentIntentRequest{
		Amount:       amount,
		Currency:     s.currency,
		ReceiptEmail: strings.TrimSpace(quote.Email),
		Description:  fmt.Sprintf("Deposit for %s - %s", quote.Service, entities.CompanyName),
		Metadata: map[string]string{
			"customer_name": strings.TrimSpace(quote.Name),
			"service":       string(quote.Service),
		},
		IdempotencyKey: s.newKey(),
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, req)
	if err != nil {
		return s.failPayment(gen, pkg.UserMessage(err), err)
	}
	if intent.ClientSecret == "" {
		return s.failPayment(gen, MessageNoClientSecret, nil)
	}

	billing := entities.BillingDetails{
		Name:  strings.TrimSpace(quote.Name),
		Email: strings.TrimSpace(quote.Email),
		Phone: strings.TrimSpace(quote.Phone),
	}
	outcome, err := s.confirmer.ConfirmCharge(ctx, intent.ClientSecret, card, billing)
	if err != nil {
		return s.failPayment(gen, pkg.UserMessage(err), err)
	}
	if !outcome.Success {
		return s.failPayment(gen, outcome.Message, nil)
	}

	ref := outcome.PaymentReference
	if ref == "" {
		ref = intent.ID
	}
	receipt := entities.PaymentReceipt{PaymentIntentID: ref, AmountMinor: amount, Currency: s.currency}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Warn("[session] discarding payment result after reset", zap.String("payment_intent_id", ref))
		return outcome, ErrSessionReset
	}
	s.state = StatePaymentSucceeded
	s.receipt = &receipt
	s.message = MessageDepositPaid
	lead := entities.LeadFromQuote(quote, &estimate, &deposit, &receipt)
	s.mu.Unlock()

	s.logger.Info("[session] deposit paid", zap.String("payment_intent_id", ref), zap.Int64("amount", amount))
	s.submitLeadAsync(ctx, lead, false)
	return outcome, nil
}

func (s *Session) failPayment(gen uint64, msg string, cause error) (entities.PaymentOutcome, error) {
	if msg == "" {
		msg = "Payment failed. Please try again."
	}
	outcome := entities.PaymentOutcome{Message: msg}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return outcome, ErrSessionReset
	}
	s.state = StatePaymentFailed
	s.lastError = msg
	s.logger.Warn("[session] deposit payment failed", zap.String("message", msg), zap.Error(cause))

	if cause != nil {
		return outcome, errors.Join(ErrPaymentFailed, cause)
	}
	return outcome, ErrPaymentFailed
}

// CancelPayment abandons the payment dialog. The outstanding call is not aborted but its
// result is discarded; the estimate stays on screen.
func (s *Session) CancelPayment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaymentInProgress {
		return
	}
	s.generation++
	s.state = StateEstimateDisplayed
}

// Reset discards the estimate and payment state and clears the quote form.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.generation++
	s.state = StateIdle
	s.quote = entities.NewQuoteRequest()
	s.fieldErrors = nil
	s.estimate = nil
	s.deposit = nil
	s.receipt = nil
	s.lastError = ""
	s.message = ""
}

// ConfirmWithoutPayment sends the quote lead without a deposit and returns the session to idle.
func (s *Session) ConfirmWithoutPayment(ctx context.Context) error {
	s.mu.Lock()
	if s.paying {
		s.mu.Unlock()
		return ErrPaymentInProgress
	}
	if s.confirming {
		s.mu.Unlock()
		return ErrConfirmInProgress
	}
	if s.estimate == nil || (s.state != StateEstimateDisplayed && s.state != StatePaymentFailed) {
		s.mu.Unlock()
		return ErrNoEstimate
	}
	if errs := validation.RequireContact(s.quote.Name, s.quote.Email); len(errs) > 0 {
		s.fieldErrors = errs
		s.mu.Unlock()
		return errs
	}
	s.confirming = true
	gen := s.generation
	lead := entities.LeadFromQuote(s.quote, s.estimate, s.deposit, nil)
	s.mu.Unlock()

	err := s.submitLead(ctx, lead)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirming = false
	if gen != s.generation {
		return ErrSessionReset
	}
	if err != nil {
		s.message = submissionFailedMessage(entities.FormTypeQuote)
		return err
	}
	s.resetLocked()
	s.message = MessageQuoteSubmitted
	return nil
}

// SetBooking replaces the booking form contents.
func (s *Session) SetBooking(b entities.BookingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bookingState == BookingSubmitting {
		return ErrBookingInProgress
	}
	s.booking = b
	return nil
}

// SubmitBooking validates and relays the booking form. On success the form is cleared.
func (s *Session) SubmitBooking(ctx context.Context) error {
	s.mu.Lock()
	if s.bookingState == BookingSubmitting {
		s.mu.Unlock()
		return ErrBookingInProgress
	}
	if errs := validation.ValidateBooking(s.booking, s.now()); len(errs) > 0 {
		s.bookingErrors = errs
		s.mu.Unlock()
		return errs
	}
	s.bookingErrors = nil
	s.bookingState = BookingSubmitting
	s.bookingMsg = ""
	lead := entities.LeadFromBooking(s.booking)
	s.mu.Unlock()

	err := s.submitLead(ctx, lead)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.bookingState = BookingFailed
		s.bookingMsg = submissionFailedMessage(entities.FormTypeBooking)
		return err
	}
	s.bookingState = BookingSubmitted
	s.bookingMsg = MessageBookingReceived
	s.booking = entities.NewBookingRequest()
	return nil
}

// ResetBooking clears the booking form unless a submission is outstanding.
func (s *Session) ResetBooking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bookingState == BookingSubmitting {
		return
	}
	s.bookingState = BookingIdle
	s.booking = entities.NewBookingRequest()
	s.bookingErrors = nil
	s.bookingMsg = ""
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		State:              s.state,
		Quote:              s.quote,
		FieldErrors:        cloneErrors(s.fieldErrors),
		LastError:          s.lastError,
		Message:            s.message,
		BookingState:       s.bookingState,
		Booking:            s.booking,
		BookingFieldErrors: cloneErrors(s.bookingErrors),
		BookingMessage:     s.bookingMsg,
	}
	if s.estimate != nil {
		e := *s.estimate
		v.Estimate = &e
	}
	if s.deposit != nil {
		d := *s.deposit
		v.Deposit = &d
	}
	if s.receipt != nil {
		r := *s.receipt
		v.Receipt = &r
	}
	return v
}

// Wait blocks until background lead submissions have finished.
func (s *Session) Wait() {
	s.background.Wait()
}

func (s *Session) submitLeadAsync(ctx context.Context, lead entities.LeadSubmission, countEstimate bool) {
	ctx = context.WithoutCancel(ctx)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		if countEstimate {
			n, err := s.counter.Increment(ctx)
			if err != nil {
				s.logger.Warn("[session] estimate counter unavailable", zap.Error(err))
			} else {
				lead.EstimateCount = n
			}
		}
		if err := s.submitLead(ctx, lead); err != nil {
			s.logger.Warn("[session] lead submission failed",
				zap.String("form_type", string(lead.FormType)), zap.Error(err))
		}
	}()
}

func (s *Session) submitLead(ctx context.Context, lead entities.LeadSubmission) error {
	lead.Phone = validation.NormalizePhone(lead.Phone)
	lead.SubmittedAt = s.now().UTC()
	return s.relay.Submit(ctx, lead)
}

func cloneErrors(in validation.Errors) validation.Errors {
	if len(in) == 0 {
		return nil
	}
	out := make(validation.Errors, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
