package entities

import (
	"fmt"
	"time"
)

// FormType tells the lead relay which form produced a submission.
type FormType string

const (
	FormTypeQuote   FormType = "quote"
	FormTypeBooking FormType = "booking"
)

// CompanyName is used in relay subjects and payment descriptions.
const CompanyName = "Greenpro Environmental Ltd."

// LeadSubmission is the write-once record sent to the lead relay. Estimate, Deposit and
// Payment are optional; a quote confirmed without payment carries no Payment.
type LeadSubmission struct {
	FormType      FormType           `json:"form_type"`
	Name          string             `json:"name"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	Service       ServiceName        `json:"service"`
	Area          string             `json:"area,omitempty"`
	Rooms         string             `json:"rooms,omitempty"`
	Description   string             `json:"description,omitempty"`
	Date          time.Time          `json:"date,omitempty"`
	Time          string             `json:"time,omitempty"`
	Estimate      *EstimateBreakdown `json:"estimate,omitempty"`
	Deposit       *DepositQuote      `json:"deposit,omitempty"`
	Payment       *PaymentReceipt    `json:"payment,omitempty"`
	EstimateCount int64              `json:"estimate_count,omitempty"`
	SubmittedAt   time.Time          `json:"submitted_at"`
}

// Subject is the relay e-mail subject line.
func (l LeadSubmission) Subject() string {
	return fmt.Sprintf("%s - %s - %s", l.FormType, l.Service, CompanyName)
}

// LeadFromQuote builds the relay record for a quote form.
func LeadFromQuote(q QuoteRequest, estimate *EstimateBreakdown, deposit *DepositQuote, payment *PaymentReceipt) LeadSubmission {
	return LeadSubmission{
		FormType:    FormTypeQuote,
		Name:        trimmed(q.Name),
		Phone:       trimmed(q.Phone),
		Email:       trimmed(q.Email),
		Service:     q.Service,
		Area:        trimmed(q.Area),
		Rooms:       trimmed(q.Rooms),
		Description: trimmed(q.Description),
		Estimate:    estimate,
		Deposit:     deposit,
		Payment:     payment,
	}
}

// LeadFromBooking builds the relay record for a booking form.
func LeadFromBooking(b BookingRequest) LeadSubmission {
	return LeadSubmission{
		FormType: FormTypeBooking,
		Name:     trimmed(b.Name),
		Phone:    trimmed(b.Phone),
		Email:    trimmed(b.Email),
		Service:  b.Service,
		Date:     b.Date,
		Time:     trimmed(b.Time),
	}
}
