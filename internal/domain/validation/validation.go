// Package validation checks quote and booking forms field by field.
// Errors are keyed by form field and never leave the quote session.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"greenpro_billing/internal/domain/entities"
)

const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"
	FieldDate  = "date"
	FieldTime  = "time"
	FieldArea  = "area"
)

// MessageAreaTooLarge is reported when the priced deposit cannot be charged.
const MessageAreaTooLarge = "Area is too large to price"

// DefaultRegion is used to interpret phone numbers typed without a country code.
const DefaultRegion = "CA"

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// Errors maps a form field to its message. An empty Errors means the form is valid.
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	fields := e.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the invalid field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Err returns nil for a valid form so callers can use the usual err != nil check.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateQuote checks the contact fields of a quote form.
func ValidateQuote(q entities.QuoteRequest) Errors {
	errs := Errors{}
	validateContact(errs, q.Name, q.Phone, q.Email)
	return errs
}

// ValidateBooking checks the contact fields plus the appointment date and time.
// A date earlier than today (in now's location) is rejected.
func ValidateBooking(b entities.BookingRequest, now time.Time) Errors {
	errs := Errors{}
	validateContact(errs, b.Name, b.Phone, b.Email)

	if b.Date.IsZero() {
		errs[FieldDate] = "Date is required"
	} else if dateOnly(b.Date.In(now.Location())).Before(dateOnly(now)) {
		errs[FieldDate] = "Date cannot be in the past"
	}

	slot := strings.TrimSpace(b.Time)
	switch {
	case slot == "":
		errs[FieldTime] = "Time is required"
	case !isBookingSlot(slot):
		errs[FieldTime] = "Please choose one of the available time slots"
	}
	return errs
}

// RequireContact is the gate for payments and unpaid confirmations: the business must be
// able to reach the customer.
func RequireContact(name, email string) Errors {
	errs := Errors{}
	if strings.TrimSpace(name) == "" {
		errs[FieldName] = "Name is required"
	}
	if strings.TrimSpace(email) == "" {
		errs[FieldEmail] = "Email is required"
	}
	return errs
}

// NormalizePhone formats a valid number as E.164. Input that cannot be parsed is
// returned with only its digits.
func NormalizePhone(raw string) string {
	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return nonDigit.ReplaceAllString(raw, "")
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

func validateContact(errs Errors, name, phone, email string) {
	if strings.TrimSpace(name) == "" {
		errs[FieldName] = "Name is required"
	}

	if strings.TrimSpace(phone) == "" {
		errs[FieldPhone] = "Phone number is required"
	} else if len(nonDigit.ReplaceAllString(phone, "")) != 10 {
		errs[FieldPhone] = "Please enter a valid 10-digit phone number"
	}

	if strings.TrimSpace(email) == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}
}

func isBookingSlot(slot string) bool {
	for _, s := range entities.BookingSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
