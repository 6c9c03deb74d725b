package entities

import (
	"strings"
	"time"
)

// BookingSlots are the hourly appointment start times offered on the booking form.
var BookingSlots = []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}

// BookingRequest mirrors the online booking form. A zero Date means no date was picked.
type BookingRequest struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Email   string      `json:"email"`
	Service ServiceName `json:"service"`
	Date    time.Time   `json:"date"`
	Time    string      `json:"time"`
}

func NewBookingRequest() BookingRequest {
	return BookingRequest{Service: DefaultService}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
