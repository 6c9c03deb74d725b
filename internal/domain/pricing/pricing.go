// Package pricing turns quote form input into an estimate and a deposit.
// Amounts stay unrounded decimals until they are formatted or converted to minor units.
package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"greenpro_billing/internal/domain/entities"
)

// RoomFee is charged per room on top of the service's base and area price.
var RoomFee = decimal.NewFromInt(50)

var (
	leadingNumber  = regexp.MustCompile(`^([+-]?)((\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?)`)
	leadingInteger = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseArea reads the leading decimal number of a free-text area field ("1200 sq ft" is 1200).
// Blank, non-numeric, negative and out of float64 range input contribute zero.
func ParseArea(raw string) decimal.Decimal {
	m := leadingNumber.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return decimal.Zero
	}
	if _, err := strconv.ParseFloat(m[2], 64); err != nil {
		return decimal.Zero
	}
	area, err := decimal.NewFromString(m[2])
	if err != nil || (m[1] == "-" && !area.IsZero()) {
		return decimal.Zero
	}
	return area
}

// ParseRooms reads the leading integer of a free-text room count ("3.7" is 3).
// Blank, non-numeric and negative input contribute zero.
func ParseRooms(raw string) int64 {
	m := leadingInteger.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ComputeEstimate prices a service. Unknown services fall back to entities.DefaultServiceEntry.
func ComputeEstimate(service entities.ServiceName, area decimal.Decimal, rooms int64) entities.EstimateBreakdown {
	entry, ok := entities.LookupService(service)
	if !ok {
		entry = entities.DefaultServiceEntry
	}
	if area.IsNegative() {
		area = decimal.Zero
	}
	if rooms < 0 {
		rooms = 0
	}

	areaCost := area.Mul(entry.RatePerArea)
	roomFee := RoomFee.Mul(decimal.NewFromInt(rooms))

	return entities.EstimateBreakdown{
		Service:       service,
		BasePrice:     entry.BasePrice,
		AreaCost:      areaCost,
		RoomFee:       roomFee,
		RatePerArea:   entry.RatePerArea,
		TotalEstimate: entry.BasePrice.Add(areaCost).Add(roomFee),
	}
}

// EstimateFromQuote parses the form's area and room fields and prices the selected service.
func EstimateFromQuote(q entities.QuoteRequest) entities.EstimateBreakdown {
	return ComputeEstimate(q.Service, ParseArea(q.Area), ParseRooms(q.Rooms))
}
