package entities

import "github.com/shopspring/decimal"

// QuoteRequest mirrors the quote form. Area and Rooms hold the raw form text;
// they are parsed leniently when the estimate is computed.
type QuoteRequest struct {
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	Service     ServiceName `json:"service"`
	Area        string      `json:"area,omitempty"`
	Rooms       string      `json:"rooms,omitempty"`
	Description string      `json:"description,omitempty"`
}

// NewQuoteRequest returns the empty form with the default service selected.
func NewQuoteRequest() QuoteRequest {
	return QuoteRequest{Service: DefaultService}
}

// HasContact reports whether the customer can be reached (name and email present).
func (q QuoteRequest) HasContact() bool {
	return trimmed(q.Name) != "" && trimmed(q.Email) != ""
}

// EstimateBreakdown is the computed price of a quote.
//
// Invariant: TotalEstimate = BasePrice + AreaCost + RoomFee, with no intermediate rounding.
type EstimateBreakdown struct {
	Service       ServiceName     `json:"service"`
	BasePrice     decimal.Decimal `json:"base_price"`
	AreaCost      decimal.Decimal `json:"area_cost"`
	RoomFee       decimal.Decimal `json:"room_fee"`
	RatePerArea   decimal.Decimal `json:"rate_per_area"`
	TotalEstimate decimal.Decimal `json:"total_estimate"`
}

// DepositQuote is the discounted total and the up-front deposit derived from an estimate.
type DepositQuote struct {
	DiscountRate    decimal.Decimal `json:"discount_rate"`
	DepositRate     decimal.Decimal `json:"deposit_rate"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountedTotal decimal.Decimal `json:"discounted_total"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
}
