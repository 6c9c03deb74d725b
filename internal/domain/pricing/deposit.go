package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/pkg"
)

var ErrInvalidPolicy = errors.New("discount and deposit rates must be in (0, 1)")

// ErrAmountOutOfRange matches pkg.ErrInvalidAmount so callers report it as an invalid amount.
var ErrAmountOutOfRange = fmt.Errorf("amount does not fit in minor units: %w", pkg.ErrInvalidAmount)

// DepositPolicy holds the promotional discount and the share of the discounted total taken up front.
type DepositPolicy struct {
	DiscountRate decimal.Decimal
	DepositRate  decimal.Decimal
}

// DefaultDepositPolicy is a 5% online discount with a 50% deposit.
var DefaultDepositPolicy = DepositPolicy{
	DiscountRate: decimal.RequireFromString("0.05"),
	DepositRate:  decimal.RequireFromString("0.5"),
}

// NewDepositPolicy builds a policy from configured rates.
func NewDepositPolicy(discountRate, depositRate float64) (DepositPolicy, error) {
	p := DepositPolicy{
		DiscountRate: decimal.NewFromFloat(discountRate),
		DepositRate:  decimal.NewFromFloat(depositRate),
	}
	if err := p.Validate(); err != nil {
		return DepositPolicy{}, err
	}
	return p, nil
}

func (p DepositPolicy) Validate() error {
	one := decimal.NewFromInt(1)
	if !p.DiscountRate.IsPositive() || p.DiscountRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("discount rate %s: %w", p.DiscountRate, ErrInvalidPolicy)
	}
	if !p.DepositRate.IsPositive() || p.DepositRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("deposit rate %s: %w", p.DepositRate, ErrInvalidPolicy)
	}
	return nil
}

// ComputeDeposit prices the deposit for an estimate.
func (p DepositPolicy) ComputeDeposit(estimate entities.EstimateBreakdown) entities.DepositQuote {
	return p.Apply(estimate.TotalEstimate)
}

// Apply discounts the total and takes the deposit share of the result.
// The deposit is always derived from the discounted total, never the undiscounted one.
func (p DepositPolicy) Apply(total decimal.Decimal) entities.DepositQuote {
	discount := total.Mul(p.DiscountRate)
	discounted := total.Sub(discount)
	return entities.DepositQuote{
		DiscountRate:    p.DiscountRate,
		DepositRate:     p.DepositRate,
		DiscountAmount:  discount,
		DiscountedTotal: discounted,
		DepositAmount:   discounted.Mul(p.DepositRate),
	}
}

// ComputeDeposit uses DefaultDepositPolicy.
func ComputeDeposit(estimate entities.EstimateBreakdown) entities.DepositQuote {
	return DefaultDepositPolicy.ComputeDeposit(estimate)
}

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ToMinorUnits converts a major-unit amount to cents, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(hundred).Round(0)
	if cents.GreaterThan(maxMinor) || cents.LessThan(minMinor) {
		return 0, fmt.Errorf("%s: %w", FormatAmount(amount), ErrAmountOutOfRange)
	}
	return cents.IntPart(), nil
}

// FromMinorUnits converts cents back to a major-unit amount.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// FormatAmount renders an amount with exactly two decimals for display.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
