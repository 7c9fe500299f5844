// service/interest.go
package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var errBadCompounding = errors.New("compounding must be daily, monthly, or annually")

// CalculateInterest is the pure simple-interest formula:
//
//	interest = principal * (rate/100) * (days / periodDivisor)
//
// where the divisor is 365 for daily and annually, 30 for monthly.
// No side effects; rounding to centavos happens here and nowhere else.
func CalculateInterest(principal, rate decimal.Decimal, days int, compounding string) (interest, total decimal.Decimal, err error) {
	if principal.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("principal must not be negative")
	}
	if rate.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("rate must not be negative")
	}
	if days < 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("days must not be negative")
	}

	var divisor int64
	switch compounding {
	case "daily", "annually":
		divisor = 365
	case "monthly":
		divisor = 30
	default:
		return decimal.Zero, decimal.Zero, errBadCompounding
	}

	interest = principal.
		Mul(rate).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(100 * divisor)).
		Round(2)
	total = principal.Add(interest)
	return interest, total, nil
}
