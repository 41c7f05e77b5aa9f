package promotions

import (
	"github.com/shopspring/decimal"
)

// ApplyPercent discounts a base price by a percentage, rounding down to the
// nearest whole unit.
func ApplyPercent(base int64, percent int64) int64 {
	discounted := decimal.NewFromInt(base).
		Mul(decimal.NewFromInt(100 - percent)).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart()
	return clamp(discounted, base)
}

// ApplyFixed subtracts a fixed amount from a base price, flooring at zero.
func ApplyFixed(base int64, amount int64) int64 {
	return clamp(base-amount, base)
}

func clamp(price, base int64) int64 {
	if price < 0 {
		return 0
	}
	if price > base {
		return base
	}
	return price
}
