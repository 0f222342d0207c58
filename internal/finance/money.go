// Package finance holds the fixed-precision money kernel and the pure
// calculation functions behind distributions and analytics. Nothing in this
// package performs I/O or returns errors: every division-by-zero and
// empty-input case has a defined neutral result.
package finance

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places, half up (half away from zero).
// It is applied only at the presentation boundary of each public function;
// intermediate sums are never rounded early.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum adds values without intermediate rounding.
func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Pct returns part/whole*100, or zero when whole is zero.
func Pct(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
