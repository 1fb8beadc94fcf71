package calculation

import "github.com/shopspring/decimal"

var (
	zero     = decimal.Zero
	half     = decimal.NewFromFloat(0.5)
	one      = decimal.NewFromInt(1)
	twelve   = decimal.NewFromInt(12)
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// roundHalfUp rounds toward +Inf on ties, so -2.5 becomes -2 and 2.5 becomes 3.
// decimal.Round rounds ties away from zero, which would bias negative deltas.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

func clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Max(lo, decimal.Min(hi, d))
}

// percentOf returns part/whole*100; whole must be non-zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	return part.Div(whole).Mul(hundred)
}
