package calculation

import (
	"fmt"

	"github.com/sehha/chicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SweepSubLimit evaluates a sub-limit at evenly spaced limits from its minimum
// to its maximum (inclusive), holding the copayment at newCopaymentPercent.
func SweepSubLimit(subLimit domain.SubLimit, newCopaymentPercent decimal.Decimal, steps, memberCount int, basePremiumSAR decimal.Decimal) ([]domain.SubLimitImpact, error) {
	if steps < 2 {
		return nil, &ValidationError{Field: "steps", Value: fmt.Sprintf("%d", steps), Reason: "must be at least 2"}
	}
	if subLimit.MaxLimitSAR.LessThan(subLimit.MinLimitSAR) {
		return nil, &ValidationError{Field: "limit range", Reason: "maximum is below minimum"}
	}

	span := subLimit.MaxLimitSAR.Sub(subLimit.MinLimitSAR)
	intervals := decimal.NewFromInt(int64(steps - 1))

	results := make([]domain.SubLimitImpact, 0, steps)
	for i := 0; i < steps; i++ {
		limit := subLimit.MinLimitSAR.Add(span.Mul(decimal.NewFromInt(int64(i))).Div(intervals))
		if i == steps-1 {
			limit = subLimit.MaxLimitSAR
		}
		impact, err := CalculateSubLimitImpact(domain.SubLimitChange{
			SubLimit:            subLimit,
			NewLimitSAR:         roundHalfUp(limit, 0),
			NewCopaymentPercent: newCopaymentPercent,
		}, memberCount, basePremiumSAR)
		if err != nil {
			return nil, fmt.Errorf("sweep step %d: %w", i, err)
		}
		results = append(results, impact)
	}
	return results, nil
}
