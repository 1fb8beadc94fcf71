package calculation

import (
	"errors"
	"testing"

	"github.com/sehha/chicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dentalSubLimit() domain.SubLimit {
	return domain.SubLimit{
		ID:               "dental",
		Name:             domain.LocalizedText{Ar: "علاج الأسنان", En: "Dental treatment"},
		Category:         domain.CategoryDental,
		CurrentLimitSAR:  dec("2000"),
		MinLimitSAR:      dec("500"),
		MaxLimitSAR:      dec("5000"),
		CopaymentPercent: dec("20"),
		MaxCopaymentSAR:  dec("100"),
		UtilizationRate:  dec("35"),
		AvgClaimSAR:      dec("850"),
	}
}

func opticalSubLimit() domain.SubLimit {
	return domain.SubLimit{
		ID:               "optical",
		Category:         domain.CategoryOther,
		CurrentLimitSAR:  dec("400"),
		MinLimitSAR:      dec("200"),
		MaxLimitSAR:      dec("1500"),
		CopaymentPercent: dec("0"),
		UtilizationRate:  dec("15"),
		AvgClaimSAR:      dec("350"),
	}
}

func change(sl domain.SubLimit, limit, copay string) domain.SubLimitChange {
	return domain.SubLimitChange{SubLimit: sl, NewLimitSAR: dec(limit), NewCopaymentPercent: dec(copay)}
}

func TestCalculateSubLimitImpact_NoChangeIsNeutral(t *testing.T) {
	impact, err := CalculateSubLimitImpact(dentalSubLimit().Unchanged(), 1000, dec("5000"))
	require.NoError(t, err)

	assert.True(t, impact.CostChangePerThousand.IsZero())
	assert.True(t, impact.PremiumImpactSAR.IsZero())
	assert.True(t, impact.AnnualImpactSAR.IsZero())
	assert.Equal(t, domain.DirectionNeutral, impact.Direction)
	assertDecimal(t, "238000", impact.CurrentCostPerThousand, "current cost")
	assert.True(t, impact.CurrentCostPerThousand.Equal(impact.NewCostPerThousand))
}

func TestCalculateSubLimitImpact_LimitIncrease(t *testing.T) {
	impact, err := CalculateSubLimitImpact(change(dentalSubLimit(), "4000", "20"), 1000, dec("5000"))
	require.NoError(t, err)

	assert.Equal(t, "dental", impact.SubLimitID)
	assert.Equal(t, "Dental treatment", impact.Name.En)
	assertDecimal(t, "0.35", impact.CurrentUtilization, "current utilization")
	assertDecimal(t, "0.4025", impact.NewUtilization, "new utilization")
	assertDecimal(t, "850", impact.CurrentEffectiveClaim, "current claim")
	assertDecimal(t, "892.5", impact.NewEffectiveClaim, "new claim")
	assertDecimal(t, "238000", impact.CurrentCostPerThousand, "current cost")
	assertDecimal(t, "287385", impact.NewCostPerThousand, "new cost")
	assertDecimal(t, "49385", impact.CostChangePerThousand, "cost change")
	assertDecimal(t, "60.84", impact.PremiumImpactSAR, "premium impact")
	assertDecimal(t, "1.22", impact.PremiumImpactPercent, "premium percent")
	assertDecimal(t, "60842", impact.AnnualImpactSAR, "annual impact")
	assert.Equal(t, domain.DirectionIncrease, impact.Direction)
}

func TestCalculateSubLimitImpact_ClaimCappedAtNewLimit(t *testing.T) {
	impact, err := CalculateSubLimitImpact(change(dentalSubLimit(), "500", "20"), 1000, dec("5000"))
	require.NoError(t, err)

	assertDecimal(t, "500", impact.NewEffectiveClaim, "new claim")
	assertDecimal(t, "0.3106", impact.NewUtilization, "new utilization")
	assertDecimal(t, "-113750", impact.CostChangePerThousand, "cost change")
	assertDecimal(t, "-140.14", impact.PremiumImpactSAR, "premium impact")
	assertDecimal(t, "-2.8", impact.PremiumImpactPercent, "premium percent")
	assert.Equal(t, domain.DirectionDecrease, impact.Direction)
}

func TestCalculateSubLimitImpact_UtilizationClampedToOne(t *testing.T) {
	sl := dentalSubLimit()
	sl.UtilizationRate = dec("90")
	sl.CopaymentPercent = dec("50")

	impact, err := CalculateSubLimitImpact(change(sl, "2000", "0"), 1000, dec("5000"))
	require.NoError(t, err)

	assertDecimal(t, "1", impact.NewUtilization, "new utilization")
	assertDecimal(t, "850000", impact.NewCostPerThousand, "new cost")
	assertDecimal(t, "575.96", impact.PremiumImpactSAR, "premium impact")
}

func TestCalculateSubLimitImpact_UtilizationClampedToZero(t *testing.T) {
	sl := dentalSubLimit()
	sl.CopaymentPercent = dec("0")

	// a 100-point copayment rise drives the multiplier well below zero
	impact, err := CalculateSubLimitImpact(change(sl, "2000", "100"), 1000, dec("5000"))
	require.NoError(t, err)

	assert.True(t, impact.NewUtilization.IsZero())
	assert.True(t, impact.NewCostPerThousand.IsZero())
	assert.Equal(t, domain.DirectionDecrease, impact.Direction)
}

func TestCalculateSubLimitImpact_CopayDecrease(t *testing.T) {
	impact, err := CalculateSubLimitImpact(change(dentalSubLimit(), "2000", "10"), 1000, dec("5000"))
	require.NoError(t, err)

	assertDecimal(t, "0.4375", impact.NewUtilization, "new utilization")
	assertDecimal(t, "119.12", impact.PremiumImpactSAR, "premium impact")
	assertDecimal(t, "119119", impact.AnnualImpactSAR, "annual impact")
}

func TestCalculateSubLimitImpact_MonotoneInLimit(t *testing.T) {
	sl := dentalSubLimit()
	limits := []string{"500", "1000", "2000", "3000", "4000", "5000"}

	var previous *domain.SubLimitImpact
	for _, limit := range limits {
		impact, err := CalculateSubLimitImpact(change(sl, limit, "20"), 1000, dec("5000"))
		require.NoError(t, err)
		if previous != nil {
			assert.True(t, impact.PremiumImpactSAR.GreaterThanOrEqual(previous.PremiumImpactSAR),
				"premium at %s should not fall below premium at %s", limit, previous.NewLimitSAR)
		}
		previous = &impact
	}
}

func TestCalculateSubLimitImpact_ZeroNewLimit(t *testing.T) {
	impact, err := CalculateSubLimitImpact(change(dentalSubLimit(), "0", "20"), 1000, dec("5000"))
	require.NoError(t, err)

	assert.True(t, impact.NewEffectiveClaim.IsZero())
	assert.True(t, impact.NewCostPerThousand.IsZero())
}

func TestCalculateSubLimitImpact_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		change domain.SubLimitChange
		field  string
	}{
		{"negative new limit", change(dentalSubLimit(), "-1", "20"), "new limit"},
		{"copay above 100", change(dentalSubLimit(), "2000", "101"), "new copayment percent"},
		{"negative copay", change(dentalSubLimit(), "2000", "-5"), "new copayment percent"},
		{"zero current limit", func() domain.SubLimitChange {
			sl := dentalSubLimit()
			sl.CurrentLimitSAR = dec("0")
			return change(sl, "2000", "20")
		}(), "current limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateSubLimitImpact(tt.change, 1000, dec("5000"))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestImpactDirection_Boundaries(t *testing.T) {
	tests := []struct {
		delta string
		want  domain.Direction
	}{
		{"5.00", domain.DirectionNeutral},
		{"5.01", domain.DirectionIncrease},
		{"-5.00", domain.DirectionNeutral},
		{"-5.01", domain.DirectionDecrease},
		{"0", domain.DirectionNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.delta, func(t *testing.T) {
			assert.Equal(t, tt.want, ImpactDirection(dec(tt.delta)))
		})
	}
}

func TestCalculatePortfolioImpact_SumsIndependentImpacts(t *testing.T) {
	changes := []domain.SubLimitChange{
		change(dentalSubLimit(), "4000", "20"),
		change(opticalSubLimit(), "1500", "0"),
	}

	portfolio, err := CalculatePortfolioImpact(changes, 1000, dec("5000"))
	require.NoError(t, err)
	require.Len(t, portfolio.Impacts, 2)

	assertDecimal(t, "60.84", portfolio.Impacts[0].PremiumImpactSAR, "dental")
	assertDecimal(t, "39.24", portfolio.Impacts[1].PremiumImpactSAR, "optical")
	assertDecimal(t, "100.08", portfolio.TotalPremiumImpactSAR, "total premium")
	assertDecimal(t, "81238", portfolio.TotalCostChangePerThousand, "total cost change")
	assertDecimal(t, "2", portfolio.TotalPremiumImpactPercent, "total percent")
	assertDecimal(t, "5100.08", portfolio.NewPremiumPerMember, "new premium")
	assert.Equal(t, domain.DirectionIncrease, portfolio.Direction)

	single, err := CalculateSubLimitImpact(changes[0], 1000, dec("5000"))
	require.NoError(t, err)
	assert.Equal(t, single, portfolio.Impacts[0], "portfolio entries should match standalone calculation")
}

func TestCalculatePortfolioImpact_Empty(t *testing.T) {
	portfolio, err := CalculatePortfolioImpact(nil, 1000, dec("5000"))
	require.NoError(t, err)

	assert.Empty(t, portfolio.Impacts)
	assert.True(t, portfolio.TotalPremiumImpactSAR.IsZero())
	assertDecimal(t, "5000", portfolio.NewPremiumPerMember, "new premium")
	assert.Equal(t, domain.DirectionNeutral, portfolio.Direction)
}

func TestCalculatePortfolioImpact_PropagatesChangeError(t *testing.T) {
	changes := []domain.SubLimitChange{
		change(dentalSubLimit(), "4000", "20"),
		change(opticalSubLimit(), "1500", "150"),
	}

	_, err := CalculatePortfolioImpact(changes, 1000, dec("5000"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "change 1 (optical)")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSweepSubLimit(t *testing.T) {
	results, err := SweepSubLimit(dentalSubLimit(), dec("20"), 4, 1000, dec("5000"))
	require.NoError(t, err)
	require.Len(t, results, 4)

	assertDecimal(t, "500", results[0].NewLimitSAR, "first step")
	assertDecimal(t, "2000", results[1].NewLimitSAR, "second step")
	assertDecimal(t, "3500", results[2].NewLimitSAR, "third step")
	assertDecimal(t, "5000", results[3].NewLimitSAR, "last step")

	// the step that lands on the current limit has no impact
	assert.True(t, results[1].PremiumImpactSAR.IsZero())
	assert.Equal(t, domain.DirectionNeutral, results[1].Direction)
}

func TestSweepSubLimit_InvalidSteps(t *testing.T) {
	_, err := SweepSubLimit(dentalSubLimit(), dec("20"), 1, 1000, dec("5000"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "steps")
}
