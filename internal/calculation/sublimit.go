package calculation

import (
	"github.com/sehha/chicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Utilization-elasticity model parameters for sub-limit changes
var (
	// utilization rises 15% per 100% limit increase
	limitElasticity = decimal.NewFromFloat(0.15)
	// utilization rises 25% per 10-point copayment decrease
	copayElasticity     = decimal.NewFromFloat(0.25)
	copayElasticityStep = decimal.NewFromInt(10)
	// claim severity drifts 5% per 100% limit increase
	severityDrift = decimal.NewFromFloat(0.05)

	subLimitRiskLoading  = decimal.NewFromFloat(1.10)
	subLimitAdminLoading = decimal.NewFromFloat(1.12)

	// per-member deltas within this band are reported as neutral
	directionThresholdSAR = decimal.NewFromInt(5)
)

// ImpactDirection classifies a per-member premium delta. Deltas within
// ±5 SAR inclusive are neutral.
func ImpactDirection(premiumImpactSAR decimal.Decimal) domain.Direction {
	switch {
	case premiumImpactSAR.GreaterThan(directionThresholdSAR):
		return domain.DirectionIncrease
	case premiumImpactSAR.LessThan(directionThresholdSAR.Neg()):
		return domain.DirectionDecrease
	default:
		return domain.DirectionNeutral
	}
}

func validateSubLimitChange(change domain.SubLimitChange) error {
	sl := change.SubLimit
	return firstError(
		requirePositive("current limit", sl.CurrentLimitSAR),
		requirePercent("utilization rate", sl.UtilizationRate),
		requireNonNegative("average claim", sl.AvgClaimSAR),
		requirePercent("current copayment percent", sl.CopaymentPercent),
		requireNonNegative("new limit", change.NewLimitSAR),
		requirePercent("new copayment percent", change.NewCopaymentPercent),
	)
}

// CalculateSubLimitImpact models the utilization response to a new limit and
// copayment and returns the marginal premium impact against the current terms.
func CalculateSubLimitImpact(change domain.SubLimitChange, memberCount int, basePremiumSAR decimal.Decimal) (domain.SubLimitImpact, error) {
	if err := firstError(
		validateSubLimitChange(change),
		requireMembers(memberCount),
		requirePositive("base premium", basePremiumSAR),
	); err != nil {
		return domain.SubLimitImpact{}, err
	}

	sl := change.SubLimit

	// claims are capped at the limit in force
	currentUtilization := sl.UtilizationRate.Div(hundred)
	currentEffectiveClaim := decimal.Min(sl.AvgClaimSAR, sl.CurrentLimitSAR)
	currentCopayFactor := one.Sub(sl.CopaymentPercent.Div(hundred))
	currentCost := currentUtilization.Mul(currentEffectiveClaim).Mul(currentCopayFactor).Mul(thousand)

	limitChangeRatio := change.NewLimitSAR.Div(sl.CurrentLimitSAR)
	copayChangeRatio := sl.CopaymentPercent.Sub(change.NewCopaymentPercent).Div(copayElasticityStep)

	utilizationMultiplier := one.
		Add(limitElasticity.Mul(limitChangeRatio.Sub(one))).
		Add(copayElasticity.Mul(copayChangeRatio))
	newUtilization := clamp(currentUtilization.Mul(utilizationMultiplier), zero, one)

	severityFactor := one.Add(severityDrift.Mul(limitChangeRatio.Sub(one)))
	newEffectiveClaim := decimal.Min(sl.AvgClaimSAR.Mul(severityFactor), change.NewLimitSAR)
	newCopayFactor := one.Sub(change.NewCopaymentPercent.Div(hundred))
	newCost := newUtilization.Mul(newEffectiveClaim).Mul(newCopayFactor).Mul(thousand)

	costChange := newCost.Sub(currentCost)
	loadedCostChange := costChange.Mul(subLimitRiskLoading).Mul(subLimitAdminLoading)
	premiumImpact := loadedCostChange.Div(thousand)

	return domain.SubLimitImpact{
		SubLimitID:             sl.ID,
		Name:                   sl.Name,
		CurrentLimitSAR:        sl.CurrentLimitSAR,
		NewLimitSAR:            change.NewLimitSAR,
		CurrentCopayPercent:    sl.CopaymentPercent,
		NewCopayPercent:        change.NewCopaymentPercent,
		CurrentUtilization:     roundHalfUp(currentUtilization, 4),
		NewUtilization:         roundHalfUp(newUtilization, 4),
		CurrentEffectiveClaim:  roundHalfUp(currentEffectiveClaim, 2),
		NewEffectiveClaim:      roundHalfUp(newEffectiveClaim, 2),
		CurrentCostPerThousand: roundHalfUp(currentCost, 0),
		NewCostPerThousand:     roundHalfUp(newCost, 0),
		CostChangePerThousand:  roundHalfUp(costChange, 0),
		PremiumImpactSAR:       roundHalfUp(premiumImpact, 2),
		PremiumImpactPercent:   roundHalfUp(percentOf(premiumImpact, basePremiumSAR), 2),
		AnnualImpactSAR:        roundHalfUp(premiumImpact.Mul(decimal.NewFromInt(int64(memberCount))), 0),
		Direction:              ImpactDirection(premiumImpact),
	}, nil
}
