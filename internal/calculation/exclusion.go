package calculation

import (
	"github.com/sehha/chicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultUtilizationRate is the share of prevalent cases assumed to claim
// once an excluded service becomes covered.
var DefaultUtilizationRate = decimal.NewFromFloat(0.65)

var (
	// early-intervention savings netted off the gross cost
	avoidedCostPercent = decimal.NewFromInt(8)

	exclusionRiskLoading  = decimal.NewFromFloat(1.15)
	exclusionAdminLoading = decimal.NewFromFloat(1.12)

	sensitivityVariance = decimal.NewFromFloat(0.25)
)

// PredictExclusionAdditionImpact projects the premium effect of covering a
// currently excluded service, with a ±25% sensitivity band.
func PredictExclusionAdditionImpact(prevalencePerThousand, avgTreatmentCostSAR, utilizationRate, basePremiumSAR decimal.Decimal) (domain.ExclusionImpactResult, error) {
	if err := firstError(
		requireNonNegative("prevalence per thousand", prevalencePerThousand),
		requireNonNegative("average treatment cost", avgTreatmentCostSAR),
		requireFraction("utilization rate", utilizationRate),
		requirePositive("base premium", basePremiumSAR),
	); err != nil {
		return domain.ExclusionImpactResult{}, err
	}

	expectedClaims := prevalencePerThousand.Mul(utilizationRate)
	grossCost := expectedClaims.Mul(avgTreatmentCostSAR)
	netCost := grossCost.Mul(one.Sub(avoidedCostPercent.Div(hundred)))
	loadedCost := netCost.Mul(exclusionRiskLoading).Mul(exclusionAdminLoading)
	premiumImpact := loadedCost.Div(thousand)

	band := domain.SensitivityBand{
		VarianceFactor: sensitivityVariance,
		BestCase:       scenarioCost(premiumImpact.Mul(one.Sub(sensitivityVariance)), basePremiumSAR),
		Expected:       scenarioCost(premiumImpact, basePremiumSAR),
		WorstCase:      scenarioCost(premiumImpact.Mul(one.Add(sensitivityVariance)), basePremiumSAR),
	}

	return domain.ExclusionImpactResult{
		ExpectedClaimsPerThousand: roundHalfUp(expectedClaims, 1),
		GrossCostIncrease:         roundHalfUp(grossCost, 0),
		AvoidedCostPercent:        avoidedCostPercent,
		NetCostImpact:             roundHalfUp(netCost, 0),
		LoadedCost:                roundHalfUp(loadedCost, 0),
		PremiumImpactSAR:          roundHalfUp(premiumImpact, 0),
		PremiumImpactPercent:      roundHalfUp(percentOf(premiumImpact, basePremiumSAR), 2),
		PMPMCost:                  roundHalfUp(premiumImpact.Div(twelve), 2),
		Sensitivity:               band,
	}, nil
}

// PredictExclusionImpactFor runs PredictExclusionAdditionImpact on a catalog
// exclusion using the default utilization rate.
func PredictExclusionImpactFor(exclusion domain.Exclusion, basePremiumSAR decimal.Decimal) (domain.ExclusionImpactResult, error) {
	result, err := PredictExclusionAdditionImpact(
		exclusion.PrevalencePerThousand,
		exclusion.PotentialCostSAR,
		DefaultUtilizationRate,
		basePremiumSAR,
	)
	if err != nil {
		return result, err
	}
	result.ExclusionID = exclusion.ID
	return result, nil
}

func scenarioCost(annualPremium, basePremiumSAR decimal.Decimal) domain.ScenarioCost {
	return domain.ScenarioCost{
		AnnualPremiumSAR: roundHalfUp(annualPremium, 0),
		PMPM:             roundHalfUp(annualPremium.Div(twelve), 2),
		ImpactPercent:    roundHalfUp(percentOf(annualPremium, basePremiumSAR), 2),
	}
}
