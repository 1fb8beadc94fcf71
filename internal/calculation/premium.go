package calculation

import (
	"github.com/sehha/chicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Defaults applied when a caller does not supply a member count or base premium
var (
	DefaultMemberCount    = 1000
	DefaultBasePremiumSAR = decimal.NewFromInt(5000)
)

var (
	// share of prevalent cases expected to claim once the service is covered
	premiumUtilizationRate     = decimal.NewFromFloat(0.65)
	premiumAdminLoadingPercent = decimal.NewFromInt(12)
	defaultRiskLoading         = decimal.NewFromFloat(1.10)

	riskLoadingByCategory = map[domain.Category]decimal.Decimal{
		domain.CategoryChronicDisease: decimal.NewFromFloat(1.15),
		domain.CategoryCardiovascular: decimal.NewFromFloat(1.25),
		domain.CategoryRenal:          decimal.NewFromFloat(1.30),
		domain.CategoryFertility:      decimal.NewFromFloat(1.20),
	}
)

// RiskLoadingFactor returns the risk markup for a category; categories without
// a dedicated factor get the default 1.10.
func RiskLoadingFactor(c domain.Category) decimal.Decimal {
	if f, ok := riskLoadingByCategory[c]; ok {
		return f
	}
	return defaultRiskLoading
}

// CalculatePremiumImpact projects the loaded per-member premium of covering a service
func CalculatePremiumImpact(service domain.Service, memberCount int, basePremiumSAR decimal.Decimal) (domain.PremiumImpactResult, error) {
	if err := firstError(
		requireNonNegative("prevalence per thousand", service.PrevalencePerThousand),
		requireNonNegative("average treatment cost", service.AverageTreatmentCostSAR),
		requireMembers(memberCount),
		requirePositive("base premium", basePremiumSAR),
	); err != nil {
		return domain.PremiumImpactResult{}, err
	}

	expectedClaims := service.PrevalencePerThousand.Mul(premiumUtilizationRate)
	annualCost := expectedClaims.Mul(service.AverageTreatmentCostSAR)
	riskLoading := RiskLoadingFactor(service.Category)
	adminFactor := one.Add(premiumAdminLoadingPercent.Div(hundred))

	purePremium := annualCost.Div(thousand)
	loadedPremium := purePremium.Mul(riskLoading).Mul(adminFactor)

	return domain.PremiumImpactResult{
		ServiceID:                  service.ID,
		ExpectedClaimsPerThousand:  roundHalfUp(expectedClaims, 1),
		AnnualCostPerThousand:      roundHalfUp(annualCost, 0),
		RiskLoadingFactor:          riskLoading,
		AdminLoadingPercent:        premiumAdminLoadingPercent,
		AdditionalPremiumPerMember: roundHalfUp(loadedPremium, 0),
		TotalImpactPercent:         roundHalfUp(percentOf(loadedPremium, basePremiumSAR), 2),
		MemberCount:                memberCount,
		TotalAnnualImpactSAR:       roundHalfUp(loadedPremium.Mul(decimal.NewFromInt(int64(memberCount))), 0),
	}, nil
}
