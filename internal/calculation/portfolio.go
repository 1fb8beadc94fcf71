package calculation

import (
	"fmt"

	"github.com/sehha/chicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculatePortfolioImpact evaluates each change independently and sums the
// results. Simultaneous changes do not interact.
func CalculatePortfolioImpact(changes []domain.SubLimitChange, memberCount int, basePremiumSAR decimal.Decimal) (domain.PortfolioImpact, error) {
	if err := firstError(
		requireMembers(memberCount),
		requirePositive("base premium", basePremiumSAR),
	); err != nil {
		return domain.PortfolioImpact{}, err
	}

	impacts := make([]domain.SubLimitImpact, 0, len(changes))
	totalPremium := decimal.Zero
	totalCostChange := decimal.Zero

	for i, change := range changes {
		impact, err := CalculateSubLimitImpact(change, memberCount, basePremiumSAR)
		if err != nil {
			return domain.PortfolioImpact{}, fmt.Errorf("change %d (%s): %w", i, change.SubLimit.ID, err)
		}
		totalPremium = totalPremium.Add(impact.PremiumImpactSAR)
		totalCostChange = totalCostChange.Add(impact.CostChangePerThousand)
		impacts = append(impacts, impact)
	}

	return domain.PortfolioImpact{
		BasePremiumSAR:             basePremiumSAR,
		MemberCount:                memberCount,
		TotalPremiumImpactSAR:      totalPremium,
		TotalPremiumImpactPercent:  roundHalfUp(percentOf(totalPremium, basePremiumSAR), 2),
		TotalCostChangePerThousand: totalCostChange,
		NewPremiumPerMember:        basePremiumSAR.Add(totalPremium),
		Direction:                  ImpactDirection(totalPremium),
		Impacts:                    impacts,
	}, nil
}
