package domain

import (
	"github.com/shopspring/decimal"
)

// Direction summarizes the sign of a premium impact
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionNeutral  Direction = "neutral"
)

// PremiumImpactResult is the loaded premium cost of covering a service
type PremiumImpactResult struct {
	ServiceID                  string          `json:"serviceId"`
	ExpectedClaimsPerThousand  decimal.Decimal `json:"expectedClaimsPerThousand"`
	AnnualCostPerThousand      decimal.Decimal `json:"annualCostPerThousand"`
	RiskLoadingFactor          decimal.Decimal `json:"riskLoadingFactor"`
	AdminLoadingPercent        decimal.Decimal `json:"adminLoadingPercent"`
	AdditionalPremiumPerMember decimal.Decimal `json:"additionalPremiumPerMember"`
	TotalImpactPercent         decimal.Decimal `json:"totalImpactPercent"`
	MemberCount                int             `json:"memberCount"`
	TotalAnnualImpactSAR       decimal.Decimal `json:"totalAnnualImpactSAR"`
}

// SubLimitImpact is the marginal effect of changing one sub-limit
type SubLimitImpact struct {
	SubLimitID             string          `json:"subLimitId"`
	Name                   LocalizedText   `json:"name"`
	CurrentLimitSAR        decimal.Decimal `json:"currentLimitSAR"`
	NewLimitSAR            decimal.Decimal `json:"newLimitSAR"`
	CurrentCopayPercent    decimal.Decimal `json:"currentCopaymentPercent"`
	NewCopayPercent        decimal.Decimal `json:"newCopaymentPercent"`
	CurrentUtilization     decimal.Decimal `json:"currentUtilization"`
	NewUtilization         decimal.Decimal `json:"newUtilization"`
	CurrentEffectiveClaim  decimal.Decimal `json:"currentEffectiveClaim"`
	NewEffectiveClaim      decimal.Decimal `json:"newEffectiveClaim"`
	CurrentCostPerThousand decimal.Decimal `json:"currentCostPerThousand"`
	NewCostPerThousand     decimal.Decimal `json:"newCostPerThousand"`
	CostChangePerThousand  decimal.Decimal `json:"costChangePerThousand"`
	PremiumImpactSAR       decimal.Decimal `json:"premiumImpactSAR"`
	PremiumImpactPercent   decimal.Decimal `json:"premiumImpactPercent"`
	AnnualImpactSAR        decimal.Decimal `json:"annualImpactSAR"`
	Direction              Direction       `json:"direction"`
}

// PortfolioImpact aggregates several independent sub-limit changes
type PortfolioImpact struct {
	BasePremiumSAR             decimal.Decimal  `json:"basePremiumSAR"`
	MemberCount                int              `json:"memberCount"`
	TotalPremiumImpactSAR      decimal.Decimal  `json:"totalPremiumImpactSAR"`
	TotalPremiumImpactPercent  decimal.Decimal  `json:"totalPremiumImpactPercent"`
	TotalCostChangePerThousand decimal.Decimal  `json:"totalCostChangePerThousand"`
	NewPremiumPerMember        decimal.Decimal  `json:"newPremiumPerMember"`
	Direction                  Direction        `json:"direction"`
	Impacts                    []SubLimitImpact `json:"individualImpacts"`
}

// ScenarioCost is one point of a sensitivity band
type ScenarioCost struct {
	AnnualPremiumSAR decimal.Decimal `json:"annual"`
	PMPM             decimal.Decimal `json:"pmpm"`
	ImpactPercent    decimal.Decimal `json:"percentImpact"`
}

// SensitivityBand brackets an estimate with best and worst cases
type SensitivityBand struct {
	VarianceFactor decimal.Decimal `json:"varianceFactor"`
	BestCase       ScenarioCost    `json:"bestCase"`
	Expected       ScenarioCost    `json:"expected"`
	WorstCase      ScenarioCost    `json:"worstCase"`
}

// ExclusionImpactResult projects the cost of covering a currently excluded service
type ExclusionImpactResult struct {
	ExclusionID               string          `json:"exclusionId,omitempty"`
	ExpectedClaimsPerThousand decimal.Decimal `json:"expectedClaimsPerThousand"`
	GrossCostIncrease         decimal.Decimal `json:"grossCostIncrease"`
	AvoidedCostPercent        decimal.Decimal `json:"avoidedCostPercent"`
	NetCostImpact             decimal.Decimal `json:"netCostImpact"`
	LoadedCost                decimal.Decimal `json:"loadedCost"`
	PremiumImpactSAR          decimal.Decimal `json:"premiumImpactSAR"`
	PremiumImpactPercent      decimal.Decimal `json:"premiumImpactPercent"`
	PMPMCost                  decimal.Decimal `json:"pmpmCost"`
	Sensitivity               SensitivityBand `json:"sensitivityAnalysis"`
}
