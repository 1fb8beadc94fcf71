package compare

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult is one scenario reduced to per-member premium metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description,omitempty"`
	ReportID     string `json:"reportId"`

	MemberCount    int             `json:"memberCount"`
	BasePremiumSAR decimal.Decimal `json:"basePremiumSAR"`

	// Per-member annual amounts by source
	SubLimitImpactSAR  decimal.Decimal `json:"subLimitImpactSAR"`
	ExclusionImpactSAR decimal.Decimal `json:"exclusionImpactSAR"`
	ServiceImpactSAR   decimal.Decimal `json:"serviceImpactSAR"`

	TotalImpactSAR       decimal.Decimal  `json:"totalImpactSAR"`
	TotalImpactPercent   decimal.Decimal  `json:"totalImpactPercent"`
	ProjectedPremiumSAR  decimal.Decimal  `json:"projectedPremiumSAR"`
	TotalAnnualImpactSAR decimal.Decimal  `json:"totalAnnualImpactSAR"`
	Direction            domain.Direction `json:"direction"`

	// Comparison to base
	PremiumDiffFromBase decimal.Decimal `json:"premiumDiffFromBase"`
	PremiumPctFromBase  decimal.Decimal `json:"premiumPctFromBase"`
	AnnualDiffFromBase  decimal.Decimal `json:"annualDiffFromBase"`
}

// RecommendationKind names what a recommendation highlights
type RecommendationKind string

const (
	LowestPremium  RecommendationKind = "lowest_premium"
	HighestPremium RecommendationKind = "highest_premium"
	AllNeutral     RecommendationKind = "all_neutral"
)

// Recommendation points at one alternative; formatters render the text per language
type Recommendation struct {
	Kind         RecommendationKind `json:"kind"`
	ScenarioName string             `json:"scenarioName,omitempty"`
	DeltaSAR     decimal.Decimal    `json:"deltaSAR"`
}

// ComparisonSet is a base scenario and the alternatives measured against it
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []Recommendation   `json:"recommendations"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}

// MetricsCalculator extracts comparison metrics from evaluated reports
type MetricsCalculator struct{}

func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics sums every per-member premium effect in a report
func (mc *MetricsCalculator) CalculateMetrics(sc *domain.Scenario, report *domain.Report) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:   sc.Name,
		Description:    sc.Description,
		ReportID:       report.ID,
		MemberCount:    sc.MemberCount,
		BasePremiumSAR: sc.BasePremiumSAR,
	}

	if report.Portfolio != nil {
		result.SubLimitImpactSAR = report.Portfolio.TotalPremiumImpactSAR
	}
	for _, e := range report.Exclusions {
		result.ExclusionImpactSAR = result.ExclusionImpactSAR.Add(e.PremiumImpactSAR)
	}
	for _, s := range report.ServiceCoverage {
		result.ServiceImpactSAR = result.ServiceImpactSAR.Add(s.AdditionalPremiumPerMember)
	}

	result.TotalImpactSAR = result.SubLimitImpactSAR.Add(result.ExclusionImpactSAR).Add(result.ServiceImpactSAR)
	result.ProjectedPremiumSAR = sc.BasePremiumSAR.Add(result.TotalImpactSAR)
	result.TotalAnnualImpactSAR = result.TotalImpactSAR.Mul(decimal.NewFromInt(int64(sc.MemberCount))).Round(2)
	if sc.BasePremiumSAR.IsPositive() {
		result.TotalImpactPercent = result.TotalImpactSAR.Div(sc.BasePremiumSAR).Mul(hundred).Round(2)
	}
	result.Direction = direction(result.TotalImpactSAR)
	return result
}

// CalculateComparison fills the deltas of scenario against base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PremiumDiffFromBase = scenario.ProjectedPremiumSAR.Sub(base.ProjectedPremiumSAR)
	if base.ProjectedPremiumSAR.IsPositive() {
		scenario.PremiumPctFromBase = scenario.PremiumDiffFromBase.
			Div(base.ProjectedPremiumSAR).
			Mul(hundred).
			Round(2)
	}
	scenario.AnnualDiffFromBase = scenario.TotalAnnualImpactSAR.Sub(base.TotalAnnualImpactSAR)
	return scenario
}

// neutralBand matches the calculators: moves within 5 SAR per member are neutral
var neutralBand = decimal.NewFromInt(5)

func direction(d decimal.Decimal) domain.Direction {
	switch {
	case d.GreaterThan(neutralBand):
		return domain.DirectionIncrease
	case d.LessThan(neutralBand.Neg()):
		return domain.DirectionDecrease
	}
	return domain.DirectionNeutral
}

// GenerateRecommendations picks the cheapest and dearest alternatives relative to base
func GenerateRecommendations(compSet *ComparisonSet) []Recommendation {
	recommendations := []Recommendation{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	lowest, highest := -1, -1
	for i, alt := range compSet.AlternativeResults {
		if alt.PremiumDiffFromBase.IsNegative() &&
			(lowest < 0 || alt.PremiumDiffFromBase.LessThan(compSet.AlternativeResults[lowest].PremiumDiffFromBase)) {
			lowest = i
		}
		if alt.PremiumDiffFromBase.IsPositive() &&
			(highest < 0 || alt.PremiumDiffFromBase.GreaterThan(compSet.AlternativeResults[highest].PremiumDiffFromBase)) {
			highest = i
		}
	}

	if lowest >= 0 {
		alt := compSet.AlternativeResults[lowest]
		recommendations = append(recommendations, Recommendation{
			Kind: LowestPremium, ScenarioName: alt.ScenarioName, DeltaSAR: alt.PremiumDiffFromBase,
		})
	}
	if highest >= 0 {
		alt := compSet.AlternativeResults[highest]
		recommendations = append(recommendations, Recommendation{
			Kind: HighestPremium, ScenarioName: alt.ScenarioName, DeltaSAR: alt.PremiumDiffFromBase,
		})
	}

	neutral := true
	for _, alt := range compSet.AlternativeResults {
		if direction(alt.PremiumDiffFromBase) != domain.DirectionNeutral {
			neutral = false
			break
		}
	}
	if neutral {
		recommendations = append(recommendations, Recommendation{Kind: AllNeutral})
	}
	return recommendations
}
