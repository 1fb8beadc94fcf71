package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scenario is a batch of proposed policy changes evaluated together.
// It is loaded from YAML by the config package.
type Scenario struct {
	Name               string                 `yaml:"name" json:"name"`
	Description        string                 `yaml:"description,omitempty" json:"description,omitempty"`
	BasePremiumSAR     decimal.Decimal        `yaml:"base_premium_sar" json:"basePremiumSAR"`
	MemberCount        int                    `yaml:"member_count" json:"memberCount"`
	SubLimitChanges    []SubLimitChangeSpec   `yaml:"sub_limit_changes,omitempty" json:"subLimitChanges,omitempty"`
	ExclusionAdditions []ExclusionSpec        `yaml:"exclusion_additions,omitempty" json:"exclusionAdditions,omitempty"`
	ServiceCoverage    []string               `yaml:"service_coverage,omitempty" json:"serviceCoverage,omitempty"`
	EligibilityChecks  []EligibilityCheckSpec `yaml:"eligibility_checks,omitempty" json:"eligibilityChecks,omitempty"`
}

// SubLimitChangeSpec references a catalog sub-limit by ID. Nil fields keep the current value.
type SubLimitChangeSpec struct {
	SubLimitID          string           `yaml:"sub_limit" json:"subLimit"`
	NewLimitSAR         *decimal.Decimal `yaml:"new_limit_sar,omitempty" json:"newLimitSAR,omitempty"`
	NewCopaymentPercent *decimal.Decimal `yaml:"new_copayment_percent,omitempty" json:"newCopaymentPercent,omitempty"`
}

// ExclusionSpec references a catalog exclusion; overrides replace catalog figures
type ExclusionSpec struct {
	ExclusionID           string           `yaml:"exclusion" json:"exclusion"`
	UtilizationRate       *decimal.Decimal `yaml:"utilization_rate,omitempty" json:"utilizationRate,omitempty"`
	PrevalencePerThousand *decimal.Decimal `yaml:"prevalence_per_thousand,omitempty" json:"prevalencePerThousand,omitempty"`
	AvgTreatmentCostSAR   *decimal.Decimal `yaml:"avg_treatment_cost_sar,omitempty" json:"avgTreatmentCostSAR,omitempty"`
}

// EligibilityCheckSpec screens one beneficiary against some (or all) preventive services
type EligibilityCheckSpec struct {
	Label    string   `yaml:"label,omitempty" json:"label,omitempty"`
	Profile  Profile  `yaml:"profile" json:"profile"`
	Services []string `yaml:"services,omitempty" json:"services,omitempty"`
}

// EligibilityScreening is the evaluated form of an EligibilityCheckSpec
type EligibilityScreening struct {
	Label   string              `json:"label,omitempty"`
	Profile Profile             `json:"profile"`
	Results []EligibilityResult `json:"results"`
}

// Report is the full evaluation of a Scenario
type Report struct {
	ID              string                  `json:"id"`
	ScenarioName    string                  `json:"scenarioName"`
	GeneratedAt     time.Time               `json:"generatedAt"`
	Portfolio       *PortfolioImpact        `json:"portfolio,omitempty"`
	Exclusions      []ExclusionImpactResult `json:"exclusions,omitempty"`
	ServiceCoverage []PremiumImpactResult   `json:"serviceCoverage,omitempty"`
	Eligibility     []EligibilityScreening  `json:"eligibility,omitempty"`
	Sweep           []SubLimitImpact        `json:"sweep,omitempty"`
}
