package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LocalizedText carries the Arabic and English forms of a display string
type LocalizedText struct {
	Ar string `yaml:"ar" json:"ar"`
	En string `yaml:"en" json:"en"`
}

// In returns the text for the given language tag ("ar" or "en"), falling back to English
func (t LocalizedText) In(lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "ar") && t.Ar != "" {
		return t.Ar
	}
	if t.En != "" {
		return t.En
	}
	return t.Ar
}

// Category classifies a benefit or service for risk-loading purposes
type Category string

const (
	CategoryChronicDisease Category = "chronic_disease"
	CategoryCardiovascular Category = "cardiovascular"
	CategoryRenal          Category = "renal"
	CategoryFertility      Category = "fertility"
	CategoryPreventive     Category = "preventive"
	CategoryMaternity      Category = "maternity"
	CategoryDental         Category = "dental"
	CategoryMentalHealth   Category = "mental_health"
	CategoryOther          Category = "other"
)

var categoryLabels = map[string]Category{
	"chronic disease": CategoryChronicDisease,
	"cardiovascular":  CategoryCardiovascular,
	"renal":           CategoryRenal,
	"fertility":       CategoryFertility,
	"preventive":      CategoryPreventive,
	"maternity":       CategoryMaternity,
	"dental":          CategoryDental,
	"mental health":   CategoryMentalHealth,
	"other":           CategoryOther,
}

// ParseCategory accepts either an enum code ("chronic_disease") or a catalog
// display label ("Chronic Disease"). Unknown values map to CategoryOther.
func ParseCategory(s string) Category {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", " ")
	if c, ok := categoryLabels[key]; ok {
		return c
	}
	return CategoryOther
}

// UnmarshalYAML normalizes labels through ParseCategory
func (c *Category) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*c = ParseCategory(raw)
	return nil
}

// UnmarshalText normalizes labels through ParseCategory (JSON, flags)
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// SubLimit is one benefit line subject to a payout cap
type SubLimit struct {
	ID               string          `yaml:"id" json:"id"`
	Name             LocalizedText   `yaml:"name" json:"name"`
	Category         Category        `yaml:"category" json:"category"`
	CurrentLimitSAR  decimal.Decimal `yaml:"current_limit_sar" json:"currentLimitSAR"`
	MinLimitSAR      decimal.Decimal `yaml:"min_limit_sar" json:"minLimitSAR"`
	MaxLimitSAR      decimal.Decimal `yaml:"max_limit_sar" json:"maxLimitSAR"`
	CopaymentPercent decimal.Decimal `yaml:"copayment_percent" json:"copaymentPercent"`
	MaxCopaymentSAR  decimal.Decimal `yaml:"max_copayment_sar" json:"maxCopaymentSAR"`
	UtilizationRate  decimal.Decimal `yaml:"utilization_rate" json:"utilizationRate"` // percent of members per year
	AvgClaimSAR      decimal.Decimal `yaml:"avg_claim_sar" json:"avgClaimSAR"`
}

// Validate checks the catalog invariants of a sub-limit
func (s SubLimit) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("sub-limit id is required")
	}
	if s.MinLimitSAR.IsNegative() {
		return fmt.Errorf("sub-limit %s: min limit cannot be negative", s.ID)
	}
	if s.CurrentLimitSAR.LessThan(s.MinLimitSAR) || s.CurrentLimitSAR.GreaterThan(s.MaxLimitSAR) {
		return fmt.Errorf("sub-limit %s: current limit %s outside [%s, %s]",
			s.ID, s.CurrentLimitSAR, s.MinLimitSAR, s.MaxLimitSAR)
	}
	if !s.CurrentLimitSAR.IsPositive() {
		return fmt.Errorf("sub-limit %s: current limit must be positive", s.ID)
	}
	if !isPercent(s.CopaymentPercent) {
		return fmt.Errorf("sub-limit %s: copayment percent must be between 0 and 100", s.ID)
	}
	if !isPercent(s.UtilizationRate) {
		return fmt.Errorf("sub-limit %s: utilization rate must be between 0 and 100", s.ID)
	}
	if s.AvgClaimSAR.IsNegative() || s.MaxCopaymentSAR.IsNegative() {
		return fmt.Errorf("sub-limit %s: amounts cannot be negative", s.ID)
	}
	return nil
}

// SubLimitChange pairs an unchanged SubLimit with a proposed limit and copayment
type SubLimitChange struct {
	SubLimit            SubLimit        `json:"subLimit"`
	NewLimitSAR         decimal.Decimal `json:"newLimitSAR"`
	NewCopaymentPercent decimal.Decimal `json:"newCopaymentPercent"`
}

// Unchanged returns a change that keeps the current limit and copayment
func (s SubLimit) Unchanged() SubLimitChange {
	return SubLimitChange{
		SubLimit:            s,
		NewLimitSAR:         s.CurrentLimitSAR,
		NewCopaymentPercent: s.CopaymentPercent,
	}
}

// Exclusion is a benefit not covered by the basic policy
type Exclusion struct {
	ID                    string          `yaml:"id" json:"id"`
	Name                  LocalizedText   `yaml:"name" json:"name"`
	Category              Category        `yaml:"category" json:"category"`
	Rationale             LocalizedText   `yaml:"rationale" json:"rationale"`
	PrevalencePerThousand decimal.Decimal `yaml:"prevalence_per_thousand" json:"prevalencePerThousand"`
	PotentialCostSAR      decimal.Decimal `yaml:"potential_cost_sar" json:"potentialCostSAR"`
}

// Service is any health service with an incidence and treatment cost
type Service struct {
	ID                      string           `yaml:"id" json:"id"`
	Name                    LocalizedText    `yaml:"name" json:"name"`
	Category                Category         `yaml:"category" json:"category"`
	PrevalencePerThousand   decimal.Decimal  `yaml:"prevalence_per_thousand" json:"prevalencePerThousand"`
	AverageTreatmentCostSAR decimal.Decimal  `yaml:"average_treatment_cost_sar" json:"averageTreatmentCostSAR"`
	Eligibility             *EligibilityRule `yaml:"eligibility,omitempty" json:"eligibility,omitempty"`
}

// PhysicianPrivilege maps a specialty to the procedure groups it may perform
type PhysicianPrivilege struct {
	Specialty  string        `yaml:"specialty" json:"specialty"`
	Name       LocalizedText `yaml:"name" json:"name"`
	Procedures []string      `yaml:"procedures" json:"procedures"`
}

var hundred = decimal.NewFromInt(100)

func isPercent(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}
