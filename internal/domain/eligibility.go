package domain

import (
	"fmt"
	"strings"
)

// Gender of a beneficiary
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts "male"/"female" (and "m"/"f"), case-insensitive
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("unknown gender %q (expected male or female)", s)
}

// GenderRule restricts a preventive service to one gender or to all
type GenderRule string

const (
	GenderRuleAll    GenderRule = "all"
	GenderRuleMale   GenderRule = "male"
	GenderRuleFemale GenderRule = "female"
)

// Matches reports whether the rule admits the given gender. An empty rule admits everyone.
func (r GenderRule) Matches(g Gender) bool {
	switch r {
	case "", GenderRuleAll:
		return true
	default:
		return string(r) == string(g)
	}
}

// Coverage says who pays for a preventive service
type Coverage string

const (
	CoverageCHIBasic   Coverage = "chi_basic"
	CoverageGovernment Coverage = "government"
	CoverageNotCovered Coverage = "not_covered"
)

// EligibilityRule is attached to a preventive service. Absent bounds mean no constraint.
type EligibilityRule struct {
	MinAge     *int       `yaml:"min_age,omitempty" json:"minAge,omitempty"`
	MaxAge     *int       `yaml:"max_age,omitempty" json:"maxAge,omitempty"`
	Gender     GenderRule `yaml:"gender,omitempty" json:"gender,omitempty"`
	Conditions []string   `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	Coverage   Coverage   `yaml:"coverage" json:"coverage"`
}

// Profile is the beneficiary input to an eligibility check
type Profile struct {
	Age        int      `yaml:"age" json:"age"`
	Gender     Gender   `yaml:"gender" json:"gender"`
	Conditions []string `yaml:"conditions,omitempty" json:"conditions,omitempty"`
}

// Validate checks the profile's age and gender
func (p Profile) Validate() error {
	if p.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("gender must be male or female")
	}
	return nil
}

// ReasonCode identifies the branch of the eligibility decision that applied
type ReasonCode string

const (
	ReasonAgeTooLow           ReasonCode = "age_too_low"
	ReasonAgeTooHigh          ReasonCode = "age_too_high"
	ReasonWrongGender         ReasonCode = "wrong_gender"
	ReasonEligibleByAgeGender ReasonCode = "eligible_by_age_gender"
	ReasonEligibleRiskFactors ReasonCode = "eligible_risk_factors"
	ReasonEligible            ReasonCode = "eligible"
)

// EligibilityResult is the outcome of one eligibility check
type EligibilityResult struct {
	ServiceID         string     `json:"serviceId"`
	Eligible          bool       `json:"eligible"`
	Reason            ReasonCode `json:"reasonCode"`
	ReasonAr          string     `json:"reason"`
	ReasonEn          string     `json:"reasonEn"`
	Coverage          Coverage   `json:"coverage,omitempty"`
	MatchedConditions []string   `json:"matchedConditions,omitempty"`
}
