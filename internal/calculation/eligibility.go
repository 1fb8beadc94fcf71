package calculation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sehha/chicalc/internal/domain"
)

// CheckEligibility decides whether a beneficiary qualifies for a preventive
// service. The checks short-circuit in a fixed order: minimum age, maximum
// age, gender, then conditions.
//
// Declared conditions are advisory: a beneficiary who passes the age and
// gender bounds is eligible even without a matching condition, and the
// reason code records which path applied.
func CheckEligibility(service domain.Service, profile domain.Profile) domain.EligibilityResult {
	rule := service.Eligibility
	if rule == nil {
		return eligibilityResult(service.ID, "", domain.ReasonEligible, nil)
	}

	if rule.MinAge != nil && profile.Age < *rule.MinAge {
		res := eligibilityResult(service.ID, rule.Coverage, domain.ReasonAgeTooLow, nil)
		res.ReasonAr = fmt.Sprintf("الحد الأدنى للعمر لهذه الخدمة هو %d سنة", *rule.MinAge)
		res.ReasonEn = fmt.Sprintf("Minimum age for this service is %d years", *rule.MinAge)
		return res
	}
	if rule.MaxAge != nil && profile.Age > *rule.MaxAge {
		res := eligibilityResult(service.ID, rule.Coverage, domain.ReasonAgeTooHigh, nil)
		res.ReasonAr = fmt.Sprintf("الحد الأقصى للعمر لهذه الخدمة هو %d سنة", *rule.MaxAge)
		res.ReasonEn = fmt.Sprintf("Maximum age for this service is %d years", *rule.MaxAge)
		return res
	}
	if !rule.Gender.Matches(profile.Gender) {
		return eligibilityResult(service.ID, rule.Coverage, domain.ReasonWrongGender, nil)
	}

	matched := matchingConditions(rule.Conditions, profile.Conditions)
	if len(rule.Conditions) > 0 && len(matched) == 0 {
		return eligibilityResult(service.ID, rule.Coverage, domain.ReasonEligibleByAgeGender, nil)
	}
	if len(matched) > 0 {
		return eligibilityResult(service.ID, rule.Coverage, domain.ReasonEligibleRiskFactors, matched)
	}
	return eligibilityResult(service.ID, rule.Coverage, domain.ReasonEligible, nil)
}

// ScreenProfile checks a beneficiary against every service, ordered by service ID
func ScreenProfile(services []domain.Service, profile domain.Profile) []domain.EligibilityResult {
	results := make([]domain.EligibilityResult, 0, len(services))
	for _, svc := range services {
		results = append(results, CheckEligibility(svc, profile))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ServiceID < results[j].ServiceID })
	return results
}

var reasonMessages = map[domain.ReasonCode][2]string{
	domain.ReasonAgeTooLow:           {"العمر أقل من الحد الأدنى لهذه الخدمة", "Age is below the minimum for this service"},
	domain.ReasonAgeTooHigh:          {"العمر أعلى من الحد الأقصى لهذه الخدمة", "Age is above the maximum for this service"},
	domain.ReasonWrongGender:         {"هذه الخدمة غير متاحة لهذا الجنس", "This service is not available for this gender"},
	domain.ReasonEligibleByAgeGender: {"مؤهل بناءً على العمر والجنس", "Eligible based on age and gender"},
	domain.ReasonEligibleRiskFactors: {"مؤهل بسبب وجود عوامل خطورة", "Eligible due to risk factors"},
	domain.ReasonEligible:            {"مؤهل للحصول على الخدمة", "Eligible for this service"},
}

// ReasonMessages returns the Arabic and English text for a reason code
func ReasonMessages(code domain.ReasonCode) (ar, en string) {
	m := reasonMessages[code]
	return m[0], m[1]
}

func eligibilityResult(serviceID string, coverage domain.Coverage, code domain.ReasonCode, matched []string) domain.EligibilityResult {
	ar, en := ReasonMessages(code)
	return domain.EligibilityResult{
		ServiceID:         serviceID,
		Eligible:          code != domain.ReasonAgeTooLow && code != domain.ReasonAgeTooHigh && code != domain.ReasonWrongGender,
		Reason:            code,
		ReasonAr:          ar,
		ReasonEn:          en,
		Coverage:          coverage,
		MatchedConditions: matched,
	}
}

// matchingConditions returns the declared conditions the beneficiary has
func matchingConditions(declared, have []string) []string {
	if len(declared) == 0 || len(have) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(have))
	for _, c := range have {
		set[normalizeCondition(c)] = struct{}{}
	}
	var matched []string
	for _, c := range declared {
		if _, ok := set[normalizeCondition(c)]; ok {
			matched = append(matched, c)
		}
	}
	return matched
}

func normalizeCondition(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
