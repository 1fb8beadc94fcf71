package calculation

import (
	"testing"

	"github.com/sehha/chicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func mammography() domain.Service {
	return domain.Service{
		ID:       "breast_cancer_screening",
		Category: domain.CategoryPreventive,
		Eligibility: &domain.EligibilityRule{
			MinAge:   intPtr(40),
			MaxAge:   intPtr(74),
			Gender:   domain.GenderRuleFemale,
			Coverage: domain.CoverageCHIBasic,
		},
	}
}

func diabetesScreening() domain.Service {
	return domain.Service{
		ID:       "diabetes_screening",
		Category: domain.CategoryPreventive,
		Eligibility: &domain.EligibilityRule{
			MinAge:     intPtr(35),
			MaxAge:     intPtr(70),
			Gender:     domain.GenderRuleAll,
			Conditions: []string{"obesity", "hypertension"},
			Coverage:   domain.CoverageCHIBasic,
		},
	}
}

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name         string
		service      domain.Service
		profile      domain.Profile
		wantEligible bool
		wantReason   domain.ReasonCode
	}{
		{"within bounds", mammography(), domain.Profile{Age: 50, Gender: domain.GenderFemale}, true, domain.ReasonEligible},
		{"at minimum age", mammography(), domain.Profile{Age: 40, Gender: domain.GenderFemale}, true, domain.ReasonEligible},
		{"at maximum age", mammography(), domain.Profile{Age: 74, Gender: domain.GenderFemale}, true, domain.ReasonEligible},
		{"too young", mammography(), domain.Profile{Age: 39, Gender: domain.GenderFemale}, false, domain.ReasonAgeTooLow},
		{"too old", mammography(), domain.Profile{Age: 75, Gender: domain.GenderFemale}, false, domain.ReasonAgeTooHigh},
		{"wrong gender", mammography(), domain.Profile{Age: 50, Gender: domain.GenderMale}, false, domain.ReasonWrongGender},
		{"age checked before gender", mammography(), domain.Profile{Age: 20, Gender: domain.GenderMale}, false, domain.ReasonAgeTooLow},
		{"no rule", domain.Service{ID: "x"}, domain.Profile{Age: 5, Gender: domain.GenderMale}, true, domain.ReasonEligible},
		{"conditions declared but absent", diabetesScreening(), domain.Profile{Age: 45, Gender: domain.GenderMale}, true, domain.ReasonEligibleByAgeGender},
		{"conditions declared and present", diabetesScreening(), domain.Profile{Age: 45, Gender: domain.GenderMale, Conditions: []string{"hypertension"}}, true, domain.ReasonEligibleRiskFactors},
		{"conditions do not rescue age", diabetesScreening(), domain.Profile{Age: 30, Gender: domain.GenderMale, Conditions: []string{"obesity"}}, false, domain.ReasonAgeTooLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckEligibility(tt.service, tt.profile)
			assert.Equal(t, tt.service.ID, result.ServiceID)
			assert.Equal(t, tt.wantEligible, result.Eligible)
			assert.Equal(t, tt.wantReason, result.Reason)
			assert.NotEmpty(t, result.ReasonAr)
			assert.NotEmpty(t, result.ReasonEn)
		})
	}
}

func TestCheckEligibility_AgeMessagesNameTheBound(t *testing.T) {
	low := CheckEligibility(mammography(), domain.Profile{Age: 30, Gender: domain.GenderFemale})
	assert.Equal(t, "Minimum age for this service is 40 years", low.ReasonEn)
	assert.Contains(t, low.ReasonAr, "40")

	high := CheckEligibility(mammography(), domain.Profile{Age: 80, Gender: domain.GenderFemale})
	assert.Equal(t, "Maximum age for this service is 74 years", high.ReasonEn)
	assert.Contains(t, high.ReasonAr, "74")
}

func TestCheckEligibility_ConditionMatchingIgnoresCaseAndSpace(t *testing.T) {
	result := CheckEligibility(diabetesScreening(), domain.Profile{
		Age:        50,
		Gender:     domain.GenderFemale,
		Conditions: []string{" Obesity ", "asthma"},
	})

	assert.Equal(t, domain.ReasonEligibleRiskFactors, result.Reason)
	assert.Equal(t, []string{"obesity"}, result.MatchedConditions)
	assert.Equal(t, domain.CoverageCHIBasic, result.Coverage)
}

func TestCheckEligibility_OpenEndedBounds(t *testing.T) {
	flu := domain.Service{
		ID:          "influenza_vaccination",
		Eligibility: &domain.EligibilityRule{Coverage: domain.CoverageGovernment},
	}

	for _, age := range []int{0, 30, 110} {
		result := CheckEligibility(flu, domain.Profile{Age: age, Gender: domain.GenderMale})
		assert.True(t, result.Eligible, "age %d", age)
		assert.Equal(t, domain.CoverageGovernment, result.Coverage)
	}
}

func TestScreenProfile_SortedByServiceID(t *testing.T) {
	services := []domain.Service{mammography(), diabetesScreening(), {ID: "aaa_screening"}}

	results := ScreenProfile(services, domain.Profile{Age: 45, Gender: domain.GenderFemale})
	require.Len(t, results, 3)

	assert.Equal(t, "aaa_screening", results[0].ServiceID)
	assert.Equal(t, "breast_cancer_screening", results[1].ServiceID)
	assert.Equal(t, "diabetes_screening", results[2].ServiceID)
	assert.True(t, results[1].Eligible)
	assert.Equal(t, domain.ReasonEligibleByAgeGender, results[2].Reason)
}

func TestReasonMessages(t *testing.T) {
	ar, en := ReasonMessages(domain.ReasonWrongGender)
	assert.Equal(t, "This service is not available for this gender", en)
	assert.NotEmpty(t, ar)

	ar, en = ReasonMessages(domain.ReasonCode("bogus"))
	assert.Empty(t, ar)
	assert.Empty(t, en)
}
