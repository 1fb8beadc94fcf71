package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sehha/chicalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c := Default()
	require.NotNil(t, c)

	assert.Equal(t, "SAR", c.Metadata.Currency)
	assert.NotEmpty(t, c.SubLimits(), "Should have sub-limits")
	assert.NotEmpty(t, c.Exclusions(), "Should have exclusions")
	assert.NotEmpty(t, c.Services(), "Should have services")
	assert.Same(t, c, Default(), "Default should be memoized")
}

func TestDefault_SubLimitLookup(t *testing.T) {
	c := Default()

	dental, ok := c.SubLimit("dental")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryDental, dental.Category)
	assert.True(t, dental.CurrentLimitSAR.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "Dental treatment", dental.Name.In("en"))
	assert.Equal(t, "علاج الأسنان", dental.Name.In("ar"))

	_, ok = c.SubLimit("does-not-exist")
	assert.False(t, ok)
}

func TestDefault_CategoryLabelsNormalized(t *testing.T) {
	c := Default()

	psych, ok := c.SubLimit("psychiatric")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryMentalHealth, psych.Category)

	diabetes, ok := c.Service("diabetes_management")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryChronicDisease, diabetes.Category)
	assert.True(t, diabetes.PrevalencePerThousand.Equal(decimal.NewFromInt(185)))
	assert.True(t, diabetes.AverageTreatmentCostSAR.Equal(decimal.NewFromInt(24500)))
}

func TestDefault_PreventiveServicesCarryRules(t *testing.T) {
	services := Default().PreventiveServices()
	require.NotEmpty(t, services)

	for _, s := range services {
		assert.NotNil(t, s.Eligibility, "service %s should have an eligibility rule", s.ID)
	}

	mammo, ok := Default().Service("breast_cancer_screening")
	require.True(t, ok)
	require.NotNil(t, mammo.Eligibility)
	assert.Equal(t, 40, *mammo.Eligibility.MinAge)
	assert.Equal(t, 74, *mammo.Eligibility.MaxAge)
	assert.Equal(t, domain.GenderRuleFemale, mammo.Eligibility.Gender)
	assert.Equal(t, domain.CoverageCHIBasic, mammo.Eligibility.Coverage)
}

func TestService_ReturnsIndependentCopy(t *testing.T) {
	c := Default()

	first, ok := c.Service("diabetes_screening")
	require.True(t, ok)
	*first.Eligibility.MinAge = 99
	first.Eligibility.Conditions[0] = "mutated"

	second, _ := c.Service("diabetes_screening")
	assert.Equal(t, 35, *second.Eligibility.MinAge)
	assert.Equal(t, "obesity", second.Eligibility.Conditions[0])
}

func TestPrivileges(t *testing.T) {
	c := Default()

	tests := []struct {
		name      string
		specialty string
		found     bool
	}{
		{"exact key", "family_medicine", true},
		{"spaces and case", "Family Medicine", true},
		{"hyphenated", "obstetrics-gynecology", true},
		{"unknown", "astrology", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := c.Privileges(tt.specialty)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.NotEmpty(t, p.Procedures)
			}
		})
	}

	assert.Contains(t, c.Specialties(), "dentistry")
}

func TestParse_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "duplicate sub-limit",
			yaml: `
sub_limits:
  - {id: a, current_limit_sar: 10, min_limit_sar: 1, max_limit_sar: 20}
  - {id: a, current_limit_sar: 10, min_limit_sar: 1, max_limit_sar: 20}
`,
			wantErr: `duplicate sub-limit id "a"`,
		},
		{
			name: "current outside range",
			yaml: `
sub_limits:
  - {id: a, current_limit_sar: 30, min_limit_sar: 1, max_limit_sar: 20}
`,
			wantErr: "outside",
		},
		{
			name: "inverted age bounds",
			yaml: `
services:
  - id: s
    eligibility: {min_age: 50, max_age: 40, coverage: chi_basic}
`,
			wantErr: "min age 50 exceeds max age 40",
		},
		{
			name: "unknown coverage",
			yaml: `
services:
  - id: s
    eligibility: {coverage: private}
`,
			wantErr: "unknown coverage",
		},
		{
			name: "negative exclusion cost",
			yaml: `
exclusions:
  - {id: e, prevalence_per_thousand: 1, potential_cost_sar: -5}
`,
			wantErr: "cannot be negative",
		},
		{
			name:    "malformed yaml",
			yaml:    "sub_limits: [unclosed",
			wantErr: "failed to parse catalog YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
metadata: {version: test, currency: SAR}
exclusions:
  - id: ivf
    name: {ar: "أطفال الأنابيب", en: "IVF"}
    category: Fertility
    prevalence_per_thousand: 25
    potential_cost_sar: 35000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", c.Metadata.Version)

	ivf, ok := c.Exclusion("ivf")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryFertility, ivf.Category)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}
