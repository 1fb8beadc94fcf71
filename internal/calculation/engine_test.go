package calculation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sehha/chicalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is a map-backed Catalog for engine tests
type fakeCatalog struct {
	subLimits  map[string]domain.SubLimit
	exclusions map[string]domain.Exclusion
	services   map[string]domain.Service
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		subLimits: map[string]domain.SubLimit{
			"dental":  dentalSubLimit(),
			"optical": opticalSubLimit(),
		},
		exclusions: map[string]domain.Exclusion{
			"ivf": {ID: "ivf", Category: domain.CategoryFertility, PrevalencePerThousand: dec("25"), PotentialCostSAR: dec("35000")},
		},
		services: map[string]domain.Service{
			"diabetes_management":     diabetesService(),
			"breast_cancer_screening": mammography(),
			"diabetes_screening":      diabetesScreening(),
		},
	}
}

func (c *fakeCatalog) SubLimit(id string) (domain.SubLimit, bool) {
	s, ok := c.subLimits[id]
	return s, ok
}

func (c *fakeCatalog) Exclusion(id string) (domain.Exclusion, bool) {
	e, ok := c.exclusions[id]
	return e, ok
}

func (c *fakeCatalog) Service(id string) (domain.Service, bool) {
	s, ok := c.services[id]
	return s, ok
}

func (c *fakeCatalog) PreventiveServices() []domain.Service {
	return []domain.Service{mammography(), diabetesScreening()}
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func newTestEngine() *Engine {
	engine := NewEngine(newFakeCatalog())
	engine.Now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	engine.NewID = func() string { return "report-1" }
	return engine
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine(newFakeCatalog())

	assert.NotNil(t, engine.Catalog)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to no-op logger")
	assert.NotEmpty(t, engine.NewID(), "Should generate report IDs")
	assert.NotEqual(t, engine.NewID(), engine.NewID(), "IDs should be unique")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine(newFakeCatalog())

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_ResolveChanges(t *testing.T) {
	engine := newTestEngine()

	changes, err := engine.ResolveChanges([]domain.SubLimitChangeSpec{
		{SubLimitID: "dental", NewLimitSAR: decPtr("4000")},
		{SubLimitID: "optical", NewCopaymentPercent: decPtr("10")},
	})
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assertDecimal(t, "4000", changes[0].NewLimitSAR, "dental limit")
	assertDecimal(t, "20", changes[0].NewCopaymentPercent, "dental copay kept")
	assertDecimal(t, "400", changes[1].NewLimitSAR, "optical limit kept")
	assertDecimal(t, "10", changes[1].NewCopaymentPercent, "optical copay")

	_, err = engine.ResolveChanges([]domain.SubLimitChangeSpec{{SubLimitID: "nope"}})
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestEngine_Evaluate_FullScenario(t *testing.T) {
	engine := newTestEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	scenario := &domain.Scenario{
		Name:           "2025 renewal",
		BasePremiumSAR: dec("5000"),
		MemberCount:    1000,
		SubLimitChanges: []domain.SubLimitChangeSpec{
			{SubLimitID: "dental", NewLimitSAR: decPtr("4000")},
			{SubLimitID: "optical", NewLimitSAR: decPtr("1500")},
		},
		ExclusionAdditions: []domain.ExclusionSpec{{ExclusionID: "ivf"}},
		ServiceCoverage:    []string{"diabetes_management"},
		EligibilityChecks: []domain.EligibilityCheckSpec{
			{Label: "woman 45", Profile: domain.Profile{Age: 45, Gender: domain.GenderFemale}},
			{Label: "targeted", Profile: domain.Profile{Age: 45, Gender: domain.GenderMale}, Services: []string{"diabetes_screening"}},
		},
	}

	report, err := engine.Evaluate(context.Background(), scenario)
	require.NoError(t, err)

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, "2025 renewal", report.ScenarioName)
	assert.Equal(t, 2025, report.GeneratedAt.Year())

	require.NotNil(t, report.Portfolio)
	assertDecimal(t, "100.08", report.Portfolio.TotalPremiumImpactSAR, "portfolio total")

	require.Len(t, report.Exclusions, 1)
	assert.Equal(t, "ivf", report.Exclusions[0].ExclusionID)
	assertDecimal(t, "674", report.Exclusions[0].PremiumImpactSAR, "ivf premium")

	require.Len(t, report.ServiceCoverage, 1)
	assertDecimal(t, "3795", report.ServiceCoverage[0].AdditionalPremiumPerMember, "diabetes premium")

	require.Len(t, report.Eligibility, 2)
	assert.Len(t, report.Eligibility[0].Results, 2, "empty service list screens every preventive service")
	require.Len(t, report.Eligibility[1].Results, 1)
	assert.Equal(t, "diabetes_screening", report.Eligibility[1].Results[0].ServiceID)

	assert.Contains(t, logger.messages, "DEBUG: sub-limit %s: utilization %s -> %s, premium impact %s SAR (%s)")
}

func TestEngine_Evaluate_ExclusionOverrides(t *testing.T) {
	engine := newTestEngine()

	report, err := engine.Evaluate(context.Background(), &domain.Scenario{
		Name:           "ivf at full utilization",
		BasePremiumSAR: dec("5000"),
		MemberCount:    1000,
		ExclusionAdditions: []domain.ExclusionSpec{
			{ExclusionID: "ivf", UtilizationRate: decPtr("0"), PrevalencePerThousand: decPtr("10")},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, report.Portfolio)
	require.Len(t, report.Exclusions, 1)
	assert.True(t, report.Exclusions[0].PremiumImpactSAR.IsZero())
}

func TestEngine_Evaluate_UnknownReferences(t *testing.T) {
	tests := []struct {
		name     string
		scenario domain.Scenario
	}{
		{"sub-limit", domain.Scenario{SubLimitChanges: []domain.SubLimitChangeSpec{{SubLimitID: "x"}}}},
		{"exclusion", domain.Scenario{ExclusionAdditions: []domain.ExclusionSpec{{ExclusionID: "x"}}}},
		{"service coverage", domain.Scenario{ServiceCoverage: []string{"x"}}},
		{"eligibility service", domain.Scenario{EligibilityChecks: []domain.EligibilityCheckSpec{{Services: []string{"x"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := tt.scenario
			sc.Name = tt.name
			sc.BasePremiumSAR = dec("5000")
			sc.MemberCount = 1000

			report, err := newTestEngine().Evaluate(context.Background(), &sc)
			assert.Nil(t, report)
			assert.True(t, errors.Is(err, ErrUnknownReference), "got %v", err)
		})
	}
}

func TestEngine_Evaluate_InvalidInputs(t *testing.T) {
	report, err := newTestEngine().Evaluate(context.Background(), &domain.Scenario{
		Name:            "bad copay",
		BasePremiumSAR:  dec("5000"),
		MemberCount:     1000,
		SubLimitChanges: []domain.SubLimitChangeSpec{{SubLimitID: "dental", NewCopaymentPercent: decPtr("120")}},
	})
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "portfolio")
}

func TestEngine_Evaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestEngine().Evaluate(ctx, &domain.Scenario{
		Name:           "cancelled",
		BasePremiumSAR: dec("5000"),
		MemberCount:    1000,
	})
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}
