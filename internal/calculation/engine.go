package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sehha/chicalc/internal/domain"
)

// Logger is the logging surface the engine needs
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Catalog is the read-only reference data the engine resolves scenario IDs against
type Catalog interface {
	SubLimit(id string) (domain.SubLimit, bool)
	Exclusion(id string) (domain.Exclusion, bool)
	Service(id string) (domain.Service, bool)
	PreventiveServices() []domain.Service
}

// Engine evaluates whole scenarios against a catalog
type Engine struct {
	Catalog Catalog
	Logger  Logger
	Debug   bool

	// Now and NewID are replaceable for deterministic reports in tests
	Now   func() time.Time
	NewID func() string
}

// NewEngine creates an engine over the given catalog
func NewEngine(catalog Catalog) *Engine {
	return &Engine{
		Catalog: catalog,
		Logger:  NopLogger{},
		Now:     time.Now,
		NewID:   func() string { return ulid.Make().String() },
	}
}

// SetLogger replaces the engine's logger; nil installs a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ResolveChanges turns scenario change specs into concrete sub-limit changes
func (e *Engine) ResolveChanges(specs []domain.SubLimitChangeSpec) ([]domain.SubLimitChange, error) {
	changes := make([]domain.SubLimitChange, 0, len(specs))
	for _, spec := range specs {
		sl, ok := e.Catalog.SubLimit(spec.SubLimitID)
		if !ok {
			return nil, fmt.Errorf("sub-limit %q: %w", spec.SubLimitID, ErrUnknownReference)
		}
		change := sl.Unchanged()
		if spec.NewLimitSAR != nil {
			change.NewLimitSAR = *spec.NewLimitSAR
		}
		if spec.NewCopaymentPercent != nil {
			change.NewCopaymentPercent = *spec.NewCopaymentPercent
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// Evaluate runs every calculation a scenario asks for and assembles a report
func (e *Engine) Evaluate(ctx context.Context, sc *domain.Scenario) (*domain.Report, error) {
	report := &domain.Report{
		ID:           e.NewID(),
		ScenarioName: sc.Name,
		GeneratedAt:  e.Now().UTC(),
	}
	e.Logger.Infof("evaluating scenario %q (%d members, base premium %s SAR)", sc.Name, sc.MemberCount, sc.BasePremiumSAR)

	if len(sc.SubLimitChanges) > 0 {
		changes, err := e.ResolveChanges(sc.SubLimitChanges)
		if err != nil {
			return nil, err
		}
		portfolio, err := CalculatePortfolioImpact(changes, sc.MemberCount, sc.BasePremiumSAR)
		if err != nil {
			return nil, fmt.Errorf("portfolio: %w", err)
		}
		if e.Debug {
			for _, impact := range portfolio.Impacts {
				e.Logger.Debugf("sub-limit %s: utilization %s -> %s, premium impact %s SAR (%s)",
					impact.SubLimitID, impact.CurrentUtilization, impact.NewUtilization, impact.PremiumImpactSAR, impact.Direction)
			}
		}
		report.Portfolio = &portfolio
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, spec := range sc.ExclusionAdditions {
		result, err := e.evaluateExclusion(spec, sc)
		if err != nil {
			return nil, err
		}
		report.Exclusions = append(report.Exclusions, result)
	}

	for _, id := range sc.ServiceCoverage {
		svc, ok := e.Catalog.Service(id)
		if !ok {
			return nil, fmt.Errorf("service %q: %w", id, ErrUnknownReference)
		}
		result, err := CalculatePremiumImpact(svc, sc.MemberCount, sc.BasePremiumSAR)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", id, err)
		}
		report.ServiceCoverage = append(report.ServiceCoverage, result)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, check := range sc.EligibilityChecks {
		services, err := e.servicesFor(check.Services)
		if err != nil {
			return nil, err
		}
		report.Eligibility = append(report.Eligibility, domain.EligibilityScreening{
			Label:   check.Label,
			Profile: check.Profile,
			Results: ScreenProfile(services, check.Profile),
		})
	}

	e.Logger.Infof("scenario %q evaluated as report %s", sc.Name, report.ID)
	return report, nil
}

func (e *Engine) evaluateExclusion(spec domain.ExclusionSpec, sc *domain.Scenario) (domain.ExclusionImpactResult, error) {
	excl, ok := e.Catalog.Exclusion(spec.ExclusionID)
	if !ok {
		return domain.ExclusionImpactResult{}, fmt.Errorf("exclusion %q: %w", spec.ExclusionID, ErrUnknownReference)
	}

	prevalence := excl.PrevalencePerThousand
	if spec.PrevalencePerThousand != nil {
		prevalence = *spec.PrevalencePerThousand
	}
	cost := excl.PotentialCostSAR
	if spec.AvgTreatmentCostSAR != nil {
		cost = *spec.AvgTreatmentCostSAR
	}
	utilization := DefaultUtilizationRate
	if spec.UtilizationRate != nil {
		utilization = *spec.UtilizationRate
	}

	result, err := PredictExclusionAdditionImpact(prevalence, cost, utilization, sc.BasePremiumSAR)
	if err != nil {
		return result, fmt.Errorf("exclusion %s: %w", excl.ID, err)
	}
	result.ExclusionID = excl.ID
	return result, nil
}

// servicesFor returns the named services, or every preventive service when ids is empty
func (e *Engine) servicesFor(ids []string) ([]domain.Service, error) {
	if len(ids) == 0 {
		return e.Catalog.PreventiveServices(), nil
	}
	services := make([]domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := e.Catalog.Service(id)
		if !ok {
			return nil, fmt.Errorf("service %q: %w", id, ErrUnknownReference)
		}
		services = append(services, svc)
	}
	return services, nil
}
