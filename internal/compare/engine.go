// Package compare evaluates several scenarios and measures each against a base.
package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/sehha/chicalc/internal/domain"
)

// Evaluator runs a full scenario evaluation; *calculation.Engine satisfies it
type Evaluator interface {
	Evaluate(ctx context.Context, sc *domain.Scenario) (*domain.Report, error)
}

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Evaluator         Evaluator
	MetricsCalculator *MetricsCalculator
	Now               func() time.Time
}

func NewCompareEngine(ev Evaluator) *CompareEngine {
	return &CompareEngine{
		Evaluator:         ev,
		MetricsCalculator: NewMetricsCalculator(),
		Now:               time.Now,
	}
}

// CompareScenarios evaluates base and every alternative, in order
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	base *domain.Scenario,
	alternatives []*domain.Scenario,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario is required")
	}

	baseReport, err := ce.Evaluator.Evaluate(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate base scenario %s: %w", base.Name, err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base, baseReport)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := ce.Evaluator.Evaluate(ctx, alt)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate scenario %s: %w", alt.Name, err)
		}
		result := ce.MetricsCalculator.CalculateMetrics(alt, report)
		results = append(results, ce.MetricsCalculator.CalculateComparison(result, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		GeneratedAt:        ce.Now().UTC(),
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}
