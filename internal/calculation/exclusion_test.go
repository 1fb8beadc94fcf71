package calculation

import (
	"testing"

	"github.com/sehha/chicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictExclusionAdditionImpact(t *testing.T) {
	result, err := PredictExclusionAdditionImpact(dec("25"), dec("35000"), dec("0.65"), dec("5000"))
	require.NoError(t, err)

	assertDecimal(t, "16.3", result.ExpectedClaimsPerThousand, "expected claims")
	assertDecimal(t, "568750", result.GrossCostIncrease, "gross cost")
	assertDecimal(t, "8", result.AvoidedCostPercent, "avoided cost percent")
	assertDecimal(t, "523250", result.NetCostImpact, "net cost")
	assertDecimal(t, "673946", result.LoadedCost, "loaded cost")
	assertDecimal(t, "674", result.PremiumImpactSAR, "premium impact")
	assertDecimal(t, "13.48", result.PremiumImpactPercent, "premium percent")
	assertDecimal(t, "56.16", result.PMPMCost, "pmpm")
}

func TestPredictExclusionAdditionImpact_SensitivityBand(t *testing.T) {
	result, err := PredictExclusionAdditionImpact(dec("25"), dec("35000"), dec("0.65"), dec("5000"))
	require.NoError(t, err)

	band := result.Sensitivity
	assertDecimal(t, "0.25", band.VarianceFactor, "variance")

	assertDecimal(t, "505", band.BestCase.AnnualPremiumSAR, "best annual")
	assertDecimal(t, "42.12", band.BestCase.PMPM, "best pmpm")
	assertDecimal(t, "10.11", band.BestCase.ImpactPercent, "best percent")

	assertDecimal(t, "674", band.Expected.AnnualPremiumSAR, "expected annual")
	assertDecimal(t, "56.16", band.Expected.PMPM, "expected pmpm")
	assertDecimal(t, "13.48", band.Expected.ImpactPercent, "expected percent")

	assertDecimal(t, "842", band.WorstCase.AnnualPremiumSAR, "worst annual")
	assertDecimal(t, "70.2", band.WorstCase.PMPM, "worst pmpm")
	assertDecimal(t, "16.85", band.WorstCase.ImpactPercent, "worst percent")

	assert.True(t, band.BestCase.AnnualPremiumSAR.LessThanOrEqual(band.Expected.AnnualPremiumSAR))
	assert.True(t, band.Expected.AnnualPremiumSAR.LessThanOrEqual(band.WorstCase.AnnualPremiumSAR))
}

func TestPredictExclusionAdditionImpact_ZeroUtilization(t *testing.T) {
	result, err := PredictExclusionAdditionImpact(dec("25"), dec("35000"), dec("0"), dec("5000"))
	require.NoError(t, err)

	assert.True(t, result.PremiumImpactSAR.IsZero())
	assert.True(t, result.Sensitivity.WorstCase.AnnualPremiumSAR.IsZero())
}

func TestPredictExclusionAdditionImpact_InvalidInput(t *testing.T) {
	tests := []struct {
		name                         string
		prevalence, cost, util, base string
	}{
		{"negative prevalence", "-1", "35000", "0.65", "5000"},
		{"negative cost", "25", "-1", "0.65", "5000"},
		{"utilization above one", "25", "35000", "65", "5000"},
		{"zero base premium", "25", "35000", "0.65", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PredictExclusionAdditionImpact(dec(tt.prevalence), dec(tt.cost), dec(tt.util), dec(tt.base))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPredictExclusionImpactFor(t *testing.T) {
	ivf := domain.Exclusion{
		ID:                    "ivf",
		Category:              domain.CategoryFertility,
		PrevalencePerThousand: dec("25"),
		PotentialCostSAR:      dec("35000"),
	}

	result, err := PredictExclusionImpactFor(ivf, dec("5000"))
	require.NoError(t, err)
	assert.Equal(t, "ivf", result.ExclusionID)
	assertDecimal(t, "674", result.PremiumImpactSAR, "premium impact")
}
