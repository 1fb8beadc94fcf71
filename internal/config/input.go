package config

import (
	"fmt"
	"os"

	"github.com/sehha/chicalc/internal/calculation"
	"github.com/sehha/chicalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct {
	// Catalog, when set, is used to check that every referenced ID exists
	Catalog calculation.Catalog
}

// NewInputParser creates a new input parser that checks references against catalog
func NewInputParser(catalog calculation.Catalog) *InputParser {
	return &InputParser{Catalog: catalog}
}

// LoadFromFile loads a scenario from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario YAML
func (ip *InputParser) Parse(data []byte) (*domain.Scenario, error) {
	var scenario domain.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// ValidateScenario checks a scenario's numbers and references. Gender values
// are normalized in place ("F" becomes "female").
func (ip *InputParser) ValidateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if !scenario.BasePremiumSAR.IsPositive() {
		return fmt.Errorf("base premium must be positive")
	}
	if scenario.MemberCount <= 0 {
		return fmt.Errorf("member count must be positive")
	}
	if len(scenario.SubLimitChanges) == 0 && len(scenario.ExclusionAdditions) == 0 &&
		len(scenario.ServiceCoverage) == 0 && len(scenario.EligibilityChecks) == 0 {
		return fmt.Errorf("scenario %s requests no calculations", scenario.Name)
	}

	for i, change := range scenario.SubLimitChanges {
		if err := ip.validateSubLimitChange(change); err != nil {
			return fmt.Errorf("sub-limit change %d validation failed: %w", i, err)
		}
	}

	for i, excl := range scenario.ExclusionAdditions {
		if err := ip.validateExclusion(excl); err != nil {
			return fmt.Errorf("exclusion addition %d validation failed: %w", i, err)
		}
	}

	for _, id := range scenario.ServiceCoverage {
		if err := ip.requireService(id); err != nil {
			return fmt.Errorf("service coverage: %w", err)
		}
	}

	for i := range scenario.EligibilityChecks {
		if err := ip.validateEligibilityCheck(&scenario.EligibilityChecks[i]); err != nil {
			return fmt.Errorf("eligibility check %d validation failed: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validateSubLimitChange(change domain.SubLimitChangeSpec) error {
	if change.SubLimitID == "" {
		return fmt.Errorf("sub-limit id is required")
	}
	if change.NewLimitSAR == nil && change.NewCopaymentPercent == nil {
		return fmt.Errorf("sub-limit %s: new limit or new copayment is required", change.SubLimitID)
	}
	if change.NewLimitSAR != nil && change.NewLimitSAR.IsNegative() {
		return fmt.Errorf("sub-limit %s: new limit cannot be negative", change.SubLimitID)
	}
	if change.NewCopaymentPercent != nil && !isPercent(*change.NewCopaymentPercent) {
		return fmt.Errorf("sub-limit %s: new copayment must be between 0 and 100", change.SubLimitID)
	}
	if ip.Catalog != nil {
		if _, ok := ip.Catalog.SubLimit(change.SubLimitID); !ok {
			return fmt.Errorf("unknown sub-limit %q", change.SubLimitID)
		}
	}
	return nil
}

func (ip *InputParser) validateExclusion(excl domain.ExclusionSpec) error {
	if excl.ExclusionID == "" {
		return fmt.Errorf("exclusion id is required")
	}
	if excl.UtilizationRate != nil && (excl.UtilizationRate.IsNegative() || excl.UtilizationRate.GreaterThan(one)) {
		return fmt.Errorf("exclusion %s: utilization rate must be between 0 and 1", excl.ExclusionID)
	}
	if excl.PrevalencePerThousand != nil && excl.PrevalencePerThousand.IsNegative() {
		return fmt.Errorf("exclusion %s: prevalence cannot be negative", excl.ExclusionID)
	}
	if excl.AvgTreatmentCostSAR != nil && excl.AvgTreatmentCostSAR.IsNegative() {
		return fmt.Errorf("exclusion %s: treatment cost cannot be negative", excl.ExclusionID)
	}
	if ip.Catalog != nil {
		if _, ok := ip.Catalog.Exclusion(excl.ExclusionID); !ok {
			return fmt.Errorf("unknown exclusion %q", excl.ExclusionID)
		}
	}
	return nil
}

func (ip *InputParser) validateEligibilityCheck(check *domain.EligibilityCheckSpec) error {
	gender, err := domain.ParseGender(string(check.Profile.Gender))
	if err != nil {
		return err
	}
	check.Profile.Gender = gender
	if err := check.Profile.Validate(); err != nil {
		return err
	}
	for _, id := range check.Services {
		if err := ip.requireService(id); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) requireService(id string) error {
	if id == "" {
		return fmt.Errorf("service id is required")
	}
	if ip.Catalog != nil {
		if _, ok := ip.Catalog.Service(id); !ok {
			return fmt.Errorf("unknown service %q", id)
		}
	}
	return nil
}
