package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sehha/chicalc/internal/catalog"
	"github.com/sehha/chicalc/internal/config"
	"github.com/sehha/chicalc/internal/domain"
)

// loadScenario loads the catalog and a validated scenario file
func loadScenario(cmd *cobra.Command, path string) (*catalog.Catalog, *domain.Scenario, error) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, nil, err
	}
	scenario, err := config.NewInputParser(cat).LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	return cat, scenario, nil
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [scenario-file]",
	Short: "Evaluate every calculation in a scenario file",
	Long: `Evaluates a scenario YAML: sub-limit changes as a portfolio, exclusion additions,
service coverage and eligibility checks.

Examples:
  chicalc evaluate renewal_2025.yaml
  chicalc evaluate renewal_2025.yaml --format html --lang ar > report.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, scenario, err := loadScenario(cmd, args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd, cat)
		if err != nil {
			return err
		}
		report, err := engine.Evaluate(cmd.Context(), scenario)
		if err != nil {
			return err
		}
		return render(cmd, report)
	},
}

var portfolioCmd = &cobra.Command{
	Use:   "portfolio [scenario-file]",
	Short: "Combined premium impact of a scenario's sub-limit changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, scenario, err := loadScenario(cmd, args[0])
		if err != nil {
			return err
		}
		if len(scenario.SubLimitChanges) == 0 {
			return fmt.Errorf("scenario %s has no sub-limit changes", scenario.Name)
		}
		engine, err := newEngine(cmd, cat)
		if err != nil {
			return err
		}

		report, err := engine.Evaluate(cmd.Context(), &domain.Scenario{
			Name:            scenario.Name,
			BasePremiumSAR:  scenario.BasePremiumSAR,
			MemberCount:     scenario.MemberCount,
			SubLimitChanges: scenario.SubLimitChanges,
		})
		if err != nil {
			return err
		}
		return render(cmd, report)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Validate a scenario file against the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, scenario, err := loadScenario(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%s)\n", args[0], scenario.Name)
		return nil
	},
}
