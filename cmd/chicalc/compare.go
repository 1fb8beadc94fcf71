package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sehha/chicalc/internal/compare"
	"github.com/sehha/chicalc/internal/config"
	"github.com/sehha/chicalc/internal/domain"
)

var compareCmd = &cobra.Command{
	Use:   "compare [base-scenario] [alternative...]",
	Short: "Compare alternative scenarios against a base scenario",
	Long: `Evaluates every scenario file and reports each alternative's projected
premium per member against the first (base) scenario.

Examples:
  chicalc compare renewal_2025.yaml cost_containment.yaml
  chicalc compare base.yaml a.yaml b.yaml --format csv`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		parser := config.NewInputParser(cat)
		scenarios := make([]*domain.Scenario, 0, len(args))
		for _, path := range args {
			sc, err := parser.LoadFromFile(path)
			if err != nil {
				return err
			}
			scenarios = append(scenarios, sc)
		}

		engine, err := newEngine(cmd, cat)
		if err != nil {
			return err
		}
		set, err := compare.NewCompareEngine(engine).CompareScenarios(cmd.Context(), scenarios[0], scenarios[1:])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		lang, _ := cmd.Flags().GetString("lang")
		f := compare.GetFormatter(format, lang)
		if f == nil {
			return fmt.Errorf("format %q is not supported for comparisons (valid: console, csv, json)", format)
		}
		data, err := f.Format(set)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
