package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sehha/chicalc/internal/calculation"
	"github.com/sehha/chicalc/internal/domain"
)

var premiumCmd = &cobra.Command{
	Use:   "premium",
	Short: "Premium impact of covering a service",
	Long: `Premium impact of covering a catalog service, or an ad-hoc one given by
--prevalence, --cost and --category.

Examples:
  chicalc premium --service diabetes_management
  chicalc premium --prevalence 185 --cost 24500 --category "Chronic Disease" --lang ar`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		members, base, err := groupFlags(cmd)
		if err != nil {
			return err
		}

		var service domain.Service
		if id, _ := cmd.Flags().GetString("service"); id != "" {
			svc, ok := cat.Service(id)
			if !ok {
				return fmt.Errorf("service %q: %w", id, calculation.ErrUnknownReference)
			}
			service = svc
		} else {
			prevalence, err := decimalFlag(cmd, "prevalence")
			if err != nil {
				return err
			}
			cost, err := decimalFlag(cmd, "cost")
			if err != nil {
				return err
			}
			if prevalence == nil || cost == nil {
				return fmt.Errorf("either --service or both --prevalence and --cost are required")
			}
			category, _ := cmd.Flags().GetString("category")
			service = domain.Service{
				ID:                      "custom",
				Category:                domain.ParseCategory(category),
				PrevalencePerThousand:   *prevalence,
				AverageTreatmentCostSAR: *cost,
			}
		}

		result, err := calculation.CalculatePremiumImpact(service, members, base)
		if err != nil {
			return err
		}
		report := newReport("premium-impact")
		report.ServiceCoverage = []domain.PremiumImpactResult{result}
		return render(cmd, report)
	},
}

var subLimitCmd = &cobra.Command{
	Use:   "sublimit",
	Short: "Premium impact of changing one sub-limit",
	Long: `Premium impact of moving a sub-limit and/or its copayment.

Example:
  chicalc sublimit --id dental --new-limit 4000 --new-copay 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd, cat)
		if err != nil {
			return err
		}
		members, base, err := groupFlags(cmd)
		if err != nil {
			return err
		}

		id, _ := cmd.Flags().GetString("id")
		spec := domain.SubLimitChangeSpec{SubLimitID: id}
		if spec.NewLimitSAR, err = decimalFlag(cmd, "new-limit"); err != nil {
			return err
		}
		if spec.NewCopaymentPercent, err = decimalFlag(cmd, "new-copay"); err != nil {
			return err
		}

		changes, err := engine.ResolveChanges([]domain.SubLimitChangeSpec{spec})
		if err != nil {
			return err
		}
		portfolio, err := calculation.CalculatePortfolioImpact(changes, members, base)
		if err != nil {
			return err
		}
		report := newReport("sub-limit-impact")
		report.Portfolio = &portfolio
		return render(cmd, report)
	},
}

var exclusionCmd = &cobra.Command{
	Use:   "exclusion",
	Short: "Cost of adding an excluded benefit, with a sensitivity band",
	Long: `Projects the premium impact of covering a currently excluded benefit.
Catalog figures can be overridden with --prevalence and --cost.

Examples:
  chicalc exclusion --id ivf
  chicalc exclusion --id bariatric_surgery --utilization 0.4`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd, cat)
		if err != nil {
			return err
		}
		_, base, err := groupFlags(cmd)
		if err != nil {
			return err
		}

		id, _ := cmd.Flags().GetString("id")
		spec := domain.ExclusionSpec{ExclusionID: id}
		if spec.UtilizationRate, err = decimalFlag(cmd, "utilization"); err != nil {
			return err
		}
		if spec.PrevalencePerThousand, err = decimalFlag(cmd, "prevalence"); err != nil {
			return err
		}
		if spec.AvgTreatmentCostSAR, err = decimalFlag(cmd, "cost"); err != nil {
			return err
		}

		report, err := engine.Evaluate(cmd.Context(), &domain.Scenario{
			Name:               "exclusion-impact",
			BasePremiumSAR:     base,
			ExclusionAdditions: []domain.ExclusionSpec{spec},
		})
		if err != nil {
			return err
		}
		return render(cmd, report)
	},
}

var eligibilityCmd = &cobra.Command{
	Use:   "eligibility",
	Short: "Screen a beneficiary for preventive services",
	Long: `Checks a beneficiary's age, gender and conditions against preventive
service rules. Without --service every preventive service is checked.

Example:
  chicalc eligibility --age 52 --gender female --conditions obesity,hypertension`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd, cat)
		if err != nil {
			return err
		}

		age, _ := cmd.Flags().GetInt("age")
		rawGender, _ := cmd.Flags().GetString("gender")
		conditions, _ := cmd.Flags().GetStringSlice("conditions")
		services, _ := cmd.Flags().GetStringSlice("service")

		gender, err := domain.ParseGender(rawGender)
		if err != nil {
			return err
		}
		profile := domain.Profile{Age: age, Gender: gender, Conditions: conditions}
		if err := profile.Validate(); err != nil {
			return err
		}

		report, err := engine.Evaluate(cmd.Context(), &domain.Scenario{
			Name: "eligibility",
			EligibilityChecks: []domain.EligibilityCheckSpec{{
				Profile:  profile,
				Services: services,
			}},
		})
		if err != nil {
			return err
		}
		return render(cmd, report)
	},
}

func init() {
	premiumCmd.Flags().String("service", "", "Catalog service ID")
	premiumCmd.Flags().String("prevalence", "", "Cases per 1000 members (ad-hoc service)")
	premiumCmd.Flags().String("cost", "", "Average annual treatment cost in SAR (ad-hoc service)")
	premiumCmd.Flags().String("category", "other", "Risk category (ad-hoc service)")
	addGroupFlags(premiumCmd)

	subLimitCmd.Flags().String("id", "", "Catalog sub-limit ID (required)")
	subLimitCmd.Flags().String("new-limit", "", "Proposed limit in SAR")
	subLimitCmd.Flags().String("new-copay", "", "Proposed copayment percent")
	_ = subLimitCmd.MarkFlagRequired("id")
	addGroupFlags(subLimitCmd)

	exclusionCmd.Flags().String("id", "", "Catalog exclusion ID (required)")
	exclusionCmd.Flags().String("utilization", "", "Share of prevalent cases that claim, 0 to 1 (default 0.65)")
	exclusionCmd.Flags().String("prevalence", "", "Override cases per 1000 members")
	exclusionCmd.Flags().String("cost", "", "Override average treatment cost in SAR")
	_ = exclusionCmd.MarkFlagRequired("id")
	addGroupFlags(exclusionCmd)

	eligibilityCmd.Flags().Int("age", 0, "Beneficiary age in years")
	eligibilityCmd.Flags().String("gender", "", "Beneficiary gender (male, female)")
	eligibilityCmd.Flags().StringSlice("conditions", nil, "Known conditions, comma separated")
	eligibilityCmd.Flags().StringSlice("service", nil, "Preventive service IDs to check (default: all)")
	_ = eligibilityCmd.MarkFlagRequired("gender")
}
