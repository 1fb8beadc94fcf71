package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/domain"
)

// CSVFormatter writes the report in long form, one metric per row:
// section,id,metric,value
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var rows [][]string
	add := func(section, id, metric, value string) {
		rows = append(rows, []string{section, id, metric, value})
	}
	addDec := func(section, id, metric string, d decimal.Decimal) {
		add(section, id, metric, d.String())
	}

	rows = append(rows, []string{"section", "id", "metric", "value"})

	if p := report.Portfolio; p != nil {
		for _, i := range p.Impacts {
			addDec("sub_limit", i.SubLimitID, "current_limit_sar", i.CurrentLimitSAR)
			addDec("sub_limit", i.SubLimitID, "new_limit_sar", i.NewLimitSAR)
			addDec("sub_limit", i.SubLimitID, "current_copayment_percent", i.CurrentCopayPercent)
			addDec("sub_limit", i.SubLimitID, "new_copayment_percent", i.NewCopayPercent)
			addDec("sub_limit", i.SubLimitID, "current_utilization", i.CurrentUtilization)
			addDec("sub_limit", i.SubLimitID, "new_utilization", i.NewUtilization)
			addDec("sub_limit", i.SubLimitID, "cost_change_per_thousand", i.CostChangePerThousand)
			addDec("sub_limit", i.SubLimitID, "premium_impact_sar", i.PremiumImpactSAR)
			addDec("sub_limit", i.SubLimitID, "premium_impact_percent", i.PremiumImpactPercent)
			addDec("sub_limit", i.SubLimitID, "annual_impact_sar", i.AnnualImpactSAR)
			add("sub_limit", i.SubLimitID, "direction", string(i.Direction))
		}
		addDec("portfolio", "total", "premium_impact_sar", p.TotalPremiumImpactSAR)
		addDec("portfolio", "total", "premium_impact_percent", p.TotalPremiumImpactPercent)
		addDec("portfolio", "total", "cost_change_per_thousand", p.TotalCostChangePerThousand)
		addDec("portfolio", "total", "new_premium_per_member", p.NewPremiumPerMember)
		add("portfolio", "total", "member_count", intToString(p.MemberCount))
		add("portfolio", "total", "direction", string(p.Direction))
	}

	for _, r := range report.Exclusions {
		addDec("exclusion", r.ExclusionID, "expected_claims_per_thousand", r.ExpectedClaimsPerThousand)
		addDec("exclusion", r.ExclusionID, "gross_cost_increase", r.GrossCostIncrease)
		addDec("exclusion", r.ExclusionID, "net_cost_impact", r.NetCostImpact)
		addDec("exclusion", r.ExclusionID, "loaded_cost", r.LoadedCost)
		addDec("exclusion", r.ExclusionID, "premium_impact_sar", r.PremiumImpactSAR)
		addDec("exclusion", r.ExclusionID, "premium_impact_percent", r.PremiumImpactPercent)
		addDec("exclusion", r.ExclusionID, "pmpm_cost", r.PMPMCost)
		addDec("exclusion", r.ExclusionID, "best_case_annual", r.Sensitivity.BestCase.AnnualPremiumSAR)
		addDec("exclusion", r.ExclusionID, "worst_case_annual", r.Sensitivity.WorstCase.AnnualPremiumSAR)
	}

	for _, r := range report.ServiceCoverage {
		addDec("service", r.ServiceID, "expected_claims_per_thousand", r.ExpectedClaimsPerThousand)
		addDec("service", r.ServiceID, "annual_cost_per_thousand", r.AnnualCostPerThousand)
		addDec("service", r.ServiceID, "risk_loading_factor", r.RiskLoadingFactor)
		addDec("service", r.ServiceID, "additional_premium_per_member", r.AdditionalPremiumPerMember)
		addDec("service", r.ServiceID, "total_impact_percent", r.TotalImpactPercent)
		addDec("service", r.ServiceID, "total_annual_impact_sar", r.TotalAnnualImpactSAR)
	}

	for n, s := range report.Eligibility {
		section := "eligibility"
		if s.Label != "" {
			section += ":" + s.Label
		} else {
			section += ":" + intToString(n)
		}
		for _, r := range s.Results {
			eligible := "false"
			if r.Eligible {
				eligible = "true"
			}
			add(section, r.ServiceID, "eligible", eligible)
			add(section, r.ServiceID, "reason", string(r.Reason))
		}
	}

	for _, i := range report.Sweep {
		id := i.SubLimitID + "@" + i.NewLimitSAR.String()
		addDec("sweep", id, "new_utilization", i.NewUtilization)
		addDec("sweep", id, "premium_impact_sar", i.PremiumImpactSAR)
		addDec("sweep", id, "premium_impact_percent", i.PremiumImpactPercent)
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
