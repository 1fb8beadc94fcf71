package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/domain"
)

// ConsoleFormatter renders a report as bordered tables for a terminal
type ConsoleFormatter struct {
	Lang string
}

func (c ConsoleFormatter) Name() string { return "console" }

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	lang := c.Lang

	fmt.Fprintln(&buf, titleStyle.Render(strings.ToUpper(Label("report", lang))))
	if report.ScenarioName != "" {
		fmt.Fprintf(&buf, "%s: %s\n", Label("scenario", lang), report.ScenarioName)
	}
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "%s: %s  (%s)\n", Label("generated", lang), report.GeneratedAt.Format("2006-01-02 15:04 MST"), report.ID)
	}
	fmt.Fprintln(&buf)

	if p := report.Portfolio; p != nil {
		c.writePortfolio(&buf, p)
	}
	if len(report.Exclusions) > 0 {
		c.writeExclusions(&buf, report.Exclusions)
	}
	if len(report.ServiceCoverage) > 0 {
		c.writeCoverage(&buf, report.ServiceCoverage)
	}
	for _, screening := range report.Eligibility {
		c.writeEligibility(&buf, screening)
	}
	if len(report.Sweep) > 0 {
		c.writeSweep(&buf, report.Sweep)
	}

	fmt.Fprintln(&buf, sectionStyle.Render(Label("assumptions", lang)))
	for _, a := range Assumptions(lang) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func newTable(headers ...string) *table.Table {
	return table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
}

func (c ConsoleFormatter) writePortfolio(buf *bytes.Buffer, p *domain.PortfolioImpact) {
	lang := c.Lang
	fmt.Fprintln(buf, sectionStyle.Render(Label("portfolio", lang)))
	fmt.Fprintf(buf, "%s: %s   %s: %d\n", Label("base_premium", lang), FormatSAR(p.BasePremiumSAR, lang), Label("members", lang), p.MemberCount)

	t := newTable(
		Label("sub_limit", lang), Label("current_limit", lang), Label("new_limit", lang), Label("copay", lang),
		Label("utilization", lang), Label("premium_impact", lang), Label("percent", lang), Label("annual", lang), Label("direction", lang),
	)
	for _, i := range p.Impacts {
		name := i.Name.In(lang)
		if name == "" {
			name = i.SubLimitID
		}
		t.Row(
			name,
			FormatSAR(i.CurrentLimitSAR, lang),
			FormatSAR(i.NewLimitSAR, lang),
			fmt.Sprintf("%s%% → %s%%", i.CurrentCopayPercent, i.NewCopayPercent),
			fmt.Sprintf("%s → %s", fraction(i.CurrentUtilization, lang), fraction(i.NewUtilization, lang)),
			FormatSARCents(i.PremiumImpactSAR, lang),
			FormatPercentage(i.PremiumImpactPercent, lang),
			FormatSAR(i.AnnualImpactSAR, lang),
			FormatDirection(i.Direction, lang),
		)
	}
	t.Row(
		Label("total", lang), "", "", "", "",
		FormatSARCents(p.TotalPremiumImpactSAR, lang),
		FormatPercentage(p.TotalPremiumImpactPercent, lang),
		FormatSAR(p.TotalPremiumImpactSAR.Mul(decimal.NewFromInt(int64(p.MemberCount))), lang),
		FormatDirection(p.Direction, lang),
	)
	fmt.Fprintln(buf, t.Render())
	fmt.Fprintf(buf, "%s: %s\n\n", Label("new_premium", lang), FormatSARCents(p.NewPremiumPerMember, lang))
}

func (c ConsoleFormatter) writeExclusions(buf *bytes.Buffer, results []domain.ExclusionImpactResult) {
	lang := c.Lang
	fmt.Fprintln(buf, sectionStyle.Render(Label("exclusions", lang)))

	t := newTable(
		Label("exclusion", lang), Label("expected_claims", lang), Label("loaded_cost", lang),
		Label("premium_impact", lang), Label("percent", lang), Label("pmpm", lang),
		Label("best_case", lang), Label("worst_case", lang),
	)
	for _, r := range results {
		t.Row(
			r.ExclusionID,
			FormatNumber(r.ExpectedClaimsPerThousand, 1, lang),
			FormatSAR(r.LoadedCost, lang),
			FormatSAR(r.PremiumImpactSAR, lang),
			FormatPercentage(r.PremiumImpactPercent, lang),
			FormatSARCents(r.PMPMCost, lang),
			FormatSAR(r.Sensitivity.BestCase.AnnualPremiumSAR, lang),
			FormatSAR(r.Sensitivity.WorstCase.AnnualPremiumSAR, lang),
		)
	}
	fmt.Fprintln(buf, t.Render())
	fmt.Fprintln(buf)
}

func (c ConsoleFormatter) writeCoverage(buf *bytes.Buffer, results []domain.PremiumImpactResult) {
	lang := c.Lang
	fmt.Fprintln(buf, sectionStyle.Render(Label("coverage", lang)))

	t := newTable(
		Label("service", lang), Label("expected_claims", lang), Label("risk_loading", lang),
		Label("premium_impact", lang), Label("percent", lang), Label("annual", lang),
	)
	for _, r := range results {
		t.Row(
			r.ServiceID,
			FormatNumber(r.ExpectedClaimsPerThousand, 1, lang),
			r.RiskLoadingFactor.StringFixed(2),
			FormatSAR(r.AdditionalPremiumPerMember, lang),
			FormatPercentage(r.TotalImpactPercent, lang),
			FormatSAR(r.TotalAnnualImpactSAR, lang),
		)
	}
	fmt.Fprintln(buf, t.Render())
	fmt.Fprintln(buf)
}

func (c ConsoleFormatter) writeEligibility(buf *bytes.Buffer, s domain.EligibilityScreening) {
	lang := c.Lang
	heading := Label("eligibility", lang)
	if s.Label != "" {
		heading += ": " + s.Label
	}
	fmt.Fprintln(buf, sectionStyle.Render(heading))
	fmt.Fprintf(buf, "%s: %d, %s", Label("profile", lang), s.Profile.Age, s.Profile.Gender)
	if len(s.Profile.Conditions) > 0 {
		fmt.Fprintf(buf, ", %s", strings.Join(s.Profile.Conditions, ", "))
	}
	fmt.Fprintln(buf)

	t := newTable(Label("service", lang), Label("eligible", lang), Label("reason", lang), Label("payer", lang))
	for _, r := range s.Results {
		status := Label("eligible", lang)
		if !r.Eligible {
			status = Label("not_eligible", lang)
		}
		t.Row(r.ServiceID, status, ReasonText(r, lang), string(r.Coverage))
	}
	fmt.Fprintln(buf, t.Render())
	fmt.Fprintln(buf)
}

func (c ConsoleFormatter) writeSweep(buf *bytes.Buffer, impacts []domain.SubLimitImpact) {
	lang := c.Lang
	fmt.Fprintln(buf, sectionStyle.Render(Label("sweep", lang)+": "+impacts[0].Name.In(lang)))

	t := newTable(Label("new_limit", lang), Label("utilization", lang), Label("premium_impact", lang), Label("percent", lang), Label("direction", lang))
	for _, i := range impacts {
		t.Row(
			FormatSAR(i.NewLimitSAR, lang),
			fraction(i.NewUtilization, lang),
			FormatSARCents(i.PremiumImpactSAR, lang),
			FormatPercentage(i.PremiumImpactPercent, lang),
			FormatDirection(i.Direction, lang),
		)
	}
	fmt.Fprintln(buf, t.Render())
	fmt.Fprintln(buf)
}

// fraction renders a 0..1 rate as a percentage with two decimals
func fraction(rate decimal.Decimal, lang string) string {
	return FormatNumber(rate.Mul(decimal.NewFromInt(100)), 2, lang) + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }
