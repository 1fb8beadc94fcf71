package compare

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"

	"github.com/sehha/chicalc/internal/output"
)

// Formatter renders a comparison set
type Formatter interface {
	Format(compSet *ComparisonSet) ([]byte, error)
}

// GetFormatter returns the formatter for an output format name, or nil.
// HTML has no comparison layout and is rejected.
func GetFormatter(name, lang string) Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "console", "text", "table":
		return TableFormatter{Lang: lang}
	case "json":
		return JSONFormatter{Pretty: true}
	case "csv":
		return CSVFormatter{}
	}
	return nil
}

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

func (jf JSONFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(compSet, "", "  ")
	}
	return json.Marshal(compSet)
}

// CSVFormatter writes one row per scenario, base first
type CSVFormatter struct{}

var csvHeader = []string{
	"scenario", "type", "member_count", "base_premium_sar",
	"sub_limit_impact_sar", "exclusion_impact_sar", "service_impact_sar",
	"total_impact_sar", "total_impact_percent", "projected_premium_sar", "total_annual_impact_sar",
	"direction", "premium_diff_from_base", "premium_pct_from_base", "annual_diff_from_base",
}

func (cf CSVFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	if compSet.BaseResult != nil {
		if err := w.Write(cf.row(compSet.BaseResult, "base")); err != nil {
			return nil, err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := w.Write(cf.row(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (cf CSVFormatter) row(r *ComparisonResult, kind string) []string {
	return []string{
		r.ScenarioName,
		kind,
		fmt.Sprintf("%d", r.MemberCount),
		r.BasePremiumSAR.StringFixed(2),
		r.SubLimitImpactSAR.StringFixed(2),
		r.ExclusionImpactSAR.StringFixed(2),
		r.ServiceImpactSAR.StringFixed(2),
		r.TotalImpactSAR.StringFixed(2),
		r.TotalImpactPercent.StringFixed(2),
		r.ProjectedPremiumSAR.StringFixed(2),
		r.TotalAnnualImpactSAR.StringFixed(2),
		string(r.Direction),
		r.PremiumDiffFromBase.StringFixed(2),
		r.PremiumPctFromBase.StringFixed(2),
		r.AnnualDiffFromBase.StringFixed(2),
	}
}

// TableFormatter renders a bilingual console table
type TableFormatter struct {
	Lang string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (tf TableFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	lang := tf.Lang
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render(strings.ToUpper(output.Label("comparison", lang))))
	fmt.Fprintf(&buf, "%s: %s\n\n", output.Label("base_scenario", lang), compSet.BaseScenarioName)

	t := table.New().Border(lipgloss.NormalBorder()).Headers(
		output.Label("scenario", lang),
		output.Label("sub_limits", lang),
		output.Label("exclusions", lang),
		output.Label("services", lang),
		output.Label("total", lang),
		output.Label("projected", lang),
		output.Label("vs_base", lang),
	)
	if base := compSet.BaseResult; base != nil {
		t.Row(tf.cells(base, compSet.BaseScenarioName+" *", "")...)
	}
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		delta := output.FormatSARCents(alt.PremiumDiffFromBase, lang) + " (" + output.FormatPercentage(alt.PremiumPctFromBase, lang) + ")"
		t.Row(tf.cells(alt, alt.ScenarioName, delta)...)
	}
	fmt.Fprintln(&buf, t.Render())

	if len(compSet.Recommendations) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render(output.Label("recommendations", lang)))
		for _, rec := range compSet.Recommendations {
			fmt.Fprintf(&buf, "• %s\n", RecommendationText(rec, lang))
		}
	}
	return buf.Bytes(), nil
}

func (tf TableFormatter) cells(r *ComparisonResult, name, delta string) []string {
	lang := tf.Lang
	return []string{
		name,
		output.FormatSARCents(r.SubLimitImpactSAR, lang),
		output.FormatSARCents(r.ExclusionImpactSAR, lang),
		output.FormatSARCents(r.ServiceImpactSAR, lang),
		output.FormatSARCents(r.TotalImpactSAR, lang) + " " + output.FormatDirection(r.Direction, lang),
		output.FormatSARCents(r.ProjectedPremiumSAR, lang),
		delta,
	}
}

// RecommendationText renders a recommendation in the requested language
func RecommendationText(rec Recommendation, lang string) string {
	amount := output.FormatSARCents(rec.DeltaSAR.Abs(), lang)
	ar := output.IsArabic(lang)
	switch rec.Kind {
	case LowestPremium:
		if ar {
			return fmt.Sprintf("أقل قسط: %s بانخفاض %s لكل عضو عن السيناريو الأساسي", rec.ScenarioName, amount)
		}
		return fmt.Sprintf("Lowest premium: %s costs %s less per member than the base scenario", rec.ScenarioName, amount)
	case HighestPremium:
		if ar {
			return fmt.Sprintf("أعلى قسط: %s بزيادة %s لكل عضو عن السيناريو الأساسي", rec.ScenarioName, amount)
		}
		return fmt.Sprintf("Highest premium: %s costs %s more per member than the base scenario", rec.ScenarioName, amount)
	case AllNeutral:
		if ar {
			return "جميع البدائل ضمن ٥ ر.س من السيناريو الأساسي"
		}
		return "Every alternative is within SAR 5 of the base scenario"
	}
	return string(rec.Kind)
}
