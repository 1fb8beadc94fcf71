package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/calculation"
	"github.com/sehha/chicalc/internal/domain"
	"github.com/sehha/chicalc/internal/output"
	"github.com/sehha/chicalc/internal/tui/components"
	"github.com/sehha/chicalc/internal/tui/tuistyles"
)

var (
	utilizationStep = decimal.NewFromFloat(0.05)
	one             = decimal.NewFromInt(1)
)

// ExclusionsModel projects the cost of covering each excluded benefit at an
// adjustable utilization rate
type ExclusionsModel struct {
	exclusions  []domain.Exclusion
	utilization []decimal.Decimal
	selected    int
	basePremium decimal.Decimal
	lang        string

	result *domain.ExclusionImpactResult
	err    error
}

// NewExclusionsModel starts every exclusion at the default utilization rate
func NewExclusionsModel(exclusions []domain.Exclusion, basePremium decimal.Decimal) *ExclusionsModel {
	m := &ExclusionsModel{
		exclusions:  exclusions,
		basePremium: basePremium,
		lang:        "en",
	}
	for range exclusions {
		m.utilization = append(m.utilization, calculation.DefaultUtilizationRate)
	}
	m.recalculate()
	return m
}

func (m *ExclusionsModel) SetLang(lang string) { m.lang = lang }

// Utilization returns the rate applied to the highlighted exclusion
func (m *ExclusionsModel) Utilization() decimal.Decimal {
	if len(m.utilization) == 0 {
		return decimal.Zero
	}
	return m.utilization[m.selected]
}

// Result returns the projection for the highlighted exclusion
func (m *ExclusionsModel) Result() *domain.ExclusionImpactResult { return m.result }

// Update handles key presses for the exclusions scene
func (m *ExclusionsModel) Update(msg tea.Msg) (*ExclusionsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.exclusions) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, Keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, Keys.Down):
		if m.selected < len(m.exclusions)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, Keys.Increase):
		m.utilization[m.selected] = decimal.Min(m.utilization[m.selected].Add(utilizationStep), one)
	case key.Matches(keyMsg, Keys.Decrease):
		m.utilization[m.selected] = decimal.Max(m.utilization[m.selected].Sub(utilizationStep), zero)
	case key.Matches(keyMsg, Keys.Reset):
		m.utilization[m.selected] = calculation.DefaultUtilizationRate
	default:
		return m, nil
	}

	m.recalculate()
	return m, nil
}

func (m *ExclusionsModel) recalculate() {
	m.result, m.err = nil, nil
	if len(m.exclusions) == 0 {
		return
	}
	ex := m.exclusions[m.selected]
	result, err := calculation.PredictExclusionAdditionImpact(ex.PrevalencePerThousand, ex.PotentialCostSAR, m.utilization[m.selected], m.basePremium)
	if err != nil {
		m.err = err
		return
	}
	result.ExclusionID = ex.ID
	m.result = &result
}

// View renders the exclusion list and its sensitivity band
func (m *ExclusionsModel) View() string {
	if len(m.exclusions) == 0 {
		return tuistyles.BorderStyle.Render("No exclusions in catalog")
	}

	var list strings.Builder
	for i, ex := range m.exclusions {
		if i == m.selected {
			list.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + ex.Name.In(m.lang)))
		} else {
			list.WriteString(tuistyles.UnselectedItemStyle.Render("  " + ex.Name.In(m.lang)))
		}
		list.WriteString("\n")
	}
	left := tuistyles.ActiveBorderStyle.Width(32).Render(strings.TrimRight(list.String(), "\n"))

	ex := m.exclusions[m.selected]
	pct := func(d decimal.Decimal) string { return output.FormatNumber(d.Mul(hundred), 0, m.lang) + "%" }
	slider := components.NewParameterSlider(output.Label("utilization", m.lang),
		m.utilization[m.selected], zero, one, utilizationStep).
		WithFormat(pct).WithHint("← → 5%").SetFocused(true)

	right := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render(ex.Name.In(m.lang)),
		tuistyles.SubtitleStyle.Render(ex.Rationale.In(m.lang)),
		"",
		slider.Render(),
		"",
		m.renderBand(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m *ExclusionsModel) renderBand() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render(m.err.Error())
	}
	if m.result == nil {
		return ""
	}

	band := m.result.Sensitivity
	card := func(label string, sc domain.ScenarioCost) *components.MetricCard {
		return components.NewMetricCard(label, output.FormatSAR(sc.AnnualPremiumSAR, m.lang)).
			WithDirection(calculation.ImpactDirection(sc.AnnualPremiumSAR), output.FormatPercentage(sc.ImpactPercent, m.lang)).
			WithDescription(output.Label("pmpm", m.lang) + " " + output.FormatSARCents(sc.PMPM, m.lang))
	}
	return components.MetricGrid([]*components.MetricCard{
		card(output.Label("best_case", m.lang), band.BestCase),
		card(output.Label("expected", m.lang), band.Expected),
		card(output.Label("worst_case", m.lang), band.WorstCase),
	}, 3)
}
