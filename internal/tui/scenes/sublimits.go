package scenes

import (
	"fmt"
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
	limitStepFraction = decimal.NewFromFloat(0.05)
	copayStep         = decimal.NewFromInt(5)
	zero              = decimal.Zero
	hundred           = decimal.NewFromInt(100)
)

// SubLimitsModel lets the user pick a sub-limit and move its limit and copayment,
// recomputing the impact on every change
type SubLimitsModel struct {
	subLimits   []domain.SubLimit
	changes     []domain.SubLimitChange
	selected    int
	memberCount int
	basePremium decimal.Decimal
	lang        string
	width       int

	impact    *domain.SubLimitImpact
	portfolio *domain.PortfolioImpact
	err       error
}

// NewSubLimitsModel starts with every sub-limit at its current terms
func NewSubLimitsModel(subLimits []domain.SubLimit, memberCount int, basePremium decimal.Decimal) *SubLimitsModel {
	m := &SubLimitsModel{
		subLimits:   subLimits,
		memberCount: memberCount,
		basePremium: basePremium,
		lang:        "en",
	}
	for _, sl := range subLimits {
		m.changes = append(m.changes, sl.Unchanged())
	}
	m.recalculate()
	return m
}

// SetLang switches display names and number formatting
func (m *SubLimitsModel) SetLang(lang string) { m.lang = lang }

// SetSize updates the scene width
func (m *SubLimitsModel) SetSize(width, _ int) { m.width = width }

// Selected returns the proposed change for the highlighted sub-limit
func (m *SubLimitsModel) Selected() (domain.SubLimitChange, bool) {
	if m.selected < 0 || m.selected >= len(m.changes) {
		return domain.SubLimitChange{}, false
	}
	return m.changes[m.selected], true
}

// Impact returns the impact of the highlighted change
func (m *SubLimitsModel) Impact() *domain.SubLimitImpact { return m.impact }

// Portfolio returns the combined impact of every change made so far
func (m *SubLimitsModel) Portfolio() *domain.PortfolioImpact { return m.portfolio }

// Err returns the last calculation error, if any
func (m *SubLimitsModel) Err() error { return m.err }

// Update handles key presses for the sub-limit scene
func (m *SubLimitsModel) Update(msg tea.Msg) (*SubLimitsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.changes) == 0 {
		return m, nil
	}

	c := &m.changes[m.selected]
	switch {
	case key.Matches(keyMsg, Keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, Keys.Down):
		if m.selected < len(m.changes)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, Keys.Increase):
		c.NewLimitSAR = decimal.Min(c.NewLimitSAR.Add(limitStep(c.SubLimit)), c.SubLimit.MaxLimitSAR)
	case key.Matches(keyMsg, Keys.Decrease):
		c.NewLimitSAR = decimal.Max(c.NewLimitSAR.Sub(limitStep(c.SubLimit)), c.SubLimit.MinLimitSAR)
	case key.Matches(keyMsg, Keys.CopayUp):
		c.NewCopaymentPercent = decimal.Min(c.NewCopaymentPercent.Add(copayStep), hundred)
	case key.Matches(keyMsg, Keys.CopayDown):
		c.NewCopaymentPercent = decimal.Max(c.NewCopaymentPercent.Sub(copayStep), zero)
	case key.Matches(keyMsg, Keys.Reset):
		*c = c.SubLimit.Unchanged()
	default:
		return m, nil
	}

	m.recalculate()
	return m, nil
}

// limitStep is 5% of the sub-limit's allowed range
func limitStep(sl domain.SubLimit) decimal.Decimal {
	return sl.MaxLimitSAR.Sub(sl.MinLimitSAR).Mul(limitStepFraction)
}

func (m *SubLimitsModel) recalculate() {
	m.err = nil
	m.impact = nil
	m.portfolio = nil
	if len(m.changes) == 0 {
		return
	}

	impact, err := calculation.CalculateSubLimitImpact(m.changes[m.selected], m.memberCount, m.basePremium)
	if err != nil {
		m.err = err
		return
	}
	m.impact = &impact

	portfolio, err := calculation.CalculatePortfolioImpact(m.changes, m.memberCount, m.basePremium)
	if err != nil {
		m.err = err
		return
	}
	m.portfolio = &portfolio
}

// View renders the sub-limit list, sliders and impact cards
func (m *SubLimitsModel) View() string {
	if len(m.changes) == 0 {
		return tuistyles.BorderStyle.Render("No sub-limits in catalog")
	}

	var list strings.Builder
	for i, c := range m.changes {
		name := c.SubLimit.Name.In(m.lang)
		marker := "  "
		if !c.NewLimitSAR.Equal(c.SubLimit.CurrentLimitSAR) || !c.NewCopaymentPercent.Equal(c.SubLimit.CopaymentPercent) {
			marker = "* "
		}
		line := marker + name
		if i == m.selected {
			list.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + line))
		} else {
			list.WriteString(tuistyles.UnselectedItemStyle.Render("  " + line))
		}
		list.WriteString("\n")
	}
	left := tuistyles.ActiveBorderStyle.Width(32).Render(strings.TrimRight(list.String(), "\n"))

	c := m.changes[m.selected]
	sar := func(d decimal.Decimal) string { return output.FormatSAR(d, m.lang) }
	pct := func(d decimal.Decimal) string { return output.FormatNumber(d, 0, m.lang) + "%" }

	limit := components.NewParameterSlider(output.Label("new_limit", m.lang),
		c.NewLimitSAR, c.SubLimit.MinLimitSAR, c.SubLimit.MaxLimitSAR, limitStep(c.SubLimit)).
		WithFormat(sar).WithHint("← → " + sar(limitStep(c.SubLimit))).SetFocused(true)
	copay := components.NewParameterSlider(output.Label("copay", m.lang),
		c.NewCopaymentPercent, zero, hundred, copayStep).
		WithFormat(pct).WithHint("[ ] 5%")

	right := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render(c.SubLimit.Name.In(m.lang)),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s: %s · %s: %s",
			output.Label("current_limit", m.lang), sar(c.SubLimit.CurrentLimitSAR),
			output.Label("copay", m.lang), pct(c.SubLimit.CopaymentPercent))),
		"",
		limit.Render(),
		"",
		copay.Render(),
		"",
		m.renderCards(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m *SubLimitsModel) renderCards() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render(m.err.Error())
	}
	if m.impact == nil {
		return ""
	}

	im := m.impact
	cards := []*components.MetricCard{
		components.NewMetricCard(output.Label("premium_impact", m.lang), output.FormatSARCents(im.PremiumImpactSAR, m.lang)).
			WithDirection(im.Direction, output.FormatPercentage(im.PremiumImpactPercent, m.lang)),
		components.NewMetricCard(output.Label("annual", m.lang), output.FormatSAR(im.AnnualImpactSAR, m.lang)).
			WithDescription(output.FormatDirection(im.Direction, m.lang)),
		components.NewMetricCard(output.Label("utilization", m.lang),
			output.FormatNumber(im.NewUtilization.Mul(hundred), 2, m.lang)+"%").
			WithDescription(output.FormatNumber(im.CurrentUtilization.Mul(hundred), 2, m.lang)+"% →"),
	}
	if p := m.portfolio; p != nil {
		cards = append(cards,
			components.NewMetricCard(output.Label("new_premium", m.lang), output.FormatSARCents(p.NewPremiumPerMember, m.lang)).
				WithDirection(p.Direction, output.FormatPercentage(p.TotalPremiumImpactPercent, m.lang)).
				WithDescription(output.Label("total", m.lang)))
	}

	columns := 2
	if m.width >= 120 {
		columns = 4
	}
	return components.MetricGrid(cards, columns)
}
