package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/tui/tuistyles"
)

// ParameterSlider displays a bounded decimal value with a visual slider bar
type ParameterSlider struct {
	Label     string
	Value     decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
	Step      decimal.Decimal
	Format    func(decimal.Decimal) string
	Width     int
	IsFocused bool
	Hint      string
}

// NewParameterSlider creates a slider; values print with String unless Format is set
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	return &ParameterSlider{
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: decimal.Decimal.String,
		Width:  30,
	}
}

// WithFormat sets the value formatter
func (p *ParameterSlider) WithFormat(format func(decimal.Decimal) string) *ParameterSlider {
	p.Format = format
	return p
}

// WithHint sets the key hint shown while focused
func (p *ParameterSlider) WithHint(hint string) *ParameterSlider {
	p.Hint = hint
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment raises the value by one step, stopping at Max
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value.Add(p.Step))
}

// Decrement lowers the value by one step, stopping at Min
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value.Sub(p.Step))
}

// SetValue sets the value, clamped to [Min, Max]
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = decimal.Max(p.Min, decimal.Min(p.Max, value))
}

// Fraction returns the position of the value within the range, 0 to 1
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	f, _ := p.Value.Sub(p.Min).Div(span).Float64()
	return f
}

// Render returns the styled slider
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var content strings.Builder
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(p.Format(p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(p.Format(p.Min) + "  ─  " + p.Format(p.Max)))

	if p.IsFocused && p.Hint != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.InfoStyle.Render(p.Hint))
	}
	return content.String()
}

func (p *ParameterSlider) renderBar() string {
	filled := int(float64(p.Width)*p.Fraction() + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}

	thumb := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumb = thumb.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumb.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumb.Render("●"))
	if rest := p.Width - filled; rest > 1 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest-1)))
	}
	bar.WriteString("]")
	return bar.String()
}
