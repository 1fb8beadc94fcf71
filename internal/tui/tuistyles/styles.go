// Package tuistyles holds the lipgloss palette shared by the TUI scenes and components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sehha/chicalc/internal/domain"
)

var (
	ColorPrimary   = lipgloss.Color("#0F766E") // teal
	ColorSecondary = lipgloss.Color("#155E75")
	ColorAccent    = lipgloss.Color("#F59E0B")
	ColorSuccess   = lipgloss.Color("#16A34A")
	ColorDanger    = lipgloss.Color("#DC2626")
	ColorInfo      = lipgloss.Color("#0EA5E9")

	ColorForeground = lipgloss.Color("#E5E7EB")
	ColorMuted      = lipgloss.Color("#6B7280")
	ColorBorder     = lipgloss.Color("#374151")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Bold(true)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo).Italic(true)
)

// DirectionStyle colours a premium direction: increases cost the payer, so they render red
func DirectionStyle(d domain.Direction) lipgloss.Style {
	switch d {
	case domain.DirectionIncrease:
		return lipgloss.NewStyle().Foreground(ColorDanger)
	case domain.DirectionDecrease:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	default:
		return lipgloss.NewStyle().Foreground(ColorMuted)
	}
}

// DirectionIndicator returns an arrow for the direction
func DirectionIndicator(d domain.Direction) string {
	switch d {
	case domain.DirectionIncrease:
		return "▲"
	case domain.DirectionDecrease:
		return "▼"
	default:
		return "●"
	}
}
