package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/sehha/chicalc/internal/domain"
	"github.com/sehha/chicalc/internal/tui/tuistyles"
)

// MetricCard displays a single impact figure with label, value and optional direction
type MetricCard struct {
	Label       string
	Value       string
	Direction   domain.Direction
	Change      string // e.g. "+1.22%"
	Description string
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithDirection attaches a direction arrow and change text
func (m *MetricCard) WithDirection(d domain.Direction, change string) *MetricCard {
	m.Direction = d
	m.Change = change
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)

	if m.Direction != "" {
		style := tuistyles.DirectionStyle(m.Direction)
		content += "\n" + style.Render(fmt.Sprintf("%s %s", tuistyles.DirectionIndicator(m.Direction), m.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid renders cards in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
