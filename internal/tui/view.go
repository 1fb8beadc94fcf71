package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/sehha/chicalc/internal/output"
	"github.com/sehha/chicalc/internal/tui/scenes"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ Loading catalog..."))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue, q to quit", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneSubLimits:
		content = m.subLimitsModel.View()
	case SceneExclusions:
		content = m.exclusionsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar and key help
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		StatusBarStyle.Render(m.help.View(scenes.Keys)),
	))
}

func (m Model) renderTitleBar() string {
	title := "CHI Coverage Impact Calculator"
	if output.IsArabic(m.opts.Lang) {
		title = "حاسبة أثر تغطية مجلس الضمان الصحي"
	}
	subtitle := fmt.Sprintf("%s · %s %d · %s %s",
		m.currentScene,
		output.Label("members", m.opts.Lang), m.opts.MemberCount,
		output.Label("base_premium", m.opts.Lang), output.FormatSAR(m.opts.BasePremiumSAR, m.opts.Lang))
	return lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(title), SubtitleStyle.Render(subtitle))
}

func (m Model) renderHelp() string {
	lines := output.Assumptions(m.opts.Lang)
	body := InfoStyle.Render(output.Label("assumptions", m.opts.Lang))
	for _, l := range lines {
		body += "\n• " + l
	}
	return BorderStyle.Render(body)
}
