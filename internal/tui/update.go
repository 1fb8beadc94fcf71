package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sehha/chicalc/internal/output"
	"github.com/sehha/chicalc/internal/tui/scenes"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.subLimitsModel != nil {
			m.subLimitsModel.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case CatalogLoadedMsg:
		m.loading = false
		m.catalog = msg.Catalog
		m.subLimitsModel = scenes.NewSubLimitsModel(msg.Catalog.SubLimits(), m.opts.MemberCount, m.opts.BasePremiumSAR)
		m.subLimitsModel.SetSize(m.width, m.height)
		m.exclusionsModel = scenes.NewExclusionsModel(msg.Catalog.Exclusions(), m.opts.BasePremiumSAR)
		m.applyLang()
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes global shortcuts before delegating to the scene
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, scenes.Keys.Quit) {
		return m, tea.Quit
	}

	// any key dismisses an error once the catalog is loaded
	if m.err != nil {
		if m.catalog != nil {
			m.err = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, scenes.Keys.Help):
		if m.currentScene == SceneHelp {
			return m.navigate(m.previousScene), nil
		}
		m.help.ShowAll = true
		return m.navigate(SceneHelp), nil

	case msg.String() == "esc":
		if m.currentScene == SceneHelp {
			return m.navigate(m.previousScene), nil
		}

	case key.Matches(msg, scenes.Keys.ToggleLang):
		if output.IsArabic(m.opts.Lang) {
			m.opts.Lang = "en"
		} else {
			m.opts.Lang = "ar"
		}
		m.applyLang()
		return m, nil

	case key.Matches(msg, scenes.Keys.SubLimits):
		return m.navigate(SceneSubLimits), nil

	case key.Matches(msg, scenes.Keys.Exclusions):
		return m.navigate(SceneExclusions), nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) Model {
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	if scene != SceneHelp {
		m.help.ShowAll = false
	}
	return m
}

func (m *Model) applyLang() {
	if m.subLimitsModel != nil {
		m.subLimitsModel.SetLang(m.opts.Lang)
	}
	if m.exclusionsModel != nil {
		m.exclusionsModel.SetLang(m.opts.Lang)
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneSubLimits:
		if m.subLimitsModel != nil {
			m.subLimitsModel, cmd = m.subLimitsModel.Update(msg)
		}
	case SceneExclusions:
		if m.exclusionsModel != nil {
			m.exclusionsModel, cmd = m.exclusionsModel.Update(msg)
		}
	}
	return m, cmd
}
