package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/catalog"
	"github.com/sehha/chicalc/internal/tui/scenes"
)

// Options configure the group the TUI prices changes for
type Options struct {
	CatalogPath    string // empty uses the embedded catalog
	MemberCount    int
	BasePremiumSAR decimal.Decimal
	Lang           string
}

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	opts    Options
	catalog *catalog.Catalog

	subLimitsModel  *scenes.SubLimitsModel
	exclusionsModel *scenes.ExclusionsModel
	help            help.Model

	err     error
	loading bool
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.MemberCount <= 0 {
		opts.MemberCount = 1000
	}
	if !opts.BasePremiumSAR.IsPositive() {
		opts.BasePremiumSAR = decimal.NewFromInt(5000)
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	return Model{
		currentScene: SceneSubLimits,
		opts:         opts,
		help:         help.New(),
		width:        100,
		height:       30,
		loading:      true,
	}
}

// Init loads the catalog
func (m Model) Init() tea.Cmd {
	return loadCatalogCmd(m.opts.CatalogPath)
}

func loadCatalogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return CatalogLoadedMsg{Catalog: catalog.Default()}
		}
		c, err := catalog.Load(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return CatalogLoadedMsg{Catalog: c}
	}
}

// Lang returns the active display language
func (m Model) Lang() string { return m.opts.Lang }

// CurrentScene returns the scene being shown
func (m Model) CurrentScene() Scene { return m.currentScene }

// SubLimits returns the sub-limit scene, nil until the catalog loads
func (m Model) SubLimits() *scenes.SubLimitsModel { return m.subLimitsModel }

// Exclusions returns the exclusion scene, nil until the catalog loads
func (m Model) Exclusions() *scenes.ExclusionsModel { return m.exclusionsModel }

func (s Scene) String() string {
	switch s {
	case SceneSubLimits:
		return "Sub-limits"
	case SceneExclusions:
		return "Exclusions"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
