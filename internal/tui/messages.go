package tui

import (
	"github.com/sehha/chicalc/internal/catalog"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSubLimits Scene = iota
	SceneExclusions
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CatalogLoadedMsg signals the benefit catalog is ready
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
}
