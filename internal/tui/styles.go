package tui

import "github.com/sehha/chicalc/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	BorderStyle    = tuistyles.BorderStyle
	ErrorStyle     = tuistyles.ErrorStyle
	InfoStyle      = tuistyles.InfoStyle
	AppStyle       = tuistyles.AppStyle
)
