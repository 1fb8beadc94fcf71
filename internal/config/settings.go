package config

import (
	"os"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

func isPercent(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}

// Environment variables read by ServerSettingsFromEnv
const (
	EnvAddr       = "CHICALC_ADDR"
	EnvBackendURL = "CHICALC_BACKEND_URL"
	EnvLogLevel   = "LOG_LEVEL"
)

// ServerSettings configures the HTTP API
type ServerSettings struct {
	Addr       string
	BackendURL string
	LogLevel   string
}

// DefaultServerSettings listens on :8080 with no backend
func DefaultServerSettings() ServerSettings {
	return ServerSettings{
		Addr:     ":8080",
		LogLevel: "info",
	}
}

// ServerSettingsFromEnv overlays environment variables on the defaults
func ServerSettingsFromEnv() ServerSettings {
	s := DefaultServerSettings()
	if v := os.Getenv(EnvAddr); v != "" {
		s.Addr = v
	}
	if v := os.Getenv(EnvBackendURL); v != "" {
		s.BackendURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	return s
}
