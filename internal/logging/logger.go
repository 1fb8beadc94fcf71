// Package logging builds the zap loggers used by the CLI, the TUI and the HTTP API.
package logging

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sehha/chicalc/internal/calculation"
)

const defaultLogLevel = "info"

// NewLogger constructs a zap logger emitting structured JSON to stdout. An empty
// level defers to LOG_LEVEL; anything unparseable falls back to info.
func NewLogger(level string) (*zap.Logger, error) {
	text := normalizeLevel(level)
	if text == "" {
		text = normalizeLevel(os.Getenv("LOG_LEVEL"))
	}
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		_ = lvl.UnmarshalText([]byte(defaultLogLevel))
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.MillisDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
	}

	cfg := zap.Config{
		Level:             lvl,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	return cfg.Build()
}

// NewCLILogger returns a human-readable console logger on stderr. Only
// warnings and errors are shown unless debug is set.
func NewCLILogger(debug bool) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !debug
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.TimeKey = ""

	return cfg.Build()
}

// EngineLogger adapts a zap logger to the calculation engine's printf-style Logger
func EngineLogger(logger *zap.Logger) calculation.Logger {
	if logger == nil {
		return calculation.NopLogger{}
	}
	return logger.Sugar()
}

type contextKey struct{}

// WithLogger stores the logger on the context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext retrieves the logger from context, defaulting to a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
