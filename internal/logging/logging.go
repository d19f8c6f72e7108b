// Package logging builds the configurable zap logger used across the
// catalog service.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the log encoder.
type Style string

const (
	StyleTerminal Style = "terminal"
	StyleJSON     Style = "json"
	StyleLogfmt   Style = "logfmt"
	StyleNoop     Style = "noop"
)

// Config configures logger construction.
type Config struct {
	Style Style
	Level string // zapcore level name; defaults to "info"
}

// New builds a zap logger for the given config. A nil or zero-value Config
// yields a terminal-style, info-level logger.
func New(c *Config) (*zap.Logger, error) {
	style := StyleTerminal
	level := zapcore.InfoLevel

	if c != nil {
		if c.Style != "" {
			style = c.Style
		}
		if c.Level != "" {
			if lvl, err := zapcore.ParseLevel(c.Level); err == nil {
				level = lvl
			}
		}
	}

	switch style {
	case StyleNoop:
		return zap.NewNop(), nil
	case StyleJSON:
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		return cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	case StyleLogfmt:
		encoderConfig := zapcore.EncoderConfig{
			TimeKey:       "ts",
			LevelKey:      "lvl",
			NameKey:       "logger",
			CallerKey:     "caller",
			MessageKey:    "msg",
			StacktraceKey: "stacktrace",
			LineEnding:    zapcore.DefaultLineEnding,
		}
		core := zapcore.NewCore(NewLogfmtEncoder(encoderConfig), zapcore.AddSync(os.Stderr), level)
		return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)), nil
	case StyleTerminal:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		return cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	default:
		return nil, fmt.Errorf("invalid logging style %q: must be one of terminal, json, logfmt, noop", style)
	}
}
