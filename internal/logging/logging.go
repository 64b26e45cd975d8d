// Package logging builds the process logger. Output always goes to stderr:
// stdout is reserved for the MCP stdio channel.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config selects the logger level and encoding.
type Config struct {
	Level  string
	Format string
}

// ValidateConfig reports whether cfg names a known level and format without
// building a logger.
func ValidateConfig(cfg Config) error {
	_, _, err := parse(cfg)
	return err
}

// New creates a zap logger according to cfg. The console format uses the
// development preset; json uses the production preset.
func New(cfg Config) (*zap.Logger, error) {
	level, zc, err := parse(cfg)
	if err != nil {
		return nil, err
	}

	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func parse(cfg Config) (zapcore.Level, zap.Config, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return level, zap.Config{}, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	switch strings.ToLower(cfg.Format) {
	case "", FormatConsole:
		return level, zap.NewDevelopmentConfig(), nil
	case FormatJSON:
		return level, zap.NewProductionConfig(), nil
	default:
		return level, zap.Config{}, fmt.Errorf("unsupported log format %q", cfg.Format)
	}
}
