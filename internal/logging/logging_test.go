package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		level   zapcore.Level
		wantErr bool
	}{
		{"defaults", Config{}, zapcore.InfoLevel, false},
		{"debug console", Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"warn json upper case", Config{Level: "WARN", Format: "JSON"}, zapcore.WarnLevel, false},
		{"bad level", Config{Level: "loud"}, 0, true},
		{"bad format", Config{Format: "xml"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(Config{}))
	assert.NoError(t, ValidateConfig(Config{Level: "Error", Format: "json"}))

	err := ValidateConfig(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")

	err = ValidateConfig(Config{Level: "debug", Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported log format "xml"`)
}
