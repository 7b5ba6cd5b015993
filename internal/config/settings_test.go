package config

import (
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "text", settings.Format)
	assert.False(t, settings.Verbose)
	assert.Empty(t, settings.ExcludePatterns)
	assert.Equal(t, 0, settings.MaxReadBytes)
	assert.Equal(t, slog.LevelError, settings.LogLevel)
	assert.Equal(t, "text", settings.LogFormat)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("FFT_FORMAT", "JSON")
	t.Setenv("FFT_EXCLUDE", "node_modules, *.log ,vendor")
	t.Setenv("FFT_MAX_READ_BYTES", "8192")
	t.Setenv("FFT_VERBOSE", "true")
	t.Setenv("FFT_LOG_LEVEL", "debug")
	t.Setenv("FFT_LOG_FORMAT", "json")

	settings := LoadSettings()

	assert.Equal(t, "json", settings.Format)
	assert.Equal(t, []string{"node_modules", "*.log", "vendor"}, settings.ExcludePatterns)
	assert.Equal(t, 8192, settings.MaxReadBytes)
	assert.True(t, settings.Verbose)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
	assert.Equal(t, "json", settings.LogFormat)
}

func TestLoadSettings_BadEnvValuesIgnored(t *testing.T) {
	t.Setenv("FFT_MAX_READ_BYTES", "not-a-number")
	t.Setenv("FFT_LOG_LEVEL", "shouting")

	settings := LoadSettings()

	assert.Equal(t, 0, settings.MaxReadBytes)
	assert.Equal(t, slog.LevelError, settings.LogLevel)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"ERROR", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestSettings_Validate(t *testing.T) {
	settings := DefaultSettings()
	assert.NoError(t, settings.Validate())

	settings.Format = "xml"
	assert.Error(t, settings.Validate())

	settings = DefaultSettings()
	settings.MaxReadBytes = -1
	assert.Error(t, settings.Validate())
}
