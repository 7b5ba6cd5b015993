package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"log/slog"
)

// Settings holds the CLI-layer configuration. The classification engine
// itself never reads environment variables or files; everything it needs
// is passed explicitly at construction time.
type Settings struct {
	// Output settings
	Format  string // "text", "json" or "yaml"
	Verbose bool

	// Traversal behavior
	ExcludePatterns []string
	MaxReadBytes    int // 0 = engine default

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Optional: write logs to file instead of stderr
}

// DefaultSettings returns default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Format:          "text",
		Verbose:         false,
		ExcludePatterns: []string{},
		MaxReadBytes:    0,
		LogLevel:        slog.LevelError,
		LogFormat:       "text",
		LogFile:         "",
	}
}

// LoadSettings creates settings from defaults and applies environment
// variable overrides.
func LoadSettings() *Settings {
	settings := DefaultSettings()

	if format := os.Getenv("FFT_FORMAT"); format != "" {
		settings.Format = strings.ToLower(format)
	}

	if exclude := os.Getenv("FFT_EXCLUDE"); exclude != "" {
		settings.ExcludePatterns = strings.Split(exclude, ",")
		for i, pattern := range settings.ExcludePatterns {
			settings.ExcludePatterns[i] = strings.TrimSpace(pattern)
		}
	}

	if maxRead := os.Getenv("FFT_MAX_READ_BYTES"); maxRead != "" {
		if n, err := strconv.Atoi(maxRead); err == nil && n > 0 {
			settings.MaxReadBytes = n
		}
	}

	if verbose := os.Getenv("FFT_VERBOSE"); verbose != "" {
		settings.Verbose = strings.ToLower(verbose) == "true"
	}

	if logLevel := os.Getenv("FFT_LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}

	if logFormat := os.Getenv("FFT_LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}

	if logFile := os.Getenv("FFT_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	return settings
}

// ParseLogLevel converts a string log level to slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger sets up the logger based on settings.
func (s *Settings) ConfigureLogger() *slog.Logger {
	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{
		Level: s.LogLevel,
	}

	var handler slog.Handler
	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Validate checks if settings are valid.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Format) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format: %s. Valid formats are: text, json, yaml", s.Format)
	}
	if s.MaxReadBytes < 0 {
		return fmt.Errorf("max read bytes must not be negative, got %d", s.MaxReadBytes)
	}
	return nil
}
