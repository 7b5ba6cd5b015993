package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"log/slog"

	"github.com/fftools/fft/internal/classifier"
	"github.com/fftools/fft/internal/config"
	"github.com/fftools/fft/internal/progress"
	"github.com/fftools/fft/internal/types"
	"github.com/fftools/fft/internal/walker"
	"github.com/spf13/cobra"
)

var settings *config.Settings

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Classify files and directory trees",
	Long: `Scan classifies each given path. Regular files are classified
directly; directories are walked depth-first in lexicographic order and
every file inside is classified. Symbolic links are reported as links,
never followed.

Examples:
  fft scan document.bin
  fft scan /path/to/tree
  fft scan --verbose --exclude node_modules --exclude "*.log" src/
  fft scan --format json /path/to/tree`,
	Run: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Flag defaults come from environment variables (FFT_* prefix)
	settings = config.LoadSettings()

	scanCmd.Flags().StringVarP(&settings.Format, "format", "f", settings.Format, "Output format: text, json, or yaml")
	scanCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Show which tier matched and its evidence")
	scanCmd.Flags().StringSliceVar(&settings.ExcludePatterns, "exclude", settings.ExcludePatterns, "Glob patterns to exclude (can be specified multiple times)")
	scanCmd.Flags().IntVar(&settings.MaxReadBytes, "max-read-bytes", settings.MaxReadBytes, "Cap on bytes read per file (0 = default)")

	scanCmd.Flags().String("log-level", settings.LogLevel.String(), "Log level: debug, info, warn, error")
	scanCmd.Flags().String("log-format", settings.LogFormat, "Log format: text or json")
	scanCmd.Flags().String("log-file", settings.LogFile, "Log file path (default: stderr)")
}

// configureLogging sets up logging based on command flags
func configureLogging(cmd *cobra.Command) *slog.Logger {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	if level, err := config.ParseLogLevel(logLevel); err == nil {
		settings.LogLevel = level
	}
	settings.LogFormat = logFormat
	settings.LogFile = logFile

	return settings.ConfigureLogger()
}

func runScan(cmd *cobra.Command, args []string) {
	logger := configureLogging(cmd)

	if err := settings.Validate(); err != nil {
		logger.Error("Invalid settings", "error", err)
		os.Exit(1)
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for i, root := range roots {
		roots[i] = strings.TrimSpace(root)
	}

	pipe, err := classifier.New(classifier.Options{
		MaxReadBytes: settings.MaxReadBytes,
	})
	if err != nil {
		// A malformed database is fatal: no classification is served
		// until the tie-break order can be trusted.
		logger.Error("Failed to load signature database", "error", err)
		os.Exit(1)
	}

	renderer := NewRenderer(os.Stdout, settings)

	tracker := progress.NewTracker()
	reporter := progress.Multi{tracker}
	if settings.Format != "text" {
		// Structured formats buffer until the walk ends; give interactive
		// users a live counter on stderr in the meantime.
		reporter = append(reporter, progress.ForTerminal(os.Stderr))
	}
	reporter.Report(progress.Event{Type: progress.EventWalkStart})

	anyFailed := false
	for result := range walker.Walk(pipe, roots, walker.Options{Exclude: settings.ExcludePatterns}) {
		if result.Err != nil {
			anyFailed = true
			logger.Warn("Classification failed",
				"path", result.Path,
				"not_found", errors.Is(result.Err, types.ErrNotFound))
		}
		reporter.Report(progress.Event{
			Type:     progress.EventFileClassified,
			Path:     result.Path,
			Category: result.Type.Category,
			Err:      result.Err,
		})
		renderer.Emit(result)
	}
	reporter.Report(progress.Event{Type: progress.EventWalkDone})

	if err := renderer.Close(); err != nil {
		logger.Error("Failed to write output", "error", err)
		os.Exit(1)
	}
	if settings.Verbose {
		fmt.Fprintln(os.Stderr, tracker.Summary())
	}

	// Every path classified (even as unknown) is success; an unreadable
	// path is not.
	if anyFailed {
		os.Exit(1)
	}
}
