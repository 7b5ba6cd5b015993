package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fft",
	Short: "File type detector",
	Long: `fft classifies files by type through an ordered sequence of tests:
filesystem attributes, magic-byte signatures, and language content
heuristics. Given directories it walks them and classifies every file.`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
