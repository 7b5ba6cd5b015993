package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fftools/fft/internal/classifier"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the classification database",
}

var infoFormat string

var infoDBCmd = &cobra.Command{
	Use:   "db",
	Short: "Summarize the embedded signature and marker tables",
	Run:   runInfoDB,
}

var infoLabelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List every label the detector can produce",
	Run:   runInfoLabels,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.AddCommand(infoDBCmd)
	infoCmd.AddCommand(infoLabelsCmd)
	infoCmd.PersistentFlags().StringVarP(&infoFormat, "format", "f", "text", "Output format: text, json, or yaml")
}

type dbSummary struct {
	Signatures   int `json:"signatures" yaml:"signatures"`
	Markers      int `json:"language_markers" yaml:"language_markers"`
	Extensions   int `json:"extensions" yaml:"extensions"`
	MaxReadBytes int `json:"max_read_bytes" yaml:"max_read_bytes"`
}

func (s dbSummary) ToStructured() interface{} { return s }

func (s dbSummary) ToText(w io.Writer) {
	fmt.Fprintf(w, "Signatures:       %d\n", s.Signatures)
	fmt.Fprintf(w, "Language markers: %d\n", s.Markers)
	fmt.Fprintf(w, "Extensions:       %d\n", s.Extensions)
	fmt.Fprintf(w, "Max read bytes:   %d\n", s.MaxReadBytes)
}

type labelList struct {
	Labels []string `json:"labels" yaml:"labels"`
}

func (l labelList) ToStructured() interface{} { return l }

func (l labelList) ToText(w io.Writer) {
	for _, label := range l.Labels {
		fmt.Fprintln(w, label)
	}
}

func loadPipeline() *classifier.Pipeline {
	pipe, err := classifier.New(classifier.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return pipe
}

func runInfoDB(cmd *cobra.Command, args []string) {
	pipe := loadPipeline()
	tables := pipe.Tables()
	summary := dbSummary{
		Signatures:   tables.Signatures.Len(),
		Markers:      tables.Markers.Len(),
		Extensions:   tables.Extensions.Len(),
		MaxReadBytes: pipe.MaxReadBytes(),
	}
	if err := Output(summary, infoFormat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInfoLabels(cmd *cobra.Command, args []string) {
	pipe := loadPipeline()
	tables := pipe.Tables()

	seen := make(map[string]bool)
	var labels []string
	add := func(label string) {
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	for _, m := range tables.Markers.Markers() {
		add(m.Label)
	}
	for _, label := range tables.Signatures.Labels() {
		add(label)
	}
	for _, label := range tables.Extensions.Labels() {
		add(label)
	}
	sort.Strings(labels)

	if err := Output(labelList{Labels: labels}, infoFormat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
