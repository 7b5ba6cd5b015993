package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fftools/fft/internal/config"
	"github.com/fftools/fft/internal/types"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Record is the serializable form of one classification result.
type Record struct {
	Path     string `json:"path" yaml:"path"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

func toRecord(r types.Result) Record {
	if r.Err != nil {
		return Record{Path: r.Path, Error: errorMarker(r.Err)}
	}
	return Record{
		Path:     r.Path,
		Label:    r.Type.Label,
		Category: string(r.Type.Category),
		Detail:   r.Type.Detail,
	}
}

func errorMarker(err error) string {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return "not found"
	case errors.Is(err, types.ErrIO):
		return "cannot open"
	}
	return err.Error()
}

type palette struct {
	filesystem lipgloss.Style
	magic      lipgloss.Style
	language   lipgloss.Style
	unknown    lipgloss.Style
	errMark    lipgloss.Style
	detail     lipgloss.Style
}

func newPalette(colored bool) palette {
	if !colored {
		plain := lipgloss.NewStyle()
		return palette{plain, plain, plain, plain, plain, plain}
	}
	return palette{
		filesystem: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		magic:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		language:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		unknown:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		errMark:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (p palette) forCategory(c types.Category) lipgloss.Style {
	switch c {
	case types.CategoryFilesystem:
		return p.filesystem
	case types.CategoryMagic:
		return p.magic
	case types.CategoryLanguage:
		return p.language
	}
	return p.unknown
}

// Renderer writes classification results in the configured format. Text
// output streams one line per result as the lazy walk produces them;
// structured formats buffer and emit a single document on Close.
type Renderer struct {
	w        io.Writer
	settings *config.Settings
	colors   palette
	records  []Record
	writeErr error
}

// NewRenderer builds a renderer for the given settings. Color is enabled
// only for text output on a terminal.
func NewRenderer(w io.Writer, settings *config.Settings) *Renderer {
	colored := false
	if f, ok := w.(*os.File); ok && settings.Format == "text" {
		colored = isatty.IsTerminal(f.Fd())
	}
	return &Renderer{
		w:        w,
		settings: settings,
		colors:   newPalette(colored),
	}
}

// Emit renders one result (text) or buffers it (json/yaml).
func (r *Renderer) Emit(result types.Result) {
	if r.settings.Format != "text" {
		r.records = append(r.records, toRecord(result))
		return
	}
	line := r.textLine(result)
	if _, err := fmt.Fprintln(r.w, line); err != nil && r.writeErr == nil {
		r.writeErr = err
	}
}

func (r *Renderer) textLine(result types.Result) string {
	if result.Err != nil {
		return fmt.Sprintf("%s: %s", result.Path, r.colors.errMark.Render("ERROR: "+errorMarker(result.Err)))
	}
	style := r.colors.forCategory(result.Type.Category)
	line := fmt.Sprintf("%s: %s", result.Path, style.Render(result.Type.Label))
	if r.settings.Verbose {
		note := string(result.Type.Category)
		if result.Type.Detail != "" {
			note += ", " + result.Type.Detail
		}
		line += " " + r.colors.detail.Render("["+note+"]")
	}
	return line
}

// Close flushes buffered structured output.
func (r *Renderer) Close() error {
	if r.writeErr != nil {
		return r.writeErr
	}
	switch r.settings.Format {
	case "json":
		data, err := json.MarshalIndent(r.records, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(r.records)
		if err != nil {
			return err
		}
		_, err = r.w.Write(data)
		return err
	}
	return nil
}

// Outputter is implemented by informational commands with structured output.
type Outputter interface {
	// ToStructured returns the data structure for JSON/YAML marshaling
	ToStructured() interface{}
	// ToText writes the human-readable format
	ToText(w io.Writer)
}

// Output renders an Outputter in the requested format to stdout.
func Output(o Outputter, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(o.ToStructured(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(o.ToStructured())
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		o.ToText(os.Stdout)
	}
	return nil
}
