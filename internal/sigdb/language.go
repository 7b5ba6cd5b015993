package sigdb

import (
	"fmt"
	"strings"

	"github.com/fftools/fft/internal/types"
)

// LanguageMarker associates a language label with interpreter names (for
// shebang matching) and/or a conjunctive set of content patterns: the
// marker matches only when every pattern occurs in the text. Single
// keywords are not distinctive enough on their own.
type LanguageMarker struct {
	Label        string
	Interpreters []string
	Patterns     []string
}

func (m LanguageMarker) validate() error {
	if m.Label == "" {
		return fmt.Errorf("language marker with empty label")
	}
	if len(m.Interpreters) == 0 && len(m.Patterns) == 0 {
		return fmt.Errorf("language marker %q has neither interpreters nor content patterns", m.Label)
	}
	for _, p := range m.Patterns {
		if p == "" {
			return fmt.Errorf("language marker %q: empty content pattern", m.Label)
		}
	}
	for _, interp := range m.Interpreters {
		if interp == "" {
			return fmt.Errorf("language marker %q: empty interpreter name", m.Label)
		}
	}
	return nil
}

// MarkerTable is the immutable, ordered table of language markers.
// Registration order is the tie-break of last resort, so it is preserved.
type MarkerTable struct {
	markers []LanguageMarker
}

// NewMarkerTable builds a marker table, rejecting markers that carry no
// evidence at all (no shebang interpreter, no content patterns).
func NewMarkerTable(markers []LanguageMarker) (*MarkerTable, error) {
	var problems []string
	for _, m := range markers {
		if err := m.validate(); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return nil, types.InvalidDatabaseError{Problems: problems}
	}
	t := &MarkerTable{markers: make([]LanguageMarker, len(markers))}
	copy(t.markers, markers)
	return t, nil
}

// ByInterpreter maps a shebang interpreter base name to a language label.
// An exact interpreter name wins; otherwise a trailing version suffix is
// stripped and retried, so "python3" and "python3.12" resolve like
// "python". The earliest-registered marker wins.
func (t *MarkerTable) ByInterpreter(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, candidate := range []string{name, stripVersionSuffix(name)} {
		if candidate == "" {
			continue
		}
		for _, m := range t.markers {
			for _, interp := range m.Interpreters {
				if interp == candidate {
					return m.Label, true
				}
			}
		}
	}
	return "", false
}

// Markers returns the markers in registration order. The returned slice is
// shared and must not be mutated.
func (t *MarkerTable) Markers() []LanguageMarker {
	return t.markers
}

// Len returns the number of registered markers.
func (t *MarkerTable) Len() int {
	return len(t.markers)
}

// stripVersionSuffix removes a trailing version from an interpreter name:
// "python3.12" -> "python", "ruby2" -> "ruby".
func stripVersionSuffix(name string) string {
	return strings.TrimRight(name, "0123456789.")
}
