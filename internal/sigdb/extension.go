package sigdb

import (
	"fmt"
	"strings"

	"github.com/fftools/fft/internal/types"
)

// ExtensionRule maps a filename suffix to a label. Suffixes are matched
// case-insensitively and may span multiple dots (".tar.gz").
type ExtensionRule struct {
	Ext   string
	Label string
}

// ExtensionTable is the immutable, ordered extension map used by the
// filesystem tier.
type ExtensionTable struct {
	rules []ExtensionRule
}

// NewExtensionTable builds the table, normalizing extensions to lower case
// and rejecting duplicates and malformed entries.
func NewExtensionTable(rules []ExtensionRule) (*ExtensionTable, error) {
	var problems []string
	seen := make(map[string]bool, len(rules))
	normalized := make([]ExtensionRule, 0, len(rules))
	for _, r := range rules {
		ext := strings.ToLower(r.Ext)
		switch {
		case r.Label == "":
			problems = append(problems, fmt.Sprintf("extension %q with empty label", r.Ext))
			continue
		case ext == "" || !strings.HasPrefix(ext, ".") || ext == ".":
			problems = append(problems, fmt.Sprintf("malformed extension %q for %q", r.Ext, r.Label))
			continue
		case seen[ext]:
			problems = append(problems, fmt.Sprintf("duplicate extension %q", ext))
			continue
		}
		seen[ext] = true
		normalized = append(normalized, ExtensionRule{Ext: ext, Label: r.Label})
	}
	if len(problems) > 0 {
		return nil, types.InvalidDatabaseError{Problems: problems}
	}
	return &ExtensionTable{rules: normalized}, nil
}

// Lookup finds the rule for a file name. The longest matching suffix wins,
// so ".tar.gz" beats ".gz". Matching is case-insensitive.
func (t *ExtensionTable) Lookup(name string) (ExtensionRule, bool) {
	lower := strings.ToLower(name)
	var best ExtensionRule
	found := false
	for _, r := range t.rules {
		if !strings.HasSuffix(lower, r.Ext) {
			continue
		}
		// The extension must follow at least one character of file name:
		// ".gitignore" is a name, not an empty stem with a long suffix.
		if len(lower) == len(r.Ext) {
			continue
		}
		if !found || len(r.Ext) > len(best.Ext) {
			best = r
			found = true
		}
	}
	return best, found
}

// Len returns the number of registered extension rules.
func (t *ExtensionTable) Len() int {
	return len(t.rules)
}

// Labels returns every distinct label in registration order.
func (t *ExtensionTable) Labels() []string {
	seen := make(map[string]bool, len(t.rules))
	var labels []string
	for _, r := range t.rules {
		if !seen[r.Label] {
			seen[r.Label] = true
			labels = append(labels, r.Label)
		}
	}
	return labels
}
