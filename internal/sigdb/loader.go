package sigdb

import (
	"embed"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fftools/fft/internal/types"
	"github.com/fftools/fft/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed db/*.yaml
var dbFS embed.FS

const (
	signaturesFile = "db/signatures.yaml"
	languagesFile  = "db/languages.yaml"
	extensionsFile = "db/extensions.yaml"
)

// Tables bundles the three immutable lookup tables the classifier tiers
// consume. Built once at startup, read-only for the process lifetime, safe
// for concurrent readers.
type Tables struct {
	Signatures *Database
	Markers    *MarkerTable
	Extensions *ExtensionTable
}

type signatureFile struct {
	Signatures []signatureEntry `yaml:"signatures"`
}

type signatureEntry struct {
	Label   string `yaml:"label"`
	Offset  int    `yaml:"offset"`
	Pattern string `yaml:"pattern"`
}

type markerFile struct {
	Markers []markerEntry `yaml:"markers"`
}

type markerEntry struct {
	Label        string   `yaml:"label"`
	Interpreters []string `yaml:"interpreters"`
	Patterns     []string `yaml:"patterns"`
}

type extensionFile struct {
	Extensions []extensionEntry `yaml:"extensions"`
}

type extensionEntry struct {
	Ext   string `yaml:"ext"`
	Label string `yaml:"label"`
}

// Load builds the lookup tables from the embedded database files, appending
// any extra entries after the built-in ones so built-in registration order
// (and with it tie-break behavior) is stable. Any malformed entry, schema
// violation, or duplicate surfaces as an InvalidDatabaseError.
func Load(extraSigs []Signature, extraMarkers []LanguageMarker, extraExts []ExtensionRule) (*Tables, error) {
	sigs, err := loadSignatures()
	if err != nil {
		return nil, err
	}
	markers, err := loadMarkers()
	if err != nil {
		return nil, err
	}
	exts, err := loadExtensions()
	if err != nil {
		return nil, err
	}

	db, err := NewDatabase(append(sigs, extraSigs...))
	if err != nil {
		return nil, err
	}
	table, err := NewMarkerTable(append(markers, extraMarkers...))
	if err != nil {
		return nil, err
	}
	extTable, err := NewExtensionTable(append(exts, extraExts...))
	if err != nil {
		return nil, err
	}

	return &Tables{Signatures: db, Markers: table, Extensions: extTable}, nil
}

func loadSignatures() ([]Signature, error) {
	content, err := dbFS.ReadFile(signaturesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", signaturesFile, err)
	}
	if err := validation.ValidateYAML("signatures.schema.json", content); err != nil {
		return nil, types.InvalidDatabaseError{Problems: []string{err.Error()}}
	}

	var file signatureFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, types.InvalidDatabaseError{Problems: []string{err.Error()}}
	}

	sigs := make([]Signature, 0, len(file.Signatures))
	for _, entry := range file.Signatures {
		pattern, mask, err := ParsePattern(entry.Pattern)
		if err != nil {
			return nil, types.InvalidDatabaseError{Problems: []string{
				fmt.Sprintf("signature %q: %v", entry.Label, err),
			}}
		}
		sigs = append(sigs, Signature{
			Label:   entry.Label,
			Offset:  entry.Offset,
			Pattern: pattern,
			Mask:    mask,
		})
	}
	return sigs, nil
}

func loadMarkers() ([]LanguageMarker, error) {
	content, err := dbFS.ReadFile(languagesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", languagesFile, err)
	}
	if err := validation.ValidateYAML("languages.schema.json", content); err != nil {
		return nil, types.InvalidDatabaseError{Problems: []string{err.Error()}}
	}

	var file markerFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, types.InvalidDatabaseError{Problems: []string{err.Error()}}
	}

	markers := make([]LanguageMarker, 0, len(file.Markers))
	for _, entry := range file.Markers {
		markers = append(markers, LanguageMarker{
			Label:        entry.Label,
			Interpreters: entry.Interpreters,
			Patterns:     entry.Patterns,
		})
	}
	return markers, nil
}

func loadExtensions() ([]ExtensionRule, error) {
	content, err := dbFS.ReadFile(extensionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", extensionsFile, err)
	}
	if err := validation.ValidateYAML("extensions.schema.json", content); err != nil {
		return nil, types.InvalidDatabaseError{Problems: []string{err.Error()}}
	}

	var file extensionFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, types.InvalidDatabaseError{Problems: []string{err.Error()}}
	}

	rules := make([]ExtensionRule, 0, len(file.Extensions))
	for _, entry := range file.Extensions {
		rules = append(rules, ExtensionRule{Ext: entry.Ext, Label: entry.Label})
	}
	return rules, nil
}

// ParsePattern decodes the database pattern syntax: hex byte values
// separated by single spaces, with "??" marking a wildcard position.
// "52 49 46 46 ?? ?? ?? ?? 57 41 56 45" is RIFF....WAVE.
func ParsePattern(s string) (pattern []byte, mask []bool, err error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("empty pattern")
	}
	pattern = make([]byte, len(fields))
	mask = make([]bool, len(fields))
	wildcards := false
	for i, f := range fields {
		if f == "??" {
			wildcards = true
			continue
		}
		b, decErr := hex.DecodeString(f)
		if decErr != nil || len(b) != 1 {
			return nil, nil, fmt.Errorf("bad pattern byte %q", f)
		}
		pattern[i] = b[0]
		mask[i] = true
	}
	if !wildcards {
		mask = nil
	}
	return pattern, mask, nil
}
