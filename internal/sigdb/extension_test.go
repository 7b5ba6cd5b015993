package sigdb

import (
	"testing"

	"github.com/fftools/fft/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtensions(t *testing.T) *ExtensionTable {
	t.Helper()
	table, err := NewExtensionTable([]ExtensionRule{
		{Ext: ".gz", Label: "GZIP archive"},
		{Ext: ".tar.gz", Label: "Compressed TAR archive"},
		{Ext: ".py", Label: "Python source"},
	})
	require.NoError(t, err)
	return table
}

func TestExtensionTable_Lookup(t *testing.T) {
	table := newTestExtensions(t)

	tests := []struct {
		name     string
		file     string
		expected string
		found    bool
	}{
		{"simple extension", "script.py", "Python source", true},
		{"longest suffix wins", "backup.tar.gz", "Compressed TAR archive", true},
		{"short suffix alone", "data.gz", "GZIP archive", true},
		{"case insensitive", "SCRIPT.PY", "Python source", true},
		{"mixed case compound", "Backup.Tar.GZ", "Compressed TAR archive", true},
		{"unknown extension", "file.xyz", "", false},
		{"no extension", "Makefile", "", false},
		{"name equals extension", ".py", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := table.Lookup(tt.file)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, rule.Label)
		})
	}
}

func TestNewExtensionTable_RejectsBadEntries(t *testing.T) {
	tests := []struct {
		name  string
		rules []ExtensionRule
	}{
		{"duplicate extension", []ExtensionRule{
			{Ext: ".py", Label: "Python source"},
			{Ext: ".PY", Label: "Python again"},
		}},
		{"missing dot", []ExtensionRule{{Ext: "py", Label: "Python source"}}},
		{"empty label", []ExtensionRule{{Ext: ".py", Label: ""}}},
		{"bare dot", []ExtensionRule{{Ext: ".", Label: "dot"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtensionTable(tt.rules)
			var dbErr types.InvalidDatabaseError
			require.ErrorAs(t, err, &dbErr)
		})
	}
}
