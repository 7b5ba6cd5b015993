package sigdb

import (
	"testing"

	"github.com/fftools/fft/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarkerTable_RejectsEmptyMarker(t *testing.T) {
	_, err := NewMarkerTable([]LanguageMarker{
		{Label: "Mystery language"},
	})
	var dbErr types.InvalidDatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Contains(t, dbErr.Error(), "neither interpreters nor content patterns")
}

func TestNewMarkerTable_RejectsEmptyPattern(t *testing.T) {
	_, err := NewMarkerTable([]LanguageMarker{
		{Label: "Broken", Patterns: []string{"ok", ""}},
	})
	var dbErr types.InvalidDatabaseError
	require.ErrorAs(t, err, &dbErr)
}

func TestMarkerTable_ByInterpreter(t *testing.T) {
	table, err := NewMarkerTable([]LanguageMarker{
		{Label: "Python source", Interpreters: []string{"python"}, Patterns: []string{"import "}},
		{Label: "Shell script", Interpreters: []string{"sh", "bash"}, Patterns: []string{"echo "}},
	})
	require.NoError(t, err)

	tests := []struct {
		interp   string
		expected string
		found    bool
	}{
		{"python", "Python source", true},
		{"python3", "Python source", true},
		{"python3.12", "Python source", true},
		{"bash", "Shell script", true},
		{"sh", "Shell script", true},
		{"cobol", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.interp, func(t *testing.T) {
			label, ok := table.ByInterpreter(tt.interp)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, label)
		})
	}
}

func TestMarkerTable_ByInterpreterRegistrationOrder(t *testing.T) {
	table, err := NewMarkerTable([]LanguageMarker{
		{Label: "first claim", Interpreters: []string{"dual"}},
		{Label: "second claim", Interpreters: []string{"dual"}},
	})
	require.NoError(t, err)

	label, ok := table.ByInterpreter("dual")
	require.True(t, ok)
	assert.Equal(t, "first claim", label)
}
