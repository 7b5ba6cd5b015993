package progress

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fftools/fft/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classified(category types.Category, err error) Event {
	return Event{Type: EventFileClassified, Category: category, Err: err}
}

func TestTracker_Summary(t *testing.T) {
	tracker := NewTracker()
	tracker.Report(Event{Type: EventWalkStart})
	tracker.Report(classified(types.CategoryFilesystem, nil))
	tracker.Report(classified(types.CategoryFilesystem, nil))
	tracker.Report(classified(types.CategoryMagic, nil))
	tracker.Report(classified(types.CategoryNone, nil))
	tracker.Report(classified("", errors.New("permission denied")))
	tracker.Report(Event{Type: EventWalkDone})

	summary := tracker.Summary()
	assert.Contains(t, summary, "5 files in ")
	assert.Contains(t, summary, "2 filesystem")
	assert.Contains(t, summary, "1 magic")
	assert.Contains(t, summary, "1 unknown")
	assert.Contains(t, summary, "1 errors")
	assert.NotContains(t, summary, "language")
}

func TestTracker_ErroredFileNotCounted(t *testing.T) {
	tracker := NewTracker()
	tracker.Report(classified(types.CategoryFilesystem, errors.New("boom")))

	summary := tracker.Summary()
	assert.Contains(t, summary, "1 files")
	assert.Contains(t, summary, "1 errors")
	assert.NotContains(t, summary, "filesystem")
}

func TestCounter_RewritesAndClears(t *testing.T) {
	var buf bytes.Buffer
	counter := NewCounter(&buf)

	counter.Report(Event{Type: EventWalkStart})
	counter.Report(classified(types.CategoryMagic, nil))
	counter.Report(classified("", errors.New("boom")))
	assert.Contains(t, buf.String(), "\rscanning... 1 files (0 errors)")
	assert.Contains(t, buf.String(), "\rscanning... 2 files (1 errors)")

	counter.Report(Event{Type: EventWalkDone})
	assert.Contains(t, buf.String(), "\r\033[K")
}

func TestForTerminal_NonTTYIsNop(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer f.Close()

	assert.IsType(t, Nop{}, ForTerminal(f))
}

func TestMulti_FansOut(t *testing.T) {
	a := NewTracker()
	b := NewTracker()
	Multi{a, b}.Report(classified(types.CategoryLanguage, nil))

	assert.Contains(t, a.Summary(), "1 language")
	assert.Contains(t, b.Summary(), "1 language")
}
