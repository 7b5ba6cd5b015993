// Package progress reports scan activity. Buffered output formats print
// nothing until the walk finishes, so on large trees a live counter on
// stderr is the only sign of life; the tracker feeds the verbose summary.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fftools/fft/internal/types"
	"github.com/mattn/go-isatty"
)

// EventType represents the type of scan event
type EventType int

const (
	EventWalkStart EventType = iota
	EventFileClassified
	EventWalkDone
)

// Event represents something that happened during a scan
type Event struct {
	Type     EventType
	Path     string
	Category types.Category
	Err      error
}

// Reporter consumes scan events
type Reporter interface {
	Report(event Event)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Report(Event) {}

// Multi fans one event out to several reporters.
type Multi []Reporter

func (m Multi) Report(event Event) {
	for _, r := range m {
		r.Report(event)
	}
}

// Counter writes a single status line, rewritten in place with a
// carriage return and erased when the walk finishes.
type Counter struct {
	w      io.Writer
	mu     sync.Mutex
	files  int
	errors int
}

func NewCounter(w io.Writer) *Counter {
	return &Counter{w: w}
}

// ForTerminal returns a live counter when f is an interactive terminal
// and a no-op reporter otherwise, so redirected stderr stays clean.
func ForTerminal(f *os.File) Reporter {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewCounter(f)
	}
	return Nop{}
}

func (c *Counter) Report(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case EventFileClassified:
		c.files++
		if event.Err != nil {
			c.errors++
		}
		fmt.Fprintf(c.w, "\rscanning... %d files (%d errors)", c.files, c.errors)
	case EventWalkDone:
		fmt.Fprint(c.w, "\r\033[K")
	}
}

// Tracker accumulates per-category counts for the end-of-scan summary.
type Tracker struct {
	mu      sync.Mutex
	counts  map[types.Category]int
	files   int
	errors  int
	started time.Time
	elapsed time.Duration
}

func NewTracker() *Tracker {
	return &Tracker{counts: make(map[types.Category]int)}
}

func (t *Tracker) Report(event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch event.Type {
	case EventWalkStart:
		t.started = time.Now()
	case EventFileClassified:
		t.files++
		if event.Err != nil {
			t.errors++
			return
		}
		t.counts[event.Category]++
	case EventWalkDone:
		if !t.started.IsZero() {
			t.elapsed = time.Since(t.started)
		}
	}
}

// Summary renders a one-line digest, e.g.
// "7 files in 12ms, 3 filesystem, 2 magic, 1 language, 1 unknown".
func (t *Tracker) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "%d files in %s", t.files, t.elapsed.Round(time.Millisecond))

	order := []types.Category{
		types.CategoryFilesystem,
		types.CategoryMagic,
		types.CategoryLanguage,
		types.CategoryNone,
	}
	for _, category := range order {
		n := t.counts[category]
		if n == 0 {
			continue
		}
		name := string(category)
		if category == types.CategoryNone {
			name = "unknown"
		}
		fmt.Fprintf(&b, ", %d %s", n, name)
	}
	if t.errors > 0 {
		fmt.Fprintf(&b, ", %d errors", t.errors)
	}
	return b.String()
}
