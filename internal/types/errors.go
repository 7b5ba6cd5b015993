package types

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Per-file failure sentinels. Both are local to the file they occurred on:
// the walker records them against that path and continues the traversal.
var (
	// ErrNotFound means the path does not exist.
	ErrNotFound = errors.New("path does not exist")

	// ErrIO means the path exists but could not be read (permissions,
	// transient I/O failure). Not retried by the engine; callers may
	// re-invoke classification on the same path.
	ErrIO = errors.New("i/o error")
)

// PathError wraps a filesystem error with the path it occurred on and the
// matching sentinel, so callers can test with errors.Is.
func PathError(path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return fmt.Errorf("%s: %w (%v)", path, ErrIO, err)
}

// InvalidDatabaseError reports malformed or duplicate entries found while
// loading the signature or language-marker database. It is fatal at
// startup: the engine refuses to classify with a database whose tie-break
// order cannot be trusted.
type InvalidDatabaseError struct {
	Problems []string
}

func (e InvalidDatabaseError) Error() string {
	switch len(e.Problems) {
	case 0:
		return "invalid database"
	case 1:
		return "invalid database: " + e.Problems[0]
	}
	return "invalid database: " + strings.Join(e.Problems, "; ")
}
