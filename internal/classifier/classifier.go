// Package classifier implements the ordered, short-circuiting
// classification pipeline: filesystem attribute tests, magic-byte
// signature tests, then language content heuristics.
package classifier

import (
	"io"
	"io/fs"
	"os"

	"github.com/fftools/fft/internal/sigdb"
	"github.com/fftools/fft/internal/types"
)

// DefaultMaxReadBytes caps how much of a file the byte-reading tiers may
// consume, bounding per-file cost regardless of file size.
const DefaultMaxReadBytes = 4096

// Options customizes pipeline construction. The pipeline never reads
// configuration files or environment variables; everything is explicit.
type Options struct {
	// MaxReadBytes overrides the content read cap. Zero means default.
	MaxReadBytes int

	// ExtraSignatures are appended after the embedded signature database,
	// preserving built-in registration order.
	ExtraSignatures []sigdb.Signature

	// ExtraLanguageMarkers are appended after the embedded marker table.
	ExtraLanguageMarkers []sigdb.LanguageMarker

	// ExtraExtensions are appended after the embedded extension map.
	ExtraExtensions []sigdb.ExtensionRule
}

// Tier is one classification strategy. Classify returns the result and
// true on a match, the zero FileType and false on an explicit no-match,
// and a non-nil error only for I/O failures on the file itself. Each tier
// stamps its identity on results through the Category field.
type Tier interface {
	Classify(req *Request) (types.FileType, bool, error)
}

// Request carries one file through the pipeline: the path, its lstat
// metadata, and a lazily-read content prefix shared by the byte-reading
// tiers so the file is opened at most once per classification. Read-only
// for the duration of classification; never reused across files.
type Request struct {
	Path         string
	Info         fs.FileInfo
	MaxReadBytes int

	prefix     []byte
	prefixErr  error
	prefixRead bool
}

// NewRequest lstats the path. Symlinks are not followed: the link itself
// is the classification subject.
func NewRequest(path string, maxReadBytes int) (*Request, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, types.PathError(path, err)
	}
	if maxReadBytes <= 0 {
		maxReadBytes = DefaultMaxReadBytes
	}
	return &Request{Path: path, Info: info, MaxReadBytes: maxReadBytes}, nil
}

// NewRequestFromInfo builds a request from metadata the caller already
// holds, sparing a second lstat per file during traversal.
func NewRequestFromInfo(path string, info fs.FileInfo, maxReadBytes int) *Request {
	if maxReadBytes <= 0 {
		maxReadBytes = DefaultMaxReadBytes
	}
	return &Request{Path: path, Info: info, MaxReadBytes: maxReadBytes}
}

// Prefix reads at most MaxReadBytes from the start of the file, once,
// caching the result for subsequent tiers. The file handle is opened,
// read and released within the call, never held across calls.
func (r *Request) Prefix() ([]byte, error) {
	if r.prefixRead {
		return r.prefix, r.prefixErr
	}
	r.prefixRead = true

	f, err := os.Open(r.Path)
	if err != nil {
		r.prefixErr = types.PathError(r.Path, err)
		return nil, r.prefixErr
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, int64(r.MaxReadBytes)))
	if err != nil {
		r.prefixErr = types.PathError(r.Path, err)
		return nil, r.prefixErr
	}
	r.prefix = buf
	return r.prefix, nil
}
