package classifier

import (
	"github.com/fftools/fft/internal/sigdb"
	"github.com/fftools/fft/internal/types"
)

// Pipeline runs the three tiers in fixed declared order (filesystem,
// magic, language), returning the first match. Tier count and order are
// part of the contract, so the sequence is fixed at construction rather
// than an open-ended registry. A Pipeline holds only immutable tables and
// is safe for concurrent use.
type Pipeline struct {
	tiers        []Tier
	tables       *sigdb.Tables
	maxReadBytes int
}

// New loads and validates the embedded databases, applies the options, and
// builds the pipeline. A malformed database is fatal here: tie-break
// determinism downstream assumes a validated table.
func New(opts Options) (*Pipeline, error) {
	tables, err := sigdb.Load(opts.ExtraSignatures, opts.ExtraLanguageMarkers, opts.ExtraExtensions)
	if err != nil {
		return nil, err
	}
	maxRead := opts.MaxReadBytes
	if maxRead <= 0 {
		maxRead = DefaultMaxReadBytes
	}
	return &Pipeline{
		tiers: []Tier{
			NewFilesystem(tables.Extensions),
			NewMagic(tables.Signatures),
			NewLanguage(tables.Markers),
		},
		tables:       tables,
		maxReadBytes: maxRead,
	}, nil
}

// Tables exposes the loaded lookup tables (read-only).
func (p *Pipeline) Tables() *sigdb.Tables {
	return p.tables
}

// MaxReadBytes reports the content read cap in effect.
func (p *Pipeline) MaxReadBytes() int {
	return p.maxReadBytes
}

// Classify runs the tiers over one path, short-circuiting on the first
// match. All tiers declining is not a failure: the terminal Unknown result
// is returned instead. An I/O error from any tier aborts this file only.
func (p *Pipeline) Classify(path string) (types.FileType, error) {
	req, err := NewRequest(path, p.maxReadBytes)
	if err != nil {
		return types.FileType{}, err
	}
	return p.classify(req)
}

// ClassifyRequest runs the pipeline over an already-built request. The
// walker uses it to reuse the lstat metadata it gathered while traversing.
func (p *Pipeline) ClassifyRequest(req *Request) (types.FileType, error) {
	return p.classify(req)
}

func (p *Pipeline) classify(req *Request) (types.FileType, error) {
	for _, tier := range p.tiers {
		result, matched, err := tier.Classify(req)
		if err != nil {
			return types.FileType{}, err
		}
		if matched {
			return result, nil
		}
	}
	return types.Unknown, nil
}
