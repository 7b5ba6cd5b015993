package classifier

import (
	"fmt"

	"github.com/fftools/fft/internal/sigdb"
	"github.com/fftools/fft/internal/types"
)

// Magic matches the bounded content prefix against the signature database.
// Comparisons are positional and value-based on raw bytes; no text
// decoding happens here.
type Magic struct {
	db *sigdb.Database
}

// NewMagic builds the magic tier over the given signature database.
func NewMagic(db *sigdb.Database) *Magic {
	return &Magic{db: db}
}

// Classify reads at most the request's byte cap from the file and asks the
// database for the best match: highest specificity, earliest registration
// on ties. An unopenable file is an I/O error; an unmatched prefix is a
// plain no-match.
func (t *Magic) Classify(req *Request) (types.FileType, bool, error) {
	prefix, err := req.Prefix()
	if err != nil {
		return types.FileType{}, false, err
	}

	sig, ok := t.db.Best(prefix)
	if !ok {
		return types.FileType{}, false, nil
	}
	return types.FileType{
		Label:    sig.Label,
		Category: types.CategoryMagic,
		Detail:   fmt.Sprintf("signature at offset %d", sig.Offset),
	}, true, nil
}
