package sigdb

import (
	"fmt"

	"github.com/fftools/fft/internal/types"
)

// Signature is one entry in the magic-byte database: a byte pattern that
// must match at a fixed offset from the start of the file.
type Signature struct {
	Label   string
	Offset  int
	Pattern []byte
	// Mask marks which pattern positions are significant; a false entry is
	// a wildcard. A nil mask means every position is significant.
	Mask []bool
}

// Specificity is the number of non-wildcard bytes in the pattern. It is
// always derived from the mask, never stored, so it cannot drift out of
// sync with the pattern.
func (s Signature) Specificity() int {
	if s.Mask == nil {
		return len(s.Pattern)
	}
	n := 0
	for _, significant := range s.Mask {
		if significant {
			n++
		}
	}
	return n
}

// Matches reports whether the signature matches the given file prefix.
// A prefix shorter than Offset+len(Pattern) never matches: there is no
// out-of-bounds match.
func (s Signature) Matches(prefix []byte) bool {
	if len(s.Pattern) == 0 {
		return false
	}
	if len(prefix) < s.Offset+len(s.Pattern) {
		return false
	}
	window := prefix[s.Offset:]
	for i, want := range s.Pattern {
		if s.Mask != nil && !s.Mask[i] {
			continue
		}
		if window[i] != want {
			return false
		}
	}
	return true
}

// key identifies a signature for duplicate detection: the (pattern, offset,
// label) triple, with wildcard positions distinguished from literal bytes.
func (s Signature) key() string {
	masked := make([]byte, 0, len(s.Pattern)*2)
	for i, b := range s.Pattern {
		if s.Mask != nil && !s.Mask[i] {
			masked = append(masked, '?', '?')
			continue
		}
		masked = append(masked, fmt.Sprintf("%02x", b)...)
	}
	return fmt.Sprintf("%s\x00%d\x00%s", s.Label, s.Offset, masked)
}

func (s Signature) validate() error {
	if s.Label == "" {
		return fmt.Errorf("signature with empty label")
	}
	if s.Offset < 0 {
		return fmt.Errorf("signature %q: negative offset %d", s.Label, s.Offset)
	}
	if len(s.Pattern) == 0 {
		return fmt.Errorf("signature %q: empty pattern", s.Label)
	}
	if s.Mask != nil && len(s.Mask) != len(s.Pattern) {
		return fmt.Errorf("signature %q: mask length %d does not match pattern length %d",
			s.Label, len(s.Mask), len(s.Pattern))
	}
	if s.Specificity() == 0 {
		return fmt.Errorf("signature %q: pattern is all wildcards", s.Label)
	}
	return nil
}

// Database is the immutable, ordered table of known binary signatures.
// Built once at startup and read-only afterwards, so concurrent lookups
// need no locking.
type Database struct {
	signatures []Signature
}

// NewDatabase builds a database from signatures in registration order.
// Duplicate (pattern, offset, label) triples are a configuration error,
// not something to deduplicate silently.
func NewDatabase(signatures []Signature) (*Database, error) {
	var problems []string
	seen := make(map[string]int, len(signatures))
	for i, sig := range signatures {
		if err := sig.validate(); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if prev, dup := seen[sig.key()]; dup {
			problems = append(problems, fmt.Sprintf(
				"duplicate signature %q at offset %d (entries %d and %d)",
				sig.Label, sig.Offset, prev, i))
			continue
		}
		seen[sig.key()] = i
	}
	if len(problems) > 0 {
		return nil, types.InvalidDatabaseError{Problems: problems}
	}
	db := &Database{signatures: make([]Signature, len(signatures))}
	copy(db.signatures, signatures)
	return db, nil
}

// Lookup returns every signature matching the prefix, in registration order.
func (db *Database) Lookup(prefix []byte) []Signature {
	var matches []Signature
	for _, sig := range db.signatures {
		if sig.Matches(prefix) {
			matches = append(matches, sig)
		}
	}
	return matches
}

// Best returns the winning signature for the prefix: highest specificity
// first, earliest registration on ties. Deterministic across runs.
func (db *Database) Best(prefix []byte) (Signature, bool) {
	var best Signature
	found := false
	for _, sig := range db.signatures {
		if !sig.Matches(prefix) {
			continue
		}
		// Strictly-greater keeps the earlier registration on ties.
		if !found || sig.Specificity() > best.Specificity() {
			best = sig
			found = true
		}
	}
	return best, found
}

// Len returns the number of registered signatures.
func (db *Database) Len() int {
	return len(db.signatures)
}

// Labels returns every signature label in registration order, with
// duplicates (formats with several signatures) preserved once each.
func (db *Database) Labels() []string {
	seen := make(map[string]bool, len(db.signatures))
	var labels []string
	for _, sig := range db.signatures {
		if !seen[sig.Label] {
			seen[sig.Label] = true
			labels = append(labels, sig.Label)
		}
	}
	return labels
}
