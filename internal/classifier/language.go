package classifier

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fftools/fft/internal/sigdb"
	"github.com/fftools/fft/internal/types"
)

// Language applies shebang parsing and conjunctive content-pattern
// heuristics to the same bounded prefix the magic tier reads. Content
// that does not decode as UTF-8 within the read budget is an automatic
// no-match, not an error.
type Language struct {
	markers *sigdb.MarkerTable
}

// NewLanguage builds the language tier over the given marker table.
func NewLanguage(markers *sigdb.MarkerTable) *Language {
	return &Language{markers: markers}
}

// Classify tries the shebang branch first: a first line of the form
// "#!/path/to/interpreter" resolves through the interpreter map and wins
// immediately. Otherwise every marker's content patterns are checked
// conjunctively; the marker with the most satisfied patterns wins and ties
// go to registration order. Text with no marker evidence at all falls back
// to a plain "Text file" result when it looks printable.
func (t *Language) Classify(req *Request) (types.FileType, bool, error) {
	prefix, err := req.Prefix()
	if err != nil {
		return types.FileType{}, false, err
	}

	text, ok := decodePrefix(prefix)
	if !ok {
		return types.FileType{}, false, nil
	}

	if interp, shebang := parseShebang(text); shebang {
		if label, known := t.markers.ByInterpreter(interp); known {
			return types.FileType{
				Label:    label,
				Category: types.CategoryLanguage,
				Detail:   "shebang: " + interp,
			}, true, nil
		}
	}

	if marker, matched := bestMarker(t.markers.Markers(), text); matched {
		return types.FileType{
			Label:    marker.Label,
			Category: types.CategoryLanguage,
			Detail:   "content patterns",
		}, true, nil
	}

	if isMostlyPrintable(text) {
		return types.FileType{
			Label:    "Text file",
			Category: types.CategoryLanguage,
		}, true, nil
	}

	return types.FileType{}, false, nil
}

// decodePrefix trims at most a truncated trailing rune from the prefix and
// reports whether what remains is valid UTF-8. Invalid sequences inside
// the budget mean the content is not text.
func decodePrefix(prefix []byte) (string, bool) {
	trimmed := prefix
	for cut := 0; cut < utf8.UTFMax-1 && len(trimmed) > 0; cut++ {
		if utf8.Valid(trimmed) {
			return string(trimmed), true
		}
		// The read cap may have split a multibyte rune at the very end.
		if r, _ := utf8.DecodeLastRune(trimmed); r != utf8.RuneError {
			break
		}
		trimmed = trimmed[:len(trimmed)-1]
	}
	if utf8.Valid(trimmed) {
		return string(trimmed), true
	}
	return "", false
}

// parseShebang extracts the interpreter base name from a "#!" first line,
// resolving "env" indirection ("#!/usr/bin/env python3" -> "python3") and
// skipping env flags like -S.
func parseShebang(text string) (string, bool) {
	line := text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, "#!") {
		return "", false
	}

	fields := strings.Fields(line[2:])
	if len(fields) == 0 {
		return "", false
	}

	interp := path.Base(fields[0])
	if interp == "env" {
		for _, arg := range fields[1:] {
			if strings.HasPrefix(arg, "-") {
				continue
			}
			return path.Base(arg), true
		}
		return "", false
	}
	return interp, true
}

// bestMarker finds the winning content marker: every pattern of a marker
// must occur in the text (conjunctive match), the marker with the most
// patterns wins, and ties resolve by registration order.
func bestMarker(markers []sigdb.LanguageMarker, text string) (sigdb.LanguageMarker, bool) {
	var best sigdb.LanguageMarker
	found := false
	for _, m := range markers {
		if len(m.Patterns) == 0 || !allPatternsPresent(m.Patterns, text) {
			continue
		}
		if !found || len(m.Patterns) > len(best.Patterns) {
			best = m
			found = true
		}
	}
	return best, found
}

func allPatternsPresent(patterns []string, text string) bool {
	for _, p := range patterns {
		if !strings.Contains(text, p) {
			return false
		}
	}
	return true
}

// isMostlyPrintable reports whether the decoded prefix looks like ordinary
// text: no NUL bytes and a high ratio of printable characters.
func isMostlyPrintable(text string) bool {
	if text == "" {
		return false
	}
	total, printable := 0, 0
	for _, r := range text {
		total++
		if r == 0 {
			return false
		}
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return printable*10 >= total*7
}
