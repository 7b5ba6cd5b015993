package classifier

import (
	"io/fs"
	"path/filepath"

	"github.com/fftools/fft/internal/sigdb"
	"github.com/fftools/fft/internal/types"
)

// Filesystem is the cheapest tier: it looks only at metadata and the file
// name, never at content, which is why it runs before any byte-reading
// tier. Its no-match is routine, not an error.
type Filesystem struct {
	extensions *sigdb.ExtensionTable
}

// NewFilesystem builds the filesystem tier over the given extension map.
func NewFilesystem(extensions *sigdb.ExtensionTable) *Filesystem {
	return &Filesystem{extensions: extensions}
}

// Classify checks, in order: special file kind, empty regular file,
// extension map. First hit wins.
func (t *Filesystem) Classify(req *Request) (types.FileType, bool, error) {
	mode := req.Info.Mode()

	if label, special := specialFileLabel(mode); special {
		return types.FileType{
			Label:    label,
			Category: types.CategoryFilesystem,
		}, true, nil
	}

	if req.Info.Size() == 0 {
		return types.FileType{
			Label:    "Empty file",
			Category: types.CategoryFilesystem,
		}, true, nil
	}

	if rule, ok := t.extensions.Lookup(filepath.Base(req.Path)); ok {
		return types.FileType{
			Label:    rule.Label,
			Category: types.CategoryFilesystem,
			Detail:   "extension: " + rule.Ext,
		}, true, nil
	}

	return types.FileType{}, false, nil
}

func specialFileLabel(mode fs.FileMode) (string, bool) {
	switch {
	case mode&fs.ModeSymlink != 0:
		return "Symbolic link", true
	case mode.IsDir():
		return "Directory", true
	case mode&fs.ModeCharDevice != 0:
		return "Character device", true
	case mode&fs.ModeDevice != 0:
		return "Block device", true
	case mode&fs.ModeSocket != 0:
		return "Socket", true
	case mode&fs.ModeNamedPipe != 0:
		return "Named pipe (FIFO)", true
	}
	return "", false
}
