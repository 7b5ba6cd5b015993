package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fftools/fft/internal/sigdb"
	"github.com/fftools/fft/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func newRequest(t *testing.T, path string) *Request {
	t.Helper()
	req, err := NewRequest(path, 0)
	require.NoError(t, err)
	return req
}

func newFilesystemTier(t *testing.T) *Filesystem {
	t.Helper()
	tables, err := sigdb.Load(nil, nil, nil)
	require.NoError(t, err)
	return NewFilesystem(tables.Extensions)
}

func TestFilesystem_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", []byte("content"))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	tier := newFilesystemTier(t)
	result, matched, err := tier.Classify(newRequest(t, link))
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, "Symbolic link", result.Label)
	assert.Equal(t, types.CategoryFilesystem, result.Category)
}

func TestFilesystem_Directory(t *testing.T) {
	dir := t.TempDir()

	tier := newFilesystemTier(t)
	result, matched, err := tier.Classify(newRequest(t, dir))
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, "Directory", result.Label)
}

func TestFilesystem_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "nothing", nil)

	tier := newFilesystemTier(t)
	result, matched, err := tier.Classify(newRequest(t, path))
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, "Empty file", result.Label)
	assert.Equal(t, types.CategoryFilesystem, result.Category)
}

func TestFilesystem_ExtensionLookup(t *testing.T) {
	dir := t.TempDir()
	tier := newFilesystemTier(t)

	tests := []struct {
		file     string
		expected string
		detail   string
	}{
		{"main.py", "Python source", "extension: .py"},
		{"ARCHIVE.TAR.GZ", "Compressed TAR archive", "extension: .tar.gz"},
		{"notes.md", "Markdown document", "extension: .md"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, []byte("x"))
			result, matched, err := tier.Classify(newRequest(t, path))
			require.NoError(t, err)
			require.True(t, matched)
			assert.Equal(t, tt.expected, result.Label)
			assert.Equal(t, tt.detail, result.Detail)
		})
	}
}

func TestFilesystem_NoMatchIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "README", []byte("hello"))

	tier := newFilesystemTier(t)
	_, matched, err := tier.Classify(newRequest(t, path))
	require.NoError(t, err)
	assert.False(t, matched)
}

// The filesystem tier must decide from metadata and name alone. A file
// whose content carries a PDF signature but whose extension is mapped
// gets the extension answer: tier order is part of the contract.
func TestFilesystem_NeverOpensContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "disguised.py", []byte("%PDF-1.7\nnot python at all"))

	pipe, err := New(Options{})
	require.NoError(t, err)

	result, err := pipe.Classify(path)
	require.NoError(t, err)
	assert.Equal(t, "Python source", result.Label)
	assert.Equal(t, types.CategoryFilesystem, result.Category)
}
