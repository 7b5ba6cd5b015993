// Package walker enumerates filesystem trees and drives the classification
// pipeline over every file it finds.
package walker

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fftools/fft/internal/classifier"
	"github.com/fftools/fft/internal/types"
)

// Options controls traversal.
type Options struct {
	// Exclude holds doublestar glob patterns. A pattern matching either a
	// path relative to its root (slash-separated) or a base name prunes
	// that file or subtree before classification.
	Exclude []string
}

// Walk returns a lazy, single-pass sequence of classification results for
// the given root paths. A root that is a regular file is classified
// directly; a directory is traversed depth-first in strict lexicographic
// order, files and subdirectories interleaved in the same sorted pass.
// Symlinks are classified as themselves, never followed, and a visited
// (device, inode) set on directories guarantees termination on cyclic
// links. Per-file failures become Results carrying an error; the walk
// continues with the rest of the tree. Classification of the next file
// does not start until the consumer asks for it, and the sequence cannot
// be restarted once consumed.
func Walk(pipe *classifier.Pipeline, roots []string, opts Options) iter.Seq[types.Result] {
	return func(yield func(types.Result) bool) {
		w := &walker{pipe: pipe, opts: opts, yield: yield}
		for _, root := range roots {
			if !w.walkRoot(root) {
				return
			}
		}
	}
}

type walker struct {
	pipe  *classifier.Pipeline
	opts  Options
	yield func(types.Result) bool
}

func (w *walker) walkRoot(root string) bool {
	info, err := os.Lstat(root)
	if err != nil {
		return w.yield(types.Result{Path: root, Err: types.PathError(root, err)})
	}
	if !info.IsDir() {
		return w.classify(root, info)
	}
	return w.walkTree(root, info)
}

// workItem is one pending entry on the explicit traversal stack. Traversal
// uses a work list rather than call recursion so arbitrarily deep trees
// cannot exhaust the call stack.
type workItem struct {
	path string
	info fs.FileInfo
}

func (w *walker) walkTree(root string, rootInfo fs.FileInfo) bool {
	visited := make(map[devino]bool)
	if id, ok := fileID(rootInfo); ok {
		visited[id] = true
	}

	stack := []workItem{}
	if !w.pushChildren(root, root, &stack) {
		return false
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !item.info.IsDir() {
			if !w.classify(item.path, item.info) {
				return false
			}
			continue
		}

		if id, ok := fileID(item.info); ok {
			if visited[id] {
				continue
			}
			visited[id] = true
		}
		if !w.pushChildren(root, item.path, &stack) {
			return false
		}
	}
	return true
}

// pushChildren lists a directory and pushes its entries in reverse
// lexicographic order, so the stack pops them in ascending order. A
// directory that cannot be listed is recorded as a failed result and the
// traversal moves on.
func (w *walker) pushChildren(root, dir string, stack *[]workItem) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return w.yield(types.Result{Path: dir, Err: types.PathError(dir, err)})
	}

	// os.ReadDir sorts by name; push reversed to preserve that order.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		path := filepath.Join(dir, entry.Name())
		if w.excluded(root, path) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if !w.yield(types.Result{Path: path, Err: types.PathError(path, err)}) {
				return false
			}
			continue
		}
		*stack = append(*stack, workItem{path: path, info: info})
	}
	return true
}

func (w *walker) classify(path string, info fs.FileInfo) bool {
	req := classifier.NewRequestFromInfo(path, info, w.pipe.MaxReadBytes())
	result, err := w.pipe.ClassifyRequest(req)
	return w.yield(types.Result{Path: path, Type: result, Err: err})
}

func (w *walker) excluded(root, path string) bool {
	if len(w.opts.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pattern := range w.opts.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// devino identifies a directory across links and mounts for cycle
// detection.
type devino struct {
	dev uint64
	ino uint64
}

func fileID(info fs.FileInfo) (devino, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return devino{}, false
	}
	return devino{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
