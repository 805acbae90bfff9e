package pipeline

import (
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Walker lists directories and files on a billy filesystem. Production code
// mounts the real tree with osfs; tests use memfs. Listings are sorted by
// name so repeated runs over unchanged input see identical order.
type Walker struct {
	fsys billy.Filesystem
}

// NewWalker wraps an existing billy filesystem.
func NewWalker(fsys billy.Filesystem) *Walker {
	return &Walker{fsys: fsys}
}

// NewOSWalker mounts the OS filesystem rooted at dir.
func NewOSWalker(dir string) *Walker {
	return &Walker{fsys: osfs.New(dir)}
}

// ListDirs returns the names of subdirectories of dir, sorted.
func (w *Walker) ListDirs(dir string) ([]string, error) {
	entries, err := w.fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ListFiles returns the bare filenames in dir, sorted.
func (w *Walker) ListFiles(dir string) ([]string, error) {
	entries, err := w.fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// ListMatching returns the filenames in dir whose names match any of the
// given doublestar patterns (e.g. "*.{svg,png}").
func (w *Walker) ListMatching(dir string, patterns []string) ([]string, error) {
	files, err := w.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, name := range files {
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			if ok {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched, nil
}

// ReadFile reads a whole file from the walker's filesystem.
func (w *Walker) ReadFile(name string) ([]byte, error) {
	f, err := w.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// WriteFile writes data to name, creating parent directories as needed.
func (w *Walker) WriteFile(name string, data []byte) error {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		if err := w.fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := w.fsys.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Rename moves a file, used for atomic manifest publication.
func (w *Walker) Rename(oldpath, newpath string) error {
	return w.fsys.Rename(oldpath, newpath)
}

// MkdirAll creates a directory tree.
func (w *Walker) MkdirAll(dir string) error {
	return w.fsys.MkdirAll(dir, 0o755)
}

// Exists reports whether the path exists.
func (w *Walker) Exists(name string) bool {
	_, err := w.fsys.Stat(name)
	return err == nil
}
