// Package workdir tracks the shell's working folder on an afero file system.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Folder is the shell's current working folder.
type Folder struct {
	fs   afero.Fs
	path string
}

// New creates a folder rooted at path. An empty path means the user's home
// directory.
func New(fs afero.Fs, path string) (*Folder, error) {
	if strings.TrimSpace(path) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = home
	}

	f := &Folder{fs: fs}
	if err := f.Set(path); err != nil {
		return nil, err
	}
	return f, nil
}

// Fs returns the file system the folder lives on.
func (f *Folder) Fs() afero.Fs {
	return f.fs
}

// Path returns the current path.
func (f *Folder) Path() string {
	return f.path
}

// Resolve returns path interpreted relative to the folder.
func (f *Folder) Resolve(path string) string {
	path = normalize(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.path, path)
}

// Set changes the folder to path, which must be an existing directory.
// Relative paths are resolved against the current folder.
func (f *Folder) Set(path string) error {
	target := normalize(path)
	if f.path != "" {
		target = f.Resolve(target)
	}

	info, err := f.fs.Stat(target)
	switch {
	case err != nil:
		return &os.PathError{Op: "cd", Path: target, Err: os.ErrNotExist}
	case !info.IsDir():
		return &os.PathError{Op: "cd", Path: target, Err: fmt.Errorf("not a directory")}
	}

	f.path = target
	return nil
}

// Exists reports whether path, resolved against the folder, exists.
func (f *Folder) Exists(path string) bool {
	ok, err := afero.Exists(f.fs, f.Resolve(path))
	return err == nil && ok
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}
	return filepath.Clean(filepath.FromSlash(path))
}
