package workdir

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Size returns the total size in bytes of the regular files below root.
// Entries that can't be read are skipped.
func Size(fs afero.Fs, root string) int64 {
	var total int64
	_ = afero.Walk(fs, root, func(_ string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}

// Entry is a single item of a folder listing.
type Entry struct {
	Name  string
	IsDir bool
	Mode  os.FileMode
	Size  int64
}

// List returns the files of path followed by its folders, each group sorted
// by name. When withDirSizes is set folder sizes are computed recursively.
func List(fs afero.Fs, path string, withDirSizes bool) ([]Entry, error) {
	infos, err := afero.ReadDir(fs, path)
	if err != nil {
		return nil, err
	}

	var files, dirs []Entry
	for _, info := range infos {
		if !info.IsDir() {
			files = append(files, Entry{Name: info.Name(), Mode: info.Mode(), Size: info.Size()})
			continue
		}

		entry := Entry{Name: info.Name(), IsDir: true, Mode: info.Mode()}
		if withDirSizes {
			entry.Size = Size(fs, filepath.Join(path, info.Name()))
		}
		dirs = append(dirs, entry)
	}

	return append(files, dirs...), nil
}
