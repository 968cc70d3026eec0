package contract

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// OSFileSystem is the production FileSystem backed by the real disk.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{} // Compile-time check

// NewOSFileSystem returns a FileSystem reading from the local disk.
func NewOSFileSystem() FileSystem {
	return OSFileSystem{}
}

// ReadFile returns the full byte content of the file at path.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Glob expands a doublestar pattern against the local disk. Matches that are
// directories are filtered out; callers only ever measure regular files.
func (OSFileSystem) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// DirExists reports whether path exists and is a directory.
func (OSFileSystem) DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
