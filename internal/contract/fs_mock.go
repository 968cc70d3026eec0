package contract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FakeFileSystem is an in-memory FileSystem for tests. Files maps slash
// separated paths to contents; directories are inferred from file paths and
// may be declared explicitly via Dirs for empty folders.
type FakeFileSystem struct {
	Files map[string][]byte
	Dirs  map[string]bool

	// GlobErr, when set, is returned from every Glob call to exercise the
	// fatal glob-failure path.
	GlobErr error
}

var _ FileSystem = (*FakeFileSystem)(nil) // Compile-time check

// NewFakeFileSystem builds a FakeFileSystem from a path->content map.
func NewFakeFileSystem(files map[string][]byte) *FakeFileSystem {
	return &FakeFileSystem{Files: files, Dirs: map[string]bool{}}
}

// ReadFile returns the stored content for path.
func (f *FakeFileSystem) ReadFile(path string) ([]byte, error) {
	data, ok := f.Files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: file does not exist", path)
	}
	return data, nil
}

// Glob matches the pattern against every stored file path.
func (f *FakeFileSystem) Glob(pattern string) ([]string, error) {
	if f.GlobErr != nil {
		return nil, f.GlobErr
	}
	var matches []string
	for p := range f.Files {
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// DirExists reports whether any stored file lives under path, or whether the
// directory was declared explicitly.
func (f *FakeFileSystem) DirExists(path string) (bool, error) {
	if f.Dirs[path] {
		return true, nil
	}
	prefix := strings.TrimSuffix(path, "/") + "/"
	for p := range f.Files {
		if strings.HasPrefix(p, prefix) {
			return true, nil
		}
	}
	return false, nil
}
