// Package contract provides interfaces and shared utilities for internal architecture.
package contract

// FileSystem defines the filesystem operations the size engine performs.
// This allows the core resolution and measurement logic to be tested without
// touching the real disk.
type FileSystem interface {
	// ReadFile returns the full byte content of the file at path.
	ReadFile(path string) ([]byte, error)

	// Glob expands a glob pattern (doublestar syntax, including '**') into
	// the list of matching file paths.
	Glob(pattern string) ([]string, error)

	// DirExists reports whether path exists and is a directory.
	DirExists(path string) (bool, error)
}

// Compressor computes the compressed length of a payload. Implementations
// must be safe for concurrent use; the calculator invokes them from its
// worker pool.
type Compressor interface {
	// Name identifies the codec in error messages ("gzip", "brotli").
	Name() string

	// CompressedSize returns the compressed byte length of data.
	CompressedSize(data []byte) (int64, error)
}
