package interf

import (
	"io"
)

// FileSystem is the narrow capability a backend must provide to list and read files.
// Implementations are adapters for a concrete storage (local disk, RAM, Google Drive, ...).
// All methods must be thread-safe.
type FileSystem interface {

	// Glob expands the pattern against the file system and returns all matching entries
	// (files and directories). The pattern uses the syntax of path.Match for every path segment.
	// If nothing matches, Glob returns nil and NO error.
	// An error is only returned if the storage itself fails.
	Glob(pattern string) ([]File, error)

	// ListChildren returns the direct children of the directory dir in the native listing order
	// of the storage. The order must be deterministic for a fixed file system state.
	ListChildren(dir string) ([]File, error)

	// Open opens a file for sequential reading. The returned handle is positioned at offset 0.
	// The handle may also implement io.Seeker.
	// The connection must be closed manually with Close() after use.
	Open(path string) (io.ReadCloser, error)
}
