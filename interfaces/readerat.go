package interf

import "io"

// ReaderAt allow random read access to a file or a partial file.
// A cache should be used internally for random read access.
// It may also be necessary to open several internal connections to the storage.
//
// ReaderAt extends io.ReaderAt with a Closer. The io.ReaderAt contract applies:
// when ReadAt returns n < len(p), it returns a non-nil error explaining why more
// bytes were not returned. Clients can execute parallel ReadAt calls.
//
// Implementations must not retain p.
type ReaderAt interface {
	io.ReaderAt // ReadAt(p []byte, off int64) (n int, err error)
	io.Closer   // Close() error

	// Stat returns the number of times internal processes have been run since initialization.
	// This method is relevant for testing and debugging purposes.
	// The KEY is the internal process, the VALUE is the count.
	Stat() map[string]uint64
}
