package interf

import (
	"fmt"
	"os"
)

// NotFoundError is returned if a glob matches nothing or only empty files.
// errors.Is(err, os.ErrNotExist) is true for this error.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return os.ErrNotExist
}

// RemoteError wraps every failure of the file system (glob, list, open, read).
// Op is the failed operation, Path the affected path.
type RemoteError struct {
	Op   string
	Path string
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
