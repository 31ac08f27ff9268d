package impl

import (
	"path"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// interface check: interf.File
var _ interf.File = (*_File)(nil)

// @see interf.File
//
// File stands for a single entry of a file system listing.
// File is an immutable object!
type _File struct {
	path    string
	modTime int64
	size    int64
	dir     bool
}

// NewFile return the default implementation of interf.File.
// This encapsulates the given data. Directories always have the size 0.
func NewFile(p string, modTime, size int64, dir bool) interf.File {
	if dir || size < 0 {
		size = 0
	}
	return &_File{
		path:    p,
		modTime: modTime,
		size:    size,
		dir:     dir,
	}
}

// @see interf.File
func (f *_File) Path() string {
	return f.path
}

// @see interf.File
//
// Name is the last element of the path.
// Example: access.log
func (f *_File) Name() string {
	if f.path == "" {
		return ""
	}
	return path.Base(f.path)
}

// @see interf.File
func (f *_File) ModTime() int64 {
	return f.modTime
}

// @see interf.File
func (f *_File) Size() int64 {
	return f.size
}

// @see interf.File
func (f *_File) IsDir() bool {
	return f.dir
}
