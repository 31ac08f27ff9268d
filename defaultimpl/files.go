package impl

import (
	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// interface check: interf.Files
var _ interf.Files = (*_Files)(nil)

// @see interf.Files
//
// Files is an ordered list of files.
// Files and File are immutable objects!
type _Files struct {
	byPath map[string]interf.File // this map is never nil (see NewFiles)
	list   []interf.File          // listing order
	total  int64
}

// NewFiles return the default implementation of interf.Files.
// The order of the list is preserved. nil elements are ignored.
// If a path occurs several times, only the first entry is used for ByPath().
func NewFiles(list []interf.File) interf.Files {
	byPath := make(map[string]interf.File, len(list))
	clean := make([]interf.File, 0, len(list))
	var total int64

	for _, f := range list {
		if f == nil { // ignore nil elements
			continue
		}
		clean = append(clean, f)
		total += f.Size()
		if _, ok := byPath[f.Path()]; !ok {
			byPath[f.Path()] = f
		}
	}

	return &_Files{
		byPath: byPath,
		list:   clean,
		total:  total,
	}
}

// @see interf.Files
//
// All returns all files in listing order.
// The list is created with every call and can be changed safely.
func (fs *_Files) All() []interf.File {
	// return clone, not the inner list!
	list := make([]interf.File, len(fs.list))
	copy(list, fs.list)
	return list
}

// @see interf.Files
func (fs *_Files) ByPath(path string) (interf.File, error) {
	return FileByPath(fs.byPath, path) // redirect to FileByPath
}

// @see interf.Files
func (fs *_Files) ByName(name string) (interf.File, error) {
	return FileByName(fs.list, name) // redirect to FileByName
}

// @see interf.Files
func (fs *_Files) TotalSize() int64 {
	return fs.total
}

// @see interf.Files
func (fs *_Files) Len() int {
	return len(fs.list)
}
