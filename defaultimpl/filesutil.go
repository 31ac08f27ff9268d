package impl

import (
	"math"
	"os"
	"strings"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// FileByPath returns the file with the requested path.
// If no file is found, the os.ErrNotExist error is returned.
// The data source is the given list of files.
func FileByPath(files map[string]interf.File, path string) (interf.File, error) {
	// a NULL list cannot contain a file
	if files == nil {
		return nil, os.ErrNotExist
	}

	// get & return
	f, ok := files[path]
	if ok && f != nil {
		return f, nil // valid file found
	}
	return nil, os.ErrNotExist // nothing found or nil
}

// FileByName returns the latest (File.ModTime) file found with the requested name.
// If no file is found, the os.ErrNotExist error is returned.
// The data source is the given list of files.
func FileByName(files []interf.File, name string) (interf.File, error) {
	// a NULL list cannot contain a file
	if files == nil {
		return nil, os.ErrNotExist
	}

	// find the latest file
	var ret interf.File = nil
	var age int64 = math.MinInt64
	var err = os.ErrNotExist

	for _, f := range files {
		if f != nil && f.Name() == name && f.ModTime() > age {
			ret = f
			age = f.ModTime()
			err = nil
		}
	}

	return ret, err
}

// IsNonSplittable reports whether the path ends with one of the extensions.
// The check is case-sensitive. Empty extensions are ignored.
func IsNonSplittable(path string, extensions []string) bool {
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
