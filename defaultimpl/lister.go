package impl

import (
	"errors"
	"log"
	"path"
	"path/filepath"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// packageName is the prefix for log messages
const packageName = "impl"

// ListFiles expands the glob and returns all matching files in the native listing order of the file system.
// Matching directories are walked recursively (depth-first, no depth limit) and only their leaf files are returned.
//
// If the glob matches nothing, a *interf.NotFoundError is returned.
// A malformed glob returns path.ErrBadPattern (or filepath.ErrBadPattern) as it is.
// Every other error of the file system is returned as *interf.RemoteError.
// There is no caching: every call lists the file system from scratch.
func ListFiles(fs interf.FileSystem, glob string, debugLvl uint8) (interf.Files, error) {
	entries, err := fs.Glob(glob)
	if errors.Is(err, path.ErrBadPattern) || errors.Is(err, filepath.ErrBadPattern) {
		log.Printf("WARNING: %s/ListFiles: bad pattern: %s", packageName, glob)
		return nil, err
	}
	if err != nil {
		return nil, &interf.RemoteError{Op: "glob", Path: glob, Err: err}
	}

	// Glob returns nil instead of an error if a literal path does not exist
	if len(entries) == 0 {
		if HasMeta(glob) {
			log.Printf("WARNING: %s/ListFiles: no match for pattern: %s", packageName, glob)
		} else {
			log.Printf("WARNING: %s/ListFiles: path does not exist: %s", packageName, glob)
		}
		return nil, &interf.NotFoundError{Path: glob}
	}

	list := make([]interf.File, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		if e.IsDir() {
			list, err = walk(fs, e, list, debugLvl)
			if err != nil {
				return nil, err
			}
		} else {
			list = append(list, e)
		}
	}

	if len(list) == 0 {
		return nil, &interf.NotFoundError{Path: glob}
	}

	if debugLvl >= DebugLow {
		log.Printf("DEBUG: %s/ListFiles: glob=%s, matches=%d, files=%d", packageName, glob, len(entries), len(list))
	}
	return NewFiles(list), nil
}

// walk appends all leaf files below dir to list (depth-first).
func walk(fs interf.FileSystem, dir interf.File, list []interf.File, debugLvl uint8) ([]interf.File, error) {
	children, err := fs.ListChildren(dir.Path())
	if err != nil {
		return nil, &interf.RemoteError{Op: "list", Path: dir.Path(), Err: err}
	}
	if debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/walk: dir=%s, children=%d", packageName, dir.Path(), len(children))
	}

	for _, c := range children {
		if c == nil {
			continue
		}
		if c.IsDir() {
			list, err = walk(fs, c, list, debugLvl)
			if err != nil {
				return nil, err
			}
		} else {
			list = append(list, c)
		}
	}
	return list, nil
}
