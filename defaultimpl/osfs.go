package impl

import (
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// interface check: interf.FileSystem
var _ interf.FileSystem = OsFS{}

// OsFS implements interf.FileSystem for the native file system of the host.
// Paths are native paths (see package path/filepath).
type OsFS struct{}

// NewOsFS returns the native file system.
func NewOsFS() interf.FileSystem {
	return OsFS{}
}

// Glob implements interf.FileSystem.Glob with filepath.Glob.
// Matches are in lexical order.
func (OsFS) Glob(pattern string) ([]interf.File, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	ret := make([]interf.File, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, err
		}
		ret = append(ret, osFile(m, info))
	}
	return ret, nil
}

// ListChildren implements interf.FileSystem.ListChildren.
// Children are in lexical order. Symbolic links are followed.
// Entries that are neither directories nor regular files (devices, sockets, pipes) are skipped with a warning.
func (OsFS) ListChildren(dir string) ([]interf.File, error) {
	infos, err := ioutil.ReadDir(dir) // sorted by name
	if err != nil {
		return nil, err
	}

	ret := make([]interf.File, 0, len(infos))
	for _, info := range infos {
		p := filepath.Join(dir, info.Name())
		if info.Mode()&os.ModeSymlink != 0 {
			if info, err = os.Stat(p); err != nil {
				return nil, err
			}
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			log.Printf("WARNING: %s/ListChildren: skip the special file: %s (%s)", packageName, p, info.Mode().Type())
			continue
		}
		ret = append(ret, osFile(p, info))
	}
	return ret, nil
}

// Open implements interf.FileSystem.Open. The *os.File is seekable.
func (OsFS) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	adviseSequential(f)
	return f, nil
}

func osFile(p string, info os.FileInfo) interf.File {
	return NewFile(p, info.ModTime().Unix(), info.Size(), info.IsDir())
}
