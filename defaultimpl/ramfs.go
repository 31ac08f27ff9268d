package impl

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// RamFS is an in-memory file system. It is mainly for testing.
// Directories exist implicitly as parents of files.
type RamFS interface {
	interf.FileSystem

	// Save reads bytes from the io.Reader r and stores them under the path p.
	// An existing file with the same path is replaced.
	// The param max limits the read bytes (see io.LimitedReader). max=0 means read until EOF.
	Save(p string, r io.Reader, max int64) (interf.File, error)

	// Files returns all stored files in save order.
	Files() interf.Files

	// Opens returns the number of Open() calls.
	Opens() uint64
}

// interface check: RamFS
var _ RamFS = (*_RamFS)(nil)

type _RamFS struct {
	files interf.Files
	data  map[string][]byte
	mux   *sync.RWMutex
	opens uint64
}

// NewRamFS return an empty in-memory file system.
func NewRamFS() RamFS {
	return &_RamFS{
		files: NewFiles(nil),
		data:  make(map[string][]byte),
		mux:   new(sync.RWMutex),
	}
}

//-----------  IMPLEMENTATION:  @see interf.FileSystem  --------------------------------------------------------------//

func (s *_RamFS) Glob(pattern string) ([]interf.File, error) {
	return GlobWalk(pattern, NewFile("/", 0, 0, true), func(dir interf.File) ([]interf.File, error) {
		return s.ListChildren(dir.Path())
	})
}

func (s *_RamFS) ListChildren(dir string) ([]interf.File, error) {
	dir = cleanPath(dir)
	prefix := dir + "/"
	if dir == "/" {
		prefix = "/"
	}

	s.mux.RLock() // READ Lock
	defer s.mux.RUnlock()

	if _, err := s.files.ByPath(dir); err == nil {
		return nil, errors.New("not a directory: " + dir)
	}

	var ret []interf.File
	seen := make(map[string]bool)
	for _, f := range s.files.All() {
		if !strings.HasPrefix(f.Path(), prefix) {
			continue
		}
		rest := f.Path()[len(prefix):]
		if i := strings.Index(rest, "/"); i >= 0 {
			// implicit sub directory
			sub := prefix + rest[:i]
			if !seen[sub] {
				seen[sub] = true
				ret = append(ret, NewFile(sub, 0, 0, true))
			}
			continue
		}
		ret = append(ret, f)
	}

	if ret == nil && dir != "/" {
		return nil, os.ErrNotExist
	}

	// native order: by name
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Name() < ret[j].Name() })
	return ret, nil
}

func (s *_RamFS) Open(p string) (io.ReadCloser, error) {
	p = cleanPath(p)
	atomic.AddUint64(&s.opens, 1)

	s.mux.RLock() // READ Lock
	defer s.mux.RUnlock()

	data, ok := s.data[p]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &_RamHandle{bytes.NewReader(data)}, nil
}

//-----------  RamFS  ------------------------------------------------------------------------------------------------//

func (s *_RamFS) Save(p string, r io.Reader, max int64) (interf.File, error) {
	p = cleanPath(p)
	if p == "/" {
		return nil, errors.New("empty path")
	}
	if r == nil {
		return nil, errors.New("nil reader")
	}

	if max > 0 {
		r = io.LimitReader(r, max)
	}
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f := NewFile(p, time.Now().Unix(), int64(len(data)), false)

	s.mux.Lock() // WRITE Lock
	defer s.mux.Unlock()

	// replace or append, keep the save order
	list := s.files.All()
	replaced := false
	for i, v := range list {
		if v.Path() == p {
			list[i] = f
			replaced = true
		}
	}
	if !replaced {
		list = append(list, f)
	}

	s.files = NewFiles(list)
	s.data[p] = data
	return f, nil
}

func (s *_RamFS) Files() interf.Files {
	s.mux.RLock() // READ Lock
	defer s.mux.RUnlock()

	return s.files
}

func (s *_RamFS) Opens() uint64 {
	return atomic.LoadUint64(&s.opens)
}

//--------  Helper  --------------------------------------------------------------------------------------------------//

// _RamHandle is a seekable handle to the data of a file.
type _RamHandle struct {
	*bytes.Reader
}

func (h *_RamHandle) Close() error {
	return nil
}

// cleanPath returns an absolute, clean slash path.
func cleanPath(p string) string {
	return path.Clean("/" + p)
}
