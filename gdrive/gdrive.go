package gdrive

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"sync"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
	interf "github.com/SchnorcherSepp/fileinput/interfaces"
	google "google.golang.org/api/drive/v3"
)

// packageName is the prefix for log messages
const packageName = "gdrive"

const folderMimeType = "application/vnd.google-apps.folder"

// interface check: interf.FileSystem
var _ interf.FileSystem = (*_GDrive)(nil)

// _GDrive is a read-only file system on top of Google Drive.
// Paths are slash separated folder names below the root folder, like '/logs/2020/access.log'.
// Must be created with NewGDrive().
type _GDrive struct {
	google   *google.Service
	root     string // folder id of '/'
	debugLvl uint8
	mux      *sync.RWMutex
	ids      map[string]string // path -> drive id, filled by every listing
}

// NewGDrive returns a file system for Google Drive. The root specifies the folder id of the path '/'.
// If the value is "root" or empty, the root directory of Google Drive is used.
// debugLvl (@see impl.DebugHigh and impl.DebugOff)
//
// Google Drive allows several files with the same name in one folder. Such files
// have the same path and only the last listed one can be opened.
func NewGDrive(oauth *google.Service, root string, debugLvl uint8) interf.FileSystem {
	s := &_GDrive{
		google:   oauth,
		root:     root,
		debugLvl: debugLvl,
		mux:      new(sync.RWMutex),
		ids:      make(map[string]string),
	}

	// root fix: replace root alias with valid folder id
	if s.root == "root" || s.root == "" {
		f, err := s.google.Files.Get("root").Fields("id").Do()
		if err != nil {
			log.Printf("ERROR: %s/rootFix: %v", packageName, err)
			s.root = "root"
		} else {
			log.Printf("INFO: %s/rootFix: change root folder id '%s' to '%s'", packageName, s.root, f.Id)
			s.root = f.Id
		}
	}

	s.ids["/"] = s.root
	return s
}

//--------------------------------------------------------------------------------------------------------------------//

// Glob is the implementation of FileSystem.Glob()
//
// The pattern is resolved folder by folder. Every folder level needs one (paged) request.
func (s *_GDrive) Glob(pattern string) ([]interf.File, error) {
	root := impl.NewFile("/", 0, 0, true)
	return impl.GlobWalk(pattern, root, func(dir interf.File) ([]interf.File, error) {
		return s.ListChildren(dir.Path())
	})
}

// ListChildren is the implementation of FileSystem.ListChildren()
//
// The children are ordered by name (Drive 'orderBy=name'). Trashed files are ignored.
func (s *_GDrive) ListChildren(dir string) ([]interf.File, error) {
	dir = path.Clean("/" + dir)

	id, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}
	return s.list(dir, id)
}

// Open is the implementation of FileSystem.Open()
//
// No connection is made before the first Read(). The handle supports Seek(),
// a seek to another position closes the current download.
func (s *_GDrive) Open(p string) (io.ReadCloser, error) {
	p = path.Clean("/" + p)

	id, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	return newHandle(s, id), nil
}

//---------  Helper  -------------------------------------------------------------------------------------------------//

// list reads all children of the folder id (all result pages) and updates the path index.
func (s *_GDrive) list(dir, id string) ([]interf.File, error) {
	const fields = "nextPageToken, files(id, name, size, mimeType, modifiedTime)"
	const spaces = "drive" // Supported values are 'drive', 'appDataFolder' and 'photos'.
	const pageSize = 1000  // split big file lists in pages (default 1000)
	query := fmt.Sprintf("trashed = false and '%s' in parents", id)

	var ret []interf.File
	found := make(map[string]string)
	pageToken := ""
	for {
		fileList, err := s.google.Files.List().Q(query).PageToken(pageToken).
			Spaces(spaces).OrderBy("name").PageSize(pageSize).
			Fields(fields).Do() // thread safe
		if err != nil {
			log.Printf("ERROR: %s/list: dir=%s: %v", packageName, dir, err)
			return nil, err
		}

		for _, f := range fileList.Files {
			p := path.Join(dir, f.Name)
			found[p] = f.Id
			ret = append(ret, impl.NewFile(p, ParseTime(f.ModifiedTime), f.Size, f.MimeType == folderMimeType))
		}

		// no more pages
		pageToken = fileList.NextPageToken
		if pageToken == "" {
			break
		}
	}

	s.mux.Lock() // LOCK
	for k, v := range found {
		s.ids[k] = v
	}
	s.mux.Unlock() // UNLOCK

	if s.debugLvl >= impl.DebugHigh {
		log.Printf("DEBUG: %s/list: dir=%s, id=%s, children=%d", packageName, dir, id, len(ret))
	}
	return ret, nil
}

// resolve returns the drive id of the path p.
// Unknown paths are resolved by listing the parent folders.
func (s *_GDrive) resolve(p string) (string, error) {
	s.mux.RLock() // READ LOCK
	id, ok := s.ids[p]
	s.mux.RUnlock() // READ UNLOCK
	if ok {
		return id, nil
	}

	cur := "/"
	for _, seg := range impl.SplitPath(p) {
		s.mux.RLock()
		curId := s.ids[cur]
		s.mux.RUnlock()

		if _, err := s.list(cur, curId); err != nil {
			return "", err
		}

		cur = path.Join(cur, seg)
		s.mux.RLock()
		_, ok := s.ids[cur]
		s.mux.RUnlock()
		if !ok {
			return "", &os.PathError{Op: "resolve", Path: p, Err: os.ErrNotExist}
		}
	}

	s.mux.RLock()
	defer s.mux.RUnlock()
	if id, ok := s.ids[p]; ok {
		return id, nil
	}
	return "", errors.New("can't resolve path " + p)
}
