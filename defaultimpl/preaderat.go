package impl

import (
	"errors"
	"io"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// interface check: interf.ReaderAt
var _ interf.ReaderAt = (*_PartialReaderAt)(nil)

// @see interf.ReaderAt
//
// PartialReaderAt is a wrapper for the default ReaderAt (@see NewReaderAt).
// It enables random read access to the range of a partial file.
// Offset 0 is the start of the partial file.
type _PartialReaderAt struct {
	inner interf.ReaderAt
	start int64
	size  int64
}

// NewPartialReaderAt creates a new interf.ReaderAt object for random read access to the partial file p.
// No connections are made before the first call of ReadAt().
// Is cache = nil, the cache is disabled.
func NewPartialReaderAt(fs interf.FileSystem, p interf.Partial, cache interf.Cache, debugLvl uint8) (interf.ReaderAt, error) {
	if p == nil {
		return nil, errors.New("can't create new PartialReaderAt with partial=nil")
	}

	rAt, err := NewReaderAt(fs, p.Path(), cache, debugLvl)
	if err != nil {
		return nil, err
	}

	return &_PartialReaderAt{
		inner: rAt,
		start: p.Start(),
		size:  p.Size(),
	}, nil
}

// @see interf.ReaderAt
func (r *_PartialReaderAt) Close() error {
	return r.inner.Close()
}

// @see interf.ReaderAt
//
// ReadAt never returns bytes behind the end of the partial file.
// If the file ends before the end of the partial file, io.ErrUnexpectedEOF is returned.
func (r *_PartialReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if len(p) == 0 {
		return 0, nil // read nothing -> return nothing
	}
	if off < 0 {
		return 0, errors.New("PartialReaderAt.ReadAt: negative offset")
	}
	if off >= r.size {
		return 0, io.EOF
	}

	// enforce limit
	req := p
	if rest := r.size - off; int64(len(req)) > rest {
		req = req[:rest]
	}

	n, err = r.inner.ReadAt(req, r.start+off)

	// the file is shorter than the partial file
	if n < len(req) && (err == nil || err == io.EOF) {
		return n, io.ErrUnexpectedEOF
	}

	// fix EOF for limit: the buffer is NOT full
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}

// @see interf.ReaderAt
func (r *_PartialReaderAt) Stat() map[string]uint64 {
	return r.inner.Stat()
}
