package impl

import (
	"errors"
	"fmt"
	"io"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
	"github.com/oxtoacart/bpool"
)

// interface check: io.ReadCloser
var _ io.ReadCloser = (*_PartialReader)(nil)

// skipPool provides the buffers to skip the bytes before start (handles without io.Seeker)
var skipPool = bpool.NewBytePool(16, interf.SectorSize)

// _PartialReader exposes only the bytes [start, end) of the inner handle.
type _PartialReader struct {
	inner io.ReadCloser
	pos   int64 // absolute position in the file
	end   int64
}

// NewPartialReader wraps the handle rc (positioned at offset 0) and restricts it to the range [start, end).
// The handle is moved to start immediately: with Seek if rc implements io.Seeker,
// otherwise by reading and discarding the bytes before start.
//
// Read never returns bytes at or beyond end and returns io.EOF as soon as end is reached,
// even if the file has more data. If the file ends before end, io.ErrUnexpectedEOF is returned.
// Close closes rc. If NewPartialReader fails, rc is closed too.
func NewPartialReader(rc io.ReadCloser, start, end int64) (io.ReadCloser, error) {
	if rc == nil {
		return nil, errors.New("can't create new PartialReader with reader=nil")
	}
	if start < 0 || end < start {
		_ = rc.Close()
		return nil, fmt.Errorf("invalid range: start=%d, end=%d", start, end)
	}

	if err := skipTo(rc, start); err != nil {
		_ = rc.Close()
		return nil, err
	}

	return &_PartialReader{
		inner: rc,
		pos:   start,
		end:   end,
	}, nil
}

// Read reads up to len(p) bytes, but never beyond end.
func (r *_PartialReader) Read(p []byte) (int, error) {
	if r.pos >= r.end {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	// truncate the request at end
	if rest := r.end - r.pos; int64(len(p)) > rest {
		p = p[:rest]
	}

	n, err := r.inner.Read(p)
	r.pos += int64(n)

	if err == io.EOF {
		if r.pos < r.end {
			// the file is shorter than the partial file
			return n, io.ErrUnexpectedEOF
		}
		err = nil
	}
	if err == nil && r.pos >= r.end && n == 0 {
		err = io.EOF
	}
	return n, err
}

// Close closes the inner handle.
func (r *_PartialReader) Close() error {
	return r.inner.Close()
}

//--------  HELPER  --------------------------------------------------------------------------------------------------//

// skipTo moves the handle from offset 0 to off.
func skipTo(r io.Reader, off int64) error {
	if off == 0 {
		return nil
	}

	// fast: seek
	if s, ok := r.(io.Seeker); ok {
		pos, err := s.Seek(off, io.SeekStart)
		if err != nil {
			return fmt.Errorf("seek to %d: %w", off, err)
		}
		if pos != off {
			return fmt.Errorf("seek to %d: position is %d", off, pos)
		}
		return nil
	}

	// slow: read and discard
	buf := skipPool.Get()
	defer skipPool.Put(buf)

	for skipped := int64(0); skipped < off; {
		m := int64(len(buf))
		if rest := off - skipped; rest < m {
			m = rest
		}
		n, err := io.ReadFull(r, buf[:m])
		skipped += int64(n)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return fmt.Errorf("skip to %d: %w", off, err)
		}
	}
	return nil
}
