package gdrive

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net/http"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
	"google.golang.org/api/googleapi"
)

// interface check: io.ReadSeeker, io.Closer
var _ io.ReadSeeker = (*_Handle)(nil)
var _ io.Closer = (*_Handle)(nil)

// _Handle is a lazy ranged download of one drive file.
type _Handle struct {
	s    *_GDrive
	id   string
	off  int64         // position of the next Read
	body io.ReadCloser // open download (can be nil)
	eof  bool          // off is behind the end of the file
}

func newHandle(s *_GDrive, id string) *_Handle {
	return &_Handle{s: s, id: id}
}

// Read opens the download at the current position on the first call.
func (h *_Handle) Read(p []byte) (int, error) {
	if h.eof {
		return 0, io.EOF
	}
	if h.body == nil {
		if err := h.open(); err != nil {
			return 0, err
		}
		if h.eof {
			return 0, io.EOF
		}
	}

	n, err := h.body.Read(p)
	h.off += int64(n)
	return n, err
}

// Seek only supports io.SeekStart and io.SeekCurrent (the file size is unknown).
func (h *_Handle) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = h.off + offset
	default:
		return h.off, errors.New("gdrive: seek: unsupported whence")
	}
	if abs < 0 {
		return h.off, errors.New("gdrive: seek: negative position")
	}

	if abs != h.off {
		h.closeBody()
		h.off = abs
		h.eof = false
	}
	return h.off, nil
}

// Close the download. Has no effect after the first call.
func (h *_Handle) Close() error {
	h.closeBody()
	return nil
}

//--------  HELPER  --------------------------------------------------------------------------------------------------//

// open starts the download at h.off. A position behind the end of the file sets h.eof.
func (h *_Handle) open() error {
	get := h.s.google.Files.Get(h.id)
	get.Header().Set("Range", fmt.Sprintf("bytes=%d-", h.off))

	resp, err := get.Download()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == http.StatusRequestedRangeNotSatisfiable {
			h.eof = true
			return nil
		}
		log.Printf("ERROR: %s/open: id=%s, off=%d: %v", packageName, h.id, h.off, err)
		return err
	}

	// the server ignored the range header
	if resp.StatusCode == http.StatusOK && h.off > 0 {
		if _, err := io.CopyN(ioutil.Discard, resp.Body, h.off); err != nil {
			_ = resp.Body.Close()
			if err == io.EOF {
				h.eof = true
				return nil
			}
			return err
		}
	}

	if h.s.debugLvl >= impl.DebugHigh {
		log.Printf("DEBUG: %s/open: id=%s, off=%d, status=%d", packageName, h.id, h.off, resp.StatusCode)
	}
	h.body = resp.Body
	return nil
}

func (h *_Handle) closeBody() {
	if h.body != nil {
		_ = h.body.Close()
		h.body = nil
	}
}
