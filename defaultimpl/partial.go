package impl

import (
	"fmt"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// interface check: interf.Partial
var _ interf.Partial = (*_Partial)(nil)

// @see interf.Partial
//
// Partial is the range [start, end) of one file.
// Partial is an immutable object!
type _Partial struct {
	path  string
	start int64
	end   int64
}

// NewPartial return the default implementation of interf.Partial.
// An error is returned if start is negative or the range is empty.
func NewPartial(path string, start, end int64) (interf.Partial, error) {
	if start < 0 || end <= start {
		return nil, fmt.Errorf("invalid partial file %s: start=%d, end=%d", path, start, end)
	}
	return &_Partial{
		path:  path,
		start: start,
		end:   end,
	}, nil
}

// @see interf.Partial
func (p *_Partial) Path() string {
	return p.path
}

// @see interf.Partial
func (p *_Partial) Start() int64 {
	return p.start
}

// @see interf.Partial
func (p *_Partial) End() int64 {
	return p.end
}

// @see interf.Partial
func (p *_Partial) Size() int64 {
	return p.end - p.start
}

// @see interf.Partial
func (p *_Partial) String() string {
	return fmt.Sprintf("%s[%d,%d)", p.path, p.start, p.end)
}
