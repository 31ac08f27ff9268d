package impl

import (
	"errors"
	"io"
	"math"
	"sync"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
	"github.com/oxtoacart/bpool"
)

// interface check: interf.ReaderAt
var _ interf.ReaderAt = (*_ReaderAt)(nil)

// @see interf.ReaderAt
//
// ReaderAt allow random read access to a file of a file system.
// A cache should be used internally for random read access.
// It may also be necessary to open several internal connections to the storage.
type _ReaderAt struct {
	mux   *sync.Mutex  // protect 'conns' and 'clock'
	conns []*_Conn     // open handles of the file, nil for free slots
	clock uint64       // use clock for the LRU eviction of conns
	stat  *_ReaderStat // collects statistical data about internal processes

	path  string            // for new connections
	fs    interf.FileSystem // storage (for new connections)
	cache interf.Cache      // for caching sectors, can be nil !
	pool  *bpool.BytePool   // the byte pool avoids allocating memory
}

// NewReaderAt creates a new interf.ReaderAt object for random read access to the file.
// No connections are made before the first call of ReadAt().
// Is cache = nil, the cache is disabled.
// debugLvl (@see DebugOff, DebugLow and DebugHigh)
func NewReaderAt(fs interf.FileSystem, path string, cache interf.Cache, debugLvl uint8) (interf.ReaderAt, error) {
	// check input
	// the cache can be nil!
	if fs == nil || path == "" {
		return nil, errors.New("can't create new ReaderAt with fs=nil or an empty path")
	}

	// ReaderAt statistic
	stat := &_ReaderStat{
		debugLvl:    debugLvl,    // enable debug logging [0, 1, 2] (level: high=2)
		packageName: packageName, // text for debug logging
	}

	// use byte pool from cache
	// or create a small pool (cache == nil)
	var pool *bpool.BytePool
	if cache != nil {
		pool = cache.Pool()
	} else {
		pool = bpool.NewBytePool(25, interf.SectorSize)
	}

	stat.RAtNew(path, cache != nil) // DEBUG
	return &_ReaderAt{
		mux:   new(sync.Mutex),
		conns: make([]*_Conn, interf.MaxReadersPerFile),
		stat:  stat,

		path:  path,
		fs:    fs,
		cache: cache,
		pool:  pool,
	}, nil
}

// @see interf.ReaderAt
func (r *_ReaderAt) Close() error {
	r.mux.Lock() // LOCK
	defer r.mux.Unlock()

	r.stat.RAtClosing(r.path) // DEBUG
	for i, c := range r.conns {
		if c != nil {
			r.stat.RAtClose(r.path, i, c.c != nil) // DEBUG
			_ = c.Close()
			r.conns[i] = nil
		}
	}

	r.stat.PrintStatAfterClose(r.path) // DEBUG
	return nil
}

// @see interf.ReaderAt
func (r *_ReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if len(p) == 0 {
		return 0, nil // read nothing -> return nothing
	}
	if off < 0 {
		return 0, errors.New("ReaderAt.ReadAt: negative offset")
	}

	// buffer from pool
	buf := r.pool.Get()
	defer r.pool.Put(buf)

	// read sectors
	sector, innerOff := r.calcSector(off)
	read := 0

	r.stat.RAtReq(r.path, off, len(p), sector, innerOff) // DEBUG
	for {
		// read sector
		b, err := r.getSector(buf, sector) // thread-safe

		// cut inner offset
		if len(b) < innerOff {
			b = b[len(b):] // nothing left (inner offset is to high)
		} else {
			b = b[innerOff:]
		}

		n := copy(p[read:], b)

		sector++
		innerOff = 0
		read += n

		if n == 0 || err != nil || read == len(p) {
			// a full buffer is never io.EOF
			if err == io.EOF && len(p) == read {
				err = nil
			}
			// a short read must have an error
			if err == nil && read < len(p) {
				err = io.EOF
			}
			r.stat.RAtRet(r.path, off, len(p), read, err) // DEBUG
			return read, err
		}
	}
}

// @see interf.ReaderAt
func (r *_ReaderAt) Stat() map[string]uint64 {
	return r.stat.Stat()
}

//--------  HELPER  --------------------------------------------------------------------------------------------------//

// getSector returns the requested sector.
// This method doesn't allocate memory when the capacity of buf is greater or equal to value (see SectorSize).
func (r *_ReaderAt) getSector(buf []byte, sector uint64) ([]byte, error) {
	r.mux.Lock() // LOCK
	defer r.mux.Unlock()

	// ask cache
	if r.cache != nil {
		b, err := r.cache.Get(r.path, sector, buf)
		r.stat.CacheGet(r.path, sector, len(buf), len(b), err) // DEBUG
		if err == nil {
			return b, nil
		}
	}

	// get best connection
	c := r.bestConn(sector)
	if c == nil {
		// no reader found, create new one
		var err error
		c, err = r.addConn(sector)
		if err != nil {
			return buf[:0], err
		}
	}

	// skip sectors up to the requested one
	for c.sector < sector {
		logSector := c.sector
		n, err := c.Read(buf)
		r.stat.RAtSectorSkip(r.path, logSector, n, err) // DEBUG

		if r.cache != nil && n > 0 && (err == nil || err == io.EOF) {
			errSet := r.cache.Set(r.path, c.sector-1, buf[:n]) // don't waste VALID data
			r.stat.CacheSet(r.path, c.sector-1, n, errSet)     // DEBUG
		}

		if err != nil {
			// we are not where we wanted to be!
			_ = c.Close()
			return buf[:0], err
		}
	}

	// read
	n, err := c.Read(buf)
	if err != nil {
		_ = c.Close()
	}
	r.stat.RAtSectorRet(r.path, sector, n, err) // DEBUG

	if r.cache != nil && n > 0 && (err == nil || err == io.EOF) {
		errSet := r.cache.Set(r.path, c.sector-1, buf[:n])
		r.stat.CacheSet(r.path, c.sector-1, n, errSet) // DEBUG
	}

	return buf[:n], err
}

// bestConn looks for an open connection that can be reused. Returns nil if no valid connection was found.
// Attention: The returned connection does not have to exactly match the desired sector.
func (r *_ReaderAt) bestConn(sector uint64) *_Conn {
	var bestDist uint64 = math.MaxUint64
	var index = -1 // default: -1 (no connection found)

	for k, v := range r.conns {
		// skip: no valid connection
		if v == nil || v.c == nil {
			continue
		}
		// skip: sector is before the position (can't read back) or too far away
		if sector < v.sector || sector > v.sector+interf.MaxSectorJump {
			continue
		}
		dist := sector - v.sector
		if dist < bestDist {
			bestDist = dist
			index = k
		}
		// there is nothing better than 0
		if bestDist == 0 {
			break
		}
	}

	if index >= 0 {
		c := r.conns[index]
		r.stat.RAtBest(r.path, index, c.sector) // DEBUG
		return c
	}
	r.stat.RAtBest(r.path, index, math.MaxUint64) // DEBUG
	return nil
}

// evictSlot returns the slot for a new connection: the first free slot or else the least recently used one.
func (r *_ReaderAt) evictSlot() int {
	slot := 0
	for k, v := range r.conns {
		if v == nil || v.c == nil {
			return k
		}
		if v.used < r.conns[slot].used {
			slot = k
		}
	}
	return slot
}

// addConn opens a new connection at sector. A full list loses its least recently used connection.
func (r *_ReaderAt) addConn(sector uint64) (*_Conn, error) {
	slot := r.evictSlot()
	if old := r.conns[slot]; old != nil {
		_ = old.Close()
		r.conns[slot] = nil
	}

	rc, err := OpenAt(r.fs, r.path, int64(sector*interf.SectorSize))
	r.stat.RAtAdd(r.path, sector, err) // DEBUG
	if err != nil {
		return nil, err
	}

	c := &_Conn{c: rc, sector: sector, clock: &r.clock}
	c.touch()
	r.conns[slot] = c
	return c, nil
}

// calcSector calculates in which sector the first byte begins with a inner offset.
// The first sector starts at 0.
func (r *_ReaderAt) calcSector(offset int64) (sector uint64, innerOff int) {
	if offset < 0 {
		return 0, 0
	}
	innerOff = int(offset % interf.SectorSize)
	sector = uint64(offset-int64(innerOff)) / interf.SectorSize
	return
}

// OpenAt opens the file and moves the handle to off.
// If off is at or behind the end of a file without io.Seeker, io.EOF is returned.
func OpenAt(fs interf.FileSystem, path string, off int64) (io.ReadCloser, error) {
	rc, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	if err := skipTo(rc, off); err != nil {
		_ = rc.Close()
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return rc, nil
}

// ------------------------------------------------------------------------------------------------------------------ //

// interface check: io.ReadCloser
var _ io.ReadCloser = (*_Conn)(nil)

// _Conn is one open handle of the file that is read sector by sector.
type _Conn struct {
	c      io.ReadCloser // handle of the file system (nil after Close)
	sector uint64        // sector of the next Read
	used   uint64        // clock value of the last use
	clock  *uint64       // use clock of the owning ReaderAt
}

func (c *_Conn) touch() {
	*c.clock++
	c.used = *c.clock
}

// Close the handle. Has no effect after the first call.
func (c *_Conn) Close() error {
	if c.c != nil {
		_ = c.c.Close()
		c.c = nil
	}
	return nil
}

// Read fills buf with the next sector. buf must have the length SectorSize.
// Only the last sector of a file can be short, and a short sector always comes with an error.
func (c *_Conn) Read(buf []byte) (int, error) {
	if c.c == nil {
		return 0, io.ErrClosedPipe
	}
	if len(buf) != interf.SectorSize {
		return 0, errors.New("wrong buffer size for reading a sector")
	}

	n, err := io.ReadFull(c.c, buf)
	if n > 0 {
		c.touch()
		c.sector++
	}
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return n, io.EOF
	default:
		return n, err
	}
}
