package impl

import (
	"encoding/binary"
	"runtime/debug"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
	"github.com/coocood/freecache"
	"github.com/oxtoacart/bpool"
)

// interface check: interf.Cache
var _ interf.Cache = (*_Cache)(nil)

// @see interf.Cache
//
// Cache stores sectors (data blocks of a file) for a performant random read access of partial files.
// The cache is always at least 1024 * SectorSize big (~17 MB).
// If possible, all workers of one process should share one cache.
type _Cache struct {
	cache *freecache.Cache // RAM cache for sectors
	pool  *bpool.BytePool  // buffer pool
	size  int64
}

// NewCache return the default implementation of interf.Cache.
// cacheSizeMB can't be less than 17 (min. 1024 * SectorSize =~ 17 MB).
func NewCache(cacheSizeMB int) interf.Cache {
	// cache min. size
	min := ((1024 * interf.SectorSize) / (1024 * 1024)) + 1
	if cacheSizeMB < min {
		cacheSizeMB = min
	}

	cacheSize := cacheSizeMB * 1024 * 1024
	fCache := freecache.NewCache(cacheSize)
	debug.SetGCPercent(20)

	return &_Cache{
		cache: fCache,
		pool:  bpool.NewBytePool(300, interf.SectorSize), // ~ 5 MB
		size:  int64(cacheSize),
	}
}

// @see interf.Cache
func (c *_Cache) Get(path string, sector uint64, buf []byte) ([]byte, error) {
	return c.cache.GetWithBuf(c.calcCacheKey(path, sector), buf)
}

// @see interf.Cache
func (c *_Cache) Set(path string, sector uint64, data []byte) error {
	return c.cache.Set(c.calcCacheKey(path, sector), data, interf.CacheExpireSeconds)
}

// @see interf.Cache
func (c *_Cache) Pool() *bpool.BytePool {
	return c.pool
}

// @see interf.Cache
func (c *_Cache) Size() int64 {
	return c.size
}

//-----  HELPER  -----------------------------------------------------------------------------------------------------//

// calcCacheKey converts path and a sector into a byte key for freeCache.
func (c *_Cache) calcCacheKey(path string, sector uint64) []byte {
	var bKey [8]byte
	binary.LittleEndian.PutUint64(bKey[:], sector)
	return append(bKey[:], []byte(path)...)
}
