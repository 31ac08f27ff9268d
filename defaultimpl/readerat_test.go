package impl_test

import (
	"io"
	"log"
	"sync"
	"testing"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

const bigFile = "/demo/big/big-test-file.dat"

func TestNewReaderAt(t *testing.T) {
	s, _ := initTestFS(t)

	// test with invalid file system and invalid path
	if _, err := impl.NewReaderAt(nil, bigFile, nil, impl.DebugHigh); err == nil {
		t.Fatal("no error with invalid file system")
	}
	if _, err := impl.NewReaderAt(s, "", nil, impl.DebugHigh); err == nil {
		t.Fatal("no error with invalid path")
	}

	// test without cache
	_, err := impl.NewReaderAt(s, bigFile, nil, impl.DebugHigh)
	if err != nil {
		t.Fatal(err)
	}

	// test with cache
	c := impl.NewCache(1)
	_, err = impl.NewReaderAt(s, bigFile, c, impl.DebugHigh)
	if err != nil {
		t.Fatal(err)
	}
}

func Test_ReaderAt_ReadAt__without_cache(t *testing.T) {
	s, data := initTestFS(t)
	size := int64(len(data))
	lastSector := uint64((size - 1) / interf.SectorSize)

	// ----------------- test without cache (for more internal tests) ---------------------------
	r, err := impl.NewReaderAt(s, bigFile, nil, impl.DebugHigh)
	if err != nil {
		t.Fatal(err)
	}
	ts := &testStat{t: t, at: r}

	// test READ: empty or invalid buffer (= zero data request) ---------------------------------
	if n, err := r.ReadAt(nil, 0); n != 0 || err != nil {
		t.Fatalf("ERROR: %v (n=%d)", err, n)
	}
	if n, err := r.ReadAt(make([]byte, 0), 7); n != 0 || err != nil {
		t.Fatalf("ERROR: %v (n=%d)", err, n)
	}
	if n, err := r.ReadAt(make([]byte, 1), -1); n != 0 || err == nil {
		t.Fatalf("ERROR: no error with negative offset (n=%d)", n)
	}

	// CHECK internal activities
	ts.RAtNew++ // NewReaderAt() is called    !!!  ReadAt with invalid args don't count !!!
	ts.Check()  //--------------------------------------------------------------------------------

	// test READ: request 1 byte
	b := make([]byte, 1)
	if n, err := r.ReadAt(b, 0); n != 1 || err != nil || b[0] != data[0] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++       // one request: ReadAt()
	ts.RAtAdd++       // no open reader (add one new)
	ts.RAtSectorRet++ // req in one new sector
	ts.Check()        //--------------------------------------------------------------------------------

	// test READ: request next byte (same sector; no cache!)
	if n, err := r.ReadAt(b, 1); n != 1 || err != nil || b[0] != data[1] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++       // request: ReadAt()
	ts.RAtSectorRet++ // we have no cache -> we have to read the sector again
	ts.RAtAdd++       // and the open reader can't read the old sector again
	ts.Check()        //--------------------------------------------------------------------------------

	// test READ: request next SECTOR (use open reader)
	if n, err := r.ReadAt(b, interf.SectorSize); n != 1 || err != nil || b[0] != data[interf.SectorSize] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++       // request: ReadAt()
	ts.RAtBest++      // reuse open reader for next sector
	ts.RAtSectorRet++ // read next sector
	ts.Check()        //--------------------------------------------------------------------------------

	// test READ: skip sector 2 and sector 3 and read sector 4  (reuse open reader[s=2])
	if n, err := r.ReadAt(b, 4*interf.SectorSize); n != 1 || err != nil || b[0] != data[4*interf.SectorSize] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++        // request: ReadAt()
	ts.RAtBest++       // reuse open reader for sector
	ts.RAtSectorSkip++ // skip sector 2
	ts.RAtSectorSkip++ // skip sector 3
	ts.RAtSectorRet++  // read next sector
	ts.Check()         //--------------------------------------------------------------------------------

	// test READ: read bytes from two sectors
	b = make([]byte, interf.SectorSize)
	if n, err := r.ReadAt(b, interf.SectorSize/2); n != interf.SectorSize || err != nil || b[0] != data[interf.SectorSize/2] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b[:1])
	}

	// CHECK internal activities
	ts.RAtReq++       // request: ReadAt()
	ts.RAtSectorRet++ // we have no cache -> we have to read the sector again
	ts.RAtAdd++       // and the open readers can't read the old sector again
	ts.RAtSectorRet++ // read two sectors
	ts.RAtBest++      // reuse open reader for next sector
	ts.Check()        //--------------------------------------------------------------------------------

	// open readers: [sector 2, sector 5, sector 1]

	// test READ: jump to the last sector and read the last byte (a full buffer is never EOF)
	b = make([]byte, 1)
	if n, err := r.ReadAt(b, size-1); n != 1 || err != nil || b[0] != data[size-1] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++                        // request: ReadAt()
	ts.RAtBest++                       // the reader at sector 5 is the nearest
	ts.RAtSectorSkip += lastSector - 5 // skip up to the last sector
	ts.RAtSectorRet++                  // read last sector (the reader is closed with EOF)
	ts.Check()                         //--------------------------------------------------------------------------------

	// test READ: read over EOF
	b = make([]byte, 1)
	if n, err := r.ReadAt(b, size); n != 0 || err != io.EOF {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++                        // request: ReadAt()
	ts.RAtBest++                       // the reader at sector 2 is the nearest
	ts.RAtSectorSkip += lastSector - 2 // skip up to the last sector
	ts.RAtSectorRet++                  // read last sector
	ts.Check()                         //--------------------------------------------------------------------------------

	// test READ: read over EOF (special)
	// When ReadAt returns n < len(p), it returns a non-nil error
	// explaining why more bytes were not returned. In this respect,
	// ReadAt is stricter than Read.
	b = make([]byte, 3)
	if n, err := r.ReadAt(b, size-2); n != 2 || err != io.EOF || b[0] != data[size-2] || b[1] != data[size-1] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++                            // request: ReadAt()
	ts.RAtBest++                           // the last open reader at sector 1
	ts.RAtSectorSkip += lastSector - 1 - 1 // skip up to the sector before the last one
	ts.RAtSectorRet++                      // read the sector before the last one
	ts.RAtBest++                           // reuse open reader for next sector
	ts.RAtSectorRet++                      // return the last sector (1 byte and EOF)
	ts.Check()                             //--------------------------------------------------------------------------------

	// test READ: read in nowhere
	b = make([]byte, 33)
	if n, err := r.ReadAt(b, size+77); n != 0 || err != io.EOF || b[0] != 0 {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++
	ts.RAtAdd++ // all readers are closed
	ts.RAtSectorRet++
	ts.Check() //--------------------------------------------------------------------------------

	// close
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	ts.RAtClosing++
	ts.Check()

	// PRINT STATS
	log.Printf("%#v", r.Stat())
}

func Test_ReaderAt_ReadAt__with_cache(t *testing.T) {
	s, data := initTestFS(t)
	c := impl.NewCache(1)

	r, err := impl.NewReaderAt(s, bigFile, c, impl.DebugHigh)
	if err != nil {
		t.Fatal(err)
	}
	ts := &testStat{t: t, at: r}

	// READ: request second byte (sector 0) -----------------------------------------------------
	b := make([]byte, 1)
	if n, err := r.ReadAt(b, 1); n != 1 || err != nil || b[0] != data[1] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtNew++       // init
	ts.RAtReq++       // one request: ReadAt()
	ts.CacheMis++     // ask cache first
	ts.RAtAdd++       // no open reader (add one new)
	ts.RAtSectorRet++ // req in one new sector
	ts.CacheSet++     // save sector
	ts.Check()        //--------------------------------------------------------------------------------

	// test READ: request first byte (same sector; = read back)
	if n, err := r.ReadAt(b, 0); n != 1 || err != nil || b[0] != data[0] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++   // request: ReadAt()
	ts.CacheHit++ // use sector from cache
	ts.Check()    //--------------------------------------------------------------------------------

	// test READ: jump (and save skip-sectors)
	if n, err := r.ReadAt(b, 3*interf.SectorSize); n != 1 || err != nil || b[0] != data[3*interf.SectorSize] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++        // request: ReadAt()
	ts.CacheMis++      // new sector
	ts.RAtBest++       // reuse open reader
	ts.RAtSectorSkip++ // skip sector 1
	ts.CacheSet++      // but save the sector in the cache
	ts.RAtSectorSkip++ // skip sector 2
	ts.CacheSet++      // but save the sector in the cache
	ts.RAtSectorRet++  // read sector 3
	ts.CacheSet++      // and save the sector in the cache
	ts.Check()         //--------------------------------------------------------------------------------

	// test READ: a skipped sector is in the cache
	if n, err := r.ReadAt(b, 2*interf.SectorSize+5); n != 1 || err != nil || b[0] != data[2*interf.SectorSize+5] {
		t.Fatalf("ERROR: %v (n=%d, b=%v)", err, n, b)
	}

	// CHECK internal activities
	ts.RAtReq++
	ts.CacheHit++
	ts.Check() //--------------------------------------------------------------------------------

	// PRINT STATS
	log.Printf("%#v", r.Stat())
}

//--------------------------------------------------------------------------------------------------------------------//

func TestRace_ReaderAt(t *testing.T) {
	s, data := initTestFS(t)

	r, err := impl.NewReaderAt(s, bigFile, nil, impl.DebugOff) // test without cache for more inner code tests
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(5)
	for n := 0; n < 5; n++ {
		go func() {
			//------------------------------
			b := make([]byte, 1)
			for i := 0; i < 1000; i++ {
				n, err1 := r.ReadAt(b, int64(i))
				err2 := r.Close()
				r.Stat()
				if err1 != nil || err2 != nil || n != 1 || b[0] != data[i] {
					t.Fail()
				}
			}
			//------------------------------
			wg.Done()
		}()
	}
	wg.Wait()
}

//--------  HELPER  --------------------------------------------------------------------------------------------------//

// initTestFS returns the demo file system and the content of the big test file.
func initTestFS(t *testing.T) (impl.RamFS, []byte) {
	s := demoFS(t)
	data := readAll(t, s, bigFile)
	if len(data) != impl.DemoBigSize {
		t.Fatalf("wrong size of %s: %d", bigFile, len(data))
	}
	return s, data
}

type testStat struct {
	t  *testing.T
	at interf.ReaderAt

	CacheHit      uint64
	CacheMis      uint64
	CacheSet      uint64
	RAtNew        uint64
	RAtClosing    uint64
	RAtClose      uint64
	RAtReq        uint64
	RAtRetErr     uint64
	RAtSectorSkip uint64
	RAtSectorRet  uint64
	RAtBest       uint64
	RAtAdd        uint64
	RAtAddErr     uint64
}

func (ts *testStat) Check() {
	ts.t.Helper()
	m := ts.at.Stat()

	if m["RAtClosing"] != ts.RAtClosing {
		ts.t.Errorf("RAtClosing: should=%d, is=%d", ts.RAtClosing, m["RAtClosing"])
	}
	if m["RAtNew"] != ts.RAtNew {
		ts.t.Errorf("RAtNew: should=%d, is=%d", ts.RAtNew, m["RAtNew"])
	}
	if m["CacheSet"] != ts.CacheSet {
		ts.t.Errorf("CacheSet: should=%d, is=%d", ts.CacheSet, m["CacheSet"])
	}
	if m["CacheMis"] != ts.CacheMis {
		ts.t.Errorf("CacheMis: should=%d, is=%d", ts.CacheMis, m["CacheMis"])
	}
	if m["CacheHit"] != ts.CacheHit {
		ts.t.Errorf("CacheHit: should=%d, is=%d", ts.CacheHit, m["CacheHit"])
	}
	if m["RAtReq"] != ts.RAtReq {
		ts.t.Errorf("RAtReq: should=%d, is=%d", ts.RAtReq, m["RAtReq"])
	}
	if m["RAtRetErr"] != ts.RAtRetErr {
		ts.t.Errorf("RAtRetErr: should=%d, is=%d", ts.RAtRetErr, m["RAtRetErr"])
	}
	if m["RAtSectorSkip"] != ts.RAtSectorSkip {
		ts.t.Errorf("RAtSectorSkip: should=%d, is=%d", ts.RAtSectorSkip, m["RAtSectorSkip"])
	}
	if m["RAtSectorRet"] != ts.RAtSectorRet {
		ts.t.Errorf("RAtSectorRet: should=%d, is=%d", ts.RAtSectorRet, m["RAtSectorRet"])
	}
	if m["RAtBest"] != ts.RAtBest {
		ts.t.Errorf("RAtBest: should=%d, is=%d", ts.RAtBest, m["RAtBest"])
	}
	if m["RAtAdd"] != ts.RAtAdd {
		ts.t.Errorf("RAtAdd: should=%d, is=%d", ts.RAtAdd, m["RAtAdd"])
	}
	if m["RAtAddErr"] != ts.RAtAddErr {
		ts.t.Errorf("RAtAddErr: should=%d, is=%d", ts.RAtAddErr, m["RAtAddErr"])
	}
}
