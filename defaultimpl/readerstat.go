package impl

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// DebugOff deactivates all debug messages. Errors, warnings or information are still printed.
const DebugOff = 0

// DebugLow shows debug messages that happen very rarely during operation (to keep the log files small).
const DebugLow = 1

// DebugHigh shows all debug messages.
const DebugHigh = 2

//--------------------------------------------------------------------------------------------------------------------//

// _ReaderStat counts the internal processes of a ReaderAt and writes the debug log.
type _ReaderStat struct {
	debugLvl    uint8  // enable debug logging [0, 1, 2] (level: high=2)
	packageName string // text for debug logging

	_CacheHit      uint64
	_CacheMis      uint64
	_CacheSet      uint64
	_RAtNew        uint64
	_RAtClosing    uint64
	_RAtClose      uint64
	_RAtReq        uint64
	_RAtRetErr     uint64
	_RAtSectorSkip uint64
	_RAtSectorRet  uint64
	_RAtBest       uint64
	_RAtAdd        uint64
	_RAtAddErr     uint64
}

// Stat returns all counters > 0.
func (s *_ReaderStat) Stat() map[string]uint64 {
	ret := map[string]uint64{
		"CacheHit":      atomic.LoadUint64(&s._CacheHit),
		"CacheMis":      atomic.LoadUint64(&s._CacheMis),
		"CacheSet":      atomic.LoadUint64(&s._CacheSet),
		"RAtNew":        atomic.LoadUint64(&s._RAtNew),
		"RAtClosing":    atomic.LoadUint64(&s._RAtClosing),
		"RAtClose":      atomic.LoadUint64(&s._RAtClose),
		"RAtReq":        atomic.LoadUint64(&s._RAtReq),
		"RAtRetErr":     atomic.LoadUint64(&s._RAtRetErr),
		"RAtSectorSkip": atomic.LoadUint64(&s._RAtSectorSkip),
		"RAtSectorRet":  atomic.LoadUint64(&s._RAtSectorRet),
		"RAtBest":       atomic.LoadUint64(&s._RAtBest),
		"RAtAdd":        atomic.LoadUint64(&s._RAtAdd),
		"RAtAddErr":     atomic.LoadUint64(&s._RAtAddErr),
	}

	for k, v := range ret {
		if v == 0 {
			delete(ret, k)
		}
	}
	return ret
}

// PrintStatAfterClose is the final call in Close().
func (s *_ReaderStat) PrintStatAfterClose(path string) {
	if s.debugLvl < DebugLow {
		return
	}

	stat := s.Stat()
	keys := make([]string, 0, len(stat))
	for k := range stat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, stat[k]))
	}
	log.Printf("DEBUG: %s/stat.PrintStatAfterClose: path=%s: %s", s.packageName, path, strings.Join(parts, ", "))
}

// ------------------------------------------------------------------------------------------------------------------ //

func (s *_ReaderStat) CacheGet(path string, sector uint64, reqLen, retLen int, err error) {
	if err == nil {
		atomic.AddUint64(&s._CacheHit, 1)
	} else {
		atomic.AddUint64(&s._CacheMis, 1)
	}
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.CacheGet: path=%s, sector=%d, req=%d/%d, ret=%d/%d, err=%v", s.packageName, path, sector, reqLen, interf.SectorSize, retLen, interf.SectorSize, err)
	}
}

func (s *_ReaderStat) CacheSet(path string, sector uint64, data int, err error) {
	atomic.AddUint64(&s._CacheSet, 1)
	if s.debugLvl >= DebugHigh || err != nil {
		pre := "DEBUG"
		if err != nil {
			pre = "ERROR"
		}
		log.Printf("%s: %s/stat.CacheSet: path=%s, sector=%d, data=%d/%d, expire=%d, err=%v", pre, s.packageName, path, sector, data, interf.SectorSize, interf.CacheExpireSeconds, err)
	}
}

func (s *_ReaderStat) RAtNew(path string, cache bool) {
	atomic.AddUint64(&s._RAtNew, 1)
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtNew: path=%s, cache=%v", s.packageName, path, cache)
	}
}

func (s *_ReaderStat) RAtClosing(path string) {
	atomic.AddUint64(&s._RAtClosing, 1)
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtClosing: path=%s", s.packageName, path)
	}
}

func (s *_ReaderStat) RAtClose(path string, slot int, active bool) {
	atomic.AddUint64(&s._RAtClose, 1)
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtClose: path=%s, slot=%d, active=%v", s.packageName, path, slot, active)
	}
}

func (s *_ReaderStat) RAtReq(path string, off int64, req int, sector uint64, innerOff int) {
	atomic.AddUint64(&s._RAtReq, 1)
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtReq: path=%s, off=%d, req=%d, startSector=%d, innerOff=%d", s.packageName, path, off, req, sector, innerOff)
	}
}

func (s *_ReaderStat) RAtRet(path string, off int64, req int, ret int, err error) {
	if err != nil && err != io.EOF {
		atomic.AddUint64(&s._RAtRetErr, 1)
	}
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtRet: path=%s, off=%d, req=%d, ret=%d, err=%v", s.packageName, path, off, req, ret, err)
	}
}

func (s *_ReaderStat) RAtSectorSkip(path string, skip uint64, n int, err error) {
	atomic.AddUint64(&s._RAtSectorSkip, 1)
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtSectorSkip: path=%s, skipSector=%d, n=%d/%d, err=%v", s.packageName, path, skip, n, interf.SectorSize, err)
	}
}

func (s *_ReaderStat) RAtSectorRet(path string, sector uint64, n int, err error) {
	atomic.AddUint64(&s._RAtSectorRet, 1)
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtSectorRet: path=%s, sector=%d, n=%d/%d, err=%v", s.packageName, path, sector, n, interf.SectorSize, err)
	}
}

func (s *_ReaderStat) RAtBest(path string, index int, current uint64) {
	if index >= 0 {
		atomic.AddUint64(&s._RAtBest, 1)
	}
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtBest: path=%s, index=%d, current=%d", s.packageName, path, index, current)
	}
}

func (s *_ReaderStat) RAtAdd(path string, sector uint64, err error) {
	atomic.AddUint64(&s._RAtAdd, 1)
	if err != nil && err != io.EOF {
		atomic.AddUint64(&s._RAtAddErr, 1)
	}
	if s.debugLvl >= DebugHigh {
		log.Printf("DEBUG: %s/stat.RAtAdd: path=%s, startSector=%d, err=%v", s.packageName, path, sector, err)
	}
}
