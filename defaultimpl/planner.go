package impl

import (
	"log"
	"runtime"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// PlanOptions controls how files are split into partial files.
type PlanOptions struct {
	// NumPartitions is the approximate number of tasks.
	// A value <= 0 means runtime.NumCPU().
	NumPartitions int

	// Split disables splitting of all files if false (one partial file per file).
	Split bool

	// NonSplittable lists additional file extensions that are never split.
	// The extensions of interf.NonSplittable are always included.
	NonSplittable []string

	// DebugLvl (@see DebugOff, DebugLow and DebugHigh)
	DebugLvl uint8
}

// Plan splits the files into partial files. Every file is divided into contiguous,
// non-overlapping ranges that cover the whole file. The result is ordered by
// listing order and then by start offset.
//
// The partition size is TotalSize / NumPartitions (integer division) for all files together.
// Empty files are skipped. Non-splittable files (and all files if Split is false) get exactly
// one partial file. The number of partial files is only an approximation of NumPartitions.
//
// If all files are empty, the result is an empty list. The caller must handle this as 'not found'.
func Plan(files interf.Files, opt PlanOptions) []interf.Partial {
	// all files count, even the empty ones
	total := files.TotalSize()
	target := ResolvePartitions(opt.NumPartitions)
	unit := total / int64(target)

	if opt.DebugLvl >= DebugLow {
		log.Printf("DEBUG: %s/Plan: total=%d, target=%d, partitionSize=%d, split=%v", packageName, total, target, unit, opt.Split)
	}

	ret := make([]interf.Partial, 0, target)
	for _, f := range files.All() {
		length := f.Size()
		if length <= 0 {
			log.Printf("INFO: %s/Plan: skip the 0 byte target file: %s", packageName, f.Path())
			continue
		}

		var n int64
		switch {
		case IsNonSplittable(f.Path(), interf.NonSplittable) || IsNonSplittable(f.Path(), opt.NonSplittable):
			n = 1
		case !opt.Split:
			n = 1
		case unit <= 0:
			n = 1 // unreachable with non-empty files, but never divide by zero
		default:
			n = ((length - 1) / unit) + 1
		}

		ret = append(ret, SplitFile(f.Path(), length, n)...)
	}

	for _, p := range ret {
		log.Printf("INFO: %s/Plan: target file: %s, start: %d, end: %d", packageName, p.Path(), p.Start(), p.End())
	}
	return ret
}

// ResolvePartitions returns n if n is positive and the number of logical CPUs otherwise.
// The result is always >= 1.
func ResolvePartitions(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// SplitFile divides the file [0, length) into n ranges.
// Range i is [floor(i*length/n), floor((i+1)*length/n)), the last range ends exactly at length.
// n is clamped to [1, length] so that no range is empty. A length <= 0 returns nil.
func SplitFile(path string, length, n int64) []interf.Partial {
	if length <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > length {
		n = length
	}

	ret := make([]interf.Partial, 0, n)
	start := int64(0)
	for i := int64(1); i <= n; i++ {
		end := boundary(length, n, i)
		if i == n {
			end = length
		}
		p, err := NewPartial(path, start, end)
		if err != nil {
			// can't happen with n <= length
			log.Printf("ERROR: %s/SplitFile: %v", packageName, err)
			continue
		}
		ret = append(ret, p)
		start = end
	}
	return ret
}

// boundary returns floor(i*length/n) without the overflow of i*length.
func boundary(length, n, i int64) int64 {
	q := length / n
	r := length % n
	return i*q + (i*r)/n
}
