package impl

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
)

// DemoBigSize is the size of /demo/big/big-test-file.dat (4 MiB + 1 byte).
const DemoBigSize = 4*1024*1024 + 1

// InitDemo creates the following test files:
//
//  + /demo/empty.dat
//     Data: 0 bytes
//  + 20 small text files in /demo/logs/<year>/small-test-file-<n>.log
//     Data: text == path
//  + /demo/big/big-test-file.dat
//     Data: DemoBigSize random bytes (seed 1337)
//  + /demo/archive/data-<n>.csv.gz, .bz2 and .lzo
//     Data: 100 bytes 'C'
//
func InitDemo(s RamFS) error {
	// empty file
	if _, err := s.Save("/demo/empty.dat", strings.NewReader(""), 0); err != nil {
		return err
	}

	// small files in sub directories
	for i := 1; i <= 20; i++ {
		name := fmt.Sprintf("/demo/logs/%d/small-test-file-%d.log", 2018+i%3, i)
		if _, err := s.Save(name, strings.NewReader(name), 0); err != nil {
			return err
		}
	}

	// big random file
	rnd := rand.New(rand.NewSource(1337))
	if _, err := s.Save("/demo/big/big-test-file.dat", rnd, DemoBigSize); err != nil {
		return err
	}

	// compressed files (never split)
	for i, ext := range []string{".gz", ".bz2", ".lzo"} {
		name := fmt.Sprintf("/demo/archive/data-%d.csv%s", i, ext)
		if _, err := s.Save(name, bytes.NewReader(bytes.Repeat([]byte{'C'}, 100)), 0); err != nil {
			return err
		}
	}
	return nil
}
