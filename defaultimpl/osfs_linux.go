//go:build linux

package impl

import (
	"log"
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential tells the kernel that the file is read sequentially (larger readahead).
func adviseSequential(f *os.File) {
	if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL); err != nil {
		log.Printf("WARNING: %s/adviseSequential: %s: %v", packageName, f.Name(), err)
	}
}
