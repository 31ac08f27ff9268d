//go:build !linux

package impl

import "os"

// adviseSequential has no effect on this platform.
func adviseSequential(*os.File) {}
