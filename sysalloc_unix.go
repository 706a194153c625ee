//go:build unix

package pool

import "golang.org/x/sys/unix"

// pageSize returns the OS page size, used to derive systemSmallCeiling.
func pageSize() int {
	return unix.Getpagesize()
}
