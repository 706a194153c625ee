//go:build !unix

package pool

import "os"

// pageSize returns the OS page size, used to derive systemSmallCeiling.
//
// Non-unix platforms fall back to the stdlib: os.Getpagesize already
// wraps the platform's own page-size query (GetSystemInfo on Windows),
// and the pack's own golang.org/x/sys/windows usage never wires that
// particular call, so there's nothing gained by doing it again here.
func pageSize() int {
	return os.Getpagesize()
}
