//go:build !windows
// +build !windows

package ppm

import (
	"os"
	"syscall"
)

// mapFile maps the regular file f read-only and returns its contents along
// with the function that releases the mapping. f stays open.
func mapFile(f *os.File) ([]byte, func() error, error) {
	size, err := mappableSize(f)
	if err != nil || size == 0 {
		return nil, noUnmap, err
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, size, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return syscall.Munmap(data) }, nil
}
