//go:build windows
// +build windows

package ppm

import (
	"os"
	"syscall"
	"unsafe"
)

// mapFile maps the regular file f read-only and returns its contents along
// with the function that releases the mapping. f stays open.
func mapFile(f *os.File) ([]byte, func() error, error) {
	size, err := mappableSize(f)
	if err != nil || size == 0 {
		return nil, noUnmap, err
	}

	high, low := uint32(uint64(size)>>32), uint32(size)
	handle, err := syscall.CreateFileMapping(syscall.Handle(f.Fd()), nil, syscall.PAGE_READONLY, high, low, nil)
	if err != nil {
		return nil, nil, err
	}
	addr, err := syscall.MapViewOfFile(handle, syscall.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		syscall.CloseHandle(handle)
		return nil, nil, err
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	release := func() error {
		err := syscall.UnmapViewOfFile(addr)
		if cerr := syscall.CloseHandle(handle); err == nil {
			err = cerr
		}
		return err
	}
	return data, release, nil
}
