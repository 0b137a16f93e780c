//go:build unix

// Package sysmem provides the two OS capabilities the allocator core
// consumes: a page-size query and an anonymous/private memory mapping
// primitive with its matching unmap. Nothing above this package is
// permitted to call the kernel directly.
package sysmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// PageSize returns the system page size, always a positive multiple of 4096.
func PageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

// Map requests an anonymous, private, read-write mapping of at least size
// bytes. The kernel rounds the mapping up to a page boundary internally;
// callers that need a specific rounded size should compute it themselves
// before calling Map. Returns the mapping's base address.
func Map(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, fmt.Errorf("sysmem: map size must be > 0")
	}

	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("sysmem: mmap %d bytes: %w", size, err)
	}

	return unsafe.Pointer(&b[0]), nil
}

// Unmap releases a mapping previously returned by Map. size must match the
// size originally passed to Map.
func Unmap(base unsafe.Pointer, size uintptr) error {
	if base == nil || size == 0 {
		return nil
	}

	b := unsafe.Slice((*byte)(base), int(size))

	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("sysmem: munmap %d bytes: %w", size, err)
	}

	return nil
}
