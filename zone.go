//go:build unix

package ftmalloc

import (
	"fmt"
	"unsafe"

	"github.com/orizon-lang/ftmalloc/internal/sysmem"
)

// zoneSize computes the total mapped byte count for a new zone of the
// given class, rounded up to the page size.
func zoneSize(class zoneClass, alignedPayload uintptr, cfg *Config, pageSize uintptr) uintptr {
	var need uintptr

	switch class {
	case classTiny:
		need = zoneHdrSize + cfg.MinAllocs*(cfg.TinyLimit+blockHdrSize)
	case classSmall:
		need = zoneHdrSize + cfg.MinAllocs*(cfg.SmallLimit+blockHdrSize)
	default:
		need = zoneHdrSize + alignedPayload + blockHdrSize
	}

	return ceilToPage(need, pageSize)
}

func ceilToPage(n, pageSize uintptr) uintptr {
	return (n + pageSize - 1) / pageSize * pageSize
}

// newZone requests a fresh mapping from the OS, initializes its header and
// first block, but does not insert it into any list.
func newZone(class zoneClass, alignedPayload uintptr, cfg *Config) (*zoneHeader, error) {
	size := zoneSize(class, alignedPayload, cfg, sysmem.PageSize())

	base, err := sysmem.Map(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	z := zoneAt(base)
	z.next = nil
	z.size = size
	z.class = class

	fb := blockAt(z.firstBlockAddr())
	fb.next = nil
	fb.size = size - zoneHdrSize - blockHdrSize
	fb.free = class != classLarge

	z.first = fb

	return z, nil
}

// insertZone splices z into the allocator's zone list, keeping the list
// sorted by ascending base address.
func (a *Allocator) insertZone(z *zoneHeader) {
	pp := &a.zones

	for *pp != nil && uintptr(unsafe.Pointer(*pp)) < uintptr(unsafe.Pointer(z)) {
		pp = &(*pp).next
	}

	z.next = *pp
	*pp = z
}

// unlinkZone removes z from the allocator's zone list. z must be present.
func (a *Allocator) unlinkZone(z *zoneHeader) {
	pp := &a.zones

	for *pp != nil {
		if *pp == z {
			*pp = z.next
			return
		}

		pp = &(*pp).next
	}
}

// findZone returns the zone owning ptr, or nil.
func (a *Allocator) findZone(ptr unsafe.Pointer) *zoneHeader {
	for z := a.zones; z != nil; z = z.next {
		if z.owns(ptr) {
			return z
		}
	}

	return nil
}
