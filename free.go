//go:build unix

package ftmalloc

import (
	"unsafe"

	"github.com/orizon-lang/ftmalloc/internal/sysmem"
	"github.com/orizon-lang/ftmalloc/internal/traceio"
)

// Free releases ptr using the package-level allocator. ptr must have come
// from Malloc/Realloc/Calloc, or be nil.
func Free(ptr unsafe.Pointer) { defaultGlobal().Free(ptr) }

// Free releases ptr, which must have come from a.Malloc/a.Realloc/
// a.Calloc, or be nil. A nil pointer, a pointer this allocator does not
// own, an interior pointer, or an already-freed pointer are all silently
// ignored: free never panics on user misuse.
func (a *Allocator) Free(ptr unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.freeCore(ptr)
}

// freeCore is the lock-free free core; callers must hold a.mu.
func (a *Allocator) freeCore(ptr unsafe.Pointer) {
	if ptr == nil {
		a.trace(func(b *traceio.Buffer) { traceFree(b, traceio.DetailIgnoredNull, ptr) })
		return
	}

	zone, block, prev, ok := a.findBlock(ptr)
	if zone == nil {
		a.trace(func(b *traceio.Buffer) { traceFree(b, traceio.DetailIgnoredNotOwned, ptr) })
		return
	}

	if !ok {
		a.trace(func(b *traceio.Buffer) { traceFree(b, traceio.DetailIgnoredInvalid, ptr) })
		return
	}

	if block.free {
		a.trace(func(b *traceio.Buffer) { traceFree(b, traceio.DetailIgnoredDouble, ptr) })
		return
	}

	if a.scribbleEnabled() {
		scribble(ptr, block.size, 0x55)
	}

	if zone.class == classLarge {
		a.unlinkZone(zone)
		_ = sysmem.Unmap(zone.base(), zone.size)

		a.trace(func(b *traceio.Buffer) { traceFree(b, traceio.DetailLarge, ptr) })

		return
	}

	block.free = true

	if merged, newSize := coalesceRight(block); merged {
		a.trace(func(b *traceio.Buffer) { traceCoalesce(b, newSize) })
	}

	if prev != nil && prev.free {
		if merged, newSize := coalesceRight(prev); merged {
			a.trace(func(b *traceio.Buffer) { traceCoalesce(b, newSize) })
		}
	}

	a.trace(func(b *traceio.Buffer) { traceFree(b, traceio.DetailOK, ptr) })
}
