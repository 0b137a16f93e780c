//go:build unix

package ftmalloc

import (
	"unsafe"

	"github.com/orizon-lang/ftmalloc/internal/traceio"
)

// Realloc resizes ptr's allocation using the package-level allocator.
func Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return defaultGlobal().Realloc(ptr, size)
}

// Realloc resizes ptr's allocation to size bytes, preserving the first
// min(old_payload, size) bytes.
//
//   - ptr == nil behaves as Malloc(size).
//   - size == 0 behaves as Free(ptr), returning nil.
//   - an invalid or already-freed ptr returns nil without side effects.
//   - growing in place (right-neighbor merge) is attempted before
//     falling back to allocate-copy-free.
//   - shrinking is a no-op: the block keeps its original capacity.
//
// Realloc calls the lock-free allocCore/freeCore internally; it must
// never call Malloc or Free, which would re-acquire a.mu and deadlock.
func (a *Allocator) Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	if ptr == nil {
		a.mu.Lock()
		defer a.mu.Unlock()

		result := a.allocCore(size)
		a.trace(func(b *traceio.Buffer) { traceRealloc(b, traceio.DetailActsAsMalloc, ptr, result, size) })

		return result
	}

	if size == 0 {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.trace(func(b *traceio.Buffer) { traceRealloc(b, traceio.DetailActsAsFree, ptr, nil, 0) })
		a.freeCore(ptr)

		return nil
	}

	if size > maxUintptr-(alignment-1) {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.trace(func(b *traceio.Buffer) { traceRealloc(b, traceio.DetailFailedOverflow, ptr, nil, size) })

		return nil
	}

	aligned := alignUp(size)

	a.mu.Lock()
	defer a.mu.Unlock()

	zone, block, _, ok := a.findBlock(ptr)
	if zone == nil || !ok || block.free {
		a.trace(func(b *traceio.Buffer) { traceRealloc(b, traceio.DetailIgnoredInvalid, ptr, nil, size) })
		return nil
	}

	oldSize := block.size

	if aligned <= oldSize {
		a.trace(func(b *traceio.Buffer) { traceRealloc(b, traceio.DetailInPlaceShrink, ptr, ptr, size) })
		return ptr
	}

	if zone.class != classLarge && block.next != nil && block.next.free &&
		block.size+blockHdrSize+block.next.size >= aligned {
		coalesceRight(block)
		block.free = false
		split(block, aligned)

		if a.scribbleEnabled() {
			scribble(unsafe.Add(ptr, oldSize), block.size-oldSize, 0xAA)
		}

		a.trace(func(b *traceio.Buffer) { traceRealloc(b, traceio.DetailInPlaceGrowth, ptr, ptr, size) })

		return ptr
	}

	newPtr := a.allocCore(aligned)
	if newPtr == nil {
		a.trace(func(b *traceio.Buffer) { traceRealloc(b, "failed: out of memory", ptr, nil, size) })
		return nil
	}

	copyMemory(newPtr, ptr, oldSize)

	if a.scribbleEnabled() && aligned > oldSize {
		scribble(unsafe.Add(newPtr, oldSize), aligned-oldSize, 0xAA)
	}

	a.freeCore(ptr)

	a.trace(func(b *traceio.Buffer) { traceRealloc(b, traceio.DetailMoved, ptr, newPtr, size) })

	return newPtr
}

func copyMemory(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}

	d := unsafe.Slice((*byte)(dst), int(n))
	s := unsafe.Slice((*byte)(src), int(n))
	copy(d, s)
}
