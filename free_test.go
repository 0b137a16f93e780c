//go:build unix

package ftmalloc

import (
	"testing"
	"unsafe"
)

func TestFreeNilIsNoop(t *testing.T) {
	a := newTestAllocator(t)
	a.Free(nil) // must not panic
}

func TestFreeIdempotent(t *testing.T) {
	a := newTestAllocator(t)

	ptr := a.Malloc(32)
	if ptr == nil {
		t.Fatal("Malloc(32) returned nil")
	}

	a.Free(ptr)
	a.Free(ptr) // double free must be silently ignored, not crash
}

func TestFreeUnownedPointerIsIgnored(t *testing.T) {
	a := newTestAllocator(t)

	var stackVar int
	a.Free(unsafe.Pointer(&stackVar)) // must not panic or corrupt state
}

func TestFreeInteriorPointerIsIgnored(t *testing.T) {
	a := newTestAllocator(t)

	ptr := a.Malloc(32)
	if ptr == nil {
		t.Fatal("Malloc(32) returned nil")
	}

	interior := unsafe.Add(ptr, 1)
	a.Free(interior)

	// The original block must still be live and freeable normally.
	zone, block, _, ok := a.findBlock(ptr)
	if zone == nil || !ok || block.free {
		t.Fatal("interior free corrupted the owning block")
	}

	a.Free(ptr)
}

func TestFreeRemovesFromShowAllocMem(t *testing.T) {
	a := newTestAllocator(t)

	ptr := a.Malloc(42)
	if ptr == nil {
		t.Fatal("Malloc(42) returned nil")
	}

	a.Free(ptr)

	_, block, _, ok := a.findBlock(ptr)
	if ok && !block.free {
		t.Fatal("freed block still reports as allocated")
	}
}

func TestCoalesceMergesAdjacentFreeBlocks(t *testing.T) {
	a := newTestAllocator(t)

	p1 := a.Malloc(16)
	p2 := a.Malloc(16)
	p3 := a.Malloc(16)
	if p1 == nil || p2 == nil || p3 == nil {
		t.Fatal("setup allocations failed")
	}

	_, b1, _, ok1 := a.findBlock(p1)
	_, b2, _, ok2 := a.findBlock(p2)
	if !ok1 || !ok2 {
		t.Fatal("could not locate blocks")
	}

	sizeBefore := b1.size + blockHdrSize + b2.size

	a.Free(p1)
	a.Free(p2)

	// After both neighbors are free, b1 must have absorbed b2: no two
	// adjacent free blocks may coexist (coalescing invariant).
	if b1.next == b2 {
		t.Fatal("adjacent free blocks were not coalesced")
	}

	if b1.size < sizeBefore {
		t.Errorf("coalesced size = %d, want >= %d", b1.size, sizeBefore)
	}

	a.Free(p3)
}
