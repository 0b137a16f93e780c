//go:build unix

package ftmalloc

import (
	"testing"
	"unsafe"
)

func TestReallocNilActsAsMalloc(t *testing.T) {
	a := newTestAllocator(t)

	p := a.Realloc(nil, 64)
	if p == nil {
		t.Fatal("Realloc(nil, 64) returned nil")
	}

	a.Free(p)
}

func TestReallocZeroActsAsFree(t *testing.T) {
	a := newTestAllocator(t)

	p := a.Malloc(32)
	if p == nil {
		t.Fatal("Malloc(32) returned nil")
	}

	q := a.Realloc(p, 0)
	if q != nil {
		t.Fatalf("Realloc(p, 0) = %p, want nil", q)
	}

	_, block, _, ok := a.findBlock(p)
	if ok && !block.free {
		t.Fatal("Realloc(p, 0) did not free the original block")
	}
}

func TestReallocInvalidPointerReturnsNil(t *testing.T) {
	a := newTestAllocator(t)

	var stackVar int

	q := a.Realloc(unsafe.Pointer(&stackVar), 64)
	if q != nil {
		t.Fatalf("Realloc(unowned, 64) = %p, want nil", q)
	}
}

func TestReallocPreservesPrefixAndAlignment(t *testing.T) {
	a := newTestAllocator(t)

	p := a.Malloc(64)
	if p == nil {
		t.Fatal("Malloc(64) returned nil")
	}

	data := unsafe.Slice((*byte)(p), 64)
	for i := range data {
		data[i] = byte(i)
	}

	q := a.Realloc(p, 512)
	if q == nil {
		t.Fatal("Realloc(p, 512) returned nil")
	}

	if uintptr(q)%alignment != 0 {
		t.Fatalf("Realloc result %p is not %d-aligned", q, alignment)
	}

	grown := unsafe.Slice((*byte)(q), 512)
	for i := 0; i < 64; i++ {
		if grown[i] != byte(i) {
			t.Fatalf("byte %d = %d, want %d", i, grown[i], byte(i))
		}
	}

	a.Free(q)
}

func TestReallocShrinkIsNoop(t *testing.T) {
	a := newTestAllocator(t)

	p := a.Malloc(128)
	if p == nil {
		t.Fatal("Malloc(128) returned nil")
	}

	_, before, _, ok := a.findBlock(p)
	if !ok {
		t.Fatal("could not locate block")
	}

	oldSize := before.size

	q := a.Realloc(p, 16)
	if q != p {
		t.Fatalf("Realloc shrink returned %p, want original %p", q, p)
	}

	_, after, _, ok := a.findBlock(q)
	if !ok {
		t.Fatal("could not locate block after shrink")
	}

	if after.size != oldSize {
		t.Errorf("shrink changed block size from %d to %d, want unchanged", oldSize, after.size)
	}

	a.Free(q)
}

func TestReallocGrowsInPlaceIntoFreedNeighbor(t *testing.T) {
	a := newTestAllocator(t)

	p1 := a.Malloc(16)
	p2 := a.Malloc(16)
	if p1 == nil || p2 == nil {
		t.Fatal("setup allocations failed")
	}

	a.Free(p2)

	q := a.Realloc(p1, 48)
	if q != p1 {
		t.Fatalf("expected in-place growth to keep address %p, got %p", p1, q)
	}

	a.Free(q)
}

func TestReallocToLargeSizePreservesPrefixAndScribblesTail(t *testing.T) {
	a := newTestAllocator(t, WithScribble(true))

	p := a.Malloc(64)
	if p == nil {
		t.Fatal("Malloc(64) returned nil")
	}

	data := unsafe.Slice((*byte)(p), 64)
	for i := range data {
		data[i] = byte(i + 1)
	}

	q := a.Realloc(p, 9216)
	if q == nil {
		t.Fatal("Realloc(p, 9216) returned nil")
	}

	grown := unsafe.Slice((*byte)(q), 9216)
	for i := 0; i < 64; i++ {
		if grown[i] != byte(i+1) {
			t.Fatalf("byte %d = %d, want %d", i, grown[i], byte(i+1))
		}
	}

	for i := 64; i < 9216; i++ {
		if grown[i] != 0xAA {
			t.Fatalf("tail byte %d = %#x, want 0xAA scribble", i, grown[i])
		}
	}

	a.Free(q)
}
