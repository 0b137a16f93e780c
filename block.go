//go:build unix

package ftmalloc

import "unsafe"

// classify returns the zone class serving an already-aligned payload size.
func classify(alignedSize uintptr, cfg *Config) zoneClass {
	switch {
	case alignedSize <= cfg.TinyLimit:
		return classTiny
	case alignedSize <= cfg.SmallLimit:
		return classSmall
	default:
		return classLarge
	}
}

// findFree returns the first free block of at least need bytes among
// zones of the given class, in zone-list then block-list order.
func (a *Allocator) findFree(class zoneClass, need uintptr) *blockHeader {
	for z := a.zones; z != nil; z = z.next {
		if z.class != class {
			continue
		}

		for b := z.first; b != nil; b = b.next {
			if b.free && b.size >= need {
				return b
			}
		}
	}

	return nil
}

// split carves block into a used prefix of exactly need bytes and a free
// remainder, when the remainder would itself be a valid block (header +
// minimum payload). Otherwise the whole block is marked used, accepting
// internal fragmentation. Reports whether a remainder was carved off and,
// if so, its payload size, purely for debug tracing.
func split(block *blockHeader, need uintptr) (didSplit bool, remainderSize uintptr) {
	if block.size >= need+blockHdrSize+alignment {
		remainder := blockAt(unsafe.Add(block.payload(), need))
		remainder.size = block.size - need - blockHdrSize
		remainder.next = block.next
		remainder.free = true

		block.size = need
		block.next = remainder
		block.free = false

		return true, remainder.size
	}

	block.free = false

	return false, 0
}

// coalesceRight merges current with its immediate right neighbor when
// that neighbor exists and is free. Left-merges are expressed by the
// caller as coalesceRight(previous). Reports whether a merge happened and
// the resulting block size, purely for debug tracing.
func coalesceRight(current *blockHeader) (merged bool, newSize uintptr) {
	next := current.next
	if next != nil && next.free {
		current.size += blockHdrSize + next.size
		current.next = next.next

		return true, current.size
	}

	return false, current.size
}

// findBlock locates the block backing ptr, returning the owning zone, the
// block, and the block immediately preceding it in its zone's list (nil
// if it is the first block). ok is false if ptr is not a valid block
// start in any owned zone.
func (a *Allocator) findBlock(ptr unsafe.Pointer) (zone *zoneHeader, block, prev *blockHeader, ok bool) {
	zone = a.findZone(ptr)
	if zone == nil {
		return nil, nil, nil, false
	}

	var p *blockHeader

	for b := zone.first; b != nil; b = b.next {
		if b.payload() == ptr {
			return zone, b, p, true
		}

		p = b
	}

	return zone, nil, nil, false
}
