//go:build unix

package ftmalloc

import (
	"unsafe"

	"github.com/orizon-lang/ftmalloc/internal/traceio"
)

// Calloc allocates a zero-filled array of count elements of size bytes
// each using the package-level allocator.
func Calloc(count, size uintptr) unsafe.Pointer { return defaultGlobal().Calloc(count, size) }

// Calloc allocates a zero-filled array of count elements of size bytes
// each, or nil if count*size would overflow or the underlying Malloc
// fails. The zero-fill happens after allocation and overrides any
// scribble pattern Malloc may have applied.
func (a *Allocator) Calloc(count, size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()

	if count != 0 && size > maxUintptr/count {
		a.trace(func(b *traceio.Buffer) { traceCalloc(b, 0, "failed: multiplication overflow", nil) })
		return nil
	}

	total := count * size

	ptr := a.allocCore(total)
	if ptr == nil {
		a.trace(func(b *traceio.Buffer) { traceCalloc(b, total, "failed: malloc", nil) })
		return nil
	}

	scribble(ptr, total, 0)
	a.trace(func(b *traceio.Buffer) { traceCalloc(b, total, traceio.DetailOK, ptr) })

	return ptr
}
