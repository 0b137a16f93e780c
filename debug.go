//go:build unix

package ftmalloc

import (
	"unsafe"

	"github.com/orizon-lang/ftmalloc/internal/traceio"
)

// trace builds and emits one debug line via build, when debug tracing is
// enabled. The buffer lives on the Allocator, not the stack, but is only
// ever touched while a.mu is held, so reuse across calls is safe and
// allocation-free.
func (a *Allocator) trace(build func(b *traceio.Buffer)) {
	if !a.debugEnabled() {
		return
	}

	a.traceBuf.Reset()
	build(&a.traceBuf)
	traceio.WriteLine(a.cfg.DebugFD, &a.traceBuf)
}

func (a *Allocator) debugEnabled() bool {
	if a.watcher != nil {
		return a.watcher.Flags().Debug
	}

	return a.cfg.Debug
}

func (a *Allocator) scribbleEnabled() bool {
	if a.watcher != nil {
		return a.watcher.Flags().Scribble
	}

	return a.cfg.Scribble
}

func traceMalloc(b *traceio.Buffer, size uintptr, detail string, ptr unsafe.Pointer) {
	b.AppendString(traceio.EventMalloc).AppendByte(' ').AppendString(detail).AppendString(" size=").
		AppendUint(uint64(size), 0).AppendString(" ptr=").AppendPointer(ptr)
}

func traceFree(b *traceio.Buffer, detail string, ptr unsafe.Pointer) {
	b.AppendString(traceio.EventFree).AppendByte(' ').AppendString(detail).AppendString(" ptr=").AppendPointer(ptr)
}

func traceRealloc(b *traceio.Buffer, detail string, oldPtr, newPtr unsafe.Pointer, size uintptr) {
	b.AppendString(traceio.EventRealloc).AppendByte(' ').AppendString(detail).AppendString(" old=").AppendPointer(oldPtr).
		AppendString(" new=").AppendPointer(newPtr).AppendString(" size=").AppendUint(uint64(size), 0)
}

func traceCalloc(b *traceio.Buffer, total uintptr, detail string, ptr unsafe.Pointer) {
	b.AppendString(traceio.EventCalloc).AppendByte(' ').AppendString(detail).AppendString(" size=").
		AppendUint(uint64(total), 0).AppendString(" ptr=").AppendPointer(ptr)
}

func traceZone(b *traceio.Buffer, class zoneClass, size uintptr, detail string) {
	b.AppendString(traceio.EventZone).AppendByte(' ').AppendString(detail).AppendString(" class=").
		AppendString(class.String()).AppendString(" size=").AppendUint(uint64(size), 0)
}

func traceSplit(b *traceio.Buffer, need, remainder uintptr) {
	b.AppendString(traceio.EventBlock).AppendByte(' ').AppendString(traceio.DetailSplit).AppendString(" need=").
		AppendUint(uint64(need), 0).AppendString(" remainder=").AppendUint(uint64(remainder), 0)
}

func traceCoalesce(b *traceio.Buffer, merged uintptr) {
	b.AppendString(traceio.EventBlock).AppendByte(' ').AppendString(traceio.DetailCoalesce).
		AppendString(" merged_size=").AppendUint(uint64(merged), 0)
}
