//go:build unix

package ftmalloc

import (
	"unsafe"

	"github.com/orizon-lang/ftmalloc/internal/traceio"
)

const stdout = 1

// ShowAllocMem prints the compact live-allocation listing for the
// package-level allocator to stdout.
func ShowAllocMem() { defaultGlobal().ShowAllocMem() }

// ShowAllocMemEx prints the extended live-allocation listing (with a
// hexdump of every live block's payload) for the package-level allocator
// to stdout.
func ShowAllocMemEx() { defaultGlobal().ShowAllocMemEx() }

// ShowAllocMem prints, under the allocator's mutex, one line per live
// (non-free) block, grouped by zone in ascending-address order, followed
// by a "Total : N bytes" line summing every printed block's payload size.
func (a *Allocator) ShowAllocMem() {
	a.mu.Lock()
	defer a.mu.Unlock()

	var total uint64

	var buf traceio.Buffer

	for z := a.zones; z != nil; z = z.next {
		buf.Reset()
		buf.AppendString(z.class.String()).AppendString(" : ").AppendPointer(z.base())
		traceio.WriteLine(stdout, &buf)

		for b := z.first; b != nil; b = b.next {
			if b.free {
				continue
			}

			buf.Reset()
			buf.AppendPointer(b.payload()).AppendString(" - ").AppendPointer(b.payloadEnd()).
				AppendString(" : ").AppendUint(uint64(b.size), 0).AppendString(" bytes")
			traceio.WriteLine(stdout, &buf)

			total += uint64(b.size)
		}
	}

	buf.Reset()
	buf.AppendString("Total : ").AppendUint(total, 0).AppendString(" bytes")
	traceio.WriteLine(stdout, &buf)
}

// ShowAllocMemEx prints the same zone/block listing as ShowAllocMem, plus
// a canonical hexdump of each live block's payload: one line per 16-byte
// window, an address column, two-digit uppercase hex bytes (space-padded
// on the final partial line), and an ASCII gutter with '.' for bytes
// outside the printable range 32..126.
func (a *Allocator) ShowAllocMemEx() {
	a.mu.Lock()
	defer a.mu.Unlock()

	var buf traceio.Buffer

	for z := a.zones; z != nil; z = z.next {
		buf.Reset()
		buf.AppendString(z.class.String()).AppendString(" : ").AppendPointer(z.base())
		traceio.WriteLine(stdout, &buf)

		for b := z.first; b != nil; b = b.next {
			if b.free {
				continue
			}

			buf.Reset()
			buf.AppendPointer(b.payload()).AppendString(" - ").AppendPointer(b.payloadEnd()).
				AppendString(" : ").AppendUint(uint64(b.size), 0).AppendString(" bytes")
			traceio.WriteLine(stdout, &buf)

			hexdump(b.payload(), b.size)
			traceio.WriteString(stdout, "\n")
		}
	}
}

const hexDigitsUpper = "0123456789ABCDEF"

func hexdump(ptr unsafe.Pointer, size uintptr) {
	data := unsafe.Slice((*byte)(ptr), int(size))

	var buf traceio.Buffer

	for i := uintptr(0); i < size; i += 16 {
		buf.Reset()
		buf.AppendPointer(unsafe.Add(ptr, i)).AppendString("  ")

		for col := uintptr(0); col < 16; col++ {
			if i+col < size {
				c := data[i+col]
				buf.AppendByte(hexDigitsUpper[c>>4]).AppendByte(hexDigitsUpper[c&0xF]).AppendByte(' ')
			} else {
				buf.AppendString("   ")
			}
		}

		buf.AppendString(" |")

		for col := uintptr(0); col < 16 && i+col < size; col++ {
			c := data[i+col]
			if c >= 32 && c <= 126 {
				buf.AppendByte(c)
			} else {
				buf.AppendByte('.')
			}
		}

		buf.AppendString("|")
		traceio.WriteLine(stdout, &buf)
	}
}
