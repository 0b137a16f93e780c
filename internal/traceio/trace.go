//go:build unix

// Package traceio renders integers, pointers and literal strings to a file
// descriptor without allocating. It exists so the allocator's debug trace
// path can describe an in-flight allocation without re-entering the
// allocator it is instrumenting.
package traceio

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const bufSize = 256

// Buffer is a fixed-capacity byte buffer composed by repeated Append calls
// and flushed with a single Write syscall. Overflowing appends are
// silently truncated rather than growing the buffer, since growing would
// allocate.
type Buffer struct {
	data [bufSize]byte
	n    int
}

// Reset empties the buffer for reuse.
func (b *Buffer) Reset() {
	b.n = 0
}

// AppendString appends s verbatim, truncating if it would overflow.
func (b *Buffer) AppendString(s string) *Buffer {
	n := copy(b.data[b.n:], s)
	b.n += n

	return b
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) *Buffer {
	if b.n < bufSize {
		b.data[b.n] = c
		b.n++
	}

	return b
}

// AppendUint appends n as zero-padded decimal digits, padded to width
// characters (no padding when width is 0 or the decimal form is already
// at least that wide).
func (b *Buffer) AppendUint(n uint64, width int) *Buffer {
	var digits [20]byte

	i := len(digits)
	if n == 0 {
		i--
		digits[i] = '0'
	}

	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}

	numLen := len(digits) - i
	for pad := width - numLen; pad > 0; pad-- {
		b.AppendByte('0')
	}

	return b.AppendString(string(digits[i:]))
}

// AppendPointer appends p as a lowercase "0x"-prefixed hex address, or the
// literal token "(nil)" when p is nil.
func (b *Buffer) AppendPointer(p unsafe.Pointer) *Buffer {
	if p == nil {
		return b.AppendString("(nil)")
	}

	const hexDigits = "0123456789abcdef"

	addr := uintptr(p)

	var digits [16]byte

	i := len(digits)
	for addr > 0 {
		i--
		digits[i] = hexDigits[addr&0xF]
		addr >>= 4
	}

	if i == len(digits) {
		i--
		digits[i] = '0'
	}

	return b.AppendString("0x").AppendString(string(digits[i:]))
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n]
}

// WriteLine writes b's contents followed by a newline to fd, allocation-free.
func WriteLine(fd int, b *Buffer) {
	b.AppendByte('\n')
	_, _ = unix.Write(fd, b.Bytes())
}

// WriteString writes s directly to fd without a trailing newline,
// allocation-free (no []byte(s) copy).
func WriteString(fd int, s string) {
	if len(s) == 0 {
		return
	}

	_, _ = unix.Write(fd, unsafe.Slice(unsafe.StringData(s), len(s)))
}
