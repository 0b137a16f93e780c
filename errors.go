//go:build unix

package ftmalloc

import "errors"

// ErrOutOfMemory is wrapped into the internal error returned by the zone
// manager when mmap fails. It never
// escapes the public API: Malloc/Realloc/Calloc signal the same condition
// by returning a nil pointer, per this allocator's failure contract.
var ErrOutOfMemory = errors.New("ftmalloc: out of memory")
