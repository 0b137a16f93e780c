//go:build unix

// Package ftmalloc is a drop-in general-purpose allocator. It carves
// payloads out of zones obtained from the OS in bulk via anonymous page
// mappings, pooling TINY and SMALL requests and dedicating one mapping
// per LARGE request, in the style of a classic tcmalloc-lite allocator.
package ftmalloc

import (
	"sync"
	"unsafe"

	"github.com/orizon-lang/ftmalloc/internal/envconfig"
	"github.com/orizon-lang/ftmalloc/internal/traceio"
)

const maxUintptr = ^uintptr(0)

// Allocator is a self-contained instance of the three-class zone
// allocator. The zero value is not usable; construct one with New.
type Allocator struct {
	mu       sync.Mutex
	zones    *zoneHeader
	cfg      Config
	watcher  *envconfig.Watcher
	traceBuf traceio.Buffer
}

// New constructs an Allocator with the given options layered over the
// environment-derived defaults (MallocScribble, MallocDebug).
func New(opts ...Option) (*Allocator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	a := &Allocator{cfg: *cfg}

	if cfg.ConfigFile != "" {
		w, err := envconfig.NewWatcher(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}

		a.watcher = w
	}

	return a, nil
}

// Close releases the Allocator's live config watch, if any. It does not
// unmap any zone: pooled zones are never returned to the OS while the
// allocator is in use.
func (a *Allocator) Close() error {
	if a.watcher == nil {
		return nil
	}

	return a.watcher.Close()
}

var (
	globalMu sync.Mutex
	global   *Allocator
)

// defaultGlobal lazily constructs the package-level Allocator on first
// use, so environment resolution happens before the first allocation
// without requiring an explicit Init call.
func defaultGlobal() *Allocator {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		a, err := New()
		if err != nil {
			panic("ftmalloc: failed to initialize default allocator: " + err.Error())
		}

		global = a
	}

	return global
}

// Init installs a package-level Allocator built from opts, replacing any
// previous default. Call it before the first Malloc/Free/Realloc/Calloc
// when non-default options are needed; otherwise the default allocator
// initializes itself lazily from the environment alone.
func Init(opts ...Option) error {
	a, err := New(opts...)
	if err != nil {
		return err
	}

	globalMu.Lock()
	global = a
	globalMu.Unlock()

	return nil
}

// Malloc allocates at least size bytes using the package-level allocator
// and returns a 16-byte-aligned pointer, or nil on failure.
func Malloc(size uintptr) unsafe.Pointer { return defaultGlobal().Malloc(size) }

// Malloc allocates at least size bytes and returns a 16-byte-aligned
// pointer, or nil on failure. size == 0 yields a minimal real allocation
// (a deliberate, stable choice — see DESIGN.md).
func (a *Allocator) Malloc(size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.allocCore(size)
}

// allocCore is the lock-free allocation core; callers must hold a.mu.
func (a *Allocator) allocCore(size uintptr) unsafe.Pointer {
	requested := size
	if requested == 0 {
		requested = 1
	}

	if requested > maxUintptr-(alignment-1) {
		a.trace(func(b *traceio.Buffer) { traceMalloc(b, requested, traceio.DetailFailedOverflow, nil) })
		return nil
	}

	aligned := alignUp(requested)
	class := classify(aligned, &a.cfg)

	block := a.findFree(class, aligned)

	if block == nil {
		zone, err := newZone(class, aligned, &a.cfg)
		if err != nil {
			a.trace(func(b *traceio.Buffer) { traceZone(b, class, 0, traceio.DetailFailedMmap) })
			a.trace(func(b *traceio.Buffer) { traceMalloc(b, requested, traceio.DetailFailedMmap, nil) })

			return nil
		}

		a.insertZone(zone)
		block = zone.first

		detail := traceio.DetailNewPooledZone
		if class == classLarge {
			detail = traceio.DetailNewLargeZone
		}

		a.trace(func(b *traceio.Buffer) { traceZone(b, class, zone.size, detail) })
	}

	if class != classLarge {
		if didSplit, remainder := split(block, aligned); didSplit {
			a.trace(func(b *traceio.Buffer) { traceSplit(b, aligned, remainder) })
		}
	} else {
		block.free = false
	}

	ptr := block.payload()

	if a.scribbleEnabled() {
		scribble(ptr, requested, 0xAA)
	}

	detail := traceio.DetailOK
	if class == classLarge {
		detail = traceio.DetailLarge
	}

	a.trace(func(b *traceio.Buffer) { traceMalloc(b, requested, detail, ptr) })

	return ptr
}
