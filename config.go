//go:build unix

package ftmalloc

import "github.com/orizon-lang/ftmalloc/internal/envconfig"

// Config controls the tunable knobs of an Allocator. The alignment quantum
// and the header layouts derived from it are not configurable: they are
// load-bearing compile-time constants, matching the original allocator's
// ALIGN_UP/BLOCK_HDR_SIZE macros.
type Config struct {
	// TinyLimit is the largest aligned payload size routed to a TINY zone.
	TinyLimit uintptr
	// SmallLimit is the largest aligned payload size routed to a SMALL
	// zone; anything larger is LARGE.
	SmallLimit uintptr
	// MinAllocs is the number of allocations a freshly created pooled
	// zone is sized to accommodate.
	MinAllocs uintptr
	// Scribble enables the 0xAA/0x55 debug fill patterns.
	Scribble bool
	// Debug enables allocation-free trace lines on stderr.
	Debug bool
	// DebugFD is the file descriptor debug traces are written to.
	DebugFD int
	// ConfigFile, if set, is watched for live MallocScribble/MallocDebug
	// updates via internal/envconfig.
	ConfigFile string
}

// Option configures an Allocator at construction time.
type Option func(*Config)

func defaultConfig() *Config {
	flags := envconfig.FromEnviron()

	return &Config{
		TinyLimit:  128,
		SmallLimit: 1024,
		MinAllocs:  100,
		Scribble:   flags.Scribble,
		Debug:      flags.Debug,
		DebugFD:    2,
	}
}

// WithTinyLimit overrides the TINY/SMALL routing boundary.
func WithTinyLimit(limit uintptr) Option {
	return func(c *Config) { c.TinyLimit = limit }
}

// WithSmallLimit overrides the SMALL/LARGE routing boundary.
func WithSmallLimit(limit uintptr) Option {
	return func(c *Config) { c.SmallLimit = limit }
}

// WithMinAllocs overrides the pooled-zone sizing target.
func WithMinAllocs(n uintptr) Option {
	return func(c *Config) { c.MinAllocs = n }
}

// WithScribble forces the scribble toggle, overriding MallocScribble.
func WithScribble(enabled bool) Option {
	return func(c *Config) { c.Scribble = enabled }
}

// WithDebug forces the debug-trace toggle, overriding MallocDebug.
func WithDebug(enabled bool) Option {
	return func(c *Config) { c.Debug = enabled }
}

// WithDebugFD redirects debug trace output to a different file descriptor.
func WithDebugFD(fd int) Option {
	return func(c *Config) { c.DebugFD = fd }
}

// WithConfigFile enables live reload of the debug toggles from path.
func WithConfigFile(path string) Option {
	return func(c *Config) { c.ConfigFile = path }
}
