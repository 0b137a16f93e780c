//go:build unix

package traceio

// Event name constants for the allocator's debug trace lines, centralized
// here rather than scattered as string literals through the call sites
// that emit them.
const (
	EventMalloc  = "malloc"
	EventFree    = "free"
	EventRealloc = "realloc"
	EventCalloc  = "calloc"
	EventZone    = "zone"
	EventBlock   = "block"

	DetailOK              = "ok"
	DetailLarge           = "large"
	DetailIgnoredNull     = "ignored: null pointer"
	DetailIgnoredDouble   = "ignored: double free"
	DetailIgnoredInvalid  = "ignored: invalid pointer"
	DetailIgnoredNotOwned = "ignored: pointer not owned"
	DetailActsAsMalloc    = "acts as malloc"
	DetailActsAsFree      = "acts as free"
	DetailInPlaceShrink   = "in-place shrink"
	DetailInPlaceGrowth   = "in-place growth"
	DetailMoved           = "moved"
	DetailNewPooledZone   = "new pooled zone"
	DetailNewLargeZone    = "new large zone"
	DetailFailedMmap      = "failed: mmap"
	DetailFailedOverflow  = "failed: overflow"
	DetailCoalesce        = "coalesce"
	DetailSplit           = "split"
)
