// Package main provides a small command-line harness for exercising
// ftmalloc outside of its test suite.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"unsafe"

	"github.com/orizon-lang/ftmalloc"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		count       = flag.Int("count", 8, "number of allocations to create")
		size        = flag.Int("size", 64, "payload size in bytes for each allocation")
		scribble    = flag.Bool("scribble", false, "enable the MallocScribble debug pattern")
		debug       = flag.Bool("debug", false, "enable MallocDebug trace output on stderr")
		show        = flag.Bool("show", false, "print ShowAllocMem before exiting")
		showEx      = flag.Bool("show-ex", false, "print ShowAllocMemEx (with hexdumps) before exiting")
	)

	flag.Parse()

	if *showVersion {
		fmt.Println("ftmalloc-demo 0.1.0")
		return
	}

	if *size < 0 || *count < 0 {
		fmt.Fprintln(os.Stderr, "Error: -count and -size must be non-negative")
		os.Exit(1)
	}

	opts := []ftmalloc.Option{
		ftmalloc.WithScribble(*scribble),
		ftmalloc.WithDebug(*debug),
	}

	if *debug {
		opts = append(opts, ftmalloc.WithDebugFD(2))
	}

	a, err := ftmalloc.New(opts...)
	if err != nil {
		log.Fatalf("ftmalloc.New: %v", err)
	}

	defer a.Close()

	ptrs := make([]unsafe.Pointer, 0, *count)

	for i := 0; i < *count; i++ {
		p := a.Malloc(uintptr(*size))
		if p == nil {
			log.Fatalf("allocation %d of %d bytes failed", i, *size)
		}

		ptrs = append(ptrs, p)
	}

	if *show {
		a.ShowAllocMem()
	}

	if *showEx {
		a.ShowAllocMemEx()
	}

	for i, p := range ptrs {
		if i%2 == 0 {
			a.Free(p)
		}
	}

	for i, p := range ptrs {
		if i%2 != 0 {
			a.Free(p)
		}
	}

	if *show || *showEx {
		a.ShowAllocMem()
	}
}
