// Package envconfig resolves the allocator's debug toggles from the
// process environment, once, before any allocation can be observed, and
// optionally keeps them live-updatable from a watched file for
// long-running processes.
package envconfig

import (
	"bufio"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Flags holds the two boolean toggles the allocator's public entry points
// consult on every call.
type Flags struct {
	Scribble bool
	Debug    bool
}

// truthy implements spec's truthiness rule: present, non-empty, and not
// literally "0".
func truthy(v string, ok bool) bool {
	return ok && v != "" && v != "0"
}

// FromEnviron reads MallocScribble and MallocDebug from the process
// environment. Call this exactly once, before the first allocation.
func FromEnviron() Flags {
	scribble, scribbleOK := os.LookupEnv("MallocScribble")
	debug, debugOK := os.LookupEnv("MallocDebug")

	return Flags{
		Scribble: truthy(scribble, scribbleOK),
		Debug:    truthy(debug, debugOK),
	}
}

// Watcher holds live, atomically-updatable copies of the two toggles plus
// an optional fsnotify watch on a directive file.
type Watcher struct {
	mu      sync.RWMutex
	flags   Flags
	watcher *fsnotify.Watcher
}

// NewWatcher seeds a Watcher from the environment. If path is non-empty,
// it additionally watches that file for changes and reparses it as
// "key=value" lines (keys MallocScribble / MallocDebug) on every write,
// applying the same truthiness rule. This never touches the allocation
// path itself; it only updates the two booleans consulted by the trace
// and scribble helpers.
func NewWatcher(path string) (*Watcher, error) {
	w := &Watcher{flags: FromEnviron()}

	if path == "" {
		return w, nil
	}

	if err := w.loadFile(path); err != nil {
		log.Printf("envconfig: initial read of %s failed: %v", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return w, err
	}

	if err := fw.Add(path); err != nil {
		_ = fw.Close()
		return w, err
	}

	w.watcher = fw

	go w.watchLoop(path)

	return w, nil
}

func (w *Watcher) watchLoop(path string) {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if err := w.loadFile(path); err != nil {
					log.Printf("envconfig: reload of %s failed: %v", path, err)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			log.Printf("envconfig: watch error: %v", err)
		}
	}
}

func (w *Watcher) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	next := w.Flags()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "MallocScribble":
			next.Scribble = truthy(value, true)
		case "MallocDebug":
			next.Debug = truthy(value, true)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	w.flags = next
	w.mu.Unlock()

	return nil
}

// Flags returns a snapshot of the current toggles.
func (w *Watcher) Flags() Flags {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.flags
}

// Close stops the underlying file watch, if any.
func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}

	return w.watcher.Close()
}
