package envconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvironTruthiness(t *testing.T) {
	cases := []struct {
		name  string
		value string
		unset bool
		want  bool
	}{
		{"unset", "", true, false},
		{"empty", "", false, false},
		{"zero", "0", false, false},
		{"one", "1", false, true},
		{"arbitrary", "yes", false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.unset {
				os.Unsetenv("MallocDebug")
			} else {
				os.Setenv("MallocDebug", c.value)
				defer os.Unsetenv("MallocDebug")
			}

			if got := FromEnviron().Debug; got != c.want {
				t.Errorf("Debug = %v, want %v", got, c.want)
			}
		})
	}
}

func TestWatcherFileReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ftmalloc.conf")

	if err := os.WriteFile(path, []byte("MallocDebug=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if !w.Flags().Debug {
		t.Fatal("expected Debug to be true after initial load")
	}

	if err := os.WriteFile(path, []byte("MallocDebug=0\nMallocScribble=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		flags := w.Flags()
		if !flags.Debug && flags.Scribble {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("flags did not converge after reload: %+v", w.Flags())
}

func TestNewWatcherNoPath(t *testing.T) {
	w, err := NewWatcher("")
	if err != nil {
		t.Fatalf("NewWatcher(\"\"): %v", err)
	}
	defer w.Close()
}
