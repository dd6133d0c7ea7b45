package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"lambda-hq/stlc/pkg/config"
)

func testConfig() *config.WatchConfig {
	return &config.WatchConfig{
		Debounce:   20 * time.Millisecond,
		Extensions: []string{".lam", ".stlc"},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

// recorder collects handler events.
type recorder struct {
	mu     sync.Mutex
	events []Event
	ch     chan Event
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan Event, 16)}
}

func (r *recorder) handle(_ context.Context, ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.ch <- ev
}

func (r *recorder) wait(t *testing.T) Event {
	t.Helper()
	select {
	case ev := <-r.ch:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return Event{}
	}
}

func startWatcher(t *testing.T, w *Watcher, r *recorder) {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Watch(context.Background(), r.handle) }()

	t.Cleanup(func() {
		w.Stop()
		if err := <-errCh; err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	})

	// Give the event loop a moment to start.
	time.Sleep(20 * time.Millisecond)
}

func TestWatcher_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lam")
	writeFile(t, path, "0")

	w, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	r := newRecorder()
	startWatcher(t, w, r)

	// A sibling in the same directory is not reported.
	writeFile(t, filepath.Join(dir, "other.lam"), "true")
	writeFile(t, path, "succ 0")

	ev := r.wait(t)
	if ev.Path != path {
		t.Errorf("event path = %q, want %q", ev.Path, path)
	}
	if ev.Op != OpWrite && ev.Op != OpCreate {
		t.Errorf("event op = %q, want write or create", ev.Op)
	}
}

func TestWatcher_DirectoryFiltersExtensions(t *testing.T) {
	dir := t.TempDir()

	w, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Add(dir); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	r := newRecorder()
	startWatcher(t, w, r)

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden.lam"), "ignored")
	target := filepath.Join(dir, "main.stlc")
	writeFile(t, target, "0")

	ev := r.wait(t)
	if ev.Path != target {
		t.Errorf("event path = %q, want %q", ev.Path, target)
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()

	w, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Add(dir); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	r := newRecorder()
	startWatcher(t, w, r)

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	// Wait until the new directory is tracked.
	deadline := time.Now().Add(3 * time.Second)
	for {
		w.mu.Lock()
		tracked := w.dirs[sub]
		w.mu.Unlock()
		if tracked {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("new subdirectory was not tracked")
		}
		time.Sleep(10 * time.Millisecond)
	}

	target := filepath.Join(sub, "nested.lam")
	writeFile(t, target, "0")

	ev := r.wait(t)
	if ev.Path != target {
		t.Errorf("event path = %q, want %q", ev.Path, target)
	}
}

func TestWatcher_Files(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()

	writeFile(t, filepath.Join(dir, "a.lam"), "0")
	writeFile(t, filepath.Join(dir, "b.stlc"), "0")
	writeFile(t, filepath.Join(dir, "c.txt"), "0")
	writeFile(t, filepath.Join(dir, ".d.lam"), "0")
	single := filepath.Join(other, "single.txt")
	writeFile(t, single, "0")

	w, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.watcher.Close()

	if err := w.Add(dir); err != nil {
		t.Fatalf("Add(dir) error = %v", err)
	}
	// Explicit files are tracked whatever their extension.
	if err := w.Add(single); err != nil {
		t.Fatalf("Add(file) error = %v", err)
	}

	got := w.Files()
	sort.Strings(got)
	want := []string{
		filepath.Join(dir, "a.lam"),
		filepath.Join(dir, "b.stlc"),
		single,
	}
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("Files() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Files()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWatcher_AddMissingPath(t *testing.T) {
	w, err := New(nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.watcher.Close()

	if err := w.Add(filepath.Join(t.TempDir(), "missing.lam")); err == nil {
		t.Error("Add() of a missing path succeeded, want error")
	}
}

func TestWatcher_ShouldProcessEvent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "explicit.txt")
	writeFile(t, file, "0")

	w, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.watcher.Close()

	sub := filepath.Join(dir, "src")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	if err := w.Add(sub); err != nil {
		t.Fatalf("Add(sub) error = %v", err)
	}
	if err := w.Add(file); err != nil {
		t.Fatalf("Add(file) error = %v", err)
	}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"explicit file write", fsnotify.Event{Name: file, Op: fsnotify.Write}, true},
		{"explicit file chmod", fsnotify.Event{Name: file, Op: fsnotify.Chmod}, false},
		{"sibling of explicit file", fsnotify.Event{Name: filepath.Join(dir, "x.lam"), Op: fsnotify.Write}, false},
		{"source in watched dir", fsnotify.Event{Name: filepath.Join(sub, "x.lam"), Op: fsnotify.Create}, true},
		{"upper-case extension", fsnotify.Event{Name: filepath.Join(sub, "X.LAM"), Op: fsnotify.Write}, true},
		{"other extension", fsnotify.Event{Name: filepath.Join(sub, "x.go"), Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: filepath.Join(sub, ".x.lam"), Op: fsnotify.Write}, false},
		{"remove", fsnotify.Event{Name: filepath.Join(sub, "x.lam"), Op: fsnotify.Remove}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestOpName(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want string
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Rename, OpRename},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Create | fsnotify.Write, OpCreate},
	}

	for _, tt := range tests {
		if got := opName(tt.op); got != tt.want {
			t.Errorf("opName(%v) = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_StopAndContext(t *testing.T) {
	t.Run("context cancellation", func(t *testing.T) {
		w, err := New(testConfig(), nil)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Watch(ctx, func(context.Context, Event) {}) }()

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Watch() error = %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Watch() did not return after cancel")
		}
		if w.Running() {
			t.Error("Running() = true after Watch returned")
		}
	})

	t.Run("stop before watch", func(t *testing.T) {
		w, err := New(testConfig(), nil)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		w.Stop()

		if err := w.Watch(context.Background(), func(context.Context, Event) {}); err != nil {
			t.Errorf("Watch() after Stop error = %v", err)
		}
	})
}
