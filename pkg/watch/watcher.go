package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"lambda-hq/stlc/pkg/config"
)

// Event operations reported to handlers.
const (
	OpCreate = "create"
	OpWrite  = "write"
	OpRename = "rename"
	OpRemove = "remove"
)

// Event is a debounced change to one source file.
type Event struct {
	Path string // Absolute path of the changed file
	Op   string // Last operation seen during the debounce window
}

// Handler is called for every debounced event.
type Handler func(ctx context.Context, event Event)

// Watcher watches source files and directories and reports changes.
//
// Files are watched through their parent directory so editors that save by
// renaming a temporary file over the original keep being tracked.
// Directories are watched recursively; only files with one of the
// configured extensions are reported from them, and hidden entries are
// skipped.
type Watcher struct {
	watcher  *fsnotify.Watcher
	config   *config.WatchConfig
	logger   *slog.Logger
	debounce *Debouncer

	mu      sync.Mutex
	files   map[string]bool // Explicitly added files
	dirs    map[string]bool // Directories added recursively
	running bool

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a watcher. A nil config uses the watch defaults.
func New(cfg *config.WatchConfig, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil {
		cfg = &config.WatchConfig{
			Debounce:   config.DefaultWatchDebounce,
			Extensions: append([]string(nil), config.DefaultWatchExtensions...),
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		config:   cfg,
		logger:   logger.With("component", "watch"),
		debounce: NewDebouncer(cfg.Debounce),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Add registers a file or a directory tree.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", path, err)
	}

	if info.IsDir() {
		return w.addDirectory(abs)
	}

	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", path, err)
	}

	w.mu.Lock()
	w.files[abs] = true
	w.mu.Unlock()

	w.logger.Debug("watching file", "path", abs)
	return nil
}

// addDirectory watches dir and every non-hidden subdirectory.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}

		w.mu.Lock()
		w.dirs[path] = true
		w.mu.Unlock()

		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// Files returns the source files currently present under the watched
// paths, in lexical order within each directory.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []string
	for f := range w.files {
		out = append(out, f)
	}
	for dir := range w.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if e.IsDir() || w.files[path] || isHidden(path) || !w.hasValidExtension(path) {
				continue
			}
			out = append(out, path)
		}
	}
	return out
}

// Watch processes file events until ctx is done or Stop is called, calling
// handler once per debounced change. It closes the underlying watcher on
// return.
func (w *Watcher) Watch(ctx context.Context, handler Handler) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.watcher.Close()

		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	w.logger.Info("file watcher started",
		"files", len(w.files),
		"directories", len(w.dirs),
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			w.trackNewDirectory(event)

			if !w.shouldProcessEvent(event) {
				continue
			}

			ev := Event{Path: event.Name, Op: opName(event.Op)}
			w.logger.Debug("file event detected", "path", ev.Path, "op", ev.Op)

			w.debounce.Trigger(ev.Path, func() {
				handler(ctx, ev)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Running reports whether Watch is currently delivering events.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Stop ends a running Watch and waits for it to return.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	w.stopOnce.Do(func() { close(w.stopCh) })

	if running {
		<-w.doneCh
	}
}

// trackNewDirectory starts watching directories created inside a watched
// directory tree.
func (w *Watcher) trackNewDirectory(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}

	w.mu.Lock()
	parentWatched := w.dirs[filepath.Dir(event.Name)]
	w.mu.Unlock()
	if !parentWatched || isHidden(event.Name) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}

	if err := w.addDirectory(event.Name); err != nil {
		w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
	}
}

// shouldProcessEvent reports whether an event concerns a watched source
// file.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod || event.Op == 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[event.Name] {
		return true
	}
	if !w.dirs[filepath.Dir(event.Name)] {
		return false
	}
	if isHidden(event.Name) {
		return false
	}
	return w.hasValidExtension(event.Name)
}

// hasValidExtension reports whether path ends in a configured extension.
func (w *Watcher) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range w.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	case op.Has(fsnotify.Create):
		return OpCreate
	default:
		return OpWrite
	}
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
