package load

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the record file watcher
type WatcherConfig struct {
	// Root is the directory to watch
	Root string

	// Patterns select the record files whose changes matter
	Patterns []string

	// DebounceDelay is how long to wait for more changes before emitting
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// Operation indicates the type of file operation
type Operation string

const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Change is one record file that changed
type Change struct {
	// Path is the absolute file path
	Path string

	// Operation is the type of change
	Operation Operation
}

// Watcher watches record files and emits debounced batches of changes
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op // path → accumulated operations
	lastEvent time.Time

	// Content hashes, so saves without edits are ignored
	hashMu sync.Mutex
	hashes map[string]string

	events chan []Change
}

// NewWatcher creates a new record file watcher
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}
	if len(config.Patterns) == 0 {
		config.Patterns = []string{DefaultPattern}
	}
	if root, err := filepath.Abs(config.Root); err == nil {
		config.Root = root
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]string),
		events:  make(chan []Change, 16),
	}, nil
}

// Events returns the channel of change batches. It is closed when the watcher
// stops.
func (w *Watcher) Events() <-chan []Change {
	return w.events
}

// Start records the current content of files and begins watching. Events stop
// and the channel closes when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context, files []string) error {
	for _, f := range files {
		if sum, err := hashFile(f); err == nil {
			w.setHash(f, sum)
		}
	}

	if err := w.addWatchesRecursive(w.config.Root); err != nil {
		w.watcher.Close()
		close(w.events)
		return fmt.Errorf("watch %s: %w", w.config.Root, err)
	}

	go w.processEvents(ctx)

	w.logger.Info("File watcher started",
		"root", w.config.Root,
		"debounce", w.config.DebounceDelay)

	return nil
}

// addWatchesRecursive adds watches to all directories
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && skipDir(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

func skipDir(path string) bool {
	base := filepath.Base(path)
	return base == "vendor" || base == "node_modules" || strings.HasPrefix(base, ".")
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(max(w.config.DebounceDelay/2, time.Millisecond))
	defer func() {
		ticker.Stop()
		w.watcher.Close()
		close(w.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.handleNewDirectory(path)
			return
		}
	}

	if !Match(w.config.Root, w.config.Patterns, path) {
		return
	}

	w.markPending(path, event.Op)

	w.logger.Debug("File change detected",
		"path", path,
		"op", event.Op.String())
}

func (w *Watcher) markPending(path string, op fsnotify.Op) {
	w.pendingMu.Lock()
	w.pending[path] |= op
	w.lastEvent = time.Now()
	w.pendingMu.Unlock()
}

// handleNewDirectory adds a watch to a newly created directory
func (w *Watcher) handleNewDirectory(path string) {
	if skipDir(path) {
		return
	}
	if err := w.addWatchesRecursive(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
		return
	}

	// Files written before the watch was added produce no events
	_ = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && Match(w.config.Root, w.config.Patterns, p) {
			w.markPending(p, fsnotify.Create)
		}
		return nil
	})
}

// flushPending emits accumulated changes as one batch once no event has
// arrived for the debounce delay
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 || time.Since(w.lastEvent) < w.config.DebounceDelay {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	var batch []Change
	for path, op := range toProcess {
		change := Change{Path: path}

		sum, err := hashFile(path)
		if err != nil {
			// Removed, renamed away or unreadable
			if !w.dropHash(path) {
				continue
			}
			change.Operation = OpDelete
			batch = append(batch, change)
			continue
		}

		old, had := w.hash(path)
		if had && old == sum {
			continue
		}
		w.setHash(path, sum)

		if op.Has(fsnotify.Create) || !had {
			change.Operation = OpCreate
		} else {
			change.Operation = OpModify
		}
		batch = append(batch, change)
	}

	if len(batch) == 0 {
		return
	}

	select {
	case w.events <- batch:
		w.logger.Debug("Sent watch batch", "changes", len(batch))
	case <-ctx.Done():
	default:
		w.logger.Warn("Event channel full, dropping batch", "changes", len(batch))
	}
}

func (w *Watcher) hash(path string) (string, bool) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	h, ok := w.hashes[path]
	return h, ok
}

func (w *Watcher) setHash(path, sum string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = sum
}

func (w *Watcher) dropHash(path string) bool {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	_, ok := w.hashes[path]
	delete(w.hashes, path)
	return ok
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
