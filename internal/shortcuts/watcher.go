package shortcuts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"iconvault/internal/logging"
)

const defaultDebounce = 250 * time.Millisecond

// WatcherOptions tunes watcher construction.
type WatcherOptions struct {
	// Debounce is how long the watcher waits after the last relevant
	// event before rescanning. Zero means the default.
	Debounce time.Duration
	// OnAdded is invoked after a rescan with shortcut paths that were
	// not indexed before. Runs on the watcher goroutine.
	OnAdded func(paths []string)
	Logger  *slog.Logger
}

// Watcher keeps an index current as shortcuts change on disk.
type Watcher struct {
	index    *Index
	debounce time.Duration
	onAdded  func(paths []string)
	logger   *slog.Logger
}

// NewWatcher creates a watcher over the index's roots.
func NewWatcher(index *Index, opts WatcherOptions) *Watcher {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		index:    index,
		debounce: debounce,
		onAdded:  opts.OnAdded,
		logger:   logging.NewComponentLogger(opts.Logger, "shortcuts"),
	}
}

// Run watches the shortcut roots until ctx is canceled. Events are
// debounced; each quiet period triggers one rescan. Newly indexed
// shortcuts are reported through OnAdded.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create filesystem watcher: %w", err)
	}
	defer fsw.Close()

	watched := 0
	for _, root := range w.index.Roots() {
		if err := addRecursive(fsw, root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				w.logger.Debug("shortcut root missing", logging.String("root", root))
				continue
			}
			return fmt.Errorf("watch %s: %w", root, err)
		}
		watched++
	}
	if watched == 0 {
		return errors.New("no shortcut roots available to watch")
	}

	if err := w.index.Rescan(); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}
	known := pathSet(w.index.Paths())

	w.logger.Info("watching shortcut roots",
		logging.Int("roots", watched),
		logging.Int("shortcuts", len(known)),
		logging.Duration("debounce", w.debounce))

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fsw, event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logging.Error(err))

		case <-pending:
			timer = nil
			pending = nil
			if err := w.index.Rescan(); err != nil {
				w.logger.Warn("rescan failed", logging.Error(err))
				continue
			}
			added := make([]string, 0)
			current := pathSet(w.index.Paths())
			for path := range current {
				if !known[path] {
					added = append(added, path)
				}
			}
			known = current
			if len(added) > 0 {
				w.logger.Info("shortcuts appeared", logging.Int("count", len(added)))
				if w.onAdded != nil {
					w.onAdded(added)
				}
			}
		}
	}
}

// relevant reports whether an event can change the index. New
// directories start being watched as a side effect, since a folder
// moved into a root may carry shortcuts.
func (w *Watcher) relevant(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if strings.EqualFold(filepath.Ext(event.Name), ShortcutExt) {
		return true
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addRecursive(fsw, event.Name); err != nil {
				w.logger.Warn("watch new directory failed",
					logging.String("dir", event.Name),
					logging.Error(err))
			}
			return true
		}
	}
	return false
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}

func pathSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, path := range paths {
		set[path] = true
	}
	return set
}
