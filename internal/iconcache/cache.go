package iconcache

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"iconvault/internal/icon"
	"iconvault/internal/logging"
)

// Store persists cache snapshots. A missing backing file is an empty
// snapshot, not an error; corrupt contents are an error the cache logs
// and treats as a fresh start.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Snapshot is the serializable state a Store persists.
type Snapshot struct {
	Apps  map[string]icon.Descriptor `json:"apps"`
	Files map[string]icon.Descriptor `json:"files"`
}

// Clone returns a deep copy so callers can hold a snapshot without
// racing the cache.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Apps:  make(map[string]icon.Descriptor, len(s.Apps)),
		Files: make(map[string]icon.Descriptor, len(s.Files)),
	}
	for key, desc := range s.Apps {
		out.Apps[key] = desc
	}
	for key, desc := range s.Files {
		out.Files[key] = desc
	}
	return out
}

// Cache provides thread-safe access to the icon pack. A single instance
// is shared by every extraction caller.
//
// Mutating sequences follow a check-then-act pattern: the lock is taken
// to check for a hit, released while the potentially slow extraction
// runs, then retaken to insert and flush. Two concurrent requests for
// the same key may therefore both miss and both extract; the last insert
// wins and no state is corrupted, only work is duplicated. Extraction
// recurses through shortcut aliases back into the cache, so this window
// must not be silently replaced with a per-key lock.
type Cache struct {
	store  Store
	logger *slog.Logger

	mu    sync.Mutex
	apps  map[string]icon.Descriptor
	files map[string]icon.Descriptor
}

// New creates a cache backed by store. A nil store keeps the cache
// memory-only (Write becomes a no-op). Existing pack contents are loaded
// eagerly; a corrupt pack is logged and treated as empty.
func New(store Store, logger *slog.Logger) *Cache {
	logger = logging.NewComponentLogger(logger, "iconcache")

	c := &Cache{
		store:  store,
		logger: logger,
		apps:   make(map[string]icon.Descriptor),
		files:  make(map[string]icon.Descriptor),
	}

	if store == nil {
		return c
	}

	snap, err := store.Load(context.Background())
	if err != nil {
		logger.Warn("failed to load icon pack",
			logging.Error(err),
			logging.String("impact", "pack starts empty; icons will be re-extracted"))
		return c
	}
	for key, desc := range snap.Apps {
		if strings.TrimSpace(key) != "" && !desc.IsZero() {
			c.apps[key] = desc
		}
	}
	for key, desc := range snap.Files {
		if strings.TrimSpace(key) != "" && !desc.IsZero() {
			c.files[key] = desc
		}
	}
	logger.Debug("loaded icon pack",
		logging.Int("app_entries", len(c.apps)),
		logging.Int("file_entries", len(c.files)))
	return c
}

// AppIcon returns the descriptor cached for an absolute path or
// application identity key.
func (c *Cache) AppIcon(key string) (icon.Descriptor, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return icon.Descriptor{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	desc, ok := c.apps[key]
	return desc, ok
}

// FileIcon returns the descriptor cached for a file extension. The
// argument may be a bare extension or any path; both normalize to the
// lowercased extension key.
func (c *Cache) FileIcon(extensionOrPath string) (icon.Descriptor, bool) {
	key := ExtensionKey(extensionOrPath)
	if key == "" {
		return icon.Descriptor{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	desc, ok := c.files[key]
	return desc, ok
}

// SetAppIcon records a descriptor in the app namespace, overwriting any
// previous entry for the key.
func (c *Cache) SetAppIcon(key string, desc icon.Descriptor) {
	key = strings.TrimSpace(key)
	if key == "" || desc.IsZero() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apps[key] = desc
}

// SetFileIcon records a descriptor in the file namespace under the
// normalized extension key.
func (c *Cache) SetFileIcon(extension string, desc icon.Descriptor) {
	key := ExtensionKey(extension)
	if key == "" || desc.IsZero() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[key] = desc
}

// RemoveAppIcon drops an app-namespace entry, reporting whether it
// existed. The change is in-memory until the next Write.
func (c *Cache) RemoveAppIcon(key string) bool {
	key = strings.TrimSpace(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.apps[key]; !ok {
		return false
	}
	delete(c.apps, key)
	return true
}

// RemoveFileIcon drops a file-namespace entry by extension or path.
func (c *Cache) RemoveFileIcon(extensionOrPath string) bool {
	key := ExtensionKey(extensionOrPath)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.files[key]; !ok {
		return false
	}
	delete(c.files, key)
	return true
}

// Clear drops every entry from both namespaces.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apps = make(map[string]icon.Descriptor)
	c.files = make(map[string]icon.Descriptor)
}

// Len returns the total number of cached entries across both namespaces.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.apps) + len(c.files)
}

// Entries returns a copy of the current pack contents for listing and
// export.
func (c *Cache) Entries() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Write flushes the in-memory pack to the persisted store. The snapshot
// is taken under the lock; the store call runs outside it.
func (c *Cache) Write(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	c.mu.Lock()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err := c.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("persist icon pack: %w", err)
	}
	c.logger.Debug("icon pack written",
		logging.Int("app_entries", len(snap.Apps)),
		logging.Int("file_entries", len(snap.Files)))
	return nil
}

func (c *Cache) snapshotLocked() Snapshot {
	return Snapshot{Apps: c.apps, Files: c.files}.Clone()
}

// ExtensionKey normalizes a bare extension or any file path to the
// lowercased extension used as the file-namespace key. Every file with
// the same extension shares one entry. Paths without an extension have
// no file-namespace key and normalize to "".
func ExtensionKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if ext := filepath.Ext(value); ext != "" {
		return strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	if strings.ContainsRune(value, '/') || strings.ContainsRune(value, filepath.Separator) {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(value, "."))
}
