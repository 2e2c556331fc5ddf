package shortcuts

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"iconvault/internal/logging"
)

// ShortcutExt is the extension the index scans for.
const ShortcutExt = ".lnk"

// IdentityFunc derives an application identity from a shortcut path.
type IdentityFunc func(path string) string

// DefaultIdentity keys a shortcut by its lowercased basename without
// the extension, so "Visual Studio Code.lnk" answers for the identity
// "visual studio code".
func DefaultIdentity(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// IndexOptions tunes index construction. The zero value is usable.
type IndexOptions struct {
	Identity IdentityFunc
	Logger   *slog.Logger
}

// Index maps application identities to shortcut paths found under the
// configured roots.
type Index struct {
	roots    []string
	identity IdentityFunc
	logger   *slog.Logger

	mu   sync.RWMutex
	byID map[string]string
}

// NewIndex creates an index over roots. The index starts empty; call
// Rescan to populate it.
func NewIndex(roots []string, opts IndexOptions) *Index {
	identity := opts.Identity
	if identity == nil {
		identity = DefaultIdentity
	}
	cleaned := make([]string, 0, len(roots))
	for _, root := range roots {
		if root = strings.TrimSpace(root); root != "" {
			cleaned = append(cleaned, root)
		}
	}
	return &Index{
		roots:    cleaned,
		identity: identity,
		logger:   logging.NewComponentLogger(opts.Logger, "shortcuts"),
		byID:     make(map[string]string),
	}
}

// Roots returns the directories the index scans.
func (x *Index) Roots() []string {
	out := make([]string, len(x.roots))
	copy(out, x.roots)
	return out
}

// Rescan rebuilds the identity map from the filesystem. Roots that do
// not exist are skipped; the first shortcut found for an identity wins
// so results are stable across rescans.
func (x *Index) Rescan() error {
	found := make(map[string]string)

	for _, root := range x.roots {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ShortcutExt) {
				return nil
			}
			// Identities match case-insensitively regardless of what
			// the identity function returns.
			id := strings.ToLower(x.identity(path))
			if id == "" {
				return nil
			}
			if _, exists := found[id]; !exists {
				found[id] = path
			}
			return nil
		})
		if errors.Is(err, fs.ErrNotExist) {
			x.logger.Debug("shortcut root missing", logging.String("root", root))
			continue
		}
		if err != nil {
			return err
		}
	}

	x.mu.Lock()
	x.byID = found
	x.mu.Unlock()

	x.logger.Debug("shortcut index rebuilt",
		logging.Int("roots", len(x.roots)),
		logging.Int("shortcuts", len(found)))
	return nil
}

// ShortcutFor answers the shortcut path registered for an identity.
func (x *Index) ShortcutFor(identity string) (string, bool) {
	identity = strings.ToLower(strings.TrimSpace(identity))
	if identity == "" {
		return "", false
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	path, ok := x.byID[identity]
	return path, ok
}

// Len returns the number of indexed shortcuts.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.byID)
}

// Paths returns the indexed shortcut paths in no particular order.
func (x *Index) Paths() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]string, 0, len(x.byID))
	for _, path := range x.byID {
		out = append(out, path)
	}
	return out
}
