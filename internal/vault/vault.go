package vault

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"iconvault/internal/fileutil"
	"iconvault/internal/imaging"
	"iconvault/internal/logging"
)

const (
	systemDirName      = "system"
	placeholderDirName = "placeholders"
	lockFileName       = ".iconvault.lock"

	defaultReadCacheSize = 64
)

// Options tunes vault construction. The zero value is usable.
type Options struct {
	Logger        *slog.Logger
	ReadCacheSize int
}

// Vault is an on-disk asset store rooted at a single directory.
type Vault struct {
	root           string
	systemDir      string
	placeholderDir string
	logger         *slog.Logger
	lock           *flock.Flock
	reads          *lru.Cache[string, []byte]
}

// New opens (creating if needed) the vault rooted at root.
func New(root string, opts Options) (*Vault, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("vault root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}

	systemDir := filepath.Join(abs, systemDirName)
	placeholderDir := filepath.Join(abs, placeholderDirName)
	for _, dir := range []string{systemDir, placeholderDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create vault directory %s: %w", dir, err)
		}
	}

	size := opts.ReadCacheSize
	if size <= 0 {
		size = defaultReadCacheSize
	}
	reads, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create read cache: %w", err)
	}

	return &Vault{
		root:           abs,
		systemDir:      systemDir,
		placeholderDir: placeholderDir,
		logger:         logging.NewComponentLogger(opts.Logger, "vault"),
		lock:           flock.New(filepath.Join(abs, lockFileName)),
		reads:          reads,
	}, nil
}

// Root returns the vault's root directory.
func (v *Vault) Root() string {
	return v.root
}

// NewAssetName allocates a fresh asset filename. UUID names make
// collisions impossible without coordination between writers.
func (v *Vault) NewAssetName() string {
	return uuid.NewString() + ".png"
}

// Path returns the absolute location of a system asset.
func (v *Vault) Path(name string) string {
	return filepath.Join(v.systemDir, filepath.Base(name))
}

// SavePNG encodes img as PNG under the given asset name. The image is
// written to a temp file and renamed into place so a concurrent reader
// never sees a truncated asset.
func (v *Vault) SavePNG(ctx context.Context, name string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	final, err := v.assetPath(name)
	if err != nil {
		return err
	}

	tmp := final + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create asset temp file: %w", err)
	}
	if err := imaging.EncodePNG(out, img); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode asset %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close asset temp file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit asset %s: %w", name, err)
	}

	v.reads.Remove(name)
	v.logger.Debug("asset saved", logging.String("asset", name))
	return nil
}

// CopyAsset streams an external file into the vault under the given
// asset name, verifying the copy arrived intact.
func (v *Vault) CopyAsset(ctx context.Context, src, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	final, err := v.assetPath(name)
	if err != nil {
		return err
	}

	tmp := final + ".tmp"
	if err := fileutil.CopyFileVerified(src, tmp); err != nil {
		return fmt.Errorf("copy asset from %s: %w", src, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit asset %s: %w", name, err)
	}

	v.reads.Remove(name)
	v.logger.Debug("asset copied",
		logging.String("asset", name),
		logging.String("source", src))
	return nil
}

// ReadAsset returns the bytes of a system asset through the read LRU.
// Callers must not mutate the returned slice.
func (v *Vault) ReadAsset(name string) ([]byte, error) {
	path, err := v.assetPath(name)
	if err != nil {
		return nil, err
	}
	if data, ok := v.reads.Get(name); ok {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", name, err)
	}
	v.reads.Add(name, data)
	return data, nil
}

// RemoveAsset deletes a system asset. A missing asset is not an error.
func (v *Vault) RemoveAsset(name string) error {
	path, err := v.assetPath(name)
	if err != nil {
		return err
	}
	v.reads.Remove(name)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove asset %s: %w", name, err)
	}
	return nil
}

// Purge deletes every system asset and empties the read cache.
// Placeholders are shipped artwork and survive a purge.
func (v *Vault) Purge() error {
	entries, err := os.ReadDir(v.systemDir)
	if err != nil {
		return fmt.Errorf("list vault assets: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(v.systemDir, entry.Name())); err != nil {
			return fmt.Errorf("purge asset %s: %w", entry.Name(), err)
		}
	}
	v.reads.Purge()
	v.logger.Info("vault purged", logging.Int("assets_removed", len(entries)))
	return nil
}

// Acquire takes the vault's advisory writer lock without blocking.
func (v *Vault) Acquire() error {
	ok, err := v.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire vault lock: %w", err)
	}
	if !ok {
		return errors.New("another iconvault process holds the vault lock")
	}
	return nil
}

// Release drops the advisory writer lock.
func (v *Vault) Release() error {
	if err := v.lock.Unlock(); err != nil {
		return fmt.Errorf("release vault lock: %w", err)
	}
	return nil
}

func (v *Vault) assetPath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("asset name is empty")
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("asset name %q must not contain path separators", name)
	}
	return filepath.Join(v.systemDir, name), nil
}
