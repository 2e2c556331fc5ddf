package packfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"iconvault/internal/icon"
	"iconvault/internal/iconcache"
)

// packVersion is the current pack document version. Bump it when the
// document shape changes; older tools refuse newer packs instead of
// silently dropping fields.
const packVersion = 1

// document is the on-disk shape of the icon pack.
type document struct {
	Version int                        `json:"version"`
	Apps    map[string]icon.Descriptor `json:"apps,omitempty"`
	Files   map[string]icon.Descriptor `json:"files,omitempty"`
}

// Store reads and writes the icon pack JSON document at a fixed path.
type Store struct {
	path string
}

// New creates a store for the pack document at path. The file is
// created lazily on the first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the pack document. A missing file is an empty snapshot,
// not an error.
func (s *Store) Load(ctx context.Context) (iconcache.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return iconcache.Snapshot{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return iconcache.Snapshot{}, nil
		}
		return iconcache.Snapshot{}, fmt.Errorf("read icon pack: %w", err)
	}
	if len(data) == 0 {
		return iconcache.Snapshot{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return iconcache.Snapshot{}, fmt.Errorf("parse icon pack: %w", err)
	}
	if doc.Version > packVersion {
		return iconcache.Snapshot{}, fmt.Errorf("icon pack version %d is newer than supported version %d", doc.Version, packVersion)
	}

	return iconcache.Snapshot{Apps: doc.Apps, Files: doc.Files}, nil
}

// Save writes the snapshot atomically: the document is written to a
// temp file in the same directory, then renamed over the target.
func (s *Store) Save(ctx context.Context, snap iconcache.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := document{Version: packVersion, Apps: snap.Apps, Files: snap.Files}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal icon pack: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create icon pack directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp pack: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp pack: %w", err)
	}
	return nil
}
