package packdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"iconvault/internal/icon"
	"iconvault/internal/iconcache"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the
// schema changes; users clear the pack database to adopt a new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by a different
// iconvault version.
var ErrSchemaMismatch = errors.New("icon pack schema version mismatch")

// Store persists the icon pack in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the pack database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create pack directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open pack db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the backing database.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Load reads both namespaces into a snapshot.
func (s *Store) Load(ctx context.Context) (iconcache.Snapshot, error) {
	snap := iconcache.Snapshot{
		Apps:  make(map[string]icon.Descriptor),
		Files: make(map[string]icon.Descriptor),
	}

	if err := s.loadTable(ctx, "app_icons", "key", snap.Apps); err != nil {
		return iconcache.Snapshot{}, err
	}
	if err := s.loadTable(ctx, "file_icons", "extension", snap.Files); err != nil {
		return iconcache.Snapshot{}, err
	}
	return snap, nil
}

func (s *Store) loadTable(ctx context.Context, table, keyColumn string, dst map[string]icon.Descriptor) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+keyColumn+`, file, light, dark, mask FROM `+table)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var desc icon.Descriptor
		if err := rows.Scan(&key, &desc.File, &desc.Light, &desc.Dark, &desc.Mask); err != nil {
			return fmt.Errorf("scan %s row: %w", table, err)
		}
		dst[key] = desc
	}
	return rows.Err()
}

// Save replaces both namespaces with the snapshot contents inside one
// transaction.
func (s *Store) Save(ctx context.Context, snap iconcache.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"app_icons", "file_icons"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertAll(ctx, tx, "app_icons", "key", snap.Apps); err != nil {
		return err
	}
	if err := insertAll(ctx, tx, "file_icons", "extension", snap.Files); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit icon pack: %w", err)
	}
	return nil
}

func insertAll(ctx context.Context, tx *sql.Tx, table, keyColumn string, entries map[string]icon.Descriptor) error {
	if len(entries) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO `+table+` (`+keyColumn+`, file, light, dark, mask) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for key, desc := range entries {
		if _, err := stmt.ExecContext(ctx, key, desc.File, desc.Light, desc.Dark, desc.Mask); err != nil {
			return fmt.Errorf("insert %s entry %q: %w", table, key, err)
		}
	}
	return nil
}
