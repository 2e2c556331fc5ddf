package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Store backends.
const (
	BackendPack   = "pack"
	BackendSQLite = "sqlite"
)

// Vault contains the asset store location and read cache size.
type Vault struct {
	Root             string `toml:"root"`
	ReadCacheEntries int    `toml:"read_cache_entries"`
}

// Store selects and locates the icon pack persistence backend.
type Store struct {
	Backend  string `toml:"backend"`
	PackPath string `toml:"pack_path"`
	DBPath   string `toml:"db_path"`
}

// Extraction contains resolution chain limits.
type Extraction struct {
	MaxDepth int `toml:"max_depth"`
}

// Shortcuts contains the directories scanned for application shortcuts
// and the watcher debounce interval.
type Shortcuts struct {
	Roots      []string `toml:"roots"`
	DebounceMS int      `toml:"debounce_ms"`
}

// Themes contains the directories scanned for packaged-app theme
// assets.
type Themes struct {
	Roots []string `toml:"roots"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for iconvault.
//
// Configuration sections by subsystem:
//   - Vault: asset store root and read cache sizing
//   - Store: icon pack backend (JSON pack file or SQLite)
//   - Extraction: shortcut and identity resolution depth bound
//   - Shortcuts: shortcut roots and watcher debounce
//   - Themes: packaged-app theme asset roots
//   - Logging: log format and level
type Config struct {
	Vault      Vault      `toml:"vault"`
	Store      Store      `toml:"store"`
	Extraction Extraction `toml:"extraction"`
	Shortcuts  Shortcuts  `toml:"shortcuts"`
	Themes     Themes     `toml:"themes"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default
// configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/iconvault/config.toml")
}

// Load locates, parses, and validates a configuration file. The
// returned config has all path fields expanded and normalized. Unknown
// keys in the file are rejected.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("iconvault.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the vault root and the directories holding
// the pack store so first runs work on a clean machine.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Vault.Root,
		filepath.Dir(c.Store.PackPath),
		filepath.Dir(c.Store.DBPath),
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Debounce returns the shortcut watcher debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Shortcuts.DebounceMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other
// packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified
// location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
