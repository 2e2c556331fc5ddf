package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"iconvault/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantRoot := filepath.Join(tempHome, ".local", "share", "iconvault")
	if cfg.Vault.Root != wantRoot {
		t.Fatalf("unexpected vault root: got %q want %q", cfg.Vault.Root, wantRoot)
	}
	if cfg.Vault.ReadCacheEntries != 64 {
		t.Fatalf("unexpected read cache entries: %d", cfg.Vault.ReadCacheEntries)
	}
	if cfg.Store.Backend != config.BackendPack {
		t.Fatalf("unexpected backend: %q", cfg.Store.Backend)
	}
	if cfg.Store.PackPath != filepath.Join(wantRoot, "iconpack.json") {
		t.Fatalf("unexpected pack path: %q", cfg.Store.PackPath)
	}
	if cfg.Store.DBPath != filepath.Join(wantRoot, "iconpack.db") {
		t.Fatalf("unexpected db path: %q", cfg.Store.DBPath)
	}
	if cfg.Extraction.MaxDepth != 8 {
		t.Fatalf("unexpected max depth: %d", cfg.Extraction.MaxDepth)
	}
	if cfg.Shortcuts.DebounceMS != 250 {
		t.Fatalf("unexpected debounce: %d", cfg.Shortcuts.DebounceMS)
	}
	if len(cfg.Shortcuts.Roots) != 0 {
		t.Fatalf("expected no shortcut roots by default, got %v", cfg.Shortcuts.Roots)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Vault.Root)
	if err != nil {
		t.Fatalf("expected vault root to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be directory", cfg.Vault.Root)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "iconvault.toml")
	vaultDir := filepath.Join(tempDir, "vault")

	type payload struct {
		Vault struct {
			Root             string `toml:"root"`
			ReadCacheEntries int    `toml:"read_cache_entries"`
		} `toml:"vault"`
		Store struct {
			Backend string `toml:"backend"`
		} `toml:"store"`
		Shortcuts struct {
			Roots      []string `toml:"roots"`
			DebounceMS int      `toml:"debounce_ms"`
		} `toml:"shortcuts"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Vault.Root = vaultDir
	custom.Vault.ReadCacheEntries = 16
	custom.Store.Backend = "SQLite"
	custom.Shortcuts.Roots = []string{"~/shortcuts", "  "}
	custom.Shortcuts.DebounceMS = 100
	custom.Logging.Level = "DEBUG"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Vault.Root != vaultDir {
		t.Fatalf("unexpected vault root: got %q want %q", cfg.Vault.Root, vaultDir)
	}
	if cfg.Vault.ReadCacheEntries != 16 {
		t.Fatalf("unexpected read cache entries: %d", cfg.Vault.ReadCacheEntries)
	}
	if cfg.Store.Backend != config.BackendSQLite {
		t.Fatalf("expected backend normalized to sqlite, got %q", cfg.Store.Backend)
	}
	if cfg.Store.PackPath != filepath.Join(vaultDir, "iconpack.json") {
		t.Fatalf("expected pack path under vault root, got %q", cfg.Store.PackPath)
	}
	if cfg.Store.DBPath != filepath.Join(vaultDir, "iconpack.db") {
		t.Fatalf("expected db path under vault root, got %q", cfg.Store.DBPath)
	}
	wantRoot := filepath.Join(tempHome, "shortcuts")
	if len(cfg.Shortcuts.Roots) != 1 || cfg.Shortcuts.Roots[0] != wantRoot {
		t.Fatalf("unexpected shortcut roots: got %v want [%s]", cfg.Shortcuts.Roots, wantRoot)
	}
	if cfg.Shortcuts.DebounceMS != 100 {
		t.Fatalf("unexpected debounce: %d", cfg.Shortcuts.DebounceMS)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected level normalized to debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected default format, got %q", cfg.Logging.Format)
	}
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists to be false for missing file")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, path)
	}
	if cfg.Store.Backend != config.BackendPack {
		t.Fatalf("unexpected backend: %q", cfg.Store.Backend)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "iconvault.toml")
	contents := "[vault]\nroot = \"/tmp/iconvault\"\nshiny_new_toggle = true\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func validConfig() config.Config {
	cfg := config.Default()
	cfg.Vault.Root = "/tmp/iconvault"
	cfg.Store.PackPath = "/tmp/iconvault/iconpack.json"
	cfg.Store.DBPath = "/tmp/iconvault/iconpack.db"
	return cfg
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Backend = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported backend")
	}

	cfg = validConfig()
	cfg.Extraction.MaxDepth = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive max depth")
	}

	cfg = validConfig()
	cfg.Shortcuts.DebounceMS = -5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative debounce")
	}

	cfg = validConfig()
	cfg.Vault.ReadCacheEntries = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero read cache entries")
	}

	cfg = validConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestCreateSample(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[vault]") {
		t.Fatalf("sample config missing vault section: %s", contents)
	}

	// The sample must survive the strict loader.
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to be found")
	}
	if cfg.Store.Backend != config.BackendPack {
		t.Fatalf("unexpected backend in sample: %q", cfg.Store.Backend)
	}
}

func TestDebounce(t *testing.T) {
	cfg := config.Default()
	cfg.Shortcuts.DebounceMS = 300
	if got, want := cfg.Debounce(), 300*time.Millisecond; got != want {
		t.Fatalf("Debounce() = %v, want %v", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	got, err := config.ExpandPath("~/icons")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if want := filepath.Join(tempHome, "icons"); got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}
