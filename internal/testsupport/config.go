package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"iconvault/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Vault.Root = filepath.Join(base, "vault")
	cfgVal.Store.PackPath = filepath.Join(cfgVal.Vault.Root, "iconpack.json")
	cfgVal.Store.DBPath = filepath.Join(cfgVal.Vault.Root, "iconpack.db")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBackend selects the icon pack persistence backend on the test config.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Backend = backend
	}
}

// WithShortcutRoot creates a shortcut root under the test base directory
// and registers it on the config.
func WithShortcutRoot() ConfigOption {
	return func(b *configBuilder) {
		root := filepath.Join(b.baseDir, "shortcuts")
		if err := os.MkdirAll(root, 0o755); err != nil {
			b.t.Fatalf("mkdir shortcut root: %v", err)
		}
		b.cfg.Shortcuts.Roots = append(b.cfg.Shortcuts.Roots, root)
	}
}

// WithThemeRoot creates a theme root under the test base directory and
// registers it on the config.
func WithThemeRoot() ConfigOption {
	return func(b *configBuilder) {
		root := filepath.Join(b.baseDir, "themes")
		if err := os.MkdirAll(root, 0o755); err != nil {
			b.t.Fatalf("mkdir theme root: %v", err)
		}
		b.cfg.Themes.Roots = append(b.cfg.Themes.Roots, root)
	}
}

// WithMaxDepth overrides the resolution depth bound on the test config.
func WithMaxDepth(depth int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extraction.MaxDepth = depth
	}
}

// WithDebounceMS overrides the watcher debounce on the test config so
// watcher tests settle quickly.
func WithDebounceMS(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Shortcuts.DebounceMS = ms
	}
}

// WriteConfig marshals cfg to a TOML file under dir and returns the path.
func WriteConfig(t testing.TB, dir string, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
