package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeVault(); err != nil {
		return err
	}
	if err := c.normalizeStore(); err != nil {
		return err
	}
	c.normalizeExtraction()
	if err := c.normalizeRoots(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeVault() error {
	if strings.TrimSpace(c.Vault.Root) == "" {
		c.Vault.Root = defaultVaultRoot
	}
	var err error
	if c.Vault.Root, err = expandPath(c.Vault.Root); err != nil {
		return fmt.Errorf("vault.root: %w", err)
	}
	if c.Vault.ReadCacheEntries == 0 {
		c.Vault.ReadCacheEntries = defaultReadCacheEntries
	}
	return nil
}

func (c *Config) normalizeStore() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = defaultBackend
	}

	var err error
	if strings.TrimSpace(c.Store.PackPath) == "" {
		c.Store.PackPath = filepath.Join(c.Vault.Root, defaultPackFileName)
	} else if c.Store.PackPath, err = expandPath(c.Store.PackPath); err != nil {
		return fmt.Errorf("store.pack_path: %w", err)
	}

	if strings.TrimSpace(c.Store.DBPath) == "" {
		c.Store.DBPath = filepath.Join(c.Vault.Root, defaultDBFileName)
	} else if c.Store.DBPath, err = expandPath(c.Store.DBPath); err != nil {
		return fmt.Errorf("store.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeExtraction() {
	if c.Extraction.MaxDepth == 0 {
		c.Extraction.MaxDepth = defaultMaxDepth
	}
	if c.Shortcuts.DebounceMS == 0 {
		c.Shortcuts.DebounceMS = defaultDebounceMS
	}
}

func (c *Config) normalizeRoots() error {
	var err error
	if c.Shortcuts.Roots, err = expandRoots(c.Shortcuts.Roots); err != nil {
		return fmt.Errorf("shortcuts.roots: %w", err)
	}
	if c.Themes.Roots, err = expandRoots(c.Themes.Roots); err != nil {
		return fmt.Errorf("themes.roots: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func expandRoots(roots []string) ([]string, error) {
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		expanded, err := expandPath(root)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}
