package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVault(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVault() error {
	if strings.TrimSpace(c.Vault.Root) == "" {
		return errors.New("vault.root must be set")
	}
	return ensurePositiveMap(map[string]int{
		"vault.read_cache_entries": c.Vault.ReadCacheEntries,
	})
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendPack, BackendSQLite:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendPack, BackendSQLite, c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.PackPath) == "" {
		return errors.New("store.pack_path must be set")
	}
	if strings.TrimSpace(c.Store.DBPath) == "" {
		return errors.New("store.db_path must be set")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	return ensurePositiveMap(map[string]int{
		"extraction.max_depth":  c.Extraction.MaxDepth,
		"shortcuts.debounce_ms": c.Shortcuts.DebounceMS,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
