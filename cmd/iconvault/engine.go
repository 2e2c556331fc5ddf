package main

import (
	"log/slog"
	"path/filepath"

	"iconvault/internal/config"
	"iconvault/internal/extraction"
	"iconvault/internal/fileicon"
	"iconvault/internal/icon"
	"iconvault/internal/iconcache"
	"iconvault/internal/iconcache/packdb"
	"iconvault/internal/iconcache/packfile"
	"iconvault/internal/shortcuts"
	"iconvault/internal/themeicons"
	"iconvault/internal/vault"
)

// engine bundles the subsystems one CLI invocation works with.
type engine struct {
	cfg        *config.Config
	logger     *slog.Logger
	cache      *iconcache.Cache
	vault      *vault.Vault
	index      *shortcuts.Index
	extractor  *extraction.Extractor
	closeStore func() error
}

func newEngine(cfg *config.Config, logger *slog.Logger) (*engine, error) {
	var (
		store      iconcache.Store
		closeStore func() error
	)
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := packdb.Open(cfg.Store.DBPath)
		if err != nil {
			return nil, err
		}
		store = db
		closeStore = db.Close
	default:
		store = packfile.New(cfg.Store.PackPath)
	}

	fail := func(err error) (*engine, error) {
		if closeStore != nil {
			closeStore()
		}
		return nil, err
	}

	v, err := vault.New(cfg.Vault.Root, vault.Options{
		Logger:        logger,
		ReadCacheSize: cfg.Vault.ReadCacheEntries,
	})
	if err != nil {
		return fail(err)
	}

	index := shortcuts.NewIndex(cfg.Shortcuts.Roots, shortcuts.IndexOptions{Logger: logger})
	if len(cfg.Shortcuts.Roots) > 0 {
		if err := index.Rescan(); err != nil {
			return fail(err)
		}
	}

	cache := iconcache.New(store, logger)
	extractor := extraction.New(cache, v, extraction.Options{
		Provider:   fileicon.New(logger),
		Resolver:   shortcuts.NewSymlinkResolver(logger),
		ThemeIcons: themeicons.NewLocator(cfg.Themes.Roots, logger),
		Shortcuts:  index,
		Logger:     logger,
		MaxDepth:   cfg.Extraction.MaxDepth,
	})

	return &engine{
		cfg:        cfg,
		logger:     logger,
		cache:      cache,
		vault:      v,
		index:      index,
		extractor:  extractor,
		closeStore: closeStore,
	}, nil
}

func (e *engine) close() {
	if e.closeStore != nil {
		e.closeStore()
	}
}

// lookup finds a descriptor in either namespace, app first.
func (e *engine) lookup(key string) (icon.Descriptor, bool) {
	if desc, ok := e.cache.AppIcon(key); ok {
		return desc, true
	}
	return e.cache.FileIcon(key)
}

// descriptorForPath reports the descriptor a path extraction recorded.
func (e *engine) descriptorForPath(path string) (icon.Descriptor, bool) {
	switch extraction.Classify(path) {
	case extraction.StrategyPlaceholder:
		return e.cache.FileIcon(extraction.PlaceholderKey)
	case extraction.StrategyFile:
		return e.cache.FileIcon(path)
	case extraction.StrategyApp, extraction.StrategyShortcut:
		abs, err := filepath.Abs(path)
		if err != nil {
			return icon.Descriptor{}, false
		}
		return e.cache.AppIcon(abs)
	default:
		return icon.Descriptor{}, false
	}
}

// dropPathEntry removes the cache entry a path extraction would record,
// so a forced extraction starts from a miss.
func (e *engine) dropPathEntry(path string) bool {
	switch extraction.Classify(path) {
	case extraction.StrategyPlaceholder:
		return e.cache.RemoveFileIcon(extraction.PlaceholderKey)
	case extraction.StrategyFile:
		return e.cache.RemoveFileIcon(path)
	case extraction.StrategyApp, extraction.StrategyShortcut:
		abs, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		return e.cache.RemoveAppIcon(abs)
	default:
		return false
	}
}
