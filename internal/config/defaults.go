package config

const (
	defaultVaultRoot        = "~/.local/share/iconvault"
	defaultReadCacheEntries = 64
	defaultBackend          = BackendPack
	defaultPackFileName     = "iconpack.json"
	defaultDBFileName       = "iconpack.db"
	defaultMaxDepth         = 8
	defaultDebounceMS       = 250
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Vault: Vault{
			Root:             defaultVaultRoot,
			ReadCacheEntries: defaultReadCacheEntries,
		},
		Store: Store{
			Backend: defaultBackend,
		},
		Extraction: Extraction{
			MaxDepth: defaultMaxDepth,
		},
		Shortcuts: Shortcuts{
			DebounceMS: defaultDebounceMS,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
