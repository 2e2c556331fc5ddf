package testsupport

import (
	"testing"

	"iconvault/internal/config"
	"iconvault/internal/iconcache"
	"iconvault/internal/iconcache/packdb"
	"iconvault/internal/iconcache/packfile"
)

// MustOpenStore opens the configured pack store for tests and registers
// cleanup for backends that hold resources.
func MustOpenStore(t testing.TB, cfg *config.Config) iconcache.Store {
	t.Helper()

	if cfg.Store.Backend == config.BackendSQLite {
		store, err := packdb.Open(cfg.Store.DBPath)
		if err != nil {
			t.Fatalf("packdb.Open: %v", err)
		}
		t.Cleanup(func() {
			store.Close()
		})
		return store
	}
	return packfile.New(cfg.Store.PackPath)
}
