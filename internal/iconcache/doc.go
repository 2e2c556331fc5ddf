// Package iconcache holds the in-memory icon pack: the mapping from
// source identities to stored icon descriptors, split into an app
// namespace (absolute paths and application identities) and a file
// namespace (extensions shared by every file carrying them).
//
// The cache is the single source of truth for "already extracted". It is
// write-through: every successful extraction flushes the pack to its
// Store before the operation reports success. Lookups and inserts are
// individually locked, but the lock is deliberately released while
// extraction work runs between them; see Cache for the contract.
//
// Persistence backends live in the packfile (JSON, the default) and
// packdb (SQLite) subpackages.
package iconcache
