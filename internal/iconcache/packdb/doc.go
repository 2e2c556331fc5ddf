// Package packdb persists the icon pack in SQLite via the pure-Go
// modernc.org/sqlite driver. It is the alternative to the JSON pack
// file for installations with large icon sets, where rewriting the
// whole document on every flush becomes noticeable.
//
// Each Save replaces both namespaces inside one transaction, so readers
// never observe a half-flushed pack. Schema changes bump schemaVersion;
// packs with a mismatched version are refused rather than migrated.
package packdb
