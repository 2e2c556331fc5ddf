// Package packfile persists the icon pack as a single JSON document.
// It is the default store backend: human-readable, trivially inspectable,
// and written atomically via a temp file rename so a crash mid-flush
// never leaves a truncated pack behind.
package packfile
