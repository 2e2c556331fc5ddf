// Package extraction orchestrates icon acquisition: classify the
// source, consult the cache, retrieve a bitmap from the appropriate
// collaborator, normalize it, store the asset in the vault, and record
// the descriptor in the cache.
//
// Sources fall into a small set of strategies. Plain files are keyed by
// extension so every document of a type shares one icon. Executables
// and shortcuts are keyed by absolute path. Internet shortcuts share a
// single placeholder entry. Application identities either resolve
// directly to themed assets (packaged) or through the shortcut index
// (legacy). Shortcut chains recurse with a visited set and a depth
// bound, so cycles fail instead of spinning.
package extraction
