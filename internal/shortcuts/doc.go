// Package shortcuts maintains the mapping from application identities
// to the shortcut files that launch them.
//
// The index scans configured roots for .lnk files and keys each one by
// an identity derived from its filename. A filesystem watcher keeps the
// index current as shortcuts appear and disappear, coalescing event
// bursts with a debounce timer. The resolver turns a shortcut into its
// target path, following real symlinks or the one-line Target= body
// convention used by fixtures.
package shortcuts
