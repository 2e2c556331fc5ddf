// Package main hosts the iconvault CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// extraction runs, cache maintenance, asset exports, the shortcut
// watcher, and configuration scaffolding. It centralizes configuration
// resolution, logger construction, and engine wiring so subcommands can
// focus on user experience instead of plumbing.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
