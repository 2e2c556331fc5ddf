// Package logging assembles the structured slog loggers used across
// iconvault.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes context helpers so extraction code can tag log lines with the
// request ID of the operation that triggered them. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every
// component emits data with the same shape.
package logging
