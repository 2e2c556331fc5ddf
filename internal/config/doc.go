// Package config loads, normalizes, and validates iconvault
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files with strict key checking so typos
// surface as errors instead of silently falling back to defaults. The
// Config type centralizes every knob the CLI needs: vault location,
// pack store backend, resolution depth, shortcut and theme roots, and
// log output.
//
// Always obtain settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear
// validation errors.
package config
