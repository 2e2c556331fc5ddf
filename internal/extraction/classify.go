package extraction

import (
	"path/filepath"
	"strings"
)

// Strategy names the acquisition route a path takes.
type Strategy int

const (
	// StrategyNone applies to paths without an extension; there is no
	// icon source and nothing is recorded.
	StrategyNone Strategy = iota
	// StrategyPlaceholder applies to internet shortcuts, which share
	// one placeholder entry in the file namespace.
	StrategyPlaceholder
	// StrategyFile applies to generic files, keyed by extension.
	StrategyFile
	// StrategyApp applies to executables, keyed by absolute path.
	StrategyApp
	// StrategyShortcut applies to shortcut files, keyed by absolute
	// path with a fallback to the shortcut's target.
	StrategyShortcut
)

// String returns the strategy name for logs.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyPlaceholder:
		return "placeholder"
	case StrategyFile:
		return "file"
	case StrategyApp:
		return "app"
	case StrategyShortcut:
		return "shortcut"
	default:
		return "unknown"
	}
}

// Classify maps a path to its acquisition strategy by extension.
func Classify(path string) Strategy {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		return StrategyNone
	case ".url":
		return StrategyPlaceholder
	case ".exe":
		return StrategyApp
	case ".lnk":
		return StrategyShortcut
	default:
		return StrategyFile
	}
}
