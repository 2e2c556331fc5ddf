package icon

import "strings"

// AppKind distinguishes the two application identity variants.
type AppKind string

const (
	// AppPackaged identifies applications installed through a manifest
	// based distribution model, carrying a stable identity that resolves
	// directly to themed icon assets.
	AppPackaged AppKind = "packaged"
	// AppLegacy identifies applications known only by an opaque identity
	// that must be resolved through the shortcut index before any icon
	// source is reachable.
	AppLegacy AppKind = "legacy"
)

// AppID is an application identity under which an icon is cached. Two
// identities are the same request only when both kind and id match.
type AppID struct {
	Kind AppKind
	ID   string
}

// PackagedApp builds a packaged application identity.
func PackagedApp(id string) AppID {
	return AppID{Kind: AppPackaged, ID: strings.TrimSpace(id)}
}

// LegacyApp builds an opaque legacy application identity.
func LegacyApp(id string) AppID {
	return AppID{Kind: AppLegacy, ID: strings.TrimSpace(id)}
}

// IsZero reports whether the identity carries no id.
func (a AppID) IsZero() bool {
	return a.ID == ""
}

// String renders the identity as the cache key used in the app namespace.
// The kind prefix keeps packaged and legacy identities with the same raw
// id from colliding.
func (a AppID) String() string {
	return string(a.Kind) + ":" + a.ID
}
