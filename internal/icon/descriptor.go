package icon

// Descriptor records where a cached icon's assets live, relative to the
// vault's system directory. Exactly one of the two shapes is populated:
// a static descriptor carries File, a dynamic descriptor carries Light
// and Dark (and optionally Mask) for theme-aware artwork.
type Descriptor struct {
	File  string `json:"file,omitempty"`
	Light string `json:"light,omitempty"`
	Dark  string `json:"dark,omitempty"`
	Mask  string `json:"mask,omitempty"`
}

// Static builds a descriptor for a single image asset.
func Static(filename string) Descriptor {
	return Descriptor{File: filename}
}

// Dynamic builds a descriptor for a light/dark asset pair. The mask is
// optional and may be empty.
func Dynamic(light, dark, mask string) Descriptor {
	return Descriptor{Light: light, Dark: dark, Mask: mask}
}

// IsZero reports whether the descriptor references no assets at all.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

// IsDynamic reports whether the descriptor is a theme-variant pair.
func (d Descriptor) IsDynamic() bool {
	return d.Light != "" || d.Dark != ""
}

// Equal reports whether two descriptors reference the same assets.
func (d Descriptor) Equal(other Descriptor) bool {
	return d == other
}

// Assets returns the asset filenames the descriptor references, in a
// stable order with empty entries omitted.
func (d Descriptor) Assets() []string {
	assets := make([]string, 0, 3)
	for _, name := range []string{d.File, d.Light, d.Dark, d.Mask} {
		if name != "" {
			assets = append(assets, name)
		}
	}
	return assets
}

// Primary returns the asset a theme-unaware caller should use: the static
// file when present, otherwise the light variant.
func (d Descriptor) Primary() string {
	if d.File != "" {
		return d.File
	}
	return d.Light
}
