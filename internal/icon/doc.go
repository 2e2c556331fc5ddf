// Package icon defines the identities icons are cached under, the
// descriptor shape recorded for every stored icon, and the error markers
// the engine uses to classify extraction failures.
//
// A Descriptor is a value: aliasing one key to another key's descriptor
// copies the value and shares the underlying assets, it never duplicates
// the image files. Application identities come in two variants, packaged
// (stable id, resolvable to themed assets) and legacy (opaque id that
// must be resolved through a shortcut index).
package icon
