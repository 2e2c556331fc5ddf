// Package fileicon retrieves icons from image-bearing files so the
// engine runs without an OS icon subsystem.
//
// The provider understands PNG files (by extension or content), ICO
// containers (largest frame wins unless the caller's .url names an
// index), and .url internet shortcuts whose body references an icon
// file. Everything else reports that no icon is available.
//
// Decoded images are handed back as BGRA bitmaps, the byte order icon
// sources use on the wire.
package fileicon
