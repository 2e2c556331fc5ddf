// Package imaging normalizes raw icon bitmaps for storage: BGRA to RGBA
// channel reordering, transparent-border cropping, and thumbnail scaling
// for exports. The conversion step is pluggable behind the Converter
// interface so the unrolled block path can be swapped for the scalar
// reference implementation.
package imaging
