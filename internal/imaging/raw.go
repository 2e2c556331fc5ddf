package imaging

import (
	"fmt"
	"image"

	"iconvault/internal/icon"
)

// RawImage is a transient bitmap in BGRA byte order, the layout icon
// providers hand back. Pix holds Width*Height 4-byte pixels and is
// consumed in place during conversion; a RawImage never outlives the
// extraction call that produced it.
type RawImage struct {
	Width  int
	Height int
	Pix    []byte
}

// RGBA converts raw into an *image.RGBA using conv, rewriting the pixel
// buffer in place. The buffer must hold exactly Width*Height 32-bit
// pixels; anything else fails with icon.ErrFormat. A nil conv falls back
// to DefaultConverter.
func RGBA(raw RawImage, conv Converter) (*image.RGBA, error) {
	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, icon.Wrap(icon.ErrFormat, "convert bitmap", "",
			fmt.Errorf("dimensions %dx%d must be positive", raw.Width, raw.Height))
	}
	if want := raw.Width * raw.Height * 4; len(raw.Pix) != want {
		return nil, icon.Wrap(icon.ErrFormat, "convert bitmap", "",
			fmt.Errorf("buffer holds %d bytes, want %d for %dx%d 32-bit pixels",
				len(raw.Pix), want, raw.Width, raw.Height))
	}
	if conv == nil {
		conv = DefaultConverter()
	}
	conv.Convert(raw.Pix)
	return &image.RGBA{
		Pix:    raw.Pix,
		Stride: raw.Width * 4,
		Rect:   image.Rect(0, 0, raw.Width, raw.Height),
	}, nil
}
