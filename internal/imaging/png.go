package imaging

import (
	"image"
	"image/png"
	"io"
)

// EncodePNG writes img to w in PNG format. Every asset the engine
// persists goes through this single encode path.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
