package imaging

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Thumbnail scales src down so its longest edge is at most edge pixels,
// preserving aspect ratio with CatmullRom interpolation. Images already
// within bounds (or a non-positive edge) are copied at their original
// size; Thumbnail never upscales.
func Thumbnail(src image.Image, edge int) *image.RGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if edge <= 0 || (width <= edge && height <= edge) {
		out := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Copy(out, image.Point{}, src, bounds, draw.Src, nil)
		return out
	}

	scale := float64(edge) / float64(max(width, height))
	outW := max(1, int(math.Round(float64(width)*scale)))
	outH := max(1, int(math.Round(float64(height)*scale)))

	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(out, out.Bounds(), src, bounds, draw.Src, nil)
	return out
}
