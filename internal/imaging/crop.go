package imaging

import "image"

// CropTransparentBorders returns the smallest sub-image of img containing
// every pixel with non-zero alpha. Each bounds scan stops at the first
// row or column with visible content, and the vertical scans bound each
// other so fully opaque images cost two row reads. A fully transparent
// image collapses to a 1x1 transparent image, the sentinel for "no
// visible content"; it is not an error. Output dimensions are always at
// least 1x1, and the result owns its pixel buffer.
func CropTransparentBorders(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()

	top, ok := findTop(img, bounds)
	if !ok {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	bottom := findBottom(img, bounds, top)
	left := findLeft(img, bounds, top, bottom)
	right := findRight(img, bounds, top, bottom, left)

	width := right - left + 1
	height := bottom - top + 1
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := top; y <= bottom; y++ {
		src := img.PixOffset(left, y)
		dst := out.PixOffset(0, y-top)
		copy(out.Pix[dst:dst+width*4], img.Pix[src:src+width*4])
	}
	return out
}

func findTop(img *image.RGBA, bounds image.Rectangle) (int, bool) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if rowVisible(img, y, bounds.Min.X, bounds.Max.X) {
			return y, true
		}
	}
	return 0, false
}

func findBottom(img *image.RGBA, bounds image.Rectangle, top int) int {
	for y := bounds.Max.Y - 1; y > top; y-- {
		if rowVisible(img, y, bounds.Min.X, bounds.Max.X) {
			return y
		}
	}
	return top
}

func findLeft(img *image.RGBA, bounds image.Rectangle, top, bottom int) int {
	x := bounds.Min.X
	for ; x < bounds.Max.X-1; x++ {
		if columnVisible(img, x, top, bottom) {
			break
		}
	}
	// Rows [top, bottom] are known to contain a visible pixel, so the
	// last column is the bound when every earlier one is transparent.
	return x
}

func findRight(img *image.RGBA, bounds image.Rectangle, top, bottom, left int) int {
	for x := bounds.Max.X - 1; x > left; x-- {
		if columnVisible(img, x, top, bottom) {
			return x
		}
	}
	return left
}

func rowVisible(img *image.RGBA, y, minX, maxX int) bool {
	off := img.PixOffset(minX, y) + 3
	for x := minX; x < maxX; x++ {
		if img.Pix[off] != 0 {
			return true
		}
		off += 4
	}
	return false
}

func columnVisible(img *image.RGBA, x, top, bottom int) bool {
	off := img.PixOffset(x, top) + 3
	for y := top; y <= bottom; y++ {
		if img.Pix[off] != 0 {
			return true
		}
		off += img.Stride
	}
	return false
}
