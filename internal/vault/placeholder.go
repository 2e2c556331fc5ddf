package vault

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"iconvault/internal/imaging"
	"iconvault/internal/logging"
)

const (
	placeholderURLName = "url.png"
	placeholderSize    = 16
)

// PlaceholderURL returns the absolute path of the internet-shortcut
// placeholder asset.
func (v *Vault) PlaceholderURL() string {
	return filepath.Join(v.placeholderDir, placeholderURLName)
}

// EnsurePlaceholders generates any missing placeholder assets so a
// fresh vault is usable without shipped artwork. Existing files are
// left alone, which preserves user-replaced placeholders.
func (v *Vault) EnsurePlaceholders() error {
	path := v.PlaceholderURL()
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat placeholder: %w", err)
	}

	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create placeholder temp file: %w", err)
	}
	if err := imaging.EncodePNG(out, globe(placeholderSize)); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode placeholder: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close placeholder temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit placeholder: %w", err)
	}

	v.logger.Debug("placeholder generated", logging.String("asset", placeholderURLName))
	return nil
}

var (
	globeSea  = color.NRGBA{R: 0x2E, G: 0x6F, B: 0xB7, A: 0xFF}
	globeGrid = color.NRGBA{R: 0xCF, G: 0xE3, B: 0xF5, A: 0xFF}
)

// globe draws an anti-aliased filled circle with meridian and equator
// grid lines, centered in a size x size image.
func globe(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	radius := center - 0.5 // half-pixel inset so edges don't clip
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist > radius+0.5 {
				continue
			}

			c := globeSea
			if math.Abs(dx) < 0.5 || math.Abs(dy) < 0.5 {
				c = globeGrid
			} else if ell := math.Sqrt(4*dx*dx + dy*dy); math.Abs(ell-radius) < 0.5 {
				// Side meridians render as a half-width ellipse.
				c = globeGrid
			}

			if dist > radius-0.5 {
				c.A = uint8(float64(c.A) * (radius + 0.5 - dist))
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
