package fileicon

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ico "github.com/sergeymakinen/go-ico"

	"iconvault/internal/icon"
	"iconvault/internal/imaging"
	"iconvault/internal/logging"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Provider retrieves icons from files that carry their own image data.
type Provider struct {
	logger *slog.Logger
}

// New creates a provider. A nil logger disables logging.
func New(logger *slog.Logger) *Provider {
	return &Provider{logger: logging.NewComponentLogger(logger, "fileicon")}
}

// RetrieveIcon decodes the icon carried by path and returns it as a
// BGRA bitmap.
func (p *Provider) RetrieveIcon(ctx context.Context, path string) (imaging.RawImage, error) {
	return p.retrieve(ctx, path, true)
}

// retrieve decodes one file. followShortcut permits a single hop
// through a .url body; the hop target may not be another shortcut.
func (p *Provider) retrieve(ctx context.Context, path string, followShortcut bool) (imaging.RawImage, error) {
	if err := ctx.Err(); err != nil {
		return imaging.RawImage{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return p.decodePNG(path)
	case ".ico":
		return p.decodeICO(path, -1)
	case ".url":
		if !followShortcut {
			return imaging.RawImage{}, icon.Wrap(icon.ErrNotFound, "retrieve icon", path,
				fmt.Errorf("shortcut references another shortcut"))
		}
		return p.decodeShortcut(ctx, path)
	default:
		// Extension is no help; PNG content still counts.
		data, err := os.ReadFile(path)
		if err != nil {
			return imaging.RawImage{}, fmt.Errorf("read icon source: %w", err)
		}
		if bytes.HasPrefix(data, pngSignature) {
			return p.decodePNGBytes(path, data)
		}
		return imaging.RawImage{}, icon.Wrap(icon.ErrNotFound, "retrieve icon", path, nil)
	}
}

func (p *Provider) decodePNG(path string) (imaging.RawImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return imaging.RawImage{}, fmt.Errorf("read icon source: %w", err)
	}
	return p.decodePNGBytes(path, data)
}

func (p *Provider) decodePNGBytes(path string, data []byte) (imaging.RawImage, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return imaging.RawImage{}, icon.Wrap(icon.ErrFormat, "decode png", path, err)
	}
	p.logger.Debug("decoded png source",
		logging.String("path", path),
		logging.Int("width", img.Bounds().Dx()),
		logging.Int("height", img.Bounds().Dy()))
	return rawBGRA(img), nil
}

// decodeICO picks the frame at index when valid, the largest frame
// otherwise.
func (p *Provider) decodeICO(path string, index int) (imaging.RawImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return imaging.RawImage{}, fmt.Errorf("read icon source: %w", err)
	}
	frames, err := ico.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return imaging.RawImage{}, icon.Wrap(icon.ErrFormat, "decode ico", path, err)
	}
	if len(frames) == 0 {
		return imaging.RawImage{}, icon.Wrap(icon.ErrFormat, "decode ico", path,
			fmt.Errorf("container holds no frames"))
	}

	chosen := frames[0]
	if index >= 0 && index < len(frames) {
		chosen = frames[index]
	} else {
		for _, frame := range frames[1:] {
			if frameArea(frame) > frameArea(chosen) {
				chosen = frame
			}
		}
	}

	p.logger.Debug("decoded ico source",
		logging.String("path", path),
		logging.Int("frames", len(frames)),
		logging.Int("width", chosen.Bounds().Dx()),
		logging.Int("height", chosen.Bounds().Dy()))
	return rawBGRA(chosen), nil
}

func frameArea(img image.Image) int {
	bounds := img.Bounds()
	return bounds.Dx() * bounds.Dy()
}

// rawBGRA renders src into a BGRA pixel buffer.
func rawBGRA(src image.Image) imaging.RawImage {
	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	pix := rgba.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
	return imaging.RawImage{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    pix,
	}
}
