package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WritePNG writes a solid square PNG fixture of the given edge size.
// An edge <= 0 writes a single pixel.
func WritePNG(t testing.TB, path string, edge int) {
	t.Helper()

	if edge <= 0 {
		edge = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	fill := color.NRGBA{R: 0x2E, G: 0x6F, B: 0xB7, A: 0xFF}
	for y := 0; y < edge; y++ {
		for x := 0; x < edge; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// WriteShortcut writes a shortcut fixture whose body declares a target.
func WriteShortcut(t testing.TB, path, target string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("Target="+target+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteThemeAssets creates the light and dark theme variants for an
// application under root, plus an optional mask.
func WriteThemeAssets(t testing.TB, root, appID string, withMask bool) {
	t.Helper()

	dir := filepath.Join(root, appID)
	WritePNG(t, filepath.Join(dir, "light.png"), 4)
	WritePNG(t, filepath.Join(dir, "dark.png"), 4)
	if withMask {
		WritePNG(t, filepath.Join(dir, "mask.png"), 4)
	}
}
