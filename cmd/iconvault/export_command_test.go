package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"iconvault/internal/testsupport"
)

func TestCLIExportWritesStandalonePNG(t *testing.T) {
	env := setupCLITestEnv(t)

	pngPath := filepath.Join(t.TempDir(), "photo.png")
	testsupport.WritePNG(t, pngPath, 8)
	if _, _, err := runCLI(t, []string{"extract", pngPath}, env.configPath); err != nil {
		t.Fatalf("extract: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "exported.png")
	out, _, err := runCLI(t, []string{"export", "png", outPath}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported png to "+outPath)

	if got := decodePNGSize(t, outPath); got != 8 {
		t.Fatalf("exported edge = %d, want 8", got)
	}
}

func TestCLIExportDownscales(t *testing.T) {
	env := setupCLITestEnv(t)

	pngPath := filepath.Join(t.TempDir(), "photo.png")
	testsupport.WritePNG(t, pngPath, 8)
	if _, _, err := runCLI(t, []string{"extract", pngPath}, env.configPath); err != nil {
		t.Fatalf("extract: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "thumb.png")
	if _, _, err := runCLI(t, []string{"export", "png", outPath, "--size", "4"}, env.configPath); err != nil {
		t.Fatalf("export --size: %v", err)
	}

	if got := decodePNGSize(t, outPath); got != 4 {
		t.Fatalf("thumbnail edge = %d, want 4", got)
	}
}

func TestCLIExportUnknownKeyFails(t *testing.T) {
	env := setupCLITestEnv(t)

	outPath := filepath.Join(t.TempDir(), "missing.png")
	_, _, err := runCLI(t, []string{"export", "nope", outPath}, env.configPath)
	if err == nil {
		t.Fatal("expected export of an unknown key to fail")
	}
	requireContains(t, err.Error(), `no cache entry for "nope"`)
}

// decodePNGSize decodes the file and returns its square edge length.
func decodePNGSize(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != bounds.Dy() {
		t.Fatalf("expected square image, got %v", bounds)
	}
	return bounds.Dx()
}
