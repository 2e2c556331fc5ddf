package icon_test

import (
	"errors"
	"strings"
	"testing"

	"iconvault/internal/icon"
)

func TestWrapRetainsMarkerAndCause(t *testing.T) {
	base := errors.New("boom")
	err := icon.Wrap(icon.ErrResolution, "resolve shortcut", "/apps/editor.lnk", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, icon.ErrResolution) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"resolve shortcut", "/apps/editor.lnk"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapChainsAreDistinguishable(t *testing.T) {
	missing := icon.Wrap(icon.ErrNotFound, "retrieve icon", "target.exe", nil)
	aliased := icon.Wrap(icon.ErrResolution, "extract shortcut target", "target.exe", missing)
	broken := icon.Wrap(icon.ErrResolution, "resolve shortcut target", "app.lnk", errors.New("no target"))

	if !errors.Is(aliased, icon.ErrResolution) || !errors.Is(aliased, icon.ErrNotFound) {
		t.Fatalf("aliased chain should match both markers, got %v", aliased)
	}
	if !errors.Is(broken, icon.ErrResolution) {
		t.Fatalf("broken chain should match ErrResolution, got %v", broken)
	}
	if errors.Is(broken, icon.ErrNotFound) {
		t.Fatalf("broken chain should not match ErrNotFound, got %v", broken)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not found", icon.Wrap(icon.ErrNotFound, "retrieve icon", "a.txt", nil), "not_found"},
		{"format", icon.Wrap(icon.ErrFormat, "convert", "a.png", nil), "format"},
		{"resolution wins over cause", icon.Wrap(icon.ErrResolution, "alias", "a.lnk", icon.ErrNotFound), "resolution"},
		{"io", errors.New("disk full"), "io"},
	}
	for _, tc := range cases {
		if got := icon.Classify(tc.err); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDescriptorShapes(t *testing.T) {
	static := icon.Static("abc.png")
	if static.IsDynamic() {
		t.Fatal("static descriptor reported dynamic")
	}
	if got := static.Primary(); got != "abc.png" {
		t.Fatalf("primary asset: got %q, want %q", got, "abc.png")
	}
	if got := static.Assets(); len(got) != 1 || got[0] != "abc.png" {
		t.Fatalf("assets: got %v", got)
	}

	dynamic := icon.Dynamic("a_light.png", "a_dark.png", "")
	if !dynamic.IsDynamic() {
		t.Fatal("dynamic descriptor reported static")
	}
	if got := dynamic.Primary(); got != "a_light.png" {
		t.Fatalf("primary asset: got %q, want %q", got, "a_light.png")
	}
	if got := dynamic.Assets(); len(got) != 2 {
		t.Fatalf("assets: got %v, want light and dark", got)
	}

	masked := icon.Dynamic("a_light.png", "a_dark.png", "a_mask.png")
	if got := masked.Assets(); len(got) != 3 {
		t.Fatalf("assets: got %v, want light, dark, mask", got)
	}

	if !(icon.Descriptor{}).IsZero() {
		t.Fatal("zero descriptor not reported zero")
	}
	if !static.Equal(icon.Static("abc.png")) {
		t.Fatal("equal static descriptors reported unequal")
	}
}

func TestAppIDKeys(t *testing.T) {
	packaged := icon.PackagedApp(" Vendor.Editor ")
	if packaged.ID != "Vendor.Editor" {
		t.Fatalf("expected trimmed id, got %q", packaged.ID)
	}
	legacy := icon.LegacyApp("Vendor.Editor")
	if packaged.String() == legacy.String() {
		t.Fatalf("packaged and legacy keys must differ, both %q", packaged.String())
	}
	if !icon.LegacyApp("  ").IsZero() {
		t.Fatal("blank identity should be zero")
	}
}
