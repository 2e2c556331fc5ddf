package fileicon

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"iconvault/internal/icon"
	"iconvault/internal/imaging"
	"iconvault/internal/logging"
)

// shortcutIcon is the icon reference parsed from an internet-shortcut
// body. Index is -1 when the body names no frame.
type shortcutIcon struct {
	File  string
	Index int
}

// decodeShortcut follows the IconFile reference in a .url body.
func (p *Provider) decodeShortcut(ctx context.Context, path string) (imaging.RawImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return imaging.RawImage{}, fmt.Errorf("read internet shortcut: %w", err)
	}

	ref, ok := parseShortcutIcon(data)
	if !ok {
		return imaging.RawImage{}, icon.Wrap(icon.ErrNotFound, "retrieve icon", path,
			fmt.Errorf("shortcut body names no icon file"))
	}

	target := ref.File
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	if _, err := os.Stat(target); err != nil {
		return imaging.RawImage{}, icon.Wrap(icon.ErrNotFound, "retrieve icon", path, err)
	}

	p.logger.Debug("following shortcut icon reference",
		logging.String("shortcut", path),
		logging.String("target", target),
		logging.Int("index", ref.Index))

	if strings.ToLower(filepath.Ext(target)) == ".ico" {
		return p.decodeICO(target, ref.Index)
	}
	return p.retrieve(ctx, target, false)
}

// parseShortcutIcon scans an INI-style .url body for IconFile and
// IconIndex keys. Key matching is case-insensitive; section headers
// are ignored.
func parseShortcutIcon(data []byte) (shortcutIcon, bool) {
	ref := shortcutIcon{Index: -1}
	found := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "[") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "iconfile":
			if value != "" {
				ref.File = value
				found = true
			}
		case "iconindex":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				ref.Index = n
			}
		}
	}
	return ref, found
}
