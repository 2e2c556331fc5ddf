package themeicons

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"iconvault/internal/icon"
	"iconvault/internal/logging"
)

const (
	lightName = "light.png"
	darkName  = "dark.png"
	maskName  = "mask.png"
)

// Pair is the themed asset set a packaged application ships. Light and
// Dark are always populated on success; Mask may be empty.
type Pair struct {
	Light string
	Dark  string
	Mask  string
}

// Locator finds themed icon assets under configured roots.
type Locator struct {
	roots  []string
	logger *slog.Logger
}

// NewLocator creates a locator over roots. Roots are searched in order
// and the first directory carrying both variants wins.
func NewLocator(roots []string, logger *slog.Logger) *Locator {
	cleaned := make([]string, 0, len(roots))
	for _, root := range roots {
		if root = strings.TrimSpace(root); root != "" {
			cleaned = append(cleaned, root)
		}
	}
	return &Locator{
		roots:  cleaned,
		logger: logging.NewComponentLogger(logger, "themeicons"),
	}
}

// ThemeIcons returns the asset pair for a packaged application id. An
// id with no themed assets under any root fails with icon.ErrNotFound.
func (l *Locator) ThemeIcons(ctx context.Context, appID string) (Pair, error) {
	if err := ctx.Err(); err != nil {
		return Pair{}, err
	}
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return Pair{}, icon.Wrap(icon.ErrNotFound, "locate theme icons", "",
			errors.New("application id is empty"))
	}
	// The id names a directory; ids with separators would escape the root.
	if appID != filepath.Base(appID) {
		return Pair{}, icon.Wrap(icon.ErrNotFound, "locate theme icons", appID,
			errors.New("application id must not contain path separators"))
	}

	for _, root := range l.roots {
		dir := filepath.Join(root, appID)
		light := filepath.Join(dir, lightName)
		dark := filepath.Join(dir, darkName)

		if !fileExists(light) || !fileExists(dark) {
			continue
		}

		pair := Pair{Light: light, Dark: dark}
		if mask := filepath.Join(dir, maskName); fileExists(mask) {
			pair.Mask = mask
		}
		l.logger.Debug("theme icons located",
			logging.String("app_id", appID),
			logging.String("dir", dir),
			logging.Bool("mask", pair.Mask != ""))
		return pair, nil
	}

	return Pair{}, icon.Wrap(icon.ErrNotFound, "locate theme icons", appID,
		fmt.Errorf("no root carries light and dark variants"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
