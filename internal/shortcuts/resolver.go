package shortcuts

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"iconvault/internal/logging"
)

// SymlinkResolver resolves a shortcut to its target path. Real
// symlinks resolve through the filesystem; regular files resolve via
// a Target= line in their body, the convention fixtures and the demo
// tooling use on platforms without .lnk support.
type SymlinkResolver struct {
	logger *slog.Logger
}

// NewSymlinkResolver creates a resolver. A nil logger disables logging.
func NewSymlinkResolver(logger *slog.Logger) *SymlinkResolver {
	return &SymlinkResolver{logger: logging.NewComponentLogger(logger, "shortcuts")}
}

// ResolveTarget returns the absolute path the shortcut points at. The
// target must exist.
func (r *SymlinkResolver) ResolveTarget(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Lstat(path)
	if err != nil {
		return "", fmt.Errorf("stat shortcut: %w", err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return "", fmt.Errorf("resolve symlink: %w", err)
		}
		abs, err := filepath.Abs(resolved)
		if err != nil {
			return "", fmt.Errorf("absolutize target: %w", err)
		}
		r.logger.Debug("shortcut resolved",
			logging.String("shortcut", path),
			logging.String("target", abs))
		return abs, nil
	}

	target, err := targetFromBody(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("shortcut target missing: %w", err)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("absolutize target: %w", err)
	}

	r.logger.Debug("shortcut resolved",
		logging.String("shortcut", path),
		logging.String("target", abs))
	return abs, nil
}

// targetFromBody scans a shortcut body for the first Target= line.
func targetFromBody(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open shortcut: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "target") {
			if value = strings.TrimSpace(value); value != "" {
				return value, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read shortcut: %w", err)
	}
	return "", fmt.Errorf("shortcut %s declares no target", path)
}
