package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"iconvault/internal/icon"
	"iconvault/internal/iconcache"
	"iconvault/internal/imaging"
	"iconvault/internal/logging"
	"iconvault/internal/themeicons"
	"iconvault/internal/vault"
)

// PlaceholderKey is the shared file-namespace key every internet
// shortcut records under.
const PlaceholderKey = "url"

// DefaultMaxDepth bounds shortcut and identity resolution chains.
const DefaultMaxDepth = 8

// IconProvider retrieves the raw bitmap an icon source carries.
type IconProvider interface {
	RetrieveIcon(ctx context.Context, path string) (imaging.RawImage, error)
}

// ShortcutResolver resolves a shortcut file to its target path.
type ShortcutResolver interface {
	ResolveTarget(ctx context.Context, path string) (string, error)
}

// ThemeIconLocator finds the themed asset pair of a packaged
// application.
type ThemeIconLocator interface {
	ThemeIcons(ctx context.Context, appID string) (themeicons.Pair, error)
}

// ShortcutIndex answers which shortcut launches an application
// identity.
type ShortcutIndex interface {
	ShortcutFor(identity string) (string, bool)
}

// Options carries the extractor's collaborators. Provider is required
// for path extraction; the rest are optional and their absence limits
// which strategies succeed.
type Options struct {
	Provider   IconProvider
	Resolver   ShortcutResolver
	ThemeIcons ThemeIconLocator
	Shortcuts  ShortcutIndex
	Converter  imaging.Converter
	Logger     *slog.Logger
	MaxDepth   int
}

// Extractor acquires icons and records them in the cache. Construction
// wires every dependency explicitly; the extractor holds no globals.
type Extractor struct {
	cache      *iconcache.Cache
	vault      *vault.Vault
	provider   IconProvider
	resolver   ShortcutResolver
	themeIcons ThemeIconLocator
	shortcuts  ShortcutIndex
	converter  imaging.Converter
	logger     *slog.Logger
	maxDepth   int
}

// New creates an extractor over the shared cache and vault.
func New(cache *iconcache.Cache, v *vault.Vault, opts Options) *Extractor {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Extractor{
		cache:      cache,
		vault:      v,
		provider:   opts.Provider,
		resolver:   opts.Resolver,
		themeIcons: opts.ThemeIcons,
		shortcuts:  opts.Shortcuts,
		converter:  opts.Converter,
		logger:     logging.NewComponentLogger(opts.Logger, "extraction"),
		maxDepth:   maxDepth,
	}
}

// ExtractPath acquires the icon for a filesystem path and records it in
// the cache. A cache hit returns immediately so user-replaced icons are
// never overwritten. Paths without an extension succeed without
// recording anything.
func (e *Extractor) ExtractPath(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolutize path: %w", err)
	}
	_, err = e.extractPath(ctx, abs, newVisit(e.maxDepth))
	return err
}

// ExtractApp acquires the icon for an application identity.
func (e *Extractor) ExtractApp(ctx context.Context, id icon.AppID) error {
	if id.IsZero() {
		return errors.New("application id is required")
	}
	_, err := e.extractApp(ctx, id, newVisit(e.maxDepth))
	return err
}

// visit tracks the keys a resolution chain has passed through plus the
// remaining depth budget. Keys are prefixed by namespace so a path and
// an identity with the same spelling cannot collide.
type visit struct {
	seen  map[string]bool
	depth int
}

func newVisit(depth int) *visit {
	return &visit{seen: make(map[string]bool), depth: depth}
}

// enter records a chain step, failing when the key was already seen or
// the budget is spent.
func (v *visit) enter(key string) error {
	if v.seen[key] {
		return icon.Wrap(icon.ErrResolution, "resolve icon", key,
			errors.New("chain revisits a key"))
	}
	if v.depth <= 0 {
		return icon.Wrap(icon.ErrResolution, "resolve icon", key,
			errors.New("chain exceeds depth bound"))
	}
	v.seen[key] = true
	v.depth--
	return nil
}

func (e *Extractor) extractPath(ctx context.Context, path string, v *visit) (icon.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return icon.Descriptor{}, err
	}
	if err := v.enter("path:" + path); err != nil {
		return icon.Descriptor{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return icon.Descriptor{}, icon.Wrap(icon.ErrNotFound, "extract icon", path, err)
	}
	if info.IsDir() {
		return icon.Descriptor{}, icon.Wrap(icon.ErrNotFound, "extract icon", path,
			errors.New("not a regular file"))
	}

	strategy := Classify(path)
	e.logger.Debug("extracting path",
		logging.String("path", path),
		logging.String("strategy", strategy.String()))

	switch strategy {
	case StrategyNone:
		return icon.Descriptor{}, nil
	case StrategyPlaceholder:
		return e.extractPlaceholder(ctx, path)
	case StrategyFile:
		return e.extractFile(ctx, path)
	case StrategyApp:
		return e.extractExecutable(ctx, path)
	case StrategyShortcut:
		return e.extractShortcut(ctx, path, v)
	default:
		return icon.Descriptor{}, fmt.Errorf("unhandled strategy %v for %s", strategy, path)
	}
}

// extractPlaceholder records the shared internet-shortcut entry. Every
// .url file resolves to the same placeholder asset.
func (e *Extractor) extractPlaceholder(ctx context.Context, path string) (icon.Descriptor, error) {
	if desc, ok := e.cache.FileIcon(PlaceholderKey); ok {
		e.hit(PlaceholderKey, desc)
		return desc, nil
	}

	if err := e.vault.EnsurePlaceholders(); err != nil {
		return icon.Descriptor{}, err
	}
	name := e.vault.NewAssetName()
	if err := e.vault.CopyAsset(ctx, e.vault.PlaceholderURL(), name); err != nil {
		return icon.Descriptor{}, err
	}

	desc := icon.Static(name)
	e.cache.SetFileIcon(PlaceholderKey, desc)
	if err := e.cache.Write(ctx); err != nil {
		return icon.Descriptor{}, err
	}
	e.recorded(PlaceholderKey, path, desc)
	return desc, nil
}

// extractFile records a generic file's icon under its extension key.
func (e *Extractor) extractFile(ctx context.Context, path string) (icon.Descriptor, error) {
	key := iconcache.ExtensionKey(path)
	if desc, ok := e.cache.FileIcon(key); ok {
		e.hit(key, desc)
		return desc, nil
	}

	raw, err := e.retrieve(ctx, path)
	if err != nil {
		return icon.Descriptor{}, err
	}
	desc, err := e.storeBitmap(ctx, raw)
	if err != nil {
		return icon.Descriptor{}, err
	}

	e.cache.SetFileIcon(key, desc)
	if err := e.cache.Write(ctx); err != nil {
		return icon.Descriptor{}, err
	}
	e.recorded(key, path, desc)
	return desc, nil
}

// extractExecutable records an executable's icon under its absolute
// path.
func (e *Extractor) extractExecutable(ctx context.Context, path string) (icon.Descriptor, error) {
	if desc, ok := e.cache.AppIcon(path); ok {
		e.hit(path, desc)
		return desc, nil
	}

	raw, err := e.retrieve(ctx, path)
	if err != nil {
		return icon.Descriptor{}, err
	}
	desc, err := e.storeBitmap(ctx, raw)
	if err != nil {
		return icon.Descriptor{}, err
	}

	e.cache.SetAppIcon(path, desc)
	if err := e.cache.Write(ctx); err != nil {
		return icon.Descriptor{}, err
	}
	e.recorded(path, path, desc)
	return desc, nil
}

// extractShortcut records a shortcut's icon under its absolute path.
// Direct retrieval is attempted first; on failure the shortcut's target
// is extracted and the shortcut key aliases the target's descriptor.
func (e *Extractor) extractShortcut(ctx context.Context, path string, v *visit) (icon.Descriptor, error) {
	if desc, ok := e.cache.AppIcon(path); ok {
		e.hit(path, desc)
		return desc, nil
	}

	raw, err := e.retrieve(ctx, path)
	if err == nil {
		desc, err := e.storeBitmap(ctx, raw)
		if err != nil {
			return icon.Descriptor{}, err
		}
		e.cache.SetAppIcon(path, desc)
		if err := e.cache.Write(ctx); err != nil {
			return icon.Descriptor{}, err
		}
		e.recorded(path, path, desc)
		return desc, nil
	}

	// Only the direct failure is swallowed; everything after this point
	// surfaces as a resolution error.
	e.logger.Debug("direct retrieval failed, trying shortcut target",
		logging.String("path", path),
		logging.Error(err))

	if e.resolver == nil {
		return icon.Descriptor{}, icon.Wrap(icon.ErrResolution, "resolve shortcut", path,
			errors.New("no shortcut resolver configured"))
	}
	target, err := e.resolver.ResolveTarget(ctx, path)
	if err != nil {
		return icon.Descriptor{}, icon.Wrap(icon.ErrResolution, "resolve shortcut", path, err)
	}

	desc, err := e.extractPath(ctx, target, v)
	if err != nil {
		return icon.Descriptor{}, icon.Wrap(icon.ErrResolution, "extract shortcut target", path, err)
	}
	if desc.IsZero() {
		// The target extracted without recording anything (for example
		// an extensionless file); check both namespaces before giving up.
		if cached, ok := e.lookupDescriptor(target); ok {
			desc = cached
		} else {
			return icon.Descriptor{}, icon.Wrap(icon.ErrResolution, "alias shortcut", path,
				icon.Wrap(icon.ErrNotFound, "target recorded no icon", target, nil))
		}
	}

	e.cache.SetAppIcon(path, desc)
	if err := e.cache.Write(ctx); err != nil {
		return icon.Descriptor{}, err
	}
	e.recorded(path, path, desc)
	return desc, nil
}

func (e *Extractor) extractApp(ctx context.Context, id icon.AppID, v *visit) (icon.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return icon.Descriptor{}, err
	}
	key := id.String()
	if err := v.enter("app:" + key); err != nil {
		return icon.Descriptor{}, err
	}

	if desc, ok := e.cache.AppIcon(key); ok {
		e.hit(key, desc)
		return desc, nil
	}

	switch id.Kind {
	case icon.AppPackaged:
		return e.extractPackaged(ctx, id)
	case icon.AppLegacy:
		return e.extractLegacy(ctx, id, v)
	default:
		return icon.Descriptor{}, fmt.Errorf("unknown application kind %q", id.Kind)
	}
}

// extractPackaged copies a packaged application's themed assets into
// the vault under one generated base name.
func (e *Extractor) extractPackaged(ctx context.Context, id icon.AppID) (icon.Descriptor, error) {
	if e.themeIcons == nil {
		return icon.Descriptor{}, icon.Wrap(icon.ErrNotFound, "locate theme icons", id.String(),
			errors.New("no theme icon locator configured"))
	}
	pair, err := e.themeIcons.ThemeIcons(ctx, id.ID)
	if err != nil {
		return icon.Descriptor{}, icon.Wrap(nil, "no icon available", id.String(), err)
	}

	base := uuid.NewString()
	light := base + "_light.png"
	dark := base + "_dark.png"
	if err := e.vault.CopyAsset(ctx, pair.Light, light); err != nil {
		return icon.Descriptor{}, err
	}
	if err := e.vault.CopyAsset(ctx, pair.Dark, dark); err != nil {
		return icon.Descriptor{}, err
	}
	mask := ""
	if pair.Mask != "" {
		mask = base + "_mask.png"
		if err := e.vault.CopyAsset(ctx, pair.Mask, mask); err != nil {
			return icon.Descriptor{}, err
		}
	}

	key := id.String()
	desc := icon.Dynamic(light, dark, mask)
	e.cache.SetAppIcon(key, desc)
	if err := e.cache.Write(ctx); err != nil {
		return icon.Descriptor{}, err
	}
	e.recorded(key, id.ID, desc)
	return desc, nil
}

// extractLegacy resolves an opaque identity through the shortcut index
// and aliases the identity to the shortcut's descriptor.
func (e *Extractor) extractLegacy(ctx context.Context, id icon.AppID, v *visit) (icon.Descriptor, error) {
	key := id.String()
	if e.shortcuts == nil {
		return icon.Descriptor{}, icon.Wrap(icon.ErrResolution, "resolve application", key,
			errors.New("no shortcut index configured"))
	}
	shortcutPath, ok := e.shortcuts.ShortcutFor(id.ID)
	if !ok {
		return icon.Descriptor{}, icon.Wrap(icon.ErrResolution, "resolve application", key,
			fmt.Errorf("no shortcut indexed for identity %q", id.ID))
	}

	desc, err := e.extractPath(ctx, shortcutPath, v)
	if err != nil {
		return icon.Descriptor{}, icon.Wrap(icon.ErrResolution, "extract application shortcut", key, err)
	}
	if desc.IsZero() {
		return icon.Descriptor{}, icon.Wrap(icon.ErrResolution, "alias application", key,
			icon.Wrap(icon.ErrNotFound, "shortcut recorded no icon", shortcutPath, nil))
	}

	e.cache.SetAppIcon(key, desc)
	if err := e.cache.Write(ctx); err != nil {
		return icon.Descriptor{}, err
	}
	e.recorded(key, shortcutPath, desc)
	return desc, nil
}

// retrieve calls the provider, normalizing its absence and decorating
// not-found failures with the operation outcome.
func (e *Extractor) retrieve(ctx context.Context, path string) (imaging.RawImage, error) {
	if e.provider == nil {
		return imaging.RawImage{}, icon.Wrap(icon.ErrNotFound, "no icon available", path,
			errors.New("no icon provider configured"))
	}
	raw, err := e.provider.RetrieveIcon(ctx, path)
	if err != nil {
		return imaging.RawImage{}, icon.Wrap(nil, "no icon available", path, err)
	}
	return raw, nil
}

// storeBitmap runs the normalization pipeline: convert the raw BGRA
// bitmap, crop transparent borders, and save the PNG under a fresh
// asset name.
func (e *Extractor) storeBitmap(ctx context.Context, raw imaging.RawImage) (icon.Descriptor, error) {
	img, err := imaging.RGBA(raw, e.converter)
	if err != nil {
		return icon.Descriptor{}, err
	}
	cropped := imaging.CropTransparentBorders(img)

	name := e.vault.NewAssetName()
	if err := e.vault.SavePNG(ctx, name, cropped); err != nil {
		return icon.Descriptor{}, err
	}
	return icon.Static(name), nil
}

// lookupDescriptor checks both cache namespaces for a path's entry.
func (e *Extractor) lookupDescriptor(path string) (icon.Descriptor, bool) {
	if desc, ok := e.cache.AppIcon(path); ok {
		return desc, true
	}
	if desc, ok := e.cache.FileIcon(path); ok {
		return desc, true
	}
	return icon.Descriptor{}, false
}

func (e *Extractor) hit(key string, desc icon.Descriptor) {
	e.logger.Debug("cache hit",
		logging.String("key", key),
		logging.String("asset", desc.Primary()))
}

func (e *Extractor) recorded(key, source string, desc icon.Descriptor) {
	e.logger.Info("icon recorded",
		logging.String("key", key),
		logging.String("source", source),
		logging.String("asset", desc.Primary()),
		logging.Bool("dynamic", desc.IsDynamic()))
}
