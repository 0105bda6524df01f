// Package noderesolve implements the generic path resolver: relative and absolute
// specifiers tried against the filesystem, package lookups through node_modules
// directories, and manifest "exports" and "imports" maps evaluated for a condition list.
package noderesolve

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.PathResolverFactory = (*Factory)(nil)
	_ ports.PathResolver        = (*Resolver)(nil)
)

// Factory builds resolvers that share one filesystem and one manifest cache.
type Factory struct {
	fs         ports.FileSystem
	extensions []string
	manifests  *manifestCache
	def        *Resolver
}

// NewFactory creates a Factory. Empty extension or condition lists fall back to the defaults.
func NewFactory(fsys ports.FileSystem, extensions, defaultConditions []string) *Factory {
	if len(extensions) == 0 {
		extensions = domain.DefaultExtensions
	}
	if len(defaultConditions) == 0 {
		defaultConditions = domain.DefaultConditions
	}
	f := &Factory{
		fs:         fsys,
		extensions: append([]string(nil), extensions...),
		manifests:  newManifestCache(fsys),
	}
	f.def = f.newResolver(defaultConditions)
	return f
}

// Default returns the resolver for the default condition list.
func (f *Factory) Default() ports.PathResolver {
	return f.def
}

// New builds a resolver for conditions.
func (f *Factory) New(conditions []string) ports.PathResolver {
	return f.newResolver(conditions)
}

func (f *Factory) newResolver(conditions []string) *Resolver {
	set := make(map[string]bool, len(conditions))
	for _, c := range conditions {
		set[c] = true
	}
	return &Resolver{
		fs:         f.fs,
		extensions: f.extensions,
		conditions: set,
		manifests:  f.manifests,
	}
}

// Resolver resolves specifiers for one condition list.
type Resolver struct {
	fs         ports.FileSystem
	extensions []string
	conditions map[string]bool
	manifests  *manifestCache
}

// ResolvePath resolves specifier against baseDir to an absolute file path.
func (r *Resolver) ResolvePath(ctx context.Context, baseDir, specifier string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if specifier == "" {
		return "", notFound(specifier, baseDir)
	}

	switch {
	case domain.IsRelativeSpecifier(specifier) || filepath.IsAbs(specifier):
		target := specifier
		if !filepath.IsAbs(target) {
			target = filepath.Join(baseDir, filepath.FromSlash(specifier))
		}
		if !strings.HasSuffix(specifier, "/") {
			if p, ok := r.loadAsFile(target); ok {
				return p, nil
			}
		}
		if p, ok := r.loadAsDir(target); ok {
			return p, nil
		}
		return "", notFound(specifier, baseDir)

	case strings.HasPrefix(specifier, "#"):
		return r.resolveImports(ctx, baseDir, specifier)

	default:
		return r.resolveBare(ctx, baseDir, specifier)
	}
}

// resolveBare resolves a package specifier from baseDir.
func (r *Resolver) resolveBare(ctx context.Context, baseDir, specifier string) (string, error) {
	name, subpath, ok := domain.SplitPackageSpecifier(specifier)
	if !ok {
		return "", notFound(specifier, baseDir)
	}

	// A package may import itself by name through its own exports.
	scopeDir, scope, err := r.manifests.nearest(baseDir)
	if err != nil {
		return "", err
	}
	if scope != nil && scope.exports != nil && scope.manifest.Name == name {
		return r.resolveExports(ctx, scopeDir, subpath, scope.exports, specifier)
	}

	for dir := baseDir; ; {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if filepath.Base(dir) != domain.GraphRootDir {
			pkgDir := filepath.Join(dir, domain.GraphRootDir, filepath.FromSlash(name))
			if r.isDir(pkgDir) {
				return r.resolvePackage(ctx, pkgDir, subpath, specifier)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", notFound(specifier, baseDir)
}

// resolvePackage resolves subpath inside the package rooted at pkgDir.
func (r *Resolver) resolvePackage(ctx context.Context, pkgDir, subpath, specifier string) (string, error) {
	entry, err := r.manifests.load(pkgDir)
	if err != nil {
		return "", err
	}
	if entry != nil && entry.exports != nil {
		return r.resolveExports(ctx, pkgDir, subpath, entry.exports, specifier)
	}

	if subpath == "." {
		if p, ok := r.loadAsDir(pkgDir); ok {
			return p, nil
		}
		return "", notFound(specifier, pkgDir)
	}
	target := filepath.Join(pkgDir, filepath.FromSlash(subpath))
	if p, ok := r.loadAsFile(target); ok {
		return p, nil
	}
	if p, ok := r.loadAsDir(target); ok {
		return p, nil
	}
	return "", notFound(specifier, pkgDir)
}

func (r *Resolver) resolveExports(
	ctx context.Context,
	pkgDir, subpath string,
	exports *value,
	specifier string,
) (string, error) {
	m, ok := subpathMap(exports)
	if !ok {
		return "", zerr.With(notFound(specifier, pkgDir), "reason", "invalid exports")
	}
	target, patternMatch, isPattern, found := matchKey(m, subpath)
	if !found {
		return "", zerr.With(notFound(specifier, pkgDir), "reason", "subpath not exported")
	}
	p, o, err := r.resolveTarget(ctx, pkgDir, target, patternMatch, isPattern, false)
	if err != nil {
		return "", err
	}
	if o != matched || !r.isFile(p) {
		return "", notFound(specifier, pkgDir)
	}
	return p, nil
}

// resolveImports resolves a "#name" specifier through the nearest manifest's imports.
func (r *Resolver) resolveImports(ctx context.Context, baseDir, specifier string) (string, error) {
	if specifier == "#" || strings.HasPrefix(specifier, "#/") {
		return "", notFound(specifier, baseDir)
	}
	scopeDir, scope, err := r.manifests.nearest(baseDir)
	if err != nil {
		return "", err
	}
	if scope == nil || scope.imports == nil || scope.imports.kind != kindObject {
		return "", notFound(specifier, baseDir)
	}
	target, patternMatch, isPattern, found := matchKey(scope.imports, specifier)
	if !found {
		return "", notFound(specifier, baseDir)
	}
	p, o, err := r.resolveTarget(ctx, scopeDir, target, patternMatch, isPattern, true)
	if err != nil {
		return "", err
	}
	if o != matched || !r.isFile(p) {
		return "", notFound(specifier, baseDir)
	}
	return p, nil
}

// loadAsFile tries path as given, then with each extension appended.
func (r *Resolver) loadAsFile(path string) (string, bool) {
	if r.isFile(path) {
		return path, true
	}
	for _, ext := range r.extensions {
		if candidate := path + ext; r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// loadAsDir tries the manifest "main" of dir, then its index files.
func (r *Resolver) loadAsDir(dir string) (string, bool) {
	if entry, err := r.manifests.load(dir); err == nil && entry != nil && entry.manifest.Main != "" {
		main := filepath.Join(dir, filepath.FromSlash(entry.manifest.Main))
		if p, ok := r.loadAsFile(main); ok {
			return p, true
		}
		if p, ok := r.loadIndex(main); ok {
			return p, true
		}
	}
	return r.loadIndex(dir)
}

func (r *Resolver) loadIndex(dir string) (string, bool) {
	for _, ext := range r.extensions {
		if candidate := filepath.Join(dir, "index"+ext); r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

func notFound(specifier, baseDir string) error {
	err := zerr.Wrap(domain.ErrNotFound, "cannot find module "+strconv.Quote(specifier))
	err = zerr.With(err, "specifier", specifier)
	return zerr.With(err, "base", baseDir)
}

// manifestEntry is a parsed manifest with its maps decoded in declaration order.
type manifestEntry struct {
	manifest *domain.Manifest
	exports  *value
	imports  *value
}

type manifestResult struct {
	entry *manifestEntry
	err   error
}

// manifestCache parses each manifest once and shares it across resolvers.
type manifestCache struct {
	fs      ports.FileSystem
	mu      sync.RWMutex
	entries map[string]manifestResult
}

func newManifestCache(fsys ports.FileSystem) *manifestCache {
	return &manifestCache{fs: fsys, entries: make(map[string]manifestResult)}
}

// load returns the manifest in dir, or nil when dir has none.
func (c *manifestCache) load(dir string) (*manifestEntry, error) {
	c.mu.RLock()
	res, ok := c.entries[dir]
	c.mu.RUnlock()
	if ok {
		return res.entry, res.err
	}

	entry, err := c.read(dir)

	c.mu.Lock()
	if existing, ok := c.entries[dir]; ok {
		c.mu.Unlock()
		return existing.entry, existing.err
	}
	c.entries[dir] = manifestResult{entry: entry, err: err}
	c.mu.Unlock()
	return entry, err
}

func (c *manifestCache) read(dir string) (*manifestEntry, error) {
	path := filepath.Join(dir, domain.ManifestFileName)
	data, err := c.fs.ReadFile(path)
	if err != nil {
		// Missing and unreadable manifests both leave dir without a package scope.
		return nil, nil //nolint:nilerr
	}
	m, err := domain.ParseManifest(path, data)
	if err != nil {
		return nil, err
	}

	entry := &manifestEntry{manifest: m}
	if m.HasExports() {
		if entry.exports, err = parseOrdered(m.Exports); err != nil {
			return nil, zerr.With(errors.Join(domain.ErrManifestParseFailed, err), "manifest", path)
		}
	}
	if len(m.Imports) > 0 && string(m.Imports) != "null" {
		if entry.imports, err = parseOrdered(m.Imports); err != nil {
			return nil, zerr.With(errors.Join(domain.ErrManifestParseFailed, err), "manifest", path)
		}
	}
	return entry, nil
}

// nearest returns the closest manifest at or above dir, stopping at node_modules boundaries.
func (c *manifestCache) nearest(dir string) (string, *manifestEntry, error) {
	for {
		if filepath.Base(dir) == domain.GraphRootDir {
			return "", nil, nil
		}
		entry, err := c.load(dir)
		if err != nil {
			return "", nil, err
		}
		if entry != nil {
			return dir, entry, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}
