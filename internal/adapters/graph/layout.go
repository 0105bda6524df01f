package graph

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
)

var _ ports.DependencyGraph = (*LayoutGraph)(nil)

// LayoutGraph derives package ownership from a node_modules directory layout.
// The project root is the top-level package; every node_modules/<name> and
// node_modules/@scope/<name> directory holding a manifest is a package.
type LayoutGraph struct {
	fs     ports.FileSystem
	root   string
	logger ports.Logger

	mu       sync.RWMutex
	packages map[string]*domain.PackageLocator // keyed by candidate directory; nil means no manifest
}

// NewLayoutGraph creates a graph over the project at root.
func NewLayoutGraph(fsys ports.FileSystem, root string, opts ...Option) *LayoutGraph {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &LayoutGraph{
		fs:       fsys,
		root:     filepath.Clean(root),
		logger:   o.logger,
		packages: make(map[string]*domain.PackageLocator),
	}
}

// LocateOwner returns the innermost package directory containing path.
// Paths outside the project root have no owner.
func (g *LayoutGraph) LocateOwner(path string) (*domain.PackageLocator, bool) {
	path = filepath.Clean(path)
	if !within(path, g.root) {
		return nil, false
	}

	rel, err := filepath.Rel(g.root, path)
	if err != nil {
		return nil, false
	}
	segs := strings.Split(filepath.ToSlash(rel), "/")

	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] != domain.GraphRootDir {
			continue
		}
		n := 1
		if i+1 < len(segs) && strings.HasPrefix(segs[i+1], "@") {
			n = 2
		}
		if i+n >= len(segs) {
			continue
		}
		dir := filepath.Join(g.root, filepath.FromSlash(strings.Join(segs[:i+1+n], "/")))
		if loc := g.lookup(dir, strings.Join(segs[i+1:i+1+n], "/")); loc != nil {
			return loc, true
		}
	}

	loc := g.lookup(g.root, "")
	if loc == nil {
		loc = &domain.PackageLocator{Location: g.root}
	}
	return loc, true
}

// lookup returns the package at dir, reading its manifest once.
func (g *LayoutGraph) lookup(dir, name string) *domain.PackageLocator {
	g.mu.RLock()
	loc, ok := g.packages[dir]
	g.mu.RUnlock()
	if ok {
		return copyLocator(loc)
	}

	manifest := filepath.Join(dir, domain.ManifestFileName)
	data, err := g.fs.ReadFile(manifest)
	if err == nil {
		var m struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		}
		// A malformed manifest still marks a package; only its name and version are lost.
		if err := json.Unmarshal(data, &m); err != nil && g.logger != nil {
			g.logger.Debug(fmt.Sprintf("malformed manifest %s: %v", manifest, err))
		}
		if name == "" {
			name = m.Name
		}
		loc = &domain.PackageLocator{Name: name, Reference: m.Version, Location: dir}
	}

	g.mu.Lock()
	g.packages[dir] = loc
	g.mu.Unlock()

	return copyLocator(loc)
}

func copyLocator(loc *domain.PackageLocator) *domain.PackageLocator {
	if loc == nil {
		return nil
	}
	c := *loc
	return &c
}
