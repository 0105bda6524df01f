// Package graph provides the dependency graphs that bound bare-specifier resolution.
package graph

import (
	"errors"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Option configures a graph.
type Option func(*options)

type options struct {
	logger ports.Logger
}

// WithLogger reports recoverable manifest problems at debug level.
func WithLogger(log ports.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// Load returns the dependency graph of the project at root. Projects with Plug'n'Play
// registry data get a PnPGraph, every other project a LayoutGraph over its node_modules.
func Load(fsys ports.FileSystem, root string, opts ...Option) (ports.DependencyGraph, error) {
	root = filepath.Clean(root)
	dataPath := filepath.Join(root, domain.PnPDataFileName)

	data, err := fsys.ReadFile(dataPath)
	switch {
	case err == nil:
		g, err := ParsePnPData(filepath.Dir(dataPath), data)
		if err != nil {
			return nil, zerr.With(err, "path", dataPath)
		}
		return g, nil
	case errors.Is(err, iofs.ErrNotExist):
		return NewLayoutGraph(fsys, root, opts...), nil
	default:
		return nil, zerr.With(errors.Join(domain.ErrGraphLoadFailed, err), "path", dataPath)
	}
}

// within reports whether path is dir or below it.
func within(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
