package ports

import "go.trai.ch/esmbridge/internal/core/domain"

// DependencyGraph is the closed set of packages a project may load from.
//
//go:generate mockgen -source=graph.go -destination=mocks/mock_graph.go -package=mocks
type DependencyGraph interface {
	// LocateOwner returns the package whose directory contains path.
	// It reports false when no package of the graph owns path.
	LocateOwner(path string) (*domain.PackageLocator, bool)
}
