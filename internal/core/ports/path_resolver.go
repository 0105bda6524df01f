package ports

import "context"

//go:generate mockgen -source=path_resolver.go -destination=mocks/mock_path_resolver.go -package=mocks

// PathResolver maps a specifier to an absolute file path, probing the filesystem.
type PathResolver interface {
	// ResolvePath resolves specifier against baseDir. It fails with domain.ErrNotFound
	// when no file matches.
	ResolvePath(ctx context.Context, baseDir, specifier string) (string, error)
}

// PathResolverFactory builds path resolvers for condition lists.
type PathResolverFactory interface {
	// Default returns the shared resolver for the host's default condition list.
	Default() PathResolver
	// New builds a resolver for the given ordered condition list.
	New(conditions []string) PathResolver
}
