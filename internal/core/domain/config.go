package domain

import "slices"

// Config is the resolved configuration of an interop session.
type Config struct {
	// Path is the configuration file the values came from, empty when defaults are used.
	Path string

	// Root is the project directory holding the dependency graph data.
	Root string

	// WorkDir is the directory requests without a parent URL resolve from.
	WorkDir string

	// Conditions is the condition list used when a request carries none.
	Conditions []string

	// Extensions are tried, in order, by the generic resolver.
	Extensions []string

	// JSONModules enables structured-content modules.
	JSONModules bool

	// Format is the classification policy.
	Format FormatPolicy

	// RequireModule is the built-in module the synthesized source takes createRequire from.
	RequireModule string

	// ResolverCacheSize bounds the condition-specific resolver cache.
	ResolverCacheSize int

	// LogJSON switches the logger to JSON output.
	LogJSON bool

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultConfig returns the configuration used when no config file is found.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:              root,
		WorkDir:           root,
		Conditions:        slices.Clone(DefaultConditions),
		Extensions:        slices.Clone(DefaultExtensions),
		Format:            DefaultFormatPolicy(),
		RequireModule:     DefaultRequireModule,
		ResolverCacheSize: DefaultResolverCacheSize,
	}
}
