package domain

const (
	// ManifestFileName is the per-package manifest.
	ManifestFileName = "package.json"

	// GraphRootDir is the directory name that bounds package directories.
	GraphRootDir = "node_modules"

	// PnPDataFileName holds the Plug'n'Play package registry of a project.
	PnPDataFileName = ".pnp.data.json"

	// ConfigFileName is the project configuration file.
	ConfigFileName = "esmbridge.yaml"
)

// Module file extensions the interop layer handles.
const (
	ExtJS   = ".js"
	ExtMJS  = ".mjs"
	ExtCJS  = ".cjs"
	ExtJSON = ".json"
)

// DefaultConditions is the condition list of the host's import path.
var DefaultConditions = []string{"node", "import"}

// DefaultExtensions are tried, in order, when a specifier names no exact file.
var DefaultExtensions = []string{ExtMJS, ExtCJS, ExtJS, ExtJSON}

// DefaultRequireModule is the built-in module providing createRequire.
const DefaultRequireModule = "module"

// DefaultResolverCacheSize bounds the number of condition-specific resolvers kept.
const DefaultResolverCacheSize = 64
