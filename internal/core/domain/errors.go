package domain

import "go.trai.ch/zerr"

var (
	// ErrNotFound is returned when the generic resolver finds no file for a specifier.
	ErrNotFound = zerr.New("module not found")

	// ErrGraphEscape is returned when a bare specifier resolves to a path that no package
	// of the dependency graph owns.
	ErrGraphEscape = zerr.New("resolution escaped the dependency graph")

	// ErrUndeterminableFormat is returned when the manifest walk ends without a module type.
	ErrUndeterminableFormat = zerr.New("unable to determine module type")

	// ErrUnsupportedExtension is returned when a structured-content module is requested
	// without structured-content support enabled.
	ErrUnsupportedExtension = zerr.New("unsupported file extension")

	// ErrUnsupportedURL is returned by the host defaults for URLs nothing can serve.
	ErrUnsupportedURL = zerr.New("unsupported module URL")

	// ErrInvalidFileURL is returned when a file URL cannot be converted to a path.
	ErrInvalidFileURL = zerr.New("invalid file URL")

	// ErrSourceReadFailed is returned when a module source cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read module source")

	// ErrManifestParseFailed is returned when a manifest is not valid JSON.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrAnalyzerInitFailed is returned when the static analysis engine cannot start.
	ErrAnalyzerInitFailed = zerr.New("failed to initialize export analyzer")

	// ErrGraphLoadFailed is returned when the dependency graph data cannot be loaded.
	ErrGraphLoadFailed = zerr.New("failed to load dependency graph")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the config file holds an invalid value.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrNoSpecifiers is returned when a command needs at least one specifier.
	ErrNoSpecifiers = zerr.New("no specifiers given")

	// ErrCheckFailed is returned when at least one specifier of a check failed to load.
	// The individual failures have already been reported.
	ErrCheckFailed = zerr.New("one or more specifiers failed to load")
)
