package domain

import "strings"

// BuiltinScheme is the prefix the host uses for its built-in modules.
const BuiltinScheme = "node:"

var builtinModules = map[string]bool{
	"assert":              true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"repl":                true,
	"stream":              true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

// builtinSubpaths are the subpath entry points the host ships for its built-ins.
var builtinSubpaths = map[string]bool{
	"assert/strict":      true,
	"dns/promises":       true,
	"fs/promises":        true,
	"inspector/promises": true,
	"path/posix":         true,
	"path/win32":         true,
	"readline/promises":  true,
	"stream/consumers":   true,
	"stream/promises":    true,
	"stream/web":         true,
	"timers/promises":    true,
	"util/types":         true,
}

// schemeOnlyBuiltins only exist with the "node:" prefix.
var schemeOnlyBuiltins = map[string]bool{
	"sea":            true,
	"sqlite":         true,
	"test":           true,
	"test/reporters": true,
}

// IsBuiltin reports whether specifier names a built-in module of the host,
// with or without the "node:" prefix.
func IsBuiltin(specifier string) bool {
	name, prefixed := strings.CutPrefix(specifier, BuiltinScheme)
	if name == "" {
		return false
	}
	if prefixed && schemeOnlyBuiltins[name] {
		return true
	}
	if strings.Contains(name, "/") {
		return builtinSubpaths[name]
	}
	return builtinModules[name]
}

// BuiltinURL returns the canonical "node:" URL for a built-in specifier.
func BuiltinURL(specifier string) string {
	if strings.HasPrefix(specifier, BuiltinScheme) {
		return specifier
	}
	return BuiltinScheme + specifier
}
