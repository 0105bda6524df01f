package domain

import (
	"path/filepath"
	"strings"
)

// IsRelativeSpecifier reports whether specifier is resolved against the caller's directory.
func IsRelativeSpecifier(specifier string) bool {
	return strings.HasPrefix(specifier, ".")
}

// IsBareSpecifier reports whether specifier is a package-style name that can only be
// satisfied through the dependency graph, e.g. "lodash/get", "@scope/pkg" or "#internal".
func IsBareSpecifier(specifier string) bool {
	if specifier == "" || IsRelativeSpecifier(specifier) {
		return false
	}
	if strings.HasPrefix(specifier, "/") || filepath.IsAbs(specifier) {
		return false
	}
	return !IsValidURL(specifier)
}

// SplitPackageSpecifier splits a bare specifier into its package name and the subpath
// below the package ("." for the package entry point).
// It reports false when specifier is not a well-formed package name.
func SplitPackageSpecifier(specifier string) (name, subpath string, ok bool) {
	if specifier == "" || strings.HasPrefix(specifier, "#") {
		return "", "", false
	}
	parts := strings.SplitN(specifier, "/", 3)
	switch {
	case strings.HasPrefix(specifier, "@"):
		if len(parts) < 2 || len(parts[0]) < 2 || parts[1] == "" {
			return "", "", false
		}
		name = parts[0] + "/" + parts[1]
		if len(parts) == 3 {
			subpath = "./" + parts[2]
		}
	default:
		name = parts[0]
		if rest, found := strings.CutPrefix(specifier, name+"/"); found {
			subpath = "./" + rest
		}
	}
	if subpath == "" || subpath == "./" {
		subpath = "."
	}
	if strings.HasPrefix(name, ".") || strings.ContainsAny(name, `\%`) {
		return "", "", false
	}
	return name, subpath, true
}
