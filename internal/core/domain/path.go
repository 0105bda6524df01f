package domain

import "unique"

// ModulePath is an interned absolute filesystem path.
// Paths are repeated across every cache of a session, so equal paths share one handle
// and compare in constant time.
type ModulePath struct {
	h unique.Handle[string]
}

// NewModulePath interns p.
func NewModulePath(p string) ModulePath {
	return ModulePath{h: unique.Make(p)}
}

// String returns the path.
func (p ModulePath) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return ""
	}
	return p.h.Value()
}

// IsZero reports whether p was never set.
func (p ModulePath) IsZero() bool {
	var zero unique.Handle[string]
	return p.h == zero
}
