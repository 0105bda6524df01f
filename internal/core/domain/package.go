package domain

// PackageLocator identifies one package of the dependency graph.
type PackageLocator struct {
	// Name is the package name, e.g. "lodash" or "@scope/pkg". The top-level
	// package of a project may have an empty name.
	Name string `json:"name"`

	// Reference distinguishes several instances of the same name (a version or a
	// workspace reference).
	Reference string `json:"reference"`

	// Location is the absolute directory holding the package files.
	Location string `json:"location"`
}

// String returns the "name@reference" form of the locator.
func (l PackageLocator) String() string {
	name := l.Name
	if name == "" {
		name = "<root>"
	}
	if l.Reference == "" {
		return name
	}
	return name + "@" + l.Reference
}
