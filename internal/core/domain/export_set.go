package domain

// DefaultExportName is the export name reserved for the namespace object itself.
const DefaultExportName = "default"

// ExportSet is the ordered, duplicate-free list of export names statically found in
// a legacy module. Order is first occurrence in the source.
type ExportSet struct {
	names []string
	seen  map[string]struct{}
}

// NewExportSet builds a set from names, dropping repeats.
func NewExportSet(names ...string) ExportSet {
	var s ExportSet
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add appends name unless it is already present. It reports whether name was new.
func (s *ExportSet) Add(name string) bool {
	if name == "" {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[name]; ok {
		return false
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Has reports whether name is in the set.
func (s ExportSet) Has(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Names returns a copy of the names in first-occurrence order.
func (s ExportSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of names.
func (s ExportSet) Len() int {
	return len(s.names)
}

// Named returns the names that become named re-exports, which is every name except
// the reserved default.
func (s ExportSet) Named() []string {
	out := make([]string, 0, len(s.names))
	for _, n := range s.names {
		if n == DefaultExportName {
			continue
		}
		out = append(out, n)
	}
	return out
}
