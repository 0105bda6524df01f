package graph

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyGraph = (*PnPGraph)(nil)

// PnPGraph is the package registry of a Plug'n'Play install.
type PnPGraph struct {
	// locators ordered by descending location length, so the first match is the
	// innermost package.
	locators []domain.PackageLocator
}

type pnpData struct {
	PackageRegistryData []registryEntry `json:"packageRegistryData"`
}

// registryEntry is the [name, [[reference, info], ...]] tuple of the registry.
type registryEntry struct {
	Name       string
	References []referenceEntry
}

type referenceEntry struct {
	Reference string
	Info      packageInfo
}

type packageInfo struct {
	PackageLocation string `json:"packageLocation"`
	LinkType        string `json:"linkType"`
}

func (e *registryEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return zerr.With(zerr.New("registry entry must be a [name, references] pair"), "length", len(tuple))
	}
	var name *string
	if err := json.Unmarshal(tuple[0], &name); err != nil {
		return err
	}
	if name != nil {
		e.Name = *name
	}
	return json.Unmarshal(tuple[1], &e.References)
}

func (e *referenceEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return zerr.With(zerr.New("reference entry must be a [reference, info] pair"), "length", len(tuple))
	}
	var ref *string
	if err := json.Unmarshal(tuple[0], &ref); err != nil {
		return err
	}
	if ref != nil {
		e.Reference = *ref
	}
	return json.Unmarshal(tuple[1], &e.Info)
}

// ParsePnPData builds a PnPGraph from the content of a .pnp.data.json file located in dir.
func ParsePnPData(dir string, data []byte) (*PnPGraph, error) {
	var parsed pnpData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Join(domain.ErrGraphLoadFailed, err)
	}

	g := &PnPGraph{}
	seen := make(map[string]bool)
	for _, entry := range parsed.PackageRegistryData {
		for _, ref := range entry.References {
			if ref.Info.PackageLocation == "" {
				continue
			}
			loc := domain.PackageLocator{
				Name:      entry.Name,
				Reference: ref.Reference,
				Location:  filepath.Join(dir, filepath.FromSlash(ref.Info.PackageLocation)),
			}
			// Several references may share one location (e.g. workspace aliases).
			if seen[loc.Location] {
				continue
			}
			seen[loc.Location] = true
			g.locators = append(g.locators, loc)
		}
	}

	slices.SortStableFunc(g.locators, func(a, b domain.PackageLocator) int {
		return len(b.Location) - len(a.Location)
	})

	return g, nil
}

// LocateOwner returns the package with the longest location containing path.
func (g *PnPGraph) LocateOwner(path string) (*domain.PackageLocator, bool) {
	path = filepath.Clean(path)
	for i := range g.locators {
		if within(path, g.locators[i].Location) {
			loc := g.locators[i]
			return &loc, true
		}
	}
	return nil, false
}

// Len returns the number of distinct package locations.
func (g *PnPGraph) Len() int {
	return len(g.locators)
}
