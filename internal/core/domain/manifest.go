package domain

import (
	"encoding/json"
	"errors"

	"go.trai.ch/zerr"
)

// Manifest is the subset of a package manifest the interop layer reads.
type Manifest struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Main    string          `json:"main"`
	Exports json.RawMessage `json:"exports"`
	Imports json.RawMessage `json:"imports"`
}

// ParseManifest decodes a manifest read from path.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(errors.Join(ErrManifestParseFailed, err), "manifest", path)
	}
	return &m, nil
}

// HasExports reports whether the manifest declares an "exports" field.
func (m *Manifest) HasExports() bool {
	return len(m.Exports) > 0 && string(m.Exports) != "null"
}
