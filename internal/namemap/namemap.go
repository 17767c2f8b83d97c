// Package namemap resolves platform user ids to real display names from
// a small JSON mapping file maintained by hand. A missing file is an
// empty mapping, never an error.
package namemap

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const mappingFile = "name_mapping.json"

type Resolver struct {
	path string
}

func NewResolver(dataDir string) *Resolver {
	return &Resolver{path: filepath.Join(dataDir, mappingFile)}
}

// Resolve returns the mapped name for userID, or fallback (the platform
// username) when no mapping exists.
func (r *Resolver) Resolve(userID, fallback string) string {
	mapping := r.load()
	if name, ok := mapping[userID]; ok && name != "" {
		return name
	}
	return fallback
}

// Lookup returns the mapped name and whether a mapping exists.
func (r *Resolver) Lookup(userID string) (string, bool) {
	name, ok := r.load()[userID]
	return name, ok && name != ""
}

// Set upserts a mapping entry and rewrites the file.
func (r *Resolver) Set(userID, name string) error {
	mapping := r.load()
	mapping[userID] = name

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}

func (r *Resolver) load() map[string]string {
	mapping := make(map[string]string)
	data, err := os.ReadFile(r.path)
	if err != nil {
		return mapping
	}
	if err := json.Unmarshal(data, &mapping); err != nil {
		return map[string]string{}
	}
	return mapping
}
