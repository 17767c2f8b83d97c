// Package roster loads the active-staff registry used by the reporting
// facade to compute presence and absence. The registry is a hand-edited
// JSON file; a missing file is an empty roster.
package roster

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const registryFile = "staff_registry.json"

type Staff struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

type registryDoc struct {
	Staff []Staff `json:"staff"`
}

type Registry struct {
	path string
}

func NewRegistry(dataDir string) *Registry {
	return &Registry{path: filepath.Join(dataDir, registryFile)}
}

// Active returns the active staff members, nil when the file is absent
// or unreadable.
func (r *Registry) Active() []Staff {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}

	var doc registryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	var active []Staff
	for _, s := range doc.Staff {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}
