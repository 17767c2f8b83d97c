package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActive_MissingFileIsEmptyRoster(t *testing.T) {
	r := NewRegistry(t.TempDir())
	assert.Empty(t, r.Active())
}

func TestActive_FiltersInactive(t *testing.T) {
	dir := t.TempDir()
	doc := `{"staff": [
		{"user_id": "u1", "name": "Juan", "role": "Developer", "active": true},
		{"user_id": "u2", "name": "Maria", "role": "Designer", "active": false},
		{"user_id": "u3", "name": "Pedro", "role": "QA", "active": true}
	]}`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "staff_registry.json"), []byte(doc), 0o644))

	active := NewRegistry(dir).Active()
	assert.Len(t, active, 2)
	assert.Equal(t, "Juan", active[0].Name)
	assert.Equal(t, "Pedro", active[1].Name)
}
