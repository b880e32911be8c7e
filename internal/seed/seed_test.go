package seed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureLoadsFileWritesStarterBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "loads.json")

	err := EnsureLoadsFile(path)
	assert.NoError(t, err)

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)

	var doc boardDocument
	assert.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, StarterLoads(), doc.Loads)
	for _, load := range doc.Loads {
		assert.NotEmpty(t, load.LoadID)
		assert.NotEmpty(t, load.Origin)
		assert.NotEmpty(t, load.Destination)
		assert.Greater(t, load.LoadboardRate, 0.0)
	}
}

func TestEnsureLoadsFileKeepsExistingBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loads.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"loads":[]}`), 0o644))

	err := EnsureLoadsFile(path)
	assert.NoError(t, err)

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, `{"loads":[]}`, string(raw))
}

func TestEnsureLoadsFileRejectsEmptyPath(t *testing.T) {
	assert.Error(t, EnsureLoadsFile("   "))
}
