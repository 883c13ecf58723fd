package decoder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDatabases(t *testing.T) {
	dir := t.TempDir()
	geoPath := filepath.Join(dir, "geometry.json")
	metaPath := filepath.Join(dir, "meta.yaml")

	require.NoError(t, os.WriteFile(geoPath, []byte(`{"5": {"name": "Vault", "enemies": {}}}`), 0644))
	require.NoError(t, os.WriteFile(metaPath, []byte("dungeons:\n  - index: 5\n    map_id: 10\n"), 0644))

	geo, meta, err := LoadDatabases(geoPath, metaPath)
	require.NoError(t, err)
	assert.Equal(t, "Vault", geo[5].Name)
	assert.Equal(t, 10, meta[5].MapID)
}

func TestLoadDatabases_MissingFiles(t *testing.T) {
	dir := t.TempDir()

	geo, meta, err := LoadDatabases(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.Empty(t, geo)
	assert.Empty(t, meta)
}

func TestLoadDatabases_InvalidFile(t *testing.T) {
	geoPath := filepath.Join(t.TempDir(), "geometry.json")
	require.NoError(t, os.WriteFile(geoPath, []byte("not json"), 0644))

	_, _, err := LoadDatabases(geoPath, "")
	assert.Error(t, err)
}
