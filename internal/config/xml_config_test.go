package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_CreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.xml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "<RouteDecoder>"))

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, filepath.Join(dir, "data", "geometry.json"), cfg.Storage.GeometryFile)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.GetDataDir())
	assert.Equal(t, "0.0.0.0:8090", cfg.GetServerAddr())
}

func TestLoadConfig_ReadsFileAndKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.xml")
	xmlDoc := `<?xml version="1.0" encoding="UTF-8"?>
<RouteDecoder>
  <Server>
    <Port>9999</Port>
  </Server>
  <Storage>
    <GeometryFile>/abs/geometry.json</GeometryFile>
  </Storage>
  <Processing>
    <CacheSize>12</CacheSize>
  </Processing>
</RouteDecoder>`
	require.NoError(t, os.WriteFile(path, []byte(xmlDoc), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "/abs/geometry.json", cfg.Storage.GeometryFile)
	assert.Equal(t, 12, cfg.Processing.CacheSize)
	assert.Equal(t, 50, cfg.Processing.MaxBatchSize, "unset values keep defaults")
	assert.Equal(t, filepath.Join(dir, "data", "routes.duckdb"), cfg.Storage.RouteDatabase)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORT", "7000")
	t.Setenv("GEOMETRY_FILE", "/env/geo.json")
	t.Setenv("DUNGEON_META_FILE", "meta.yaml")
	t.Setenv("ROUTE_DB_PATH", "/env/routes.duckdb")
	t.Setenv("DATA_DIR", "/env/data")

	cfg, err := LoadConfig(filepath.Join(dir, "config.xml"))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/env/geo.json", cfg.Storage.GeometryFile)
	assert.Equal(t, filepath.Join(dir, "meta.yaml"), cfg.Storage.DungeonMetaFile)
	assert.Equal(t, "/env/routes.duckdb", cfg.Storage.RouteDatabase)
	assert.Equal(t, "/env/data", cfg.Storage.DataDirectory)
}

func TestLoadConfig_InvalidXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, os.WriteFile(path, []byte("<RouteDecoder><Server>"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Storage.DataDirectory = filepath.Join(dir, "data")
	cfg.Storage.RouteDatabase = filepath.Join(dir, "db", "routes.duckdb")

	require.NoError(t, cfg.EnsureDirectories())

	for _, d := range []string{"data", "db"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
