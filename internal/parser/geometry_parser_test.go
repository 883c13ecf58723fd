package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGeometryJSON = `{
  "1": {
    "name": "Test Halls",
    "enemies": {
      "1": {
        "name": "Grunt",
        "id": 1001,
        "count": 2,
        "clones": {
          "1": {"x": 420, "y": -277.5, "sublevel": 1, "g": 4},
          "2": {"x": 840, "y": -555}
        }
      },
      "2": {
        "name": "Boss",
        "id": 1002,
        "count": 10,
        "clones": {"1": {"x": 1000, "y": -100, "sublevel": 2, "g": null}}
      }
    }
  }
}`

func TestParseGeometryFromReader(t *testing.T) {
	geo, err := ParseGeometryFromReader(strings.NewReader(sampleGeometryJSON))
	require.NoError(t, err)
	require.Len(t, geo, 1)

	d := geo[1]
	require.NotNil(t, d)
	assert.Equal(t, "Test Halls", d.Name)
	require.Len(t, d.Enemies, 2)

	grunt := d.Enemies[1]
	assert.Equal(t, 1001, grunt.ID)
	assert.Equal(t, 2, grunt.Count)
	require.NotNil(t, grunt.Clones[1].Group)
	assert.Equal(t, 4, *grunt.Clones[1].Group)
	assert.Equal(t, -277.5, grunt.Clones[1].Y)
	assert.Equal(t, 1, grunt.Clones[2].Sublevel, "missing sublevel defaults to 1")
	assert.Nil(t, grunt.Clones[2].Group)

	boss := d.Enemies[2]
	assert.Equal(t, 2, boss.Clones[1].Sublevel)
	assert.Nil(t, boss.Clones[1].Group)

	summary := d.Summary(1)
	assert.Equal(t, 2, summary.EnemyCount)
	assert.Equal(t, 3, summary.CloneCount)
}

func TestParseGeometryFromReader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"1": `},
		{"non-numeric dungeon key", `{"abc": {"name": "x", "enemies": {}}}`},
		{"missing dungeon name", `{"1": {"enemies": {}}}`},
		{"missing enemy name", `{"1": {"name": "x", "enemies": {"1": {"id": 5, "count": 1}}}}`},
		{"negative count", `{"1": {"name": "x", "enemies": {"1": {"name": "e", "count": -1}}}}`},
		{"null dungeon", `{"1": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGeometryFromReader(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseGeometryFromReader_DropsNullEntries(t *testing.T) {
	geo, err := ParseGeometryFromReader(strings.NewReader(
		`{"3": {"name": "x", "enemies": {"1": null, "2": {"name": "e", "id": 1, "count": 1, "clones": {"1": null}}}}}`))
	require.NoError(t, err)

	d := geo[3]
	assert.Len(t, d.Enemies, 1)
	assert.Empty(t, d.Enemies[2].Clones)
}

func TestParseGeometry_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleGeometryJSON), 0644))

	geo, err := ParseGeometry(path)
	require.NoError(t, err)
	assert.Contains(t, geo, 1)

	_, err = ParseGeometry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// Test with the shipped example files if they exist
func TestParseGeometry_ExampleData(t *testing.T) {
	geoPath := "../../data/geometry.example.json"
	metaPath := "../../data/dungeon_meta.example.yaml"
	if _, err := os.Stat(geoPath); os.IsNotExist(err) {
		t.Skip("geometry.example.json not found, skipping")
	}

	geo, err := ParseGeometry(geoPath)
	require.NoError(t, err)
	require.Contains(t, geo, 1)
	assert.Equal(t, "Test Halls", geo[1].Name)
	assert.Equal(t, 1, geo[1].Enemies[2].Clones[1].Sublevel)
	require.NotNil(t, geo[1].Enemies[1].Clones[1].Group)
	assert.Equal(t, 4, *geo[1].Enemies[1].Clones[1].Group)

	meta, err := ParseDungeonMeta(metaPath)
	require.NoError(t, err)
	vp, ok := meta.Lookup(1).Viewport(2)
	require.True(t, ok)
	assert.Equal(t, 2.0, vp.ZoomScale)
}
