package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdt-route/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetaYAML = `
dungeons:
  - index: 1
    map_id: 2290
    scale_multiplier: 1.2
    viewports:
      - sublevel: 2
        zoom_scale: 1.5
        horizontal_pan: 100
        vertical_pan: 40
  - index: 7
    map_id: 1754
`

func TestParseDungeonMetaFromReader(t *testing.T) {
	meta, err := ParseDungeonMetaFromReader(strings.NewReader(sampleMetaYAML))
	require.NoError(t, err)
	require.Len(t, meta, 2)

	m := meta[1]
	assert.Equal(t, 2290, m.MapID)
	assert.Equal(t, 1.2, m.ScaleMultiplier)

	vp, ok := m.Viewport(2)
	require.True(t, ok)
	assert.Equal(t, 1.5, vp.ZoomScale)
	assert.Equal(t, 100.0, vp.HorizontalPan)
	assert.Equal(t, 40.0, vp.VerticalPan)

	_, ok = m.Viewport(1)
	assert.False(t, ok)

	assert.Equal(t, models.DefaultScaleMultiplier, meta[7].ScaleMultiplier, "missing scale defaults")
}

func TestDungeonMetaTable_Lookup(t *testing.T) {
	meta := models.DungeonMetaTable{
		5: {Index: 5, ScaleMultiplier: -2},
	}

	assert.Equal(t, models.DefaultScaleMultiplier, meta.Lookup(5).ScaleMultiplier)

	missing := meta.Lookup(9)
	assert.Equal(t, 9, missing.Index)
	assert.Equal(t, models.DefaultScaleMultiplier, missing.ScaleMultiplier)
	assert.Empty(t, missing.Viewports)
}

func TestParseDungeonMetaFromReader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed yaml", "dungeons: [index: 1"},
		{"zero index", "dungeons:\n  - index: 0\n"},
		{"zero zoom", "dungeons:\n  - index: 1\n    viewports:\n      - sublevel: 1\n        zoom_scale: 0\n"},
		{"zero sublevel", "dungeons:\n  - index: 1\n    viewports:\n      - sublevel: 0\n        zoom_scale: 1\n"},
		{"duplicate index", "dungeons:\n  - index: 1\n  - index: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDungeonMetaFromReader(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseDungeonMeta_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeon_meta.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleMetaYAML), 0644))

	meta, err := ParseDungeonMeta(path)
	require.NoError(t, err)
	assert.Len(t, meta, 2)
}
