package models

// DungeonMetaFile is the YAML document holding per-dungeon display metadata.
type DungeonMetaFile struct {
	Dungeons []DungeonMeta `json:"dungeons" yaml:"dungeons" validate:"dive"`
}

// DungeonMeta carries the map ID and viewport calibration of one dungeon.
type DungeonMeta struct {
	Index           int                `json:"index" yaml:"index" validate:"gt=0"`
	MapID           int                `json:"mapId" yaml:"map_id" validate:"gte=0"`
	ScaleMultiplier float64            `json:"scaleMultiplier" yaml:"scale_multiplier" validate:"gte=0"`
	Viewports       []ViewportOverride `json:"viewports,omitempty" yaml:"viewports" validate:"dive"`
}

// ViewportOverride is a per-sublevel pan/zoom correction applied before normalization.
type ViewportOverride struct {
	Sublevel      int     `json:"sublevel" yaml:"sublevel" validate:"gt=0"`
	ZoomScale     float64 `json:"zoomScale" yaml:"zoom_scale" validate:"gt=0"`
	HorizontalPan float64 `json:"horizontalPan" yaml:"horizontal_pan"`
	VerticalPan   float64 `json:"verticalPan" yaml:"vertical_pan"`
}

// DungeonMetaTable indexes DungeonMeta by dungeon index.
type DungeonMetaTable map[int]DungeonMeta

// DefaultScaleMultiplier applies when a dungeon has no metadata or a non-positive scale.
const DefaultScaleMultiplier = 1.0

// Lookup returns the metadata for a dungeon, falling back to defaults.
func (t DungeonMetaTable) Lookup(index int) DungeonMeta {
	m, ok := t[index]
	if !ok {
		return DungeonMeta{Index: index, ScaleMultiplier: DefaultScaleMultiplier}
	}
	if m.ScaleMultiplier <= 0 {
		m.ScaleMultiplier = DefaultScaleMultiplier
	}
	return m
}

// Viewport returns the override for a sublevel, if any.
func (m DungeonMeta) Viewport(sublevel int) (*ViewportOverride, bool) {
	for i := range m.Viewports {
		if m.Viewports[i].Sublevel == sublevel {
			return &m.Viewports[i], true
		}
	}
	return nil, false
}
