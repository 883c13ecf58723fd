package models

// DungeonGeometry maps dungeon index to its enemy placement data.
// It is loaded once and shared read-only.
type DungeonGeometry map[int]*Dungeon

// Dungeon is one entry of the geometry database.
type Dungeon struct {
	Name    string         `json:"name" validate:"required"`
	Enemies map[int]*Enemy `json:"enemies" validate:"required"`
}

// Enemy is an enemy type placed one or more times in a dungeon.
type Enemy struct {
	Name   string         `json:"name" validate:"required"`
	ID     int            `json:"id" validate:"gte=0"`
	Count  int            `json:"count" validate:"gte=0"` // forces contributed per kill
	Clones map[int]*Clone `json:"clones"`
}

// Clone is a single placement of an enemy in planner coordinates.
type Clone struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Sublevel int     `json:"sublevel" validate:"gte=0"`
	Group    *int    `json:"g"`
}

// DungeonSummary is a compact listing entry for a dungeon.
type DungeonSummary struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	EnemyCount int    `json:"enemyCount"`
	CloneCount int    `json:"cloneCount"`
	MapID      int    `json:"mapId,omitempty"`
}

// Summary builds a DungeonSummary for the dungeon stored at index.
func (d *Dungeon) Summary(index int) DungeonSummary {
	s := DungeonSummary{Index: index, Name: d.Name, EnemyCount: len(d.Enemies)}
	for _, e := range d.Enemies {
		s.CloneCount += len(e.Clones)
	}
	return s
}
