// Package models contains domain types for the route decoder.
package models

// Route is the logical view of a decoded planner export.
type Route struct {
	DungeonIndex int    `json:"dungeonIndex"`
	Pulls        []Pull `json:"pulls"`
	Week         int    `json:"week,omitempty"`
	Title        string `json:"title,omitempty"` // "text" field, usually the author or route name
	UID          string `json:"uid,omitempty"`
	Difficulty   int    `json:"difficulty,omitempty"`
	ObjectCount  int    `json:"objectCount"` // drawings attached to the route
}

// Pull groups the enemies pulled together. Index is the 1-based key of the
// pull in the export; gaps in the source table are kept as gaps.
type Pull struct {
	Index   int         `json:"index"`
	Color   string      `json:"color,omitempty"`
	Enemies []PullEnemy `json:"enemies"`
}

// PullEnemy lists the clone indices selected for one enemy type.
type PullEnemy struct {
	EnemyIndex int   `json:"enemyIndex"`
	Clones     []int `json:"clones"`
}

// CloneCount returns the number of clone references in the pull.
func (p Pull) CloneCount() int {
	n := 0
	for _, e := range p.Enemies {
		n += len(e.Clones)
	}
	return n
}
