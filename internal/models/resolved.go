package models

// ResolvedRoute is a route joined against the geometry database.
type ResolvedRoute struct {
	DungeonName     string         `json:"dungeonName"`
	DungeonIndex    int            `json:"dungeonIndex"`
	MapID           int            `json:"mapId"`
	ScaleMultiplier float64        `json:"scaleMultiplier"`
	Pulls           []ResolvedPull `json:"pulls"`
	TotalCount      int            `json:"totalCount"`
}

// ResolvedPull holds the enemies of one pull that exist in the geometry database.
type ResolvedPull struct {
	PullIndex  int             `json:"pullIndex"`
	Color      string          `json:"color,omitempty"`
	Enemies    []EnemyInstance `json:"enemies"`
	TotalCount int             `json:"totalCount"`
}

// EnemyInstance is a single placed enemy with planner and normalized coordinates.
type EnemyInstance struct {
	EnemyIndex  int     `json:"enemyIndex"`
	CloneIndex  int     `json:"cloneIndex"`
	NPCID       int     `json:"npcId"`
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Sublevel    int     `json:"sublevel"`
	Group       *int    `json:"group,omitempty"`
	Count       int     `json:"count"`
	NormalizedX float64 `json:"normalizedX"`
	NormalizedY float64 `json:"normalizedY"`
}

// DecodeResult is the output of the full decode pipeline.
type DecodeResult struct {
	Route    *Route         `json:"route"`
	Resolved *ResolvedRoute `json:"resolved"`
}

// EnemyCount returns the number of placed enemies across all pulls.
func (r *ResolvedRoute) EnemyCount() int {
	n := 0
	for _, p := range r.Pulls {
		n += len(p.Enemies)
	}
	return n
}
