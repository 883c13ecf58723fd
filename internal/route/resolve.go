package route

import (
	"github.com/mdt-route/backend/internal/models"
)

// Resolve joins a route against the geometry database. Enemies and clones
// missing from the database are skipped, and pulls left without enemies
// are dropped.
func Resolve(r *models.Route, geo models.DungeonGeometry, meta models.DungeonMetaTable) (*models.ResolvedRoute, error) {
	if r == nil {
		return nil, models.NewDecodeError(models.KindMissingData, "no route to resolve")
	}
	dungeon, ok := geo[r.DungeonIndex]
	if !ok || dungeon == nil {
		return nil, models.NewDecodeError(models.KindUnknownDungeon, "dungeon %d is not in the geometry database", r.DungeonIndex)
	}
	dm := meta.Lookup(r.DungeonIndex)

	resolved := &models.ResolvedRoute{
		DungeonName:     dungeon.Name,
		DungeonIndex:    r.DungeonIndex,
		MapID:           dm.MapID,
		ScaleMultiplier: dm.ScaleMultiplier,
		Pulls:           make([]models.ResolvedPull, 0, len(r.Pulls)),
	}

	for _, p := range r.Pulls {
		rp := models.ResolvedPull{PullIndex: p.Index, Color: p.Color}
		for _, pe := range p.Enemies {
			enemy, ok := dungeon.Enemies[pe.EnemyIndex]
			if !ok || enemy == nil {
				continue
			}
			for _, cloneIdx := range pe.Clones {
				clone, ok := enemy.Clones[cloneIdx]
				if !ok || clone == nil {
					continue
				}
				vp, _ := dm.Viewport(clone.Sublevel)
				nx, ny := Normalize(clone.X, clone.Y, dm.ScaleMultiplier, vp)

				rp.Enemies = append(rp.Enemies, models.EnemyInstance{
					EnemyIndex:  pe.EnemyIndex,
					CloneIndex:  cloneIdx,
					NPCID:       enemy.ID,
					Name:        enemy.Name,
					X:           clone.X,
					Y:           clone.Y,
					Sublevel:    clone.Sublevel,
					Group:       clone.Group,
					Count:       enemy.Count,
					NormalizedX: nx,
					NormalizedY: ny,
				})
				rp.TotalCount += enemy.Count
			}
		}
		if len(rp.Enemies) == 0 {
			continue
		}
		resolved.TotalCount += rp.TotalCount
		resolved.Pulls = append(resolved.Pulls, rp)
	}

	return resolved, nil
}
