// fixtures.go - Shared geometry, metadata and route fixtures
package testutil

import "github.com/mdt-route/backend/internal/models"

// SampleDungeonIndex is the index of the only dungeon in SampleGeometry.
const SampleDungeonIndex = 1

// SampleGeometry returns a small geometry database:
// dungeon 1 "Test Halls" with a Grunt (npc 1001, count 2, three clones)
// and a Boss (npc 1002, count 10, one clone).
func SampleGeometry() models.DungeonGeometry {
	group := 4
	return models.DungeonGeometry{
		SampleDungeonIndex: {
			Name: "Test Halls",
			Enemies: map[int]*models.Enemy{
				1: {
					Name:  "Grunt",
					ID:    1001,
					Count: 2,
					Clones: map[int]*models.Clone{
						1: {X: 420, Y: -277.5, Sublevel: 1, Group: &group},
						2: {X: 840, Y: -555, Sublevel: 1},
						3: {X: 100, Y: -50, Sublevel: 2},
					},
				},
				2: {
					Name:  "Boss",
					ID:    1002,
					Count: 10,
					Clones: map[int]*models.Clone{
						1: {X: 1000, Y: -100, Sublevel: 1},
					},
				},
			},
		},
	}
}

// SampleMeta returns metadata for dungeon 1 with a 2x zoom on sublevel 2.
func SampleMeta() models.DungeonMetaTable {
	return models.DungeonMetaTable{
		SampleDungeonIndex: {
			Index:           SampleDungeonIndex,
			MapID:           2290,
			ScaleMultiplier: 1,
			Viewports: []models.ViewportOverride{
				{Sublevel: 2, ZoomScale: 2, HorizontalPan: 0, VerticalPan: 0},
			},
		},
	}
}

// SampleRouteTable returns an export table shaped like a planner export.
//
//	pull 1: Grunt clones 1 and 2 (red)
//	pull 2: Boss clone 1, Grunt clone 7 (missing clone)
//	pull 3: Grunt clone 3 on sublevel 2, enemy 99 (missing enemy)
//	pull 4: enemy 99 only, dropped on resolve
//
// Resolved total count is 2+2+10+2 = 16.
func SampleRouteTable() Table {
	return Table{
		{Key: "text", Value: "Test Route"},
		{Key: "week", Value: 3},
		{Key: "difficulty", Value: 15},
		{Key: "uid", Value: "aBcD1234"},
		{Key: "value", Value: Table{
			{Key: "currentDungeonIdx", Value: SampleDungeonIndex},
			{Key: "currentPull", Value: 1},
			{Key: "currentSublevel", Value: 1},
			{Key: "pulls", Value: Table{
				{Key: 1, Value: Table{
					{Key: "color", Value: "ff3030"},
					{Key: 1, Value: Table{{Key: 1, Value: 1}, {Key: 2, Value: 2}}},
				}},
				{Key: 2, Value: Table{
					{Key: 2, Value: Table{{Key: 1, Value: 1}}},
					{Key: 1, Value: Table{{Key: 1, Value: 7}}},
				}},
				{Key: 3, Value: Table{
					{Key: 1, Value: Table{{Key: 1, Value: 3}}},
					{Key: 99, Value: Table{{Key: 1, Value: 1}}},
				}},
				{Key: 4, Value: Table{
					{Key: 99, Value: Table{{Key: 1, Value: 2}}},
				}},
			}},
		}},
		{Key: "objects", Value: Table{
			{Key: 1, Value: Table{{Key: "d", Value: Table{{Key: 1, Value: 1.5}}}}},
		}},
	}
}

// SampleExport returns SampleRouteTable as a complete export string.
func SampleExport() string {
	return MustEncodeExport(SampleRouteTable())
}
