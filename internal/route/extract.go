// Package route turns a deserialized planner export into a route and
// resolves it against the dungeon geometry database.
package route

import (
	"sort"

	"github.com/mdt-route/backend/internal/models"
	"github.com/mdt-route/backend/internal/parser"
)

// ColorKey is the pull entry holding the pull's display color.
const ColorKey = "color"

// IndexedValue is a table entry with a positive integral key.
type IndexedValue struct {
	Index int
	Value parser.Value
}

// ListEntries reads a table as a sparse list: entries with positive integral
// keys, in ascending key order. Gaps stay gaps; other keys are ignored.
func ListEntries(t *parser.Table) []IndexedValue {
	var out []IndexedValue
	for _, e := range t.Entries() {
		idx, ok := e.Key.AsInt()
		if !ok || idx < 1 {
			continue
		}
		out = append(out, IndexedValue{Index: idx, Value: e.Value})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Extract builds a Route from the root value of an export.
func Extract(root parser.Value) (*models.Route, error) {
	rootTable, ok := root.AsTable()
	if !ok {
		return nil, models.NewDecodeError(models.KindMissingData, "export root is a %s, not a table", root.Kind())
	}
	inner := subTable(rootTable, "value")

	dungeonIdx, ok := firstInt(
		lookup(rootTable, "dungeonIdx"),
		lookup(inner, "currentDungeonIdx"),
		lookup(inner, "dungeonIdx"),
		lookup(rootTable, "currentDungeonIdx"),
	)
	if !ok {
		return nil, models.NewDecodeError(models.KindMissingData, "export has no dungeon index")
	}

	pullsTable := subTable(rootTable, "pulls")
	if pullsTable == nil {
		pullsTable = subTable(inner, "pulls")
	}
	if pullsTable == nil {
		return nil, models.NewDecodeError(models.KindMissingData, "export has no pulls table")
	}

	r := &models.Route{
		DungeonIndex: dungeonIdx,
		Pulls:        make([]models.Pull, 0, pullsTable.Len()),
	}
	for _, entry := range ListEntries(pullsTable) {
		pullTable, ok := entry.Value.AsTable()
		if !ok {
			continue
		}
		r.Pulls = append(r.Pulls, extractPull(entry.Index, pullTable))
	}

	r.Week, _ = firstInt(lookup(rootTable, "week"), lookup(inner, "week"))
	r.Difficulty, _ = firstInt(lookup(rootTable, "difficulty"), lookup(inner, "difficulty"))
	r.Title = firstString(lookup(rootTable, "text"), lookup(inner, "text"))
	r.UID = firstString(lookup(rootTable, "uid"), lookup(inner, "uid"))
	if objects := subTable(rootTable, "objects"); objects != nil {
		r.ObjectCount = objects.Len()
	} else if objects := subTable(inner, "objects"); objects != nil {
		r.ObjectCount = objects.Len()
	}

	return r, nil
}

func extractPull(index int, t *parser.Table) models.Pull {
	p := models.Pull{Index: index}
	if c, ok := lookup(t, ColorKey).AsString(); ok {
		p.Color = c
	}

	for _, entry := range ListEntries(t) {
		clonesTable, ok := entry.Value.AsTable()
		if !ok {
			continue
		}
		pe := models.PullEnemy{EnemyIndex: entry.Index}
		for _, c := range ListEntries(clonesTable) {
			if cloneIdx, ok := c.Value.AsInt(); ok && cloneIdx > 0 {
				pe.Clones = append(pe.Clones, cloneIdx)
			}
		}
		p.Enemies = append(p.Enemies, pe)
	}
	return p
}

// lookup returns the value under a string key, or null.
func lookup(t *parser.Table, name string) parser.Value {
	if t == nil {
		return parser.Null()
	}
	v, _ := t.Field(name)
	return v
}

func subTable(t *parser.Table, name string) *parser.Table {
	sub, ok := lookup(t, name).AsTable()
	if !ok {
		return nil
	}
	return sub
}

func firstInt(candidates ...parser.Value) (int, bool) {
	for _, v := range candidates {
		if n, ok := v.AsInt(); ok {
			return n, true
		}
	}
	return 0, false
}

func firstString(candidates ...parser.Value) string {
	for _, v := range candidates {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return ""
}
