// Package decoder runs the full export decode pipeline: print-safe decode,
// inflate, value parse, route extraction and coordinate resolution.
package decoder

import (
	"sort"
	"strings"

	"github.com/mdt-route/backend/internal/models"
	"github.com/mdt-route/backend/internal/parser"
	"github.com/mdt-route/backend/internal/route"
)

// ExportPrefix marks a planner export string. It is optional on input.
const ExportPrefix = "!"

// Options configures a Decoder.
type Options struct {
	CacheSize        int   // decoded results kept in memory; 0 disables the cache
	MaxInflatedBytes int64 // decompressed payload cap; 0 uses parser.DefaultMaxInflatedBytes
	MaxConcurrent    int   // batch fan-out; 0 uses DefaultMaxConcurrent
}

// DefaultMaxConcurrent bounds batch decoding when Options.MaxConcurrent is unset.
const DefaultMaxConcurrent = 4

// Decoder decodes export strings against a fixed geometry database.
// It is safe for concurrent use. Returned results may be shared through the
// cache and must be treated as read-only.
type Decoder struct {
	geo   models.DungeonGeometry
	meta  models.DungeonMetaTable
	opts  Options
	cache *resultCache
}

// New creates a Decoder. geo and meta must not be modified afterwards.
func New(geo models.DungeonGeometry, meta models.DungeonMetaTable, opts Options) (*Decoder, error) {
	if geo == nil {
		geo = make(models.DungeonGeometry)
	}
	if meta == nil {
		meta = make(models.DungeonMetaTable)
	}
	if opts.MaxInflatedBytes <= 0 {
		opts.MaxInflatedBytes = parser.DefaultMaxInflatedBytes
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}

	cache, err := newResultCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Decoder{geo: geo, meta: meta, opts: opts, cache: cache}, nil
}

// normalizeInput trims surrounding whitespace and the export prefix.
func normalizeInput(input string) string {
	s := strings.TrimSpace(input)
	return strings.TrimPrefix(s, ExportPrefix)
}

// Text returns the inflated value-format document of an export string.
func (d *Decoder) Text(input string) (string, error) {
	return d.inflate(normalizeInput(input))
}

// DecodeValue decodes an export string up to the value tree.
func (d *Decoder) DecodeValue(input string) (parser.Value, error) {
	return d.parse(normalizeInput(input))
}

func (d *Decoder) inflate(symbols string) (string, error) {
	raw, err := parser.DecodeForPrint(symbols)
	if err != nil {
		return "", err
	}
	return parser.Inflate(raw, d.opts.MaxInflatedBytes)
}

func (d *Decoder) parse(symbols string) (parser.Value, error) {
	text, err := d.inflate(symbols)
	if err != nil {
		return parser.Value{}, err
	}
	return parser.ParseValue(text)
}

// Decode runs the full pipeline. The first failing stage aborts it and its
// *models.DecodeError is returned unchanged.
func (d *Decoder) Decode(input string) (*models.DecodeResult, error) {
	key := normalizeInput(input)
	if cached, ok := d.cache.get(key); ok {
		return cached, nil
	}

	root, err := d.parse(key)
	if err != nil {
		return nil, err
	}
	r, err := route.Extract(root)
	if err != nil {
		return nil, err
	}
	resolved, err := route.Resolve(r, d.geo, d.meta)
	if err != nil {
		return nil, err
	}

	result := &models.DecodeResult{Route: r, Resolved: resolved}
	d.cache.add(key, result)
	return result, nil
}

// Dungeons lists the dungeons of the geometry database by index.
func (d *Decoder) Dungeons() []models.DungeonSummary {
	list := make([]models.DungeonSummary, 0, len(d.geo))
	for idx, dungeon := range d.geo {
		if dungeon == nil {
			continue
		}
		s := dungeon.Summary(idx)
		s.MapID = d.meta.Lookup(idx).MapID
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Index < list[j].Index })
	return list
}

// Dungeon returns one dungeon of the geometry database.
func (d *Decoder) Dungeon(index int) (*models.Dungeon, bool) {
	dungeon, ok := d.geo[index]
	return dungeon, ok && dungeon != nil
}

// Meta returns the display metadata of a dungeon, with defaults applied.
func (d *Decoder) Meta(index int) models.DungeonMeta {
	return d.meta.Lookup(index)
}

// CacheStats reports result cache usage.
func (d *Decoder) CacheStats() CacheStats {
	return d.cache.stats()
}
