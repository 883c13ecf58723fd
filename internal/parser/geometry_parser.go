package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mdt-route/backend/internal/models"
)

var validate = validator.New()

// ParseGeometry loads the dungeon geometry database from a JSON file.
func ParseGeometry(filePath string) (models.DungeonGeometry, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseGeometryFromReader(file)
}

// ParseGeometryFromReader parses the geometry database from an io.Reader.
// The document is keyed by stringified dungeon index, as produced by the
// offline extraction tool. Clones without a sublevel are placed on sublevel 1.
func ParseGeometryFromReader(r io.Reader) (models.DungeonGeometry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var geo models.DungeonGeometry
	if err := json.Unmarshal(data, &geo); err != nil {
		return nil, fmt.Errorf("parsing geometry: %w", err)
	}
	if geo == nil {
		geo = make(models.DungeonGeometry)
	}

	for idx, d := range geo {
		if d == nil {
			return nil, fmt.Errorf("dungeon %d: empty entry", idx)
		}
		if err := validate.Struct(d); err != nil {
			return nil, fmt.Errorf("dungeon %d: %w", idx, err)
		}
		for enemyIdx, e := range d.Enemies {
			if e == nil {
				delete(d.Enemies, enemyIdx)
				continue
			}
			if err := validate.Struct(e); err != nil {
				return nil, fmt.Errorf("dungeon %d enemy %d: %w", idx, enemyIdx, err)
			}
			for cloneIdx, c := range e.Clones {
				if c == nil {
					delete(e.Clones, cloneIdx)
					continue
				}
				if c.Sublevel == 0 {
					c.Sublevel = 1
				}
			}
		}
	}

	return geo, nil
}
