package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/mdt-route/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// ParseDungeonMeta parses a YAML file of per-dungeon map IDs and viewport overrides.
func ParseDungeonMeta(filePath string) (models.DungeonMetaTable, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseDungeonMetaFromReader(file)
}

// ParseDungeonMetaFromReader parses dungeon metadata from an io.Reader.
func ParseDungeonMetaFromReader(r io.Reader) (models.DungeonMetaTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc models.DungeonMetaFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid dungeon metadata: %w", err)
	}

	table := make(models.DungeonMetaTable, len(doc.Dungeons))
	for _, m := range doc.Dungeons {
		if _, dup := table[m.Index]; dup {
			return nil, fmt.Errorf("duplicate metadata for dungeon %d", m.Index)
		}
		if m.ScaleMultiplier == 0 {
			m.ScaleMultiplier = models.DefaultScaleMultiplier
		}
		table[m.Index] = m
	}

	return table, nil
}
