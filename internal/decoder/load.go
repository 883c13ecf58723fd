package decoder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mdt-route/backend/internal/models"
	"github.com/mdt-route/backend/internal/parser"
)

// LoadDatabases reads the geometry database and the dungeon metadata.
// A missing file yields an empty table; any other failure is returned.
func LoadDatabases(geometryPath, metaPath string) (models.DungeonGeometry, models.DungeonMetaTable, error) {
	geo := make(models.DungeonGeometry)
	if geometryPath != "" {
		loaded, err := parser.ParseGeometry(geometryPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(os.Stderr, "[Decoder] Warning: geometry file not found: %s\n", geometryPath)
		case err != nil:
			return nil, nil, fmt.Errorf("loading geometry: %w", err)
		default:
			geo = loaded
			fmt.Fprintf(os.Stderr, "[Decoder] Loaded geometry for %d dungeons from %s\n", len(geo), geometryPath)
		}
	}

	meta := make(models.DungeonMetaTable)
	if metaPath != "" {
		loaded, err := parser.ParseDungeonMeta(metaPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(os.Stderr, "[Decoder] No dungeon metadata at %s, using defaults\n", metaPath)
		case err != nil:
			return nil, nil, fmt.Errorf("loading dungeon metadata: %w", err)
		default:
			meta = loaded
			fmt.Fprintf(os.Stderr, "[Decoder] Loaded metadata for %d dungeons\n", len(meta))
		}
	}

	return geo, meta, nil
}
