// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/mdt-route/backend/internal/decoder"
	"github.com/mdt-route/backend/internal/models"
	"github.com/mdt-route/backend/internal/parser"
)

// DecodeHandler handles export decoding
type DecodeHandler interface {
	HandleDecode(c echo.Context) error
	HandleDecodeRaw(c echo.Context) error
	HandleDecodeMsgpack(c echo.Context) error
	HandleDecodeBatch(c echo.Context) error
}

// RouteHandler handles the decoded route history
type RouteHandler interface {
	HandleListRoutes(c echo.Context) error
	HandleGetRoute(c echo.Context) error
	HandleDeleteRoute(c echo.Context) error
	HandleFindRoutesByNPC(c echo.Context) error
}

// DungeonHandler handles geometry database lookups
type DungeonHandler interface {
	HandleListDungeons(c echo.Context) error
	HandleGetDungeon(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// RouteDecoder is the decoding surface the handlers need.
// *decoder.Decoder implements it; tests may substitute their own.
type RouteDecoder interface {
	Decode(input string) (*models.DecodeResult, error)
	DecodeValue(input string) (parser.Value, error)
	DecodeBatch(ctx context.Context, inputs []string) []decoder.BatchItem
	Dungeons() []models.DungeonSummary
	Dungeon(index int) (*models.Dungeon, bool)
	Meta(index int) models.DungeonMeta
	CacheStats() decoder.CacheStats
}

var _ RouteDecoder = (*decoder.Decoder)(nil)
