// handlers_dungeons.go - Geometry database handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mdt-route/backend/internal/models"
)

// DungeonHandlerImpl implements the DungeonHandler interface
type DungeonHandlerImpl struct {
	decoder RouteDecoder
}

// NewDungeonHandler creates a new dungeon handler
func NewDungeonHandler(dec RouteDecoder) DungeonHandler {
	return &DungeonHandlerImpl{decoder: dec}
}

// HandleListDungeons lists the dungeons of the geometry database
func (h *DungeonHandlerImpl) HandleListDungeons(c echo.Context) error {
	return c.JSON(http.StatusOK, h.decoder.Dungeons())
}

type dungeonResponse struct {
	models.DungeonSummary
	Meta    models.DungeonMeta    `json:"meta"`
	Enemies map[int]*models.Enemy `json:"enemies"`
}

// HandleGetDungeon returns one dungeon with its enemies and display metadata
func (h *DungeonHandlerImpl) HandleGetDungeon(c echo.Context) error {
	raw := c.Param("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return NewValidationError("index")
	}

	dungeon, ok := h.decoder.Dungeon(index)
	if !ok {
		return NewNotFoundError("dungeon", raw)
	}

	meta := h.decoder.Meta(index)
	summary := dungeon.Summary(index)
	summary.MapID = meta.MapID

	return c.JSON(http.StatusOK, dungeonResponse{
		DungeonSummary: summary,
		Meta:           meta,
		Enemies:        dungeon.Enemies,
	})
}
