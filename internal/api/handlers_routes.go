// handlers_routes.go - Decoded route history handlers
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mdt-route/backend/internal/storage"
)

const defaultListLimit = 50

// RouteHandlerImpl implements the RouteHandler interface
type RouteHandlerImpl struct {
	store storage.RouteStore
}

// NewRouteHandler creates a new route history handler
func NewRouteHandler(store storage.RouteStore) RouteHandler {
	return &RouteHandlerImpl{store: store}
}

func parseLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, NewValidationError("limit")
	}
	return limit, nil
}

// HandleListRoutes returns the most recently stored routes
func (h *RouteHandlerImpl) HandleListRoutes(c echo.Context) error {
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}

	routes, err := h.store.List(c.Request().Context(), limit)
	if err != nil {
		return NewInternalError("failed to list routes", err)
	}

	return c.JSON(http.StatusOK, routes)
}

// HandleGetRoute returns a stored route with its decode result
func (h *RouteHandlerImpl) HandleGetRoute(c echo.Context) error {
	id := c.Param("id")

	route, err := h.store.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return NewNotFoundError("route", id)
	}
	if err != nil {
		return NewInternalError("failed to load route", err)
	}

	return c.JSON(http.StatusOK, route)
}

// HandleDeleteRoute removes a stored route
func (h *RouteHandlerImpl) HandleDeleteRoute(c echo.Context) error {
	id := c.Param("id")

	err := h.store.Delete(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return NewNotFoundError("route", id)
	}
	if err != nil {
		return NewInternalError("failed to delete route", err)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleFindRoutesByNPC returns stored routes that pull a given NPC
func (h *RouteHandlerImpl) HandleFindRoutesByNPC(c echo.Context) error {
	npcID, err := strconv.Atoi(c.Param("npcId"))
	if err != nil {
		return NewValidationError("npcId")
	}
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}

	routes, err := h.store.FindByNPC(c.Request().Context(), npcID, limit)
	if err != nil {
		return NewInternalError("failed to query routes", err)
	}

	return c.JSON(http.StatusOK, routes)
}
