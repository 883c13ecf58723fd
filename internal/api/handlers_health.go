// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version string
	decoder RouteDecoder
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, dec RouteDecoder) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
		decoder: dec,
	}
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	resp := map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	}
	if h.decoder != nil {
		resp["dungeons"] = len(h.decoder.Dungeons())
		resp["cache"] = h.decoder.CacheStats()
	}
	return c.JSON(http.StatusOK, resp)
}
