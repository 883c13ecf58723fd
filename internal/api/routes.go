// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdt-route/backend/internal/config"
	"github.com/mdt-route/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Decoder      RouteDecoder
	Store        storage.RouteStore
	MaxBatchSize int
	Version      string
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Decode   DecodeHandler
	Routes   RouteHandler
	Dungeons DungeonHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Version, deps.Decoder),
		Decode:   NewDecodeHandler(deps.Decoder, deps.Store, deps.MaxBatchSize),
		Routes:   NewRouteHandler(deps.Store),
		Dungeons: NewDungeonHandler(deps.Decoder),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Decoding
	apiGroup.POST("/decode", handlers.Decode.HandleDecode)
	apiGroup.POST("/decode/raw", handlers.Decode.HandleDecodeRaw)
	apiGroup.POST("/decode/msgpack", handlers.Decode.HandleDecodeMsgpack)
	apiGroup.POST("/decode/batch", handlers.Decode.HandleDecodeBatch)

	// Route history
	apiGroup.GET("/routes", handlers.Routes.HandleListRoutes)
	apiGroup.GET("/routes/npc/:npcId", handlers.Routes.HandleFindRoutesByNPC)
	apiGroup.GET("/routes/:id", handlers.Routes.HandleGetRoute)
	apiGroup.DELETE("/routes/:id", handlers.Routes.HandleDeleteRoute)

	// Geometry database
	apiGroup.GET("/dungeons", handlers.Dungeons.HandleListDungeons)
	apiGroup.GET("/dungeons/:index", handlers.Dungeons.HandleGetDungeon)
}

// SetupMiddleware configures common middleware from the server configuration
func SetupMiddleware(e *echo.Echo, cfg *config.AppConfig) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
	SetExposeErrorDetails(cfg.Advanced.LogLevel == "debug")

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging if disabled in config
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			return c.Request().URL.Path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
	}))

	if cfg.Server.RequestTimeout > 0 {
		e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout:      time.Duration(cfg.Server.RequestTimeout) * time.Second,
			ErrorMessage: "Request timeout - decode took too long",
		}))
	}

	// Compression middleware
	if cfg.Processing.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: cfg.Processing.CompressionLevel,
		}))
	}

	// Body limit middleware
	if cfg.Server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	// CORS configuration
	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}
