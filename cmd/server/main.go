package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mdt-route/backend/internal/api"
	"github.com/mdt-route/backend/internal/config"
	"github.com/mdt-route/backend/internal/decoder"
	"github.com/mdt-route/backend/internal/storage"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := os.Getenv("ROUTE_DECODER_CONFIG")
	if configPath == "" {
		configPath = filepath.Join(exeDir, "RouteDecoder.config.xml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Load geometry and dungeon metadata
	geo, meta, err := decoder.LoadDatabases(cfg.Storage.GeometryFile, cfg.Storage.DungeonMetaFile)
	if err != nil {
		fmt.Printf("Failed to load dungeon data: %v\n", err)
		os.Exit(1)
	}

	dec, err := decoder.New(geo, meta, decoder.Options{
		CacheSize:        cfg.Processing.CacheSize,
		MaxInflatedBytes: cfg.Processing.MaxInflatedBytes,
		MaxConcurrent:    cfg.Processing.MaxConcurrentDecodes,
	})
	if err != nil {
		fmt.Printf("Failed to initialize decoder: %v\n", err)
		os.Exit(1)
	}

	// Initialize route history storage
	var store storage.RouteStore
	storeMode := "memory"
	if cfg.Storage.EnablePersistence {
		duck, err := storage.NewDuckStore(cfg.Storage.RouteDatabase, storage.DuckStoreOptions{
			Threads:     cfg.Advanced.DuckDBThreads,
			MemoryLimit: cfg.Advanced.DuckDBMemoryLimit,
		})
		if err != nil {
			fmt.Printf("Warning: failed to open route database, using memory store: %v\n", err)
			store = storage.NewMemoryStore()
		} else {
			store = duck
			storeMode = "duckdb"
		}
	} else {
		store = storage.NewMemoryStore()
	}
	defer store.Close()

	e := echo.New()
	api.SetupMiddleware(e, cfg)
	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Decoder:      dec,
		Store:        store,
		MaxBatchSize: cfg.Processing.MaxBatchSize,
		Version:      Version,
	}))

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Route Decoder Server                            ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Dungeons:   %-45d║\n", len(geo))
	fmt.Printf("║  Storage:    %-45s║\n", storeMode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}
