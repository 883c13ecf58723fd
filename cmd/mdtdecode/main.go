// Package main provides a command line tool for decoding route export strings.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdtdecode",
	Short: "Route export string decoder",
	Long:  "mdtdecode decodes print-safe route export strings into routes with enemy positions normalized onto the map canvas.",
}

var (
	geometryFile string
	metaFile     string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&geometryFile, "geometry", "", "Path to the dungeon geometry JSON (overrides GEOMETRY_FILE env var)")
	rootCmd.PersistentFlags().StringVar(&metaFile, "meta", "", "Path to the dungeon metadata YAML (overrides DUNGEON_META_FILE env var)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dataPaths resolves the geometry and metadata files from flags, then environment.
func dataPaths() (string, string) {
	geo, meta := geometryFile, metaFile
	if geo == "" {
		geo = os.Getenv("GEOMETRY_FILE")
	}
	if meta == "" {
		meta = os.Getenv("DUNGEON_META_FILE")
	}
	return geo, meta
}
