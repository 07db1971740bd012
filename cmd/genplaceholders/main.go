package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/game"
	"github.com/krpors/titania/internal/placeholders"
)

func main() {
	configPath := flag.String("config", "data/config.json", "path to the settings file")
	dataDir := flag.String("data", "data", "data directory")
	flag.Parse()

	fmt.Println("Titania Placeholder Graphics Generator")
	fmt.Println("======================================")
	fmt.Println()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sh, err := game.LoadSheet(*dataDir, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files := placeholders.Files{
		Player:     cfg.Assets.PlayerImage,
		Tileset:    cfg.Assets.Tileset,
		Background: cfg.Assets.Background,
	}
	if err := placeholders.GenerateAndSave(*dataDir, files, sh, cfg.Assets.TilesetTileSize); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder graphics are ready to use.")
	fmt.Println("Run the game to see your placeholders in action!")
}
