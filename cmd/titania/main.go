package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/game"
	ebitenrender "github.com/krpors/titania/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "data/config.json", "path to the settings file")
	dataDir := flag.String("data", "data", "data directory")
	level := flag.String("level", "", "level to play, by name (default: the configured level)")
	list := flag.Bool("list", false, "list the available levels and exit")
	seed := flag.Int64("seed", 0, "random seed for the particle trail (0 for time-based)")
	flag.Parse()

	if *list {
		if err := listLevels(*dataDir); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := run(*configPath, *dataDir, *level, *seed); err != nil {
		log.Fatal(err)
	}
}

func listLevels(dataDir string) error {
	levels, err := game.ListLevels(dataDir)
	if err != nil {
		return fmt.Errorf("failed to scan levels: %w", err)
	}
	for _, l := range levels {
		fmt.Printf("%-16s %s\n", l.Name, l.Path)
	}
	return nil
}

// run plays one level until the window closes.
func run(configPath, dataDir, level string, seed int64) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gameMap, err := game.LoadLevel(dataDir, cfg, level)
	if err != nil {
		return err
	}

	sh, err := game.LoadSheet(dataDir, cfg)
	if err != nil {
		return err
	}

	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	cues := game.OpenCues(cfg.Audio)
	defer cues.Close()

	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	clock := game.NewClock(game.MonotonicNow(), cfg.Timing.MaxDeltaDuration())
	session, err := game.NewSession(cfg, gameMap, sh, cues, clock, rand.New(rand.NewSource(s)))
	if err != nil {
		return err
	}

	assets := game.LoadAssets(renderer, loader, dataDir, cfg, gameMap, sh)
	defer assets.Dispose()
	manager := game.NewManager(session, assets, renderer, inputMgr, engine, cfg.Window.Width, cfg.Window.Height)

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, gameMap.Name))
	engine.SetWindowResizable(true)
	engine.SetFullscreen(cfg.Window.Fullscreen)

	log.Println("Starting game...")
	return engine.RunGame(manager)
}
