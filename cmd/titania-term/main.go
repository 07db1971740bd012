package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/game"
	"github.com/krpors/titania/internal/term"
)

func main() {
	configPath := flag.String("config", "data/config.json", "path to the settings file")
	dataDir := flag.String("data", "data", "data directory")
	level := flag.String("level", "", "level to play, by name (default: the configured level)")
	seed := flag.Int64("seed", 0, "random seed for the particle trail (0 for time-based)")
	logPath := flag.String("log", "titania-term.log", "log file; the terminal is busy drawing")
	flag.Parse()

	if err := run(*configPath, *dataDir, *level, *logPath, *seed); err != nil {
		log.Fatal(err)
	}
}

// run plays one level in the terminal. Logging goes to logPath until run
// returns, so a returned error is reported on stderr after the screen is
// restored.
func run(configPath, dataDir, level, logPath string, seed int64) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

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

	cues := game.OpenCues(cfg.Audio)
	defer cues.Close()

	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	now := game.MonotonicNow()
	session, err := game.NewSession(cfg, gameMap, sh, cues, game.NewClock(now, cfg.Timing.MaxDeltaDuration()), rand.New(rand.NewSource(s)))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := term.New(screen, session, cfg.Terminal, now).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Terminal frontend stopped: %v", err)
	}
	return nil
}
