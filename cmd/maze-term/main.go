package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Maze-Escape/internal/config"
	"github.com/Garsondee/Maze-Escape/internal/logging"
	"github.com/Garsondee/Maze-Escape/internal/termui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfgPath string
	var seed int64
	flag.StringVar(&cfgPath, "config", "", "YAML config file (default $MAZE_CONFIG)")
	flag.Int64Var(&seed, "seed", 0, "maze seed (0 = random)")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Maze.Seed = seed
	}
	// stderr belongs to the terminal while the screen is up.
	if cfg.Log.File == "" {
		cfg.Log.File = logging.DefaultConfig().File
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, err := termui.New(screen, cfg, logger)
	if err != nil {
		return err
	}
	if err := term.Run(ctx); err != nil {
		logger.Error("terminal session", zap.Error(err))
		return err
	}
	return nil
}
