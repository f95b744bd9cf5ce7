package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/Garsondee/Maze-Escape/internal/config"
	"github.com/Garsondee/Maze-Escape/internal/logging"
	"github.com/Garsondee/Maze-Escape/internal/records"
	"github.com/Garsondee/Maze-Escape/internal/ui"
)

func main() {
	var cfgPath string
	var seed int64
	flag.StringVar(&cfgPath, "config", "", "YAML config file (default $MAZE_CONFIG)")
	flag.Int64Var(&seed, "seed", 0, "maze seed (0 = random)")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if seed != 0 {
		cfg.Maze.Seed = seed
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logging.Sync(logger)

	rec, err := records.Open(cfg.Records.File, cfg.Records.Keep)
	if err != nil {
		// A corrupt records file should not keep anyone out of the maze.
		logger.Warn("records unavailable", zap.String("file", cfg.Records.File), zap.Error(err))
		rec, _ = records.Open("", cfg.Records.Keep)
	}

	app, err := ui.New(cfg, logger, rec)
	if err != nil {
		logger.Fatal("init", zap.Error(err))
	}
	if err := app.Run(); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
