// Package config loads runtime settings: defaults, then an optional YAML
// file, then environment overrides (a .env file is read first if present).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Maze-Escape/internal/game"
	"github.com/Garsondee/Maze-Escape/internal/logging"
	"github.com/Garsondee/Maze-Escape/internal/render"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Environment variables read by Load.
const (
	EnvConfig   = "MAZE_CONFIG"
	EnvSeed     = "MAZE_SEED"
	EnvWidth    = "MAZE_WIDTH"
	EnvHeight   = "MAZE_HEIGHT"
	EnvLogFile  = "MAZE_LOG_FILE"
	EnvLogLevel = "MAZE_LOG_LEVEL"
	EnvRecords  = "MAZE_RECORDS"
)

type Config struct {
	Window  WindowConfig   `yaml:"window"`
	Maze    MazeConfig     `yaml:"maze"`
	Tuning  game.Tuning    `yaml:"tuning"`
	Render  RenderConfig   `yaml:"render"`
	Log     logging.Config `yaml:"log"`
	Records RecordsConfig  `yaml:"records"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// RenderScale divides the window size to get the raycast resolution.
	RenderScale int `yaml:"render_scale"`
	TPS         int `yaml:"tps"`
}

type MazeConfig struct {
	Width   int   `yaml:"width"`
	Height  int   `yaml:"height"`
	Seed    int64 `yaml:"seed"` // 0 picks a fresh seed per session
	Pickups int   `yaml:"pickups"`
}

type RenderConfig struct {
	FOV            float64 `yaml:"fov"`
	MaxDistance    float64 `yaml:"max_distance"`
	Step           float64 `yaml:"step"`
	NearPlane      float64 `yaml:"near_plane"`
	PickupScale    float64 `yaml:"pickup_scale"`
	AdversaryScale float64 `yaml:"adversary_scale"`
	Vignette       float64 `yaml:"vignette"`
}

type RecordsConfig struct {
	File string `yaml:"file"`
	Keep int    `yaml:"keep"`
}

// Default is a 41×41 maze in a 960×600 window rendered at half resolution.
func Default() Config {
	ro := render.DefaultOptions()
	return Config{
		Window: WindowConfig{
			Title:       "Maze Escape",
			Width:       960,
			Height:      600,
			RenderScale: 3,
			TPS:         60,
		},
		Maze: MazeConfig{
			Width:   game.DefaultMazeSize,
			Height:  game.DefaultMazeSize,
			Pickups: game.DefaultPickupCount,
		},
		Tuning: game.DefaultTuning(),
		Render: RenderConfig{
			FOV:            ro.FOV,
			MaxDistance:    ro.MaxDistance,
			Step:           ro.Step,
			NearPlane:      ro.NearPlane,
			PickupScale:    ro.PickupScale,
			AdversaryScale: ro.AdversaryScale,
			Vignette:       ro.Vignette,
		},
		Log: logging.DefaultConfig(),
		Records: RecordsConfig{
			File: "maze-records.yaml",
			Keep: 5,
		},
	}
}

// LoadEnv reads .env style files into the process environment. Missing
// files are not an error; with no arguments it reads ./.env.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Load layers a YAML file over Default and applies environment overrides.
// An empty path falls back to $MAZE_CONFIG; no path at all means defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	getInt := func(key string, dst *int) error {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err)
		}
		*dst = n
		return nil
	}

	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvSeed, v, err)
		}
		c.Maze.Seed = seed
	}
	if err := getInt(EnvWidth, &c.Maze.Width); err != nil {
		return err
	}
	if err := getInt(EnvHeight, &c.Maze.Height); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.Log.File = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRecords)); v != "" {
		c.Records.File = v
	}
	return nil
}

// Validate reports every out-of-range value at once. Even maze sizes are
// accepted; generation rounds them up to odd.
func (c Config) Validate() error {
	var probs []string
	bad := func(format string, args ...any) {
		probs = append(probs, fmt.Sprintf(format, args...))
	}

	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		bad("window size %dx%d", w.Width, w.Height)
	}
	if w.RenderScale < 1 {
		bad("window.render_scale %d < 1", w.RenderScale)
	}
	if w.TPS <= 0 {
		bad("window.tps %d <= 0", w.TPS)
	}

	m := c.Maze
	if m.Width < game.MinMazeSize || m.Height < game.MinMazeSize {
		bad("maze size %dx%d below %d", m.Width, m.Height, game.MinMazeSize)
	}
	if m.Pickups < 0 {
		bad("maze.pickups %d < 0", m.Pickups)
	}

	t := c.Tuning
	if t.WalkSpeed <= 0 || t.SprintSpeed <= 0 || t.AdversarySpeed <= 0 {
		bad("speeds must be positive")
	}
	if t.MaxStamina <= 0 {
		bad("tuning.max_stamina %.2f <= 0", t.MaxStamina)
	}
	if t.SprintUnlockAmount <= 0 || t.SprintUnlockAmount > t.MaxStamina {
		bad("tuning.sprint_unlock_amount %.2f outside (0, max_stamina]", t.SprintUnlockAmount)
	}
	if t.AdversaryReplan <= 0 {
		bad("tuning.adversary_replan %.2f <= 0", t.AdversaryReplan)
	}
	if t.CaptureHalfFOV <= 0 || t.CaptureHalfFOV > math.Pi {
		bad("tuning.capture_half_fov %.3f outside (0, pi]", t.CaptureHalfFOV)
	}
	if t.PickupRadiusSq <= 0 || t.CaptureRadiusSq <= 0 {
		bad("pickup and capture radii must be positive")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"stamina_drain", t.StaminaDrain},
		{"stamina_drain_mul", t.StaminaDrainMul},
		{"stamina_regen", t.StaminaRegen},
		{"pickup_bob_rate", t.PickupBobRate},
		{"freeze_duration", t.FreezeDuration},
		{"flashlight_duration", t.FlashlightDuration},
		{"flashlight_fade", t.FlashlightFade},
		{"adversary_spawn_delay", t.AdversarySpawnDelay},
		{"adversary_arrival", t.AdversaryArrival},
		{"adversary_min_spawn_cells", float64(t.AdversaryMinSpawnCells)},
	} {
		if f.v < 0 {
			bad("tuning.%s %.2f < 0", f.name, f.v)
		}
	}

	r := c.Render
	if r.FOV <= 0 {
		bad("render.fov %.3f <= 0", r.FOV)
	}
	if r.MaxDistance <= 0 || r.Step <= 0 || r.Step >= r.MaxDistance {
		bad("render.step %.3f must be in (0, max_distance %.1f)", r.Step, r.MaxDistance)
	}
	if r.NearPlane < 0 {
		bad("render.near_plane %.3f < 0", r.NearPlane)
	}
	if r.Vignette < 0 || r.Vignette > 1 {
		bad("render.vignette %.2f outside [0,1]", r.Vignette)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		bad("%v", err)
	}
	if c.Records.Keep < 1 {
		bad("records.keep %d < 1", c.Records.Keep)
	}

	if len(probs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(probs, "; "))
	}
	return nil
}

// RenderOptions builds renderer options for the configured window.
func (c Config) RenderOptions() render.Options {
	opt := render.DefaultOptions()
	scale := max(c.Window.RenderScale, 1)
	opt.Width = c.Window.Width / scale
	opt.Height = c.Window.Height / scale
	opt.FOV = c.Render.FOV
	opt.MaxDistance = c.Render.MaxDistance
	opt.Step = c.Render.Step
	opt.NearPlane = c.Render.NearPlane
	opt.PickupScale = c.Render.PickupScale
	opt.AdversaryScale = c.Render.AdversaryScale
	opt.Vignette = c.Render.Vignette
	return opt
}

// SessionOptions turns the maze section into session options. A zero seed
// is left to the session, which seeds from the clock.
func (c Config) SessionOptions() []game.SessionOption {
	opts := []game.SessionOption{
		game.WithTuning(c.Tuning),
		game.WithMazeSize(c.Maze.Width, c.Maze.Height),
		game.WithPickupCount(c.Maze.Pickups),
	}
	if c.Maze.Seed != 0 {
		opts = append(opts, game.WithSeed(c.Maze.Seed))
	}
	return opts
}
