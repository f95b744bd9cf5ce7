package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Maze-Escape/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_NoPathGivesDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maze.Width != Default().Maze.Width || cfg.Tuning != Default().Tuning {
		t.Fatal("empty load should equal defaults")
	}
}

func TestLoad_YAMLLayersOverDefaults(t *testing.T) {
	path := writeFile(t, "maze.yaml", `
maze:
  width: 21
  seed: 42
tuning:
  walk_speed: 3
render:
  vignette: 0.5
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maze.Width != 21 || cfg.Maze.Seed != 42 {
		t.Fatalf("maze = %+v", cfg.Maze)
	}
	if cfg.Maze.Height != Default().Maze.Height {
		t.Fatalf("unset height = %d, want default", cfg.Maze.Height)
	}
	if cfg.Tuning.WalkSpeed != 3 || cfg.Tuning.SprintSpeed != Default().Tuning.SprintSpeed {
		t.Fatalf("tuning = %+v", cfg.Tuning)
	}
	if cfg.Render.Vignette != 0.5 || cfg.Log.Level != "debug" {
		t.Fatalf("render/log not applied: %+v %+v", cfg.Render, cfg.Log)
	}
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := writeFile(t, "env.yaml", "maze:\n  pickups: 2\n")
	t.Setenv(EnvConfig, path)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maze.Pickups != 2 {
		t.Fatalf("pickups = %d, want 2", cfg.Maze.Pickups)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvSeed, "1234")
	t.Setenv(EnvWidth, "15")
	t.Setenv(EnvHeight, "17")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvRecords, "/tmp/records.yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maze.Seed != 1234 || cfg.Maze.Width != 15 || cfg.Maze.Height != 17 {
		t.Fatalf("maze = %+v", cfg.Maze)
	}
	if cfg.Log.File != "" || cfg.Log.Level != "warn" {
		t.Fatalf("log = %+v", cfg.Log)
	}
	if cfg.Records.File != "/tmp/records.yaml" {
		t.Fatalf("records = %+v", cfg.Records)
	}
}

func TestLoad_BadEnvIsInvalid(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvSeed, "not-a-number")
	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "maze: [1, 2\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_CollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Window.TPS = 0
	cfg.Maze.Width = 3
	cfg.Tuning.SprintUnlockAmount = 500
	cfg.Render.Vignette = 2
	cfg.Log.Level = "chatty"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	for _, want := range []string{"tps", "maze size", "sprint_unlock_amount", "vignette", "chatty"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestValidate_RejectsNegativeTuning(t *testing.T) {
	cases := map[string]func(*game.Tuning){
		"stamina_drain":       func(tn *game.Tuning) { tn.StaminaDrain = -1 },
		"stamina_regen":       func(tn *game.Tuning) { tn.StaminaRegen = -1 },
		"freeze_duration":     func(tn *game.Tuning) { tn.FreezeDuration = -5 },
		"flashlight_duration": func(tn *game.Tuning) { tn.FlashlightDuration = -1 },
		"adversary_arrival":   func(tn *game.Tuning) { tn.AdversaryArrival = -0.1 },
		"pickup_bob_rate":     func(tn *game.Tuning) { tn.PickupBobRate = -2 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg.Tuning)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err = %v, want ErrInvalid", name, err)
		}
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("%s: error %q does not name the field", name, err)
		}
	}
}

func TestValidate_EvenMazeSizeAccepted(t *testing.T) {
	cfg := Default()
	cfg.Maze.Width, cfg.Maze.Height = 20, 30
	if err := cfg.Validate(); err != nil {
		t.Fatalf("even sizes should be accepted: %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	const key = "MAZE_TEST_FROM_DOTENV"
	t.Cleanup(func() { os.Unsetenv(key) })
	path := writeFile(t, "test.env", key+"=41\n")
	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv(key); got != "41" {
		t.Fatalf("%s = %q, want 41", key, got)
	}
}

func TestRenderOptions_ScalesWindow(t *testing.T) {
	cfg := Default()
	opt := cfg.RenderOptions()
	if opt.Width != 320 || opt.Height != 200 {
		t.Fatalf("render size = %dx%d, want 320x200", opt.Width, opt.Height)
	}
	if opt.Vignette != cfg.Render.Vignette {
		t.Fatal("vignette not carried over")
	}
}

func TestSessionOptions_BuildSession(t *testing.T) {
	cfg := Default()
	cfg.Maze.Width, cfg.Maze.Height = 11, 11
	cfg.Maze.Seed = 9
	cfg.Maze.Pickups = 3
	s, err := game.NewSession(cfg.SessionOptions()...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Seed() != 9 || s.Grid().Width() != 11 || len(s.Pickups()) != 3 {
		t.Fatalf("session seed=%d width=%d pickups=%d", s.Seed(), s.Grid().Width(), len(s.Pickups()))
	}
}
