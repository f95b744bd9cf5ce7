package main

import (
	"testing"

	"github.com/Garsondee/Maze-Escape/internal/config"
	"github.com/Garsondee/Maze-Escape/internal/game"
)

func TestFirstTick(t *testing.T) {
	sl := game.NewSimLog(false)
	sl.Add(3, "I0", "pickup", "collected", "stamina", 0)
	sl.Add(7, "I1", "pickup", "collected", "freeze", 1)
	sl.Add(9, "I2", "pickup", "collected", "freeze", 2)
	if got := firstTick(sl, "pickup", "collected", "freeze"); got != 7 {
		t.Fatalf("first freeze tick = %d, want 7", got)
	}
	if got := firstTick(sl, "pickup", "collected", ""); got != 3 {
		t.Fatalf("first pickup tick = %d, want 3", got)
	}
	if got := firstTick(sl, "session", "outcome", ""); got != -1 {
		t.Fatalf("missing marker = %d, want -1", got)
	}
}

func TestRunLabel(t *testing.T) {
	cases := map[game.Outcome]string{
		game.OutcomeEscaped:  "escaped",
		game.OutcomeCaptured: "captured",
		game.OutcomeOngoing:  "timeout",
	}
	for o, want := range cases {
		if got := runLabel(runStats{outcome: o}); got != want {
			t.Fatalf("runLabel(%s) = %q, want %q", o, got, want)
		}
	}
}

func TestAggregateHelpers(t *testing.T) {
	if avg(10, 4) != 2.5 || avg(3, 0) != 0 {
		t.Fatal("avg")
	}
	if avgTickString(nil) != "n/a" || avgTickString([]int{2, 4}) != "3.0" {
		t.Fatal("avgTickString")
	}
	if got := timeSpread([]float64{30, 10, 20}); got != "min=10.00s avg=20.00s max=30.00s" {
		t.Fatalf("timeSpread = %q", got)
	}
	if got := joinCounts(map[string]int{"freeze": 2, "flashlight": 1}); got != "flashlight=1,freeze=2" {
		t.Fatalf("joinCounts = %q", got)
	}
	if joinCounts(nil) != "none" {
		t.Fatal("joinCounts(nil)")
	}
}

func TestRunAutopilot_CollectsStats(t *testing.T) {
	cfg := config.Default()
	cfg.Maze.Width, cfg.Maze.Height = 11, 11
	cfg.Tuning.AdversarySpawnDelay = 1000 // keep the hunter out of the way
	s, rs, err := runAutopilot(cfg, 1, 21, 120, nil)
	if err != nil {
		t.Fatalf("runAutopilot: %v", err)
	}
	if rs.outcome != game.OutcomeEscaped {
		t.Fatalf("autopilot did not escape: %s\n%s", rs.outcome, s.Report(120))
	}
	if rs.seed != 21 || rs.ticks != s.Tick() || rs.routeLen != len(s.Route()) {
		t.Fatalf("stats = %+v", rs)
	}
	if rs.firstActiveTick != -1 || rs.captureTick != -1 {
		t.Fatalf("hunter markers set with a dormant hunter: %+v", rs)
	}
	total := 0
	for _, n := range rs.pickups {
		total += n
	}
	if total != s.Summary().PickupsCollected {
		t.Fatalf("pickup counts %v disagree with summary %d", rs.pickups, s.Summary().PickupsCollected)
	}
}
