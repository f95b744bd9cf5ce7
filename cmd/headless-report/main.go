package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Garsondee/Maze-Escape/internal/config"
	"github.com/Garsondee/Maze-Escape/internal/game"
	"github.com/Garsondee/Maze-Escape/internal/logging"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome  game.Outcome
	elapsed  float64
	ticks    int
	routeLen int

	firstActiveTick  int
	firstFreezeTick  int
	firstLockoutTick int
	captureTick      int

	pickups    map[string]int
	lockouts   int
	replans    int
	minStamina float64
}

func main() {
	var runs int
	var maxSeconds float64
	var seedBase int64
	var seedStep int64
	var size int
	var cfgPath string
	var logPath string
	var dumpLast int

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.Float64Var(&maxSeconds, "max-seconds", 180, "simulated seconds before a run is called a timeout")
	flag.Int64Var(&seedBase, "seed-base", 42, "maze seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&size, "size", 0, "maze side length (0 = from config)")
	flag.StringVar(&cfgPath, "config", "", "YAML config file (default $MAZE_CONFIG)")
	flag.StringVar(&logPath, "log", "", "write zap debug log to this file")
	flag.IntVar(&dumpLast, "dump", 0, "print the last N ticks of each run's event log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxSeconds <= 0 {
		fmt.Println("error: -max-seconds must be > 0")
		return
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if size > 0 {
		cfg.Maze.Width, cfg.Maze.Height = size, size
	}

	logger := zap.NewNop()
	if logPath != "" {
		lc := cfg.Log
		lc.File = logPath
		lc.Level = "debug"
		if logger, err = logging.New(lc); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		defer logging.Sync(logger)
	}

	fmt.Printf("=== Headless Escape Report ===\n")
	fmt.Printf("maze=%dx%d runs=%d max_seconds=%.0f seed_base=%d seed_step=%d\n\n",
		cfg.Maze.Width, cfg.Maze.Height, runs, maxSeconds, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		s, rs, err := runAutopilot(cfg, i+1, seed, maxSeconds, logger)
		if err != nil {
			fmt.Printf("run %d (seed=%d): %v\n", i+1, seed, err)
			continue
		}
		all = append(all, rs)
		printRun(rs)
		if dumpLast > 0 {
			fmt.Print(s.Report(dumpLast))
			fmt.Println()
		}
	}

	printAggregate(all)
}

// runAutopilot plays one seeded session with the autopilot until it ends
// or the time limit passes.
func runAutopilot(cfg config.Config, runIndex int, seed int64, maxSeconds float64, logger *zap.Logger) (*game.Session, runStats, error) {
	opts := append(cfg.SessionOptions(), game.WithSeed(seed), game.WithLogger(logger))
	s, err := game.NewSession(opts...)
	if err != nil {
		return nil, runStats{}, err
	}
	ap := game.NewAutoPilot()
	for s.Elapsed() < maxSeconds && !s.Outcome().Terminal() {
		s.AdvanceTick(ap.Next(s), game.TickDT)
	}
	return s, collectStats(s, runIndex), nil
}

// collectStats derives the per-run numbers from the session and its log.
func collectStats(s *game.Session, runIndex int) runStats {
	sum := s.Summary()
	log := s.Log()
	rs := runStats{
		runIndex:   runIndex,
		seed:       sum.Seed,
		outcome:    sum.Outcome,
		elapsed:    sum.Elapsed,
		ticks:      sum.Ticks,
		routeLen:   sum.RouteLen,
		replans:    sum.Replans,
		minStamina: sum.MinStamina,
		pickups:    map[string]int{},
		lockouts:   log.Count(game.LogQuery{Category: "player", Key: "sprint_locked"}),

		firstActiveTick:  firstTick(log, "adversary", "state", "→ pursuing"),
		firstFreezeTick:  firstTick(log, "pickup", "collected", "freeze"),
		firstLockoutTick: firstTick(log, "player", "sprint_locked", ""),
		captureTick:      firstTick(log, "session", "outcome", "captured"),
	}
	for _, e := range log.Select(game.LogQuery{Category: "pickup", Key: "collected"}) {
		rs.pickups[e.Value]++
	}
	return rs
}

// firstTick is the tick of the first matching event, or -1.
func firstTick(log *game.SimLog, category, key, contains string) int {
	e, ok := log.First(game.LogQuery{Category: category, Key: key, Contains: contains})
	if !ok {
		return -1
	}
	return e.Tick
}

// runLabel classifies a run; a run still going at the limit is a timeout.
func runLabel(rs runStats) string {
	switch rs.outcome {
	case game.OutcomeEscaped:
		return "escaped"
	case game.OutcomeCaptured:
		return "captured"
	default:
		return "timeout"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result=%s elapsed=%.2fs ticks=%d route=%d\n", runLabel(rs), rs.elapsed, rs.ticks, rs.routeLen)
	fmt.Printf("phase_markers: hunter_active=%d first_freeze=%d first_lockout=%d capture=%d\n",
		rs.firstActiveTick, rs.firstFreezeTick, rs.firstLockoutTick, rs.captureTick)
	fmt.Printf("events: replans=%d sprint_lockouts=%d min_stamina=%.1f pickups=%s\n",
		rs.replans, rs.lockouts, rs.minStamina, joinCounts(rs.pickups))
	fmt.Println()
}

func printAggregate(all []runStats) {
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	if len(all) == 0 {
		return
	}

	results := map[string]int{}
	var escapeTimes []float64
	var activeTicks, captureTicks []int
	pickups := map[string]int{}
	totalLockouts, totalReplans := 0, 0
	for _, rs := range all {
		results[runLabel(rs)]++
		if rs.outcome == game.OutcomeEscaped {
			escapeTimes = append(escapeTimes, rs.elapsed)
		}
		if rs.firstActiveTick >= 0 {
			activeTicks = append(activeTicks, rs.firstActiveTick)
		}
		if rs.captureTick >= 0 {
			captureTicks = append(captureTicks, rs.captureTick)
		}
		for k, v := range rs.pickups {
			pickups[k] += v
		}
		totalLockouts += rs.lockouts
		totalReplans += rs.replans
	}

	fmt.Printf("results: %s\n", joinCounts(results))
	fmt.Printf("escape_rate=%.0f%%\n", float64(results["escaped"])/float64(len(all))*100)
	fmt.Printf("escape_time: %s\n", timeSpread(escapeTimes))
	fmt.Printf("phase_marker_avg_ticks: hunter_active=%s capture=%s\n", avgTickString(activeTicks), avgTickString(captureTicks))
	fmt.Printf("avg_per_run: replans=%.1f sprint_lockouts=%.1f\n", avg(totalReplans, len(all)), avg(totalLockouts, len(all)))
	fmt.Printf("pickups_collected: %s\n", joinCounts(pickups))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// timeSpread formats min/avg/max of a set of durations in seconds.
func timeSpread(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return fmt.Sprintf("min=%.2fs avg=%.2fs max=%.2fs", sorted[0], sum/float64(len(sorted)), sorted[len(sorted)-1])
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, ",")
}
