package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPickupCount is how many pickups a generated maze scatters.
const DefaultPickupCount = 8

// DefaultMazeSize is the side length used when no size option is given.
const DefaultMazeSize = 41

// generateAttempts bounds GenerateSolvable retries.
const generateAttempts = 8

// Session is one run through one maze. It is single-writer: only
// AdvanceTick mutates it, and renderers read it between ticks.
type Session struct {
	id     string
	seed   int64
	rng    *rand.Rand
	tuning Tuning

	grid  *Grid
	route []Point // escape route, start -> exit, fixed at construction
	start Point

	player    *Player
	adversary *Adversary
	pickups   []*Pickup

	tick       int
	elapsed    float64
	outcome    Outcome
	minStamina float64

	log    *SimLog
	logger *zap.Logger

	// last observed values, for transition logging
	lastAdvState      AdversaryState
	lastSprintBlocked bool
}

// sessionSetup collects options before the session is assembled.
type sessionSetup struct {
	seed       int64
	seeded     bool
	tuning     Tuning
	width      int
	height     int
	grid       *Grid
	start      *Point
	player     *[3]float64
	adversary  *[2]float64
	noAdv      bool
	pickups    []pickupPlacement
	pickupN    int
	pickupNSet bool
	logger     *zap.Logger
	verbose    bool
}

type pickupPlacement struct {
	x, y float64
	kind PickupKind
}

// SessionOption configures NewSession.
type SessionOption func(*sessionSetup)

// WithSeed makes maze generation and placement deterministic.
func WithSeed(seed int64) SessionOption {
	return func(ss *sessionSetup) {
		ss.seed = seed
		ss.seeded = true
	}
}

// WithTuning replaces the default gameplay constants.
func WithTuning(t Tuning) SessionOption {
	return func(ss *sessionSetup) { ss.tuning = t }
}

// WithMazeSize sets the generated maze dimensions (coerced to odd).
func WithMazeSize(w, h int) SessionOption {
	return func(ss *sessionSetup) {
		ss.width = w
		ss.height = h
	}
}

// WithGrid uses a fixed grid instead of generating one. A fixed grid gets no
// random pickups and no adversary unless asked for.
func WithGrid(g *Grid) SessionOption {
	return func(ss *sessionSetup) { ss.grid = g }
}

// WithStart overrides the start cell used for the escape route and the
// default player position.
func WithStart(p Point) SessionOption {
	return func(ss *sessionSetup) { ss.start = &p }
}

// WithPlayerAt places the player at a continuous position and heading.
func WithPlayerAt(x, y, heading float64) SessionOption {
	return func(ss *sessionSetup) { ss.player = &[3]float64{x, y, heading} }
}

// WithAdversaryAt places the adversary instead of choosing a random cell.
func WithAdversaryAt(x, y float64) SessionOption {
	return func(ss *sessionSetup) { ss.adversary = &[2]float64{x, y} }
}

// WithoutAdversary runs the session with no pursuer.
func WithoutAdversary() SessionOption {
	return func(ss *sessionSetup) { ss.noAdv = true }
}

// WithPickup adds a pickup at (x, y). Explicit pickups suppress the random
// scatter.
func WithPickup(x, y float64, k PickupKind) SessionOption {
	return func(ss *sessionSetup) { ss.pickups = append(ss.pickups, pickupPlacement{x: x, y: y, kind: k}) }
}

// WithPickupCount sets how many pickups are scattered at random.
func WithPickupCount(n int) SessionOption {
	return func(ss *sessionSetup) {
		ss.pickupN = n
		ss.pickupNSet = true
	}
}

// WithLogger routes session events to a zap logger as well as the SimLog.
// A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) SessionOption {
	return func(ss *sessionSetup) {
		if l != nil {
			ss.logger = l
		}
	}
}

// WithVerbose records high-frequency events in the SimLog.
func WithVerbose(v bool) SessionOption {
	return func(ss *sessionSetup) { ss.verbose = v }
}

// NewSession builds a session: grid and escape route first, then player,
// adversary and pickups.
func NewSession(opts ...SessionOption) (*Session, error) {
	ss := sessionSetup{
		tuning: DefaultTuning(),
		width:  DefaultMazeSize,
		height: DefaultMazeSize,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(&ss)
	}
	if !ss.seeded {
		ss.seed = time.Now().UnixNano()
	}

	s := &Session{
		id:     uuid.NewString(),
		seed:   ss.seed,
		rng:    rand.New(rand.NewSource(ss.seed)), // #nosec G404 -- game only
		tuning: ss.tuning,
		start:  StartCell,
		log:    NewSimLog(ss.verbose),
	}
	s.logger = ss.logger.With(zap.String("session", s.id))
	if ss.start != nil {
		s.start = *ss.start
	}

	if err := s.initGrid(&ss); err != nil {
		return nil, err
	}
	s.initPlayer(&ss)
	s.initAdversary(&ss)
	s.initPickups(&ss)

	s.minStamina = s.player.stamina
	if s.adversary != nil {
		s.lastAdvState = s.adversary.state
	}
	s.logger.Info("session started",
		zap.Int64("seed", s.seed),
		zap.Int("width", s.grid.Width()),
		zap.Int("height", s.grid.Height()),
		zap.Int("route", len(s.route)),
		zap.Int("pickups", len(s.pickups)),
		zap.Bool("adversary", s.adversary != nil))
	return s, nil
}

func (s *Session) initGrid(ss *sessionSetup) error {
	if ss.grid != nil {
		s.grid = ss.grid
		if s.grid.IsWall(s.start.X, s.start.Y) {
			return fmt.Errorf("new session: start %v is a wall", s.start)
		}
		if exit, ok := s.grid.Exit(); ok {
			s.route = ShortestPath(s.grid, s.start, exit)
		}
		return nil
	}
	g, route, err := GenerateSolvable(ss.width, ss.height, s.rng, generateAttempts)
	if err != nil {
		s.logger.Error("maze generation failed", zap.Error(err))
		return fmt.Errorf("new session: %w", err)
	}
	s.grid = g
	s.route = route
	return nil
}

func (s *Session) initPlayer(ss *sessionSetup) {
	if ss.player != nil {
		s.player = NewPlayer(ss.player[0], ss.player[1], ss.player[2], s.tuning)
		return
	}
	x, y := s.start.Center()
	heading := 0.0
	if len(s.route) > 1 {
		nx, ny := s.route[1].Center()
		heading = HeadingTo(x, y, nx, ny)
	}
	s.player = NewPlayer(x, y, heading, s.tuning)
}

func (s *Session) initAdversary(ss *sessionSetup) {
	switch {
	case ss.noAdv:
		return
	case ss.adversary != nil:
		s.adversary = NewAdversary(ss.adversary[0], ss.adversary[1], s.tuning.AdversarySpawnDelay)
	case ss.grid != nil:
		return
	default:
		c, ok := s.adversarySpawnCell()
		if !ok {
			return
		}
		x, y := c.Center()
		s.adversary = NewAdversary(x, y, s.tuning.AdversarySpawnDelay)
	}
	s.adversary.heading = HeadingTo(s.adversary.x, s.adversary.y, s.player.x, s.player.y)
}

// adversarySpawnCell picks a random open cell at least AdversaryMinSpawnCells
// BFS steps from the start, falling back to the farthest reachable cell.
func (s *Session) adversarySpawnCell() (Point, bool) {
	dist := distanceField(s.grid, s.start)
	var far []Point
	best, bestD := Point{}, -1
	for _, c := range s.grid.EmptyCells() {
		d := dist[c.Y*s.grid.Width()+c.X]
		if d <= 0 {
			continue
		}
		if d >= s.tuning.AdversaryMinSpawnCells {
			far = append(far, c)
		}
		if d > bestD {
			best, bestD = c, d
		}
	}
	if len(far) > 0 {
		return far[s.rng.Intn(len(far))], true
	}
	return best, bestD > 0
}

func (s *Session) initPickups(ss *sessionSetup) {
	for _, p := range ss.pickups {
		s.pickups = append(s.pickups, NewPickup(p.x, p.y, p.kind))
	}
	if len(ss.pickups) > 0 {
		return
	}
	n := 0
	if ss.grid == nil {
		n = DefaultPickupCount
	}
	if ss.pickupNSet {
		n = ss.pickupN
	}
	cells := s.grid.EmptyCells()
	s.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	for _, c := range cells {
		if len(s.pickups) >= n {
			break
		}
		if c == s.start {
			continue
		}
		x, y := c.Center()
		s.pickups = append(s.pickups, NewPickup(x, y, PickupKind(s.rng.Intn(int(pickupKindCount)))))
	}
}

func (s *Session) ID() string            { return s.id }
func (s *Session) Seed() int64           { return s.seed }
func (s *Session) Tuning() Tuning        { return s.tuning }
func (s *Session) Grid() *Grid           { return s.grid }
func (s *Session) Start() Point          { return s.start }
func (s *Session) Player() *Player       { return s.player }
func (s *Session) Adversary() *Adversary { return s.adversary }
func (s *Session) Pickups() []*Pickup    { return s.pickups }
func (s *Session) Tick() int             { return s.tick }
func (s *Session) Elapsed() float64      { return s.elapsed }
func (s *Session) Outcome() Outcome      { return s.outcome }
func (s *Session) Log() *SimLog          { return s.log }

// Route returns a copy of the escape route computed at construction.
func (s *Session) Route() []Point {
	return append([]Point(nil), s.route...)
}

// AdvanceTick applies one fixed step: player, then adversary, then pickups,
// then the win/lose predicates. It is a no-op once the outcome is terminal.
// dt comes from the driver; the core never reads the clock.
func (s *Session) AdvanceTick(in Intent, dt float64) {
	if s.outcome.Terminal() || dt <= 0 {
		return
	}
	s.tick++
	s.elapsed += dt
	t := s.tuning

	// 1. PLAYER
	s.player.update(in, s.grid, t, dt)
	s.minStamina = math.Min(s.minStamina, s.player.stamina)
	if s.player.sprintBlocked != s.lastSprintBlocked {
		s.lastSprintBlocked = s.player.sprintBlocked
		if s.player.sprintBlocked {
			s.log.Add(s.tick, "P", "player", "sprint_locked", "stamina empty", s.player.stamina)
			s.logger.Debug("sprint locked", zap.Int("tick", s.tick))
		} else {
			s.log.Add(s.tick, "P", "player", "sprint_unlocked", fmt.Sprintf("stamina %.1f", s.player.stamina), s.player.stamina)
			s.logger.Debug("sprint unlocked", zap.Int("tick", s.tick), zap.Float64("stamina", s.player.stamina))
		}
	}

	// 2. ADVERSARY: sees only the player's position this tick.
	if a := s.adversary; a != nil {
		replans := a.replans
		a.update(s.grid, s.player.x, s.player.y, t, dt)
		if a.replans != replans {
			s.log.AddVerbose(s.tick, "A", "adversary", "replan", fmt.Sprintf("path %d cells", len(a.path)), float64(len(a.path)))
		}
	}

	// 3. PICKUPS
	for i, it := range s.pickups {
		if it.tryCollect(s.player, s.adversary, t) {
			label := fmt.Sprintf("I%d", i)
			s.log.Add(s.tick, label, "pickup", "collected", it.Kind().String(), float64(i))
			s.logger.Info("pickup collected",
				zap.Int("tick", s.tick),
				zap.Stringer("kind", it.Kind()),
				zap.Float64("x", it.x),
				zap.Float64("y", it.y))
		}
		if !it.collected {
			it.animate(t, dt)
		}
	}
	s.logAdversaryTransition()

	// 4. PREDICATES
	switch {
	case s.player.escaped:
		s.finish(OutcomeEscaped)
	case captures(s.adversary, s.player, t):
		s.player.captured = true
		s.finish(OutcomeCaptured)
	}
}

func (s *Session) logAdversaryTransition() {
	a := s.adversary
	if a == nil || a.state == s.lastAdvState {
		return
	}
	from := s.lastAdvState
	s.lastAdvState = a.state
	s.log.Add(s.tick, "A", "adversary", "state", fmt.Sprintf("%s → %s", from, a.state), a.freezeLeft)
	s.logger.Info("adversary state",
		zap.Int("tick", s.tick),
		zap.Stringer("from", from),
		zap.Stringer("to", a.state),
		zap.Float64("elapsed", s.elapsed))
}

func (s *Session) finish(o Outcome) {
	s.outcome = o
	s.log.Add(s.tick, "--", "session", "outcome", o.String(), s.elapsed)
	s.logger.Info("session ended",
		zap.Stringer("outcome", o),
		zap.Int("tick", s.tick),
		zap.Float64("elapsed", s.elapsed))
}

// captures is the lose predicate. The adversary must be active and not
// frozen, within the capture radius, and facing the player to within the
// capture half-angle; a player behind it is safe even at close range.
func captures(a *Adversary, p *Player, t Tuning) bool {
	if a == nil || a.state != AdversaryPursuing {
		return false
	}
	dx := p.x - a.x
	dy := p.y - a.y
	if dx*dx+dy*dy > t.CaptureRadiusSq {
		return false
	}
	return angleBetween(a.heading, dx, dy) < t.CaptureHalfFOV
}
