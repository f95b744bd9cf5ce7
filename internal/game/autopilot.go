package game

import "math"

// AutoPilot steers the player toward the exit along a BFS route. The
// headless report and the soak tests drive sessions with it.
type AutoPilot struct {
	MaxTurn   float64 // rad per tick
	AlignTol  float64 // rad; forward only when the residual heading error is below this
	UseSprint bool
}

// NewAutoPilot returns a pilot with conservative steering limits.
func NewAutoPilot() *AutoPilot {
	return &AutoPilot{MaxTurn: 0.2, AlignTol: 0.35, UseSprint: true}
}

// Next computes the intent for the coming tick. It re-plans from the
// player's current cell every call so it never drifts off a stale route.
func (ap *AutoPilot) Next(s *Session) Intent {
	p := s.Player()
	exit, ok := s.Grid().Exit()
	if !ok {
		return Intent{}
	}
	route := ShortestPath(s.Grid(), p.Cell(), exit)
	if len(route) < 2 {
		return Intent{}
	}
	tx, ty := route[1].Center()

	want := HeadingTo(p.X(), p.Y(), tx, ty)
	delta := normalizeAngle(want - p.Heading())
	turn := math.Max(-ap.MaxTurn, math.Min(ap.MaxTurn, delta))

	in := Intent{Turn: turn}
	if math.Abs(delta-turn) < ap.AlignTol {
		in.Forward = true
		in.Sprint = ap.UseSprint && !p.SprintBlocked()
	}
	return in
}
