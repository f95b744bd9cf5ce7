package game

import "math"

// AdversaryState is the pursuer's lifecycle state.
type AdversaryState int

const (
	AdversaryDormant   AdversaryState = iota // waiting to spawn; invisible, harmless
	AdversaryPursuing                        // active, following its cached path
	AdversaryFrozen                          // active but suspended by a freeze effect
)

func (s AdversaryState) String() string {
	switch s {
	case AdversaryDormant:
		return "dormant"
	case AdversaryPursuing:
		return "pursuing"
	case AdversaryFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Adversary hunts the player through the maze. It owns its path cache; the
// session hands it a read-only view of the player's position each tick.
type Adversary struct {
	x, y    float64
	heading float64
	state   AdversaryState

	spawnLeft  float64 // s until Dormant -> active
	freezeLeft float64 // s of freeze remaining

	path        []Point
	pathIndex   int
	replanTimer float64
	replans     int
}

// NewAdversary places a dormant adversary that activates after spawnDelay
// seconds. A non-positive delay activates it on its first update.
func NewAdversary(x, y float64, spawnDelay float64) *Adversary {
	return &Adversary{x: x, y: y, state: AdversaryDormant, spawnLeft: spawnDelay}
}

func (a *Adversary) X() float64            { return a.x }
func (a *Adversary) Y() float64            { return a.y }
func (a *Adversary) Heading() float64      { return a.heading }
func (a *Adversary) State() AdversaryState { return a.state }
func (a *Adversary) FreezeLeft() float64   { return a.freezeLeft }
func (a *Adversary) SpawnLeft() float64    { return a.spawnLeft }
func (a *Adversary) Replans() int          { return a.replans }
func (a *Adversary) Active() bool          { return a.state != AdversaryDormant }
func (a *Adversary) Frozen() bool          { return a.state == AdversaryFrozen }
func (a *Adversary) Cell() Point           { return CellOf(a.x, a.y) }
func (a *Adversary) PathLen() int          { return len(a.path) }
func (a *Adversary) SetHeading(h float64)  { a.heading = normalizeAngle(h) }
func (a *Adversary) Path() []Point         { return append([]Point(nil), a.path...) }

// Freeze suspends movement and capture for d seconds. A freeze that lands
// while dormant keeps counting down and takes effect at activation if any
// of it remains.
func (a *Adversary) Freeze(d float64) {
	if d <= 0 {
		return
	}
	a.freezeLeft = math.Max(a.freezeLeft, d)
	if a.state == AdversaryPursuing {
		a.state = AdversaryFrozen
	}
}

// update advances the state machine by dt. targetX/targetY is the player's
// position this tick.
func (a *Adversary) update(g *Grid, targetX, targetY float64, t Tuning, dt float64) {
	switch a.state {
	case AdversaryDormant:
		a.spawnLeft -= dt
		a.freezeLeft = math.Max(0, a.freezeLeft-dt)
		if a.spawnLeft > 0 {
			return
		}
		a.spawnLeft = 0
		if a.freezeLeft > 0 {
			a.state = AdversaryFrozen
			return
		}
		a.state = AdversaryPursuing
		// Plan on the activation tick so pursuit starts immediately.
		a.replanTimer = t.AdversaryReplan

	case AdversaryFrozen:
		a.freezeLeft -= dt
		if a.freezeLeft > 0 {
			return
		}
		a.freezeLeft = 0
		a.state = AdversaryPursuing
		a.replanTimer = t.AdversaryReplan
		return
	}

	a.pursue(g, targetX, targetY, t, dt)
}

func (a *Adversary) pursue(g *Grid, targetX, targetY float64, t Tuning, dt float64) {
	a.replanTimer += dt
	if a.replanTimer >= t.AdversaryReplan {
		a.replanTimer = 0
		a.path = ShortestPath(g, a.Cell(), CellOf(targetX, targetY))
		a.pathIndex = 0
		// Head straight for the next cell rather than back to our own
		// centre; two adjacent cells form a rectangle so the line is clear.
		if len(a.path) > 1 {
			a.pathIndex = 1
		}
		a.replans++
	}

	// Empty path: the player is unreachable, hold position.
	remaining := t.AdversarySpeed * dt
	for remaining > 0 && a.pathIndex < len(a.path) {
		wx, wy := a.path[a.pathIndex].Center()
		dx := wx - a.x
		dy := wy - a.y
		dist := math.Hypot(dx, dy)
		if dist <= t.AdversaryArrival {
			a.pathIndex++
			continue
		}
		a.heading = math.Atan2(dy, dx)
		if dist <= remaining {
			a.x, a.y = wx, wy
			remaining -= dist
			a.pathIndex++
		} else {
			a.x += dx / dist * remaining
			a.y += dy / dist * remaining
			remaining = 0
		}
	}
}
