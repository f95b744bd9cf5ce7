package game

import "math"

// Intent is one tick of player input. The flags are independent; how they
// are produced (keyboard, gamepad, script) does not matter to the core.
type Intent struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	Sprint      bool
	// Turn rotates the heading by this many radians before moving.
	Turn float64
}

// Moving reports whether any movement flag is set.
func (in Intent) Moving() bool {
	return in.Forward || in.Back || in.StrafeLeft || in.StrafeRight
}

// Player is the avatar. Only the session mutates it, once per tick.
type Player struct {
	x, y    float64
	heading float64

	stamina       float64
	sprintBlocked bool // set at zero stamina, cleared at Tuning.SprintUnlockAmount
	sprinting     bool // last tick's effective sprint

	escaped  bool
	captured bool

	flashlightLeft float64 // s
	freezeLeft     float64 // s
}

// NewPlayer places a player with a full stamina tank.
func NewPlayer(x, y, heading float64, t Tuning) *Player {
	return &Player{x: x, y: y, heading: heading, stamina: t.MaxStamina}
}

func (p *Player) X() float64              { return p.x }
func (p *Player) Y() float64              { return p.y }
func (p *Player) Heading() float64        { return p.heading }
func (p *Player) Stamina() float64        { return p.stamina }
func (p *Player) SprintBlocked() bool     { return p.sprintBlocked }
func (p *Player) Sprinting() bool         { return p.sprinting }
func (p *Player) Escaped() bool           { return p.escaped }
func (p *Player) Captured() bool          { return p.captured }
func (p *Player) FlashlightLeft() float64 { return p.flashlightLeft }
func (p *Player) FreezeLeft() float64     { return p.freezeLeft }

// Cell returns the integer cell the player stands in.
func (p *Player) Cell() Point { return CellOf(p.x, p.y) }

// FlashlightBoost is 1 while a flashlight pickup is active, fading linearly
// to 0 over the last Tuning.FlashlightFade seconds.
func (p *Player) FlashlightBoost(t Tuning) float64 {
	if p.flashlightLeft <= 0 {
		return 0
	}
	if t.FlashlightFade <= 0 || p.flashlightLeft >= t.FlashlightFade {
		return 1
	}
	return p.flashlightLeft / t.FlashlightFade
}

// update applies one tick of intent: turn, stamina, movement with
// axis-separated collision, boost countdowns and the exit check.
func (p *Player) update(in Intent, g *Grid, t Tuning, dt float64) {
	p.heading = normalizeAngle(p.heading + in.Turn)

	moving := in.Moving()
	sprint := in.Sprint && moving && !p.sprintBlocked
	p.updateStamina(sprint, t, dt)
	p.sprinting = sprint

	if moving {
		speed := t.WalkSpeed
		if sprint {
			speed = t.SprintSpeed
		}
		p.move(in, g, speed*dt)
	}

	p.flashlightLeft = math.Max(0, p.flashlightLeft-dt)
	p.freezeLeft = math.Max(0, p.freezeLeft-dt)

	if g.At(p.Cell().X, p.Cell().Y) == CellExit {
		p.escaped = true
	}
}

// updateStamina drains while sprinting, harder as the tank empties, and
// regenerates otherwise. Hitting zero locks sprint until the tank refills
// past SprintUnlockAmount.
func (p *Player) updateStamina(sprint bool, t Tuning, dt float64) {
	if sprint {
		frac := 0.0
		if t.MaxStamina > 0 {
			frac = p.stamina / t.MaxStamina
		}
		drain := t.StaminaDrain * (1 + (1-frac)*t.StaminaDrainMul)
		p.stamina -= drain * dt
	} else {
		p.stamina += t.StaminaRegen * dt
	}
	p.stamina = math.Max(0, math.Min(t.MaxStamina, p.stamina))

	if p.stamina <= 0 {
		p.sprintBlocked = true
	} else if p.sprintBlocked && p.stamina >= t.SprintUnlockAmount {
		p.sprintBlocked = false
	}
}

// move integrates one step along the heading basis. X and Y are resolved
// independently so a diagonal push into a wall slides along it.
func (p *Player) move(in Intent, g *Grid, step float64) {
	fx, fy := math.Cos(p.heading), math.Sin(p.heading)
	rx, ry := -fy, fx

	var vx, vy float64
	if in.Forward {
		vx += fx
		vy += fy
	}
	if in.Back {
		vx -= fx
		vy -= fy
	}
	if in.StrafeRight {
		vx += rx
		vy += ry
	}
	if in.StrafeLeft {
		vx -= rx
		vy -= ry
	}
	l := math.Hypot(vx, vy)
	if l < 1e-9 {
		return
	}
	vx, vy = vx/l*step, vy/l*step

	nx := p.x + vx
	if !g.IsWall(int(math.Floor(nx)), int(math.Floor(p.y))) {
		p.x = nx
	}
	ny := p.y + vy
	if !g.IsWall(int(math.Floor(p.x)), int(math.Floor(ny))) {
		p.y = ny
	}
}
