package game

import "math"

// PickupKind tags the one-shot effect a pickup carries.
type PickupKind int

const (
	PickupStamina    PickupKind = iota // full stamina refill
	PickupFreeze                       // freezes the adversary
	PickupFlashlight                   // widens visibility for a while
	pickupKindCount                    // sentinel
)

func (k PickupKind) String() string {
	switch k {
	case PickupStamina:
		return "stamina"
	case PickupFreeze:
		return "freeze"
	case PickupFlashlight:
		return "flashlight"
	default:
		return "unknown"
	}
}

// PickupEffect is the closed set of pickup behaviours. The unexported method
// keeps the set sealed to this package; effectFor is the only constructor.
type PickupEffect interface {
	Kind() PickupKind
	apply(p *Player, a *Adversary, t Tuning)
}

type staminaRefill struct{}

func (staminaRefill) Kind() PickupKind { return PickupStamina }
func (staminaRefill) apply(p *Player, _ *Adversary, t Tuning) {
	p.stamina = t.MaxStamina
	p.sprintBlocked = false
}

type freezeAdversary struct{}

func (freezeAdversary) Kind() PickupKind { return PickupFreeze }
func (freezeAdversary) apply(p *Player, a *Adversary, t Tuning) {
	p.freezeLeft = t.FreezeDuration
	if a != nil {
		a.Freeze(t.FreezeDuration)
	}
}

type flashlightBoost struct{}

func (flashlightBoost) Kind() PickupKind { return PickupFlashlight }
func (flashlightBoost) apply(p *Player, _ *Adversary, t Tuning) {
	p.flashlightLeft = math.Max(p.flashlightLeft, t.FlashlightDuration)
}

// pickupEffects has one handler per kind; its length is pinned to the
// sentinel so adding a kind without a handler fails TestPickupEffectsCoverEveryKind.
var pickupEffects = [pickupKindCount]PickupEffect{
	PickupStamina:    staminaRefill{},
	PickupFreeze:     freezeAdversary{},
	PickupFlashlight: flashlightBoost{},
}

func effectFor(k PickupKind) PickupEffect {
	if k < 0 || k >= pickupKindCount {
		return nil
	}
	return pickupEffects[k]
}

// Pickup is an item lying in the maze. It fires once and is never re-armed.
type Pickup struct {
	x, y      float64
	effect    PickupEffect
	collected bool
	phase     float64 // cosmetic bob, radians
}

// NewPickup places a pickup of kind k at (x, y).
func NewPickup(x, y float64, k PickupKind) *Pickup {
	return &Pickup{x: x, y: y, effect: effectFor(k)}
}

func (it *Pickup) X() float64      { return it.x }
func (it *Pickup) Y() float64      { return it.y }
func (it *Pickup) Collected() bool { return it.collected }
func (it *Pickup) Phase() float64  { return it.phase }

// Kind reports the pickup's kind, or an out-of-range kind if it was built
// from an invalid one.
func (it *Pickup) Kind() PickupKind {
	if it.effect == nil {
		return pickupKindCount
	}
	return it.effect.Kind()
}

// tryCollect fires the pickup if the player is within reach. It reports
// whether it fired this call.
func (it *Pickup) tryCollect(p *Player, a *Adversary, t Tuning) bool {
	if it.collected || it.effect == nil {
		return false
	}
	dx := it.x - p.x
	dy := it.y - p.y
	if dx*dx+dy*dy >= t.PickupRadiusSq {
		return false
	}
	it.collected = true
	it.effect.apply(p, a, t)
	return true
}

func (it *Pickup) animate(t Tuning, dt float64) {
	it.phase = math.Mod(it.phase+t.PickupBobRate*dt, 2*math.Pi)
}
