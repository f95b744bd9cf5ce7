package render

import (
	"math"

	"github.com/Garsondee/Maze-Escape/internal/game"
)

// pickupBob is how far, in wall heights, a pickup rises at the top of its bob.
const pickupBob = 0.06

var spriteForPickup = map[game.PickupKind]SpriteKind{
	game.PickupStamina:    SpriteStamina,
	game.PickupFreeze:     SpriteFreeze,
	game.PickupFlashlight: SpriteFlashlight,
}

// SceneOf snapshots a session into a camera and sprite list. Collected
// pickups and a dormant adversary are left out; a frozen adversary is
// marked so it renders in its frozen tint.
func SceneOf(s *game.Session) (Camera, []Sprite) {
	p := s.Player()
	cam := Camera{
		X:          p.X(),
		Y:          p.Y(),
		Heading:    p.Heading(),
		Flashlight: p.FlashlightBoost(s.Tuning()),
	}

	sprites := make([]Sprite, 0, len(s.Pickups())+1)
	for _, it := range s.Pickups() {
		if it.Collected() {
			continue
		}
		kind, ok := spriteForPickup[it.Kind()]
		if !ok {
			continue
		}
		sprites = append(sprites, Sprite{
			X:    it.X(),
			Y:    it.Y(),
			Kind: kind,
			Lift: 0.1 + pickupBob*(1+math.Sin(it.Phase()))/2,
		})
	}
	if a := s.Adversary(); a != nil && a.Active() {
		sprites = append(sprites, Sprite{X: a.X(), Y: a.Y(), Kind: SpriteAdversary, Frozen: a.Frozen()})
	}
	return cam, sprites
}

// RenderSession renders the session's current state.
func RenderSession(s *game.Session, opt Options) *Frame {
	cam, sprites := SceneOf(s)
	return Render(cam, s.Grid(), sprites, opt)
}
