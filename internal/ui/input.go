package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Maze-Escape/internal/game"
)

const (
	keyTurnRate      = 2.6   // rad/s for arrow-key turning
	mouseSensitivity = 0.003 // rad per pixel of mouse travel
)

// keyState is the held-key snapshot one tick of input is built from.
type keyState struct {
	forward, back    bool
	strafeL, strafeR bool
	turnL, turnR     bool
	sprint           bool
}

func pollKeys() keyState {
	down := ebiten.IsKeyPressed
	return keyState{
		forward: down(ebiten.KeyW) || down(ebiten.KeyArrowUp),
		back:    down(ebiten.KeyS) || down(ebiten.KeyArrowDown),
		strafeL: down(ebiten.KeyA),
		strafeR: down(ebiten.KeyD),
		turnL:   down(ebiten.KeyArrowLeft) || down(ebiten.KeyQ),
		turnR:   down(ebiten.KeyArrowRight) || down(ebiten.KeyE),
		sprint:  down(ebiten.KeyShiftLeft) || down(ebiten.KeyShiftRight),
	}
}

// intentFrom maps held keys and horizontal mouse travel to an Intent.
func intentFrom(k keyState, mouseDX int, dt float64) game.Intent {
	turn := float64(mouseDX) * mouseSensitivity
	if k.turnL {
		turn -= keyTurnRate * dt
	}
	if k.turnR {
		turn += keyTurnRate * dt
	}
	return game.Intent{
		Forward:     k.forward,
		Back:        k.back,
		StrafeLeft:  k.strafeL,
		StrafeRight: k.strafeR,
		Sprint:      k.sprint,
		Turn:        turn,
	}
}
