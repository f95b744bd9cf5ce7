package game

import "testing"

func TestAutoPilot_EscapesGeneratedMazes(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := mustSession(t,
			WithSeed(seed),
			WithMazeSize(15, 15),
			WithoutAdversary(),
			WithPickupCount(0),
		)
		ap := NewAutoPilot()
		limit := int(120 / TickDT)
		for s.Tick() < limit && !s.Outcome().Terminal() {
			s.AdvanceTick(ap.Next(s), TickDT)
		}
		if s.Outcome() != OutcomeEscaped {
			t.Fatalf("seed %d: outcome %s after %d ticks at cell %v", seed, s.Outcome(), s.Tick(), s.Player().Cell())
		}
		t.Logf("seed %d: escaped in %.2fs, route %d cells", seed, s.Elapsed(), len(s.Route()))
	}
}

func TestAutoPilot_TurnIsClamped(t *testing.T) {
	s := mustSession(t,
		WithGrid(lMaze(t)),
		WithPlayerAt(1.5, 1.5, 3),
		WithoutAdversary(),
	)
	ap := NewAutoPilot()
	in := ap.Next(s)
	if in.Turn > ap.MaxTurn || in.Turn < -ap.MaxTurn {
		t.Fatalf("turn %.3f exceeds clamp %.3f", in.Turn, ap.MaxTurn)
	}
	if in.Forward {
		t.Fatal("pilot should not advance while facing away from the route")
	}
}

func TestAutoPilot_NoExitIdles(t *testing.T) {
	g := mustParse(t, "#####", "#...#", "#####")
	s := mustSession(t, WithGrid(g), WithoutAdversary())
	if in := NewAutoPilot().Next(s); in != (Intent{}) {
		t.Fatalf("intent without an exit = %+v", in)
	}
}
