package render

import (
	"bytes"
	"testing"
)

// A wall at x=3 sits 1.5 cells ahead of the camera along the centre column.
func occluderGrid(t *testing.T) Grid {
	t.Helper()
	return mustGrid(t,
		"#######",
		"#..#..#",
		"#######",
	)
}

func TestSprites_HiddenBehindWall(t *testing.T) {
	g := occluderGrid(t)
	cam := Camera{X: 1.5, Y: 1.5}
	opt := DefaultOptions()
	bare := Render(cam, g, nil, opt)
	behind := Render(cam, g, []Sprite{{X: 4.5, Y: 1.5, Kind: SpriteAdversary}}, opt)
	if !bytes.Equal(bare.Image.Pix, behind.Image.Pix) {
		t.Fatal("sprite behind the wall leaked into the frame")
	}
}

func TestSprites_InFrontOfWall(t *testing.T) {
	g := occluderGrid(t)
	cam := Camera{X: 1.5, Y: 1.5}
	opt := DefaultOptions()
	bare := Render(cam, g, nil, opt)
	front := Render(cam, g, []Sprite{{X: 2.5, Y: 1.5, Kind: SpriteStamina}}, opt)

	// 1 cell away a 0.3 pickup spans rows 140..200 of a 200-row frame.
	x, y := opt.Width/2, 170
	if bare.At(x, y) == front.At(x, y) {
		t.Fatalf("sprite in front of the wall not drawn at (%d,%d)", x, y)
	}
	if front.Depth[x] != bare.Depth[x] {
		t.Fatal("sprite pass must not touch the depth buffer")
	}
}

func TestSprites_BehindCameraCulled(t *testing.T) {
	g := occluderGrid(t)
	cam := Camera{X: 1.5, Y: 1.5}
	opt := DefaultOptions()
	bare := Render(cam, g, nil, opt)
	for _, sp := range []Sprite{
		{X: 1.0, Y: 1.5, Kind: SpriteAdversary},  // behind
		{X: 1.55, Y: 1.5, Kind: SpriteAdversary}, // inside the near plane
	} {
		f := Render(cam, g, []Sprite{sp}, opt)
		if !bytes.Equal(bare.Image.Pix, f.Image.Pix) {
			t.Fatalf("sprite at (%.2f,%.2f) should be culled", sp.X, sp.Y)
		}
	}
}

func TestSprites_NearerCoversFarther(t *testing.T) {
	g := mustGrid(t,
		"#########",
		"#.......#",
		"#########",
	)
	cam := Camera{X: 1.5, Y: 1.5}
	opt := DefaultOptions()
	opt.Vignette = 0
	sprites := []Sprite{
		{X: 2.5, Y: 1.5, Kind: SpriteFreeze, Scale: 0.5},
		{X: 4.5, Y: 1.5, Kind: SpriteStamina, Scale: 0.5},
	}
	f := Render(cam, g, sprites, opt)
	// Row 120 lies inside both billboards; the nearer one is painted last.
	c := f.At(opt.Width/2, 120)
	if c.B <= c.R {
		t.Fatalf("centre pixel %+v should be the blue freeze pickup", c)
	}
}

func TestSpriteScaleDefaults(t *testing.T) {
	opt := DefaultOptions()
	if s := opt.scaleFor(Sprite{Kind: SpriteAdversary}); s != opt.AdversaryScale {
		t.Fatalf("adversary scale = %.2f", s)
	}
	if s := opt.scaleFor(Sprite{Kind: SpriteFreeze}); s != opt.PickupScale {
		t.Fatalf("pickup scale = %.2f", s)
	}
	if s := opt.scaleFor(Sprite{Kind: SpriteFreeze, Scale: 0.7}); s != 0.7 {
		t.Fatalf("explicit scale = %.2f", s)
	}
}

func TestSprites_FrozenAdversaryTint(t *testing.T) {
	g := occluderGrid(t)
	cam := Camera{X: 1.5, Y: 1.5}
	opt := DefaultOptions()
	opt.Vignette = 0
	hunting := Render(cam, g, []Sprite{{X: 2.5, Y: 1.5, Kind: SpriteAdversary}}, opt)
	frozen := Render(cam, g, []Sprite{{X: 2.5, Y: 1.5, Kind: SpriteAdversary, Frozen: true}}, opt)

	// 1 cell away the 0.9 body spans rows 20..200; row 110 is mid-torso.
	x, y := opt.Width/2, 110
	if hunting.At(x, y) == frozen.At(x, y) {
		t.Fatalf("frozen adversary drawn in the hunting colour at (%d,%d): %v", x, y, frozen.At(x, y))
	}
	want := shade(opt.Palette.AdversaryFrozen, fogFactor(1, opt.MaxDistance, 0))
	if got := frozen.At(x, y); got != want {
		t.Fatalf("frozen pixel = %v, want %v", got, want)
	}
}
