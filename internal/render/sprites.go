package render

import (
	"image/color"
	"math"
	"sort"
)

// SpriteKind selects a billboard's colour, shape and default scale.
type SpriteKind int

const (
	SpriteStamina SpriteKind = iota
	SpriteFreeze
	SpriteFlashlight
	SpriteAdversary
)

func (k SpriteKind) String() string {
	switch k {
	case SpriteStamina:
		return "stamina"
	case SpriteFreeze:
		return "freeze"
	case SpriteFlashlight:
		return "flashlight"
	case SpriteAdversary:
		return "adversary"
	default:
		return "unknown"
	}
}

// Sprite is a camera-facing billboard standing on the floor.
type Sprite struct {
	X, Y float64
	Kind SpriteKind
	// Scale is the height as a fraction of a wall; 0 uses the kind default.
	Scale float64
	// Lift raises the sprite off the floor, in wall heights.
	Lift float64
	// Frozen tints an adversary with Palette.AdversaryFrozen.
	Frozen bool
}

func (opt Options) scaleFor(sp Sprite) float64 {
	if sp.Scale > 0 {
		return sp.Scale
	}
	if sp.Kind == SpriteAdversary {
		return opt.AdversaryScale
	}
	return opt.PickupScale
}

func (p Palette) colorFor(sp Sprite) color.RGBA {
	switch sp.Kind {
	case SpriteStamina:
		return p.Stamina
	case SpriteFreeze:
		return p.Freeze
	case SpriteFlashlight:
		return p.Flashlight
	default:
		if sp.Frozen {
			return p.AdversaryFrozen
		}
		return p.Adversary
	}
}

// projected is a sprite after the view transform.
type projected struct {
	sp      Sprite
	perp    float64 // along the view axis; drives scale
	euclid  float64 // straight-line; compared against the depth buffer
	screenX float64
}

// drawSprites is the billboard pass. A sprite pixel lands only in columns
// where the sprite is nearer than the wall the ray hit; sprites are painted
// far to near so nearer ones cover farther ones.
func drawSprites(f *Frame, cam Camera, sprites []Sprite, opt Options) {
	if len(sprites) == 0 {
		return
	}
	w, h := f.Width(), f.Height()
	fx, fy, rx, ry := basis(cam.Heading)

	list := make([]projected, 0, len(sprites))
	for _, sp := range sprites {
		dx := sp.X - cam.X
		dy := sp.Y - cam.Y
		perp := dx*fx + dy*fy
		if perp <= opt.NearPlane || perp <= 0 {
			continue
		}
		lateral := dx*rx + dy*ry
		list = append(list, projected{
			sp:      sp,
			perp:    perp,
			euclid:  math.Hypot(dx, dy),
			screenX: (lateral/(perp*opt.FOV) + 1) * float64(w) / 2,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].euclid > list[j].euclid })

	for _, p := range list {
		scale := opt.scaleFor(p.sp)
		size := float64(h) * scale / p.perp
		if size < 1 {
			continue
		}
		wallH := float64(h) / p.perp
		bottom := float64(h)/2 + wallH/2 - p.sp.Lift*wallH
		top := bottom - size
		left := p.screenX - size/2

		base := opt.Palette.colorFor(p.sp)
		c := shade(base, fogFactor(p.euclid, opt.MaxDistance, cam.Flashlight))

		x0 := int(math.Max(0, math.Floor(left)))
		x1 := int(math.Min(float64(w), math.Ceil(left+size)))
		y0 := int(math.Max(0, math.Floor(top)))
		y1 := int(math.Min(float64(h), math.Ceil(bottom)))
		for col := x0; col < x1; col++ {
			if p.euclid >= f.Depth[col] {
				continue
			}
			u := (float64(col)+0.5-left)/size*2 - 1
			for y := y0; y < y1; y++ {
				v := (float64(y)+0.5-top)/size*2 - 1
				if !inShape(p.sp.Kind, u, v) {
					continue
				}
				f.set(col, y, c)
			}
		}
	}
}

// inShape masks the billboard's square to the kind's silhouette. u and v
// run from -1 to 1 across the square.
func inShape(k SpriteKind, u, v float64) bool {
	if k == SpriteAdversary {
		// Tall ellipse body with a gap for a head.
		if v < -0.55 {
			return u*u+(v+0.8)*(v+0.8)*4 <= 0.2
		}
		return u*u/0.36+v*v <= 1
	}
	return u*u+v*v <= 1
}
