// Package render turns a maze and the things in it into a first-person
// pixel buffer by ray marching one ray per screen column.
package render

import (
	"image"
	"image/color"
	"math"
)

// Camera is the viewpoint. Heading is in radians, 0 = +X.
type Camera struct {
	X, Y    float64
	Heading float64
	// Flashlight is the active boost in [0,1]; it pushes fog back and
	// softens the vignette.
	Flashlight float64
}

// Frame is one rendered image plus the per-column wall distances that
// occluded its sprites.
type Frame struct {
	Image *image.RGBA
	Depth []float64 // Euclidean distance to the nearest wall per column, +Inf on a miss
}

// NewFrame allocates a w×h frame.
func NewFrame(w, h int) *Frame {
	return &Frame{
		Image: image.NewRGBA(image.Rect(0, 0, w, h)),
		Depth: make([]float64, w),
	}
}

func (f *Frame) Width() int  { return f.Image.Rect.Dx() }
func (f *Frame) Height() int { return f.Image.Rect.Dy() }

// At returns the colour at (x, y).
func (f *Frame) At(x, y int) color.RGBA { return f.Image.RGBAAt(x, y) }

func (f *Frame) set(x, y int, c color.RGBA) {
	i := f.Image.PixOffset(x, y)
	p := f.Image.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
}

// Options control projection and styling.
type Options struct {
	Width  int
	Height int

	// FOV is the camera-plane half-width: tan of half the field of view.
	FOV         float64
	MaxDistance float64 // cells; rays stop and fog saturates here
	Step        float64 // ray march increment, cells
	NearPlane   float64 // sprites closer than this along the view axis are culled

	PickupScale    float64
	AdversaryScale float64
	// Vignette is the edge darkening strength in [0,1]; 0 disables the pass.
	Vignette float64

	Palette Palette
}

// Palette holds the scene colours before fog is applied.
type Palette struct {
	Ceiling    color.RGBA
	Floor      color.RGBA
	Wall       color.RGBA
	Exit       color.RGBA
	Stamina    color.RGBA
	Freeze     color.RGBA
	Flashlight color.RGBA
	Adversary  color.RGBA

	// AdversaryFrozen replaces Adversary while the hunter is frozen.
	AdversaryFrozen color.RGBA
}

// DefaultPalette is a dim stone maze with a green exit.
func DefaultPalette() Palette {
	return Palette{
		Ceiling:    color.RGBA{R: 18, G: 18, B: 26, A: 255},
		Floor:      color.RGBA{R: 52, G: 46, B: 40, A: 255},
		Wall:       color.RGBA{R: 150, G: 146, B: 160, A: 255},
		Exit:       color.RGBA{R: 70, G: 210, B: 110, A: 255},
		Stamina:    color.RGBA{R: 240, G: 200, B: 60, A: 255},
		Freeze:     color.RGBA{R: 90, G: 180, B: 255, A: 255},
		Flashlight: color.RGBA{R: 255, G: 250, B: 220, A: 255},
		Adversary:  color.RGBA{R: 200, G: 30, B: 40, A: 255},

		AdversaryFrozen: color.RGBA{R: 96, G: 110, B: 170, A: 255},
	}
}

// DefaultOptions is a 320×200 view with a 66° field of view.
func DefaultOptions() Options {
	return Options{
		Width:          320,
		Height:         200,
		FOV:            0.66,
		MaxDistance:    16,
		Step:           0.02,
		NearPlane:      0.1,
		PickupScale:    0.3,
		AdversaryScale: 0.9,
		Vignette:       0.85,
		Palette:        DefaultPalette(),
	}
}

// Render draws one frame. It reads its inputs only and returns a fresh frame.
func Render(cam Camera, g Grid, sprites []Sprite, opt Options) *Frame {
	f := NewFrame(max(opt.Width, 1), max(opt.Height, 1))
	RenderInto(f, cam, g, sprites, opt)
	return f
}

// RenderInto draws into an existing frame, reusing its buffers. The frame's
// size wins over opt.Width and opt.Height.
func RenderInto(f *Frame, cam Camera, g Grid, sprites []Sprite, opt Options) {
	castWalls(f, cam, g, opt)
	drawSprites(f, cam, sprites, opt)
	vignette(f, cam.Flashlight, opt.Vignette)
}

// fogFactor is the brightness left after distance fog: 1 at the camera,
// 0 at MaxDistance, pushed outward by the flashlight.
func fogFactor(dist, maxDist, flashlight float64) float64 {
	if maxDist <= 0 {
		return 1
	}
	fog := dist/maxDist - flashlight*0.5
	return 1 - math.Max(0, math.Min(1, fog))
}

func shade(c color.RGBA, k float64) color.RGBA {
	k = math.Max(0, math.Min(1, k))
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: 255,
	}
}
