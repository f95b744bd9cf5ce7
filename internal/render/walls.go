package render

import (
	"math"

	"github.com/Garsondee/Maze-Escape/internal/game"
)

// Grid is the read-only view of the maze the renderer needs. *game.Grid
// satisfies it; out-of-bounds reads must report a wall.
type Grid interface {
	At(x, y int) game.Cell
}

// basis returns the camera's forward and right unit vectors.
func basis(heading float64) (fx, fy, rx, ry float64) {
	fx, fy = math.Cos(heading), math.Sin(heading)
	return fx, fy, -fy, fx
}

// columnRay returns the normalised ray direction for screen column col.
func columnRay(col, w int, fov, fx, fy, rx, ry float64) (float64, float64) {
	camX := 2*float64(col)/float64(w) - 1
	dx := fx + rx*camX*fov
	dy := fy + ry*camX*fov
	l := math.Hypot(dx, dy)
	return dx / l, dy / l
}

// castWalls is the wall pass. It fills every column with ceiling, wall and
// floor, and records the Euclidean hit distance into f.Depth.
func castWalls(f *Frame, cam Camera, g Grid, opt Options) {
	w, h := f.Width(), f.Height()
	fx, fy, rx, ry := basis(cam.Heading)
	pal := opt.Palette
	step := opt.Step
	if step <= 0 {
		step = 0.02
	}

	for col := 0; col < w; col++ {
		dx, dy := columnRay(col, w, opt.FOV, fx, fy, rx, ry)

		dist := math.Inf(1)
		cell := game.CellEmpty
		sideX := false
		prevX := int(math.Floor(cam.X))
		for d := step; d < opt.MaxDistance; d += step {
			cx := int(math.Floor(cam.X + dx*d))
			cy := int(math.Floor(cam.Y + dy*d))
			if c := g.At(cx, cy); c != game.CellEmpty {
				dist = d
				cell = c
				sideX = cx != prevX
				break
			}
			prevX = cx
		}
		f.Depth[col] = dist

		top, bottom := h/2, h/2
		if !math.IsInf(dist, 1) {
			// Perpendicular distance keeps straight walls straight.
			perp := math.Max(dist*(dx*fx+dy*fy), 1e-3)
			lineH := float64(h) / perp
			top = int(math.Max(0, (float64(h)-lineH)/2))
			bottom = int(math.Min(float64(h), (float64(h)+lineH)/2))
		}

		for y := 0; y < top; y++ {
			f.set(col, y, shade(pal.Ceiling, 1-float64(y)/float64(h)))
		}
		if top < bottom {
			base := pal.Wall
			if cell == game.CellExit {
				base = pal.Exit
			}
			k := fogFactor(dist, opt.MaxDistance, cam.Flashlight)
			if !sideX {
				k *= 0.75
			}
			c := shade(base, k)
			for y := top; y < bottom; y++ {
				f.set(col, y, c)
			}
		}
		for y := bottom; y < h; y++ {
			f.set(col, y, shade(pal.Floor, float64(y)/float64(h)))
		}
	}
}
