package game

import (
	"fmt"
	"math"
	"strings"
)

// Cell is the code stored in one grid square.
type Cell uint8

const (
	CellEmpty Cell = iota // open floor
	CellWall              // impassable, opaque
	CellExit              // open floor; reaching it wins
)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Center returns the continuous coordinates of the middle of the cell.
func (p Point) Center() (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}

// CellOf returns the cell containing the continuous position (x, y).
func CellOf(x, y float64) Point {
	return Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// Grid is a rectangular maze. It is written during generation and treated as
// read-only afterwards.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid returns a width×height grid filled with walls.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for i := range g.cells {
		g.cells[i] = CellWall
	}
	return g
}

// ParseGrid builds a grid from rows of text: '#' wall, 'E' exit, anything
// else open floor. All rows must have the same length.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse grid: no rows")
	}
	w := len(rows[0])
	g := NewGrid(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("parse grid: row %d has width %d, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			switch row[x] {
			case '#':
				g.set(x, y, CellWall)
			case 'E':
				g.set(x, y, CellExit)
			default:
				g.set(x, y, CellEmpty)
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the cell at (x, y). Out-of-bounds reads are walls.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return CellWall
	}
	return g.cells[y*g.width+x]
}

// set writes a cell during construction. Out-of-bounds writes are ignored.
// Grids are read-only once built, so there is no exported mutator.
func (g *Grid) set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// IsWall reports whether the cell at (x, y) blocks movement.
func (g *Grid) IsWall(x, y int) bool {
	return g.At(x, y) == CellWall
}

// Exit returns the first exit cell in row-major order.
func (g *Grid) Exit() (Point, bool) {
	for i, c := range g.cells {
		if c == CellExit {
			return Point{X: i % g.width, Y: i / g.width}, true
		}
	}
	return Point{}, false
}

// EmptyCells lists every open, non-exit cell in row-major order.
func (g *Grid) EmptyCells() []Point {
	var out []Point
	for i, c := range g.cells {
		if c == CellEmpty {
			out = append(out, Point{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// String renders the grid in the same alphabet ParseGrid reads.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			switch g.At(x, y) {
			case CellWall:
				sb.WriteByte('#')
			case CellExit:
				sb.WriteByte('E')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
