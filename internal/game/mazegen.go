package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// MinMazeSize is the smallest side length GenerateMaze will produce.
const MinMazeSize = 5

// StartCell is where the player always begins.
var StartCell = Point{X: 1, Y: 1}

// ErrUnsolvable is returned when no generated maze connected start and exit.
var ErrUnsolvable = errors.New("maze has no route from start to exit")

// oddSize coerces a requested side length to an odd value no smaller than
// MinMazeSize.
func oddSize(n int) int {
	if n < MinMazeSize {
		n = MinMazeSize
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// GenerateMaze carves a perfect maze with an iterative randomized depth-first
// backtracker over the odd-coordinate lattice. Start (1,1) is open and the
// far corner (w-2, h-2) is the exit.
func GenerateMaze(width, height int, rng *rand.Rand) *Grid {
	w, h := oddSize(width), oddSize(height)
	g := NewGrid(w, h)

	steps := [4][2]int{{2, 0}, {-2, 0}, {0, 2}, {0, -2}}
	order := [4]int{0, 1, 2, 3}

	stack := []Point{StartCell}
	g.set(StartCell.X, StartCell.Y, CellEmpty)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		carved := false
		for _, i := range order {
			nx, ny := cur.X+steps[i][0], cur.Y+steps[i][1]
			if nx <= 0 || ny <= 0 || nx >= w-1 || ny >= h-1 {
				continue
			}
			if g.At(nx, ny) != CellWall {
				continue
			}
			// Knock out the wall between, then descend.
			g.set(cur.X+steps[i][0]/2, cur.Y+steps[i][1]/2, CellEmpty)
			g.set(nx, ny, CellEmpty)
			stack = append(stack, Point{X: nx, Y: ny})
			carved = true
			break
		}
		if !carved {
			stack = stack[:len(stack)-1]
		}
	}

	g.set(StartCell.X, StartCell.Y, CellEmpty)
	g.set(w-2, h-2, CellExit)
	return g
}

// GenerateSolvable generates mazes until one has a route from StartCell to
// the exit, and returns it together with that route. A disconnected maze is
// a generation defect; it is logged by the caller and retried, never shipped.
func GenerateSolvable(width, height int, rng *rand.Rand, attempts int) (*Grid, []Point, error) {
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		g := GenerateMaze(width, height, rng)
		exit, ok := g.Exit()
		if !ok {
			continue
		}
		if route := ShortestPath(g, StartCell, exit); len(route) > 0 {
			return g, route, nil
		}
	}
	return nil, nil, fmt.Errorf("generate %dx%d after %d attempts: %w", width, height, attempts, ErrUnsolvable)
}
