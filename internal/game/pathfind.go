package game

// Four-connected neighbourhood. No diagonal steps.
var dirs4 = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// ShortestPath returns a shortest 4-connected route of cells from start to
// goal, both inclusive, treating walls as impassable and every other cell as
// unit cost. It returns nil when the goal is unreachable or either endpoint
// is a wall.
func ShortestPath(g *Grid, start, goal Point) []Point {
	if g.IsWall(start.X, start.Y) || g.IsWall(goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return []Point{start}
	}

	key := func(x, y int) int { return y*g.width + x }
	parent := make([]int, g.width*g.height)
	for i := range parent {
		parent[i] = -1
	}
	visited := make([]bool, g.width*g.height)

	queue := make([]Point, 0, 64)
	queue = append(queue, start)
	visited[key(start.X, start.Y)] = true

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == goal {
			return buildRoute(g, parent, goal)
		}
		for _, d := range dirs4 {
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if g.IsWall(nx, ny) {
				continue
			}
			nk := key(nx, ny)
			if visited[nk] {
				continue
			}
			visited[nk] = true
			parent[nk] = key(cur.X, cur.Y)
			queue = append(queue, Point{X: nx, Y: ny})
		}
	}
	return nil
}

func buildRoute(g *Grid, parent []int, goal Point) []Point {
	var route []Point
	for k := goal.Y*g.width + goal.X; k != -1; k = parent[k] {
		route = append(route, Point{X: k % g.width, Y: k / g.width})
	}
	// Reverse
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// distanceField returns the BFS step count from start to every cell, -1 for
// unreachable cells.
func distanceField(g *Grid, start Point) []int {
	dist := make([]int, g.width*g.height)
	for i := range dist {
		dist[i] = -1
	}
	if g.IsWall(start.X, start.Y) {
		return dist
	}
	queue := []Point{start}
	dist[start.Y*g.width+start.X] = 0
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		cd := dist[cur.Y*g.width+cur.X]
		for _, d := range dirs4 {
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if g.IsWall(nx, ny) || dist[ny*g.width+nx] != -1 {
				continue
			}
			dist[ny*g.width+nx] = cd + 1
			queue = append(queue, Point{X: nx, Y: ny})
		}
	}
	return dist
}
