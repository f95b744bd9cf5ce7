package game

import "math"

// HeadingTo returns the angle in radians from (ox,oy) toward (tx,ty).
// 0 = +X, pi/2 = +Y (down the grid).
func HeadingTo(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, tx-ox)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// angleBetween returns the unsigned angle between heading h and the vector
// (dx, dy). The cosine is clamped before Acos so rounding can't produce NaN.
// A zero vector is treated as straight ahead.
func angleBetween(h, dx, dy float64) float64 {
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return 0
	}
	c := (math.Cos(h)*dx + math.Sin(h)*dy) / l
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}
