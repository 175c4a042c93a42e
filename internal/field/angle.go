package field

import "math"

// DirectionAngle returns the angle in radians, in [0, 2π), of the force an
// electron feels from a second electron displaced by (dx, dy). The repulsive
// force points away from the other electron, so the result lies in the
// quadrant opposite to (dx, dy). ok is false when dx and dy are both zero.
func DirectionAngle(dx, dy float64) (theta float64, ok bool) {
	if dx == 0 && dy == 0 {
		return 0, false
	}

	alpha := math.Pi / 2
	if dx != 0 {
		alpha = math.Atan(math.Abs(dy / dx))
	}

	switch {
	case dx < 0 && dy <= 0:
		theta = alpha
	case dx >= 0 && dy < 0:
		theta = math.Pi - alpha
	case dx > 0 && dy >= 0:
		theta = math.Pi + alpha
	default: // dx <= 0 && dy > 0
		theta = 2*math.Pi - alpha
	}

	// 2π - alpha rounds to 2π when alpha is below half an ulp of 2π.
	if theta >= 2*math.Pi {
		theta = 0
	}
	return theta, true
}
