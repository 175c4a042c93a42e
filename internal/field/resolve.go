package field

import "math"

// Resolve sets Fnet and Angle from the accumulated force of p. It must run
// after every pair involving p has been accumulated.
//
// In AngleReference mode a zero Fx yields 90° even when Fy is negative. That
// matches the published reference output; AnglePhysical uses atan2 instead.
func Resolve(p *Particle, mode AngleMode) {
	p.Fnet = math.Hypot(p.Fx, p.Fy)

	var angle float64
	if p.Fx == 0 && mode == AngleReference {
		angle = math.Pi / 2
	} else {
		angle = math.Atan2(p.Fy, p.Fx)
	}
	if angle < 0 {
		angle += 2 * math.Pi
	}
	// A tiny negative angle plus 2π rounds to exactly 2π.
	if angle >= 2*math.Pi {
		angle -= 2 * math.Pi
	}

	deg := angle * 180 / math.Pi
	if deg >= 360 {
		deg -= 360
	}
	p.Angle = deg
}

func ResolveAll(s Surface, mode AngleMode) {
	for i := range s {
		Resolve(&s[i], mode)
	}
}
