package field

import "math"

// kqq is the numerator of the Coulomb law for two identical charges.
const kqq = K * Q * Q

// PairForce returns the force on electron a exerted by electron b. The force
// on b is the exact negation.
func PairForce(a, b Particle) (fx, fy float64, ok bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	theta, ok := DirectionAngle(dx, dy)
	if !ok {
		return 0, 0, false
	}

	f := kqq / (dx*dx + dy*dy)
	sin, cos := math.Sincos(theta)
	return cos * f, sin * f, true
}

// Accumulate adds the Coulomb force of every unordered pair to both electrons,
// visiting pairs in canonical order (i ascending, then j > i ascending). It
// returns the number of pairs evaluated. A coincident pair aborts the run with
// a *DegenerateError; forces are left partially accumulated in that case.
func Accumulate(s Surface) (int64, error) {
	var pairs int64
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			fx, fy, ok := PairForce(s[i], s[j])
			if !ok {
				return pairs, &DegenerateError{I: i, J: j, X: s[i].X, Y: s[i].Y}
			}
			s[i].Fx += fx
			s[j].Fx -= fx
			s[i].Fy += fy
			s[j].Fy -= fy
			pairs++
		}
	}
	return pairs, nil
}
