package field

import (
	"math"
	"time"
)

// Coulomb constant K (N·m²/C²) and elementary charge Q (C). Every electron
// carries the same charge.
const (
	K = 8987551792.3
	Q = 1.602176634e-19
)

const (
	DefaultElectrons = 1000
	MaxElectrons     = 2_000_000_000
)

// Particle is a single electron on the surface. Fx and Fy are written only by
// the accumulator; Fnet and Angle only by the resolver.
type Particle struct {
	X, Y   float64
	Fx, Fy float64
	Fnet   float64
	Angle  float64 // degrees in [0, 360)
}

type Surface []Particle

func (s Surface) Clone() Surface {
	c := make(Surface, len(s))
	copy(c, s)
	return c
}

// Pairs is the number of unordered pairs on a surface of n electrons.
func Pairs(n int) int64 {
	if n < 2 {
		return 0
	}
	return int64(n) * int64(n-1) / 2
}

// NetForce returns the vector sum of all accumulated forces. By Newton's
// third law it should be zero up to rounding.
func (s Surface) NetForce() (fx, fy float64) {
	for i := range s {
		fx += s[i].Fx
		fy += s[i].Fy
	}
	return
}

func (s Surface) IsValid() bool {
	for i := range s {
		p := &s[i]
		for _, v := range [...]float64{p.X, p.Y, p.Fx, p.Fy} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// AngleMode selects how the resolver treats a zero X component.
type AngleMode int

const (
	// AngleReference reports π/2 whenever Fx == 0, whatever the sign of Fy.
	AngleReference AngleMode = iota
	// AnglePhysical always uses atan2, so Fx == 0 with Fy < 0 gives 270°.
	AnglePhysical
)

func (m AngleMode) String() string {
	switch m {
	case AngleReference:
		return "reference"
	case AnglePhysical:
		return "physical"
	default:
		return "unknown"
	}
}

func ParseAngleMode(s string) (AngleMode, error) {
	switch s {
	case "", "reference":
		return AngleReference, nil
	case "physical":
		return AnglePhysical, nil
	default:
		return 0, invalidf("unknown angle mode %q (want reference or physical)", s)
	}
}

type Metric interface {
	Name() string
	Observe(p Particle)
	Value() float64
	Reset()
}

type Observer interface {
	OnParticle(i int, p Particle)
}

type Options struct {
	Electrons int
	Seed      int64
	Generator string
	Workers   int
	AngleMode AngleMode
}

func DefaultOptions() Options {
	return Options{
		Electrons: DefaultElectrons,
		Seed:      1,
		Generator: "libc",
		Workers:   1,
		AngleMode: AngleReference,
	}
}

type Timings struct {
	Generate   time.Duration
	Accumulate time.Duration
	Resolve    time.Duration
}

func (t Timings) Total() time.Duration {
	return t.Generate + t.Accumulate + t.Resolve
}

type Result struct {
	Surface Surface
	Pairs   int64
	Timings Timings
	Metrics map[string]float64
}
