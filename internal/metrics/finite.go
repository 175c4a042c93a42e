package metrics

import (
	"math"

	"github.com/san-kum/coulomb/internal/field"
)

// Finite reports the fraction of electrons whose resolved force is a finite
// number. Anything below 1 means the force sum overflowed.
type Finite struct {
	name    string
	bad     int
	samples int
}

func NewFinite() *Finite {
	return &Finite{name: "finite"}
}

func (f *Finite) Name() string { return f.name }

func (f *Finite) Observe(p field.Particle) {
	f.samples++
	if math.IsNaN(p.Fnet) || math.IsInf(p.Fnet, 0) || math.IsNaN(p.Angle) {
		f.bad++
	}
}

func (f *Finite) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.bad)/float64(f.samples)
}

func (f *Finite) Reset() {
	f.bad = 0
	f.samples = 0
}

// Defaults returns the metrics attached to every CLI run.
func Defaults() []field.Metric {
	return []field.Metric{NewNetForceSum(), NewMaxForce(), NewMeanForce(), NewFinite()}
}
