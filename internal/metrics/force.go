package metrics

import (
	"math"

	"github.com/san-kum/coulomb/internal/field"
)

// NetForceSum tracks the magnitude of the vector sum of every observed force.
// Pairwise forces cancel, so over a whole surface it should stay near zero.
type NetForceSum struct {
	name   string
	fx, fy float64
}

func NewNetForceSum() *NetForceSum {
	return &NetForceSum{name: "net_force_sum"}
}

func (n *NetForceSum) Name() string { return n.name }

func (n *NetForceSum) Observe(p field.Particle) {
	n.fx += p.Fx
	n.fy += p.Fy
}

func (n *NetForceSum) Value() float64 { return math.Hypot(n.fx, n.fy) }

func (n *NetForceSum) Reset() {
	n.fx = 0
	n.fy = 0
}

type MaxForce struct {
	name string
	max  float64
}

func NewMaxForce() *MaxForce {
	return &MaxForce{name: "max_force"}
}

func (m *MaxForce) Name() string { return m.name }

func (m *MaxForce) Observe(p field.Particle) {
	if p.Fnet > m.max {
		m.max = p.Fnet
	}
}

func (m *MaxForce) Value() float64 { return m.max }
func (m *MaxForce) Reset()         { m.max = 0 }

type MeanForce struct {
	name    string
	total   float64
	samples int
}

func NewMeanForce() *MeanForce {
	return &MeanForce{name: "mean_force"}
}

func (m *MeanForce) Name() string { return m.name }

func (m *MeanForce) Observe(p field.Particle) {
	m.total += p.Fnet
	m.samples++
}

func (m *MeanForce) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanForce) Reset() {
	m.total = 0
	m.samples = 0
}
