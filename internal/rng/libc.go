package rng

// RandMax is the largest value Libc.Rand returns, matching glibc's RAND_MAX.
const RandMax = 2147483647

const (
	libcDegree = 31
	libcSep    = 3
	libcWarmup = libcDegree * 10
)

// Libc reproduces the glibc rand()/srand() stream (the TYPE_3 additive
// feedback generator behind random_r). Seeding with 1 matches a C program
// that calls srand(1).
type Libc struct {
	state [libcDegree]uint32
	f, r  int
}

func NewLibc(seed uint32) *Libc {
	g := &Libc{}
	g.Seed(seed)
	return g
}

func (g *Libc) Seed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	word := int32(seed)
	g.state[0] = uint32(word)
	for i := 1; i < libcDegree; i++ {
		hi := int64(word) / 127773
		lo := int64(word) % 127773
		w := 16807*lo - 2836*hi
		if w < 0 {
			w += 2147483647
		}
		word = int32(w)
		g.state[i] = uint32(word)
	}
	g.f, g.r = libcSep, 0
	for i := 0; i < libcWarmup; i++ {
		g.Rand()
	}
}

// Rand returns the next value in [0, RandMax].
func (g *Libc) Rand() int32 {
	g.state[g.f] += g.state[g.r]
	out := int32(g.state[g.f] >> 1)
	g.f++
	if g.f >= libcDegree {
		g.f = 0
		g.r++
	} else {
		g.r++
		if g.r >= libcDegree {
			g.r = 0
		}
	}
	return out
}

// Uniform returns rand()/RAND_MAX, a value in the closed interval [0, 1].
func (g *Libc) Uniform() float64 {
	return float64(g.Rand()) / RandMax
}

func (g *Libc) Name() string { return "libc" }
