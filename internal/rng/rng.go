// Package rng holds the seeded generators used to scatter electrons.
package rng

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

var ErrUnknownGenerator = errors.New("rng: unknown generator")

// Source yields uniform coordinates in [0, 1]. Implementations are
// deterministic for a given seed and not safe for concurrent use.
type Source interface {
	Name() string
	Uniform() float64
}

type PCG struct {
	r *rand.Rand
}

func NewPCG(seed uint64) *PCG {
	return &PCG{r: rand.New(rand.NewPCG(seed, seed))}
}

func (p *PCG) Uniform() float64 { return p.r.Float64() }
func (p *PCG) Name() string     { return "pcg" }

var factories = map[string]func(seed int64) Source{
	"libc": func(seed int64) Source { return NewLibc(uint32(seed)) },
	"pcg":  func(seed int64) Source { return NewPCG(uint64(seed)) },
}

func New(name string, seed int64) (Source, error) {
	if name == "" {
		name = "libc"
	}
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownGenerator, name, Names())
	}
	return f(seed), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
