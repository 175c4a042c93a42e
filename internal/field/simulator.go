package field

import (
	"context"
	"time"

	"github.com/san-kum/coulomb/internal/rng"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run generates a surface, accumulates every pair and resolves each electron.
// On error no partial result is returned.
func (s *Simulator) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src, err := rng.New(opts.Generator, opts.Seed)
	if err != nil {
		return nil, invalidf("%v", err)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}

	start := time.Now()
	surface, err := Generate(opts.Electrons, src)
	if err != nil {
		return nil, err
	}
	result.Timings.Generate = time.Since(start)

	if err := s.evaluate(ctx, surface, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// RunSurface runs the accumulate and resolve phases on a caller supplied
// surface, which is modified in place. opts.Electrons is ignored.
func (s *Simulator) RunSurface(ctx context.Context, surface Surface, opts Options) (*Result, error) {
	opts.Electrons = len(surface)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	if err := s.evaluate(ctx, surface, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Simulator) evaluate(ctx context.Context, surface Surface, opts Options, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	pairs, err := AccumulateParallel(ctx, surface, opts.Workers)
	if err != nil {
		return err
	}
	result.Timings.Accumulate = time.Since(start)

	start = time.Now()
	ResolveAll(surface, opts.AngleMode)
	result.Timings.Resolve = time.Since(start)

	for i, p := range surface {
		for _, m := range s.metrics {
			m.Observe(p)
		}
		for _, obs := range s.observers {
			obs.OnParticle(i, p)
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	result.Surface = surface
	result.Pairs = pairs
	return nil
}

func (o Options) Validate() error {
	if err := ValidateCount(o.Electrons); err != nil {
		return err
	}
	if o.Workers < 0 {
		return invalidf("workers cannot be negative (got %d)", o.Workers)
	}
	if o.AngleMode != AngleReference && o.AngleMode != AnglePhysical {
		return invalidf("unknown angle mode %d", o.AngleMode)
	}
	return nil
}
