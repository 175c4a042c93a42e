// Package bench times force field runs over a grid of electron counts and
// worker counts.
package bench

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/coulomb/internal/field"
)

type Case struct {
	Electrons int
	Workers   int
}

func (c Case) String() string {
	return fmt.Sprintf("n=%d w=%d", c.Electrons, max(c.Workers, 1))
}

type Sample struct {
	Case
	Pairs       int64
	Best        time.Duration
	Mean        time.Duration
	PairsPerSec float64
}

type Sweep struct {
	base    field.Options
	cases   []Case
	repeats int
}

// NewSweep crosses every size with every worker count. base supplies the
// seed, generator and angle mode.
func NewSweep(base field.Options, sizes, workers []int, repeats int) (*Sweep, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no bench sizes", field.ErrInvalidConfiguration)
	}
	if len(workers) == 0 {
		workers = []int{base.Workers}
	}
	if repeats < 1 {
		repeats = 1
	}

	cases := make([]Case, 0, len(sizes)*len(workers))
	for _, n := range sizes {
		if err := field.ValidateCount(n); err != nil {
			return nil, err
		}
		for _, w := range workers {
			if w < 0 {
				return nil, fmt.Errorf("%w: workers cannot be negative (got %d)", field.ErrInvalidConfiguration, w)
			}
			cases = append(cases, Case{Electrons: n, Workers: w})
		}
	}
	return &Sweep{base: base, cases: cases, repeats: repeats}, nil
}

func (s *Sweep) Cases() []Case { return s.cases }

// RunCase runs one case repeats times and keeps the fastest accumulation.
func (s *Sweep) RunCase(ctx context.Context, c Case) (Sample, error) {
	opts := s.base
	opts.Electrons = c.Electrons
	opts.Workers = c.Workers

	sample := Sample{Case: c}
	var total time.Duration
	sim := field.New()
	for r := 0; r < s.repeats; r++ {
		res, err := sim.Run(ctx, opts)
		if err != nil {
			return Sample{}, fmt.Errorf("%s: %w", c, err)
		}
		d := res.Timings.Accumulate
		total += d
		if r == 0 || d < sample.Best {
			sample.Best = d
		}
		sample.Pairs = res.Pairs
	}

	sample.Mean = total / time.Duration(s.repeats)
	if sample.Best > 0 {
		sample.PairsPerSec = float64(sample.Pairs) / sample.Best.Seconds()
	}
	return sample, nil
}

// Run executes every case in order, calling onSample after each one.
func (s *Sweep) Run(ctx context.Context, onSample func(Sample)) ([]Sample, error) {
	samples := make([]Sample, 0, len(s.cases))
	for _, c := range s.cases {
		if err := ctx.Err(); err != nil {
			return samples, err
		}
		sample, err := s.RunCase(ctx, c)
		if err != nil {
			return samples, err
		}
		samples = append(samples, sample)
		if onSample != nil {
			onSample(sample)
		}
	}
	return samples, nil
}

func Table(w io.Writer, samples []Sample) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ELECTRONS\tWORKERS\tPAIRS\tBEST\tMEAN\tPAIRS/SEC")
	for _, s := range samples {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%v\t%v\t%.0f\n",
			s.Electrons, max(s.Workers, 1), s.Pairs, s.Best, s.Mean, s.PairsPerSec)
	}
	return tw.Flush()
}

// Plot draws throughput in millions of pairs per second, one point per case.
func Plot(samples []Sample) string {
	if len(samples) == 0 {
		return ""
	}
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.PairsPerSec / 1e6
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption("accumulate throughput (Mpairs/s) per case"),
	)
}
