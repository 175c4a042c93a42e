package field

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Below this many electrons the goroutine setup costs more than it saves.
const parallelMinElectrons = 64

// PartitionRows splits the outer rows [0, n) of the pair triangle into parts
// contiguous bands carrying roughly equal pair counts. Band k covers rows
// [bounds[k], bounds[k+1]).
func PartitionRows(n, parts int) []int {
	if parts < 1 {
		parts = 1
	}
	bounds := make([]int, 1, parts+1)

	total := float64(Pairs(n))
	var cum float64
	k := 1
	for i := 0; i < n && k < parts; i++ {
		cum += float64(n - 1 - i)
		for k < parts && cum >= total*float64(k)/float64(parts) {
			bounds = append(bounds, i+1)
			k++
		}
	}
	for len(bounds) < parts+1 {
		bounds = append(bounds, n)
	}
	return bounds
}

// AccumulateParallel is Accumulate spread over workers goroutines. Each worker
// owns a band of outer rows and private force buffers, so every pair is still
// evaluated once and no shared force is written concurrently. Buffers are
// folded back in worker order, which keeps the output stable for a given
// worker count but not bit-identical to the sequential order.
func AccumulateParallel(ctx context.Context, s Surface, workers int) (int64, error) {
	n := len(s)
	if workers <= 1 || n < parallelMinElectrons {
		return Accumulate(s)
	}
	if workers > n {
		workers = n
	}

	bounds := PartitionRows(n, workers)
	fx := make([][]float64, workers)
	fy := make([][]float64, workers)
	counts := make([]int64, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			lx := make([]float64, n)
			ly := make([]float64, n)
			fx[w], fy[w] = lx, ly

			for i := bounds[w]; i < bounds[w+1]; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				for j := i + 1; j < n; j++ {
					px, py, ok := PairForce(s[i], s[j])
					if !ok {
						return &DegenerateError{I: i, J: j, X: s[i].X, Y: s[i].Y}
					}
					lx[i] += px
					lx[j] -= px
					ly[i] += py
					ly[j] -= py
					counts[w]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var pairs int64
	for w := 0; w < workers; w++ {
		for i := range s {
			s[i].Fx += fx[w][i]
			s[i].Fy += fy[w][i]
		}
		pairs += counts[w]
	}
	return pairs, nil
}
