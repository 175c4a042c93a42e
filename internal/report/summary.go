package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/coulomb/internal/field"
)

// Summary renders a styled overview of a run.
func Summary(w io.Writer, opts field.Options, res *field.Result) error {
	rows := [][2]string{
		{"electrons", fmt.Sprintf("%d", len(res.Surface))},
		{"pairs", fmt.Sprintf("%d", res.Pairs)},
		{"generator", fmt.Sprintf("%s (seed %d)", opts.Generator, opts.Seed)},
		{"workers", fmt.Sprintf("%d", max(opts.Workers, 1))},
		{"angle mode", opts.AngleMode.String()},
		{"generate", res.Timings.Generate.String()},
		{"accumulate", res.Timings.Accumulate.String()},
		{"resolve", res.Timings.Resolve.String()},
		{"pairs/sec", fmt.Sprintf("%.0f", PairsPerSecond(res.Pairs, res.Timings.Accumulate))},
	}

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, [2]string{name, fmt.Sprintf("%.6G", res.Metrics[name])})
	}

	var b strings.Builder
	b.WriteString(Title.Render("coulomb run"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(Label.Render(r[0]))
		b.WriteString(Value.Render(r[1]))
	}

	if v, ok := res.Metrics["finite"]; ok {
		b.WriteString("\n")
		if v == 1 {
			b.WriteString(Good.Render("all forces finite"))
		} else {
			b.WriteString(Warn.Render(fmt.Sprintf("%.2f%% of forces overflowed", (1-v)*100)))
		}
	}

	_, err := fmt.Fprintln(w, Panel.Render(b.String()))
	return err
}

func PairsPerSecond(pairs int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(pairs) / d.Seconds()
}

// AngleBins counts electrons per direction sector of width 360/bins degrees.
func AngleBins(s field.Surface, bins int) []float64 {
	if bins < 1 {
		bins = 1
	}
	counts := make([]float64, bins)
	width := 360.0 / float64(bins)
	for _, p := range s {
		k := int(math.Floor(p.Angle / width))
		if k < 0 {
			k = 0
		}
		if k >= bins {
			k = bins - 1
		}
		counts[k]++
	}
	return counts
}

// AngleHistogram plots the distribution of net force directions.
func AngleHistogram(s field.Surface, bins int) string {
	return asciigraph.Plot(AngleBins(s, bins),
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("net force direction, %d sectors over 0..360°", bins)),
	)
}
