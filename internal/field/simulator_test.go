package field_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/coulomb/internal/field"
	"github.com/san-kum/coulomb/internal/metrics"
)

type recorder struct {
	indices []int
}

func (r *recorder) OnParticle(i int, p field.Particle) {
	r.indices = append(r.indices, i)
}

var _ = Describe("Simulator", func() {
	var (
		sim *field.Simulator
		ctx context.Context
	)

	BeforeEach(func() {
		sim = field.New()
		ctx = context.Background()
	})

	Describe("Run", func() {
		It("resolves every electron of the default configuration", func() {
			opts := field.DefaultOptions()
			opts.Electrons = 250

			result, err := sim.Run(ctx, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Surface).To(HaveLen(250))
			Expect(result.Pairs).To(Equal(int64(250 * 249 / 2)))

			for _, p := range result.Surface {
				Expect(p.Fnet).To(BeNumerically(">", 0))
				Expect(p.Angle).To(BeNumerically(">=", 0))
				Expect(p.Angle).To(BeNumerically("<", 360))
			}
		})

		It("is reproducible for the same seed", func() {
			opts := field.DefaultOptions()
			opts.Electrons = 100
			opts.Seed = 7

			a, err := sim.Run(ctx, opts)
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.Run(ctx, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Surface).To(Equal(b.Surface))
		})

		It("reports zero force at 90 degrees for a single electron", func() {
			opts := field.DefaultOptions()
			opts.Electrons = 1

			result, err := sim.Run(ctx, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Pairs).To(BeZero())
			Expect(result.Surface[0].Fnet).To(BeZero())
			Expect(result.Surface[0].Angle).To(BeNumerically("~", 90, 1e-12))
		})

		DescribeTable("rejects invalid electron counts",
			func(n int) {
				opts := field.DefaultOptions()
				opts.Electrons = n

				result, err := sim.Run(ctx, opts)
				Expect(err).To(MatchError(field.ErrInvalidConfiguration))
				Expect(result).To(BeNil())
			},
			Entry("zero", 0),
			Entry("negative", -5),
			Entry("above ceiling", field.MaxElectrons+1),
		)

		It("rejects an unknown generator", func() {
			opts := field.DefaultOptions()
			opts.Generator = "mersenne"

			_, err := sim.Run(ctx, opts)
			Expect(err).To(MatchError(field.ErrInvalidConfiguration))
		})

		It("rejects negative workers", func() {
			opts := field.DefaultOptions()
			opts.Workers = -1

			_, err := sim.Run(ctx, opts)
			Expect(err).To(MatchError(field.ErrInvalidConfiguration))
		})

		It("agrees with the sequential run when parallel", func() {
			opts := field.DefaultOptions()
			opts.Electrons = 300

			seq, err := sim.Run(ctx, opts)
			Expect(err).NotTo(HaveOccurred())

			opts.Workers = 4
			par, err := sim.Run(ctx, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(par.Pairs).To(Equal(seq.Pairs))

			for i := range seq.Surface {
				Expect(par.Surface[i].Fnet).To(BeNumerically("~", seq.Surface[i].Fnet, 1e-6*seq.Surface[i].Fnet))
			}
		})
	})

	Describe("RunSurface", func() {
		It("pushes two electrons on the x axis apart", func() {
			surface := field.Surface{{X: 0, Y: 0}, {X: 1, Y: 0}}

			result, err := sim.RunSurface(ctx, surface, field.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			want := field.K * field.Q * field.Q
			a, b := result.Surface[0], result.Surface[1]
			Expect(a.Fnet).To(BeNumerically("~", want, want*1e-12))
			Expect(b.Fnet).To(BeNumerically("~", want, want*1e-12))
			Expect(a.Angle).To(BeNumerically("~", 180, 1e-9))
			Expect(b.Angle).To(BeNumerically("~", 0, 1e-9))
		})

		It("fails on coincident electrons without a result", func() {
			surface := field.Surface{{X: 0.25, Y: 0.75}, {X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.75}}

			result, err := sim.RunSurface(ctx, surface, field.DefaultOptions())
			Expect(err).To(MatchError(field.ErrDegenerateConfiguration))
			Expect(result).To(BeNil())

			var de *field.DegenerateError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.I).To(Equal(0))
			Expect(de.J).To(Equal(2))
		})

		It("applies the reference tie-break for a vertical net force", func() {
			// The pushes from the two upper electrons cancel in x.
			surface := field.Surface{{X: 0.5, Y: 0.25}, {X: 0.25, Y: 0.75}, {X: 0.75, Y: 0.75}}

			ref, err := sim.RunSurface(ctx, surface.Clone(), field.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			opts := field.DefaultOptions()
			opts.AngleMode = field.AnglePhysical
			phys, err := sim.RunSurface(ctx, surface.Clone(), opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(ref.Surface[0].Fy).To(BeNumerically("<", 0))
			if ref.Surface[0].Fx == 0 {
				Expect(ref.Surface[0].Angle).To(BeNumerically("~", 90, 1e-9))
				Expect(phys.Surface[0].Angle).To(BeNumerically("~", 270, 1e-9))
			} else {
				Expect(phys.Surface[0].Angle).To(BeNumerically("~", 270, 1e-6))
			}
		})
	})

	Describe("metrics and observers", func() {
		It("feeds every electron in generation order", func() {
			rec := &recorder{}
			sim.AddObserver(rec)
			for _, m := range metrics.Defaults() {
				sim.AddMetric(m)
			}

			opts := field.DefaultOptions()
			opts.Electrons = 50
			result, err := sim.Run(ctx, opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.indices).To(HaveLen(50))
			for i, idx := range rec.indices {
				Expect(idx).To(Equal(i))
			}

			Expect(result.Metrics).To(HaveKey("net_force_sum"))
			Expect(result.Metrics["finite"]).To(Equal(1.0))
			Expect(result.Metrics["max_force"]).To(BeNumerically(">=", result.Metrics["mean_force"]))
			Expect(result.Metrics["net_force_sum"]).To(BeNumerically("<", 1e-9*result.Metrics["max_force"]*50))
			Expect(math.IsNaN(result.Metrics["mean_force"])).To(BeFalse())
		})
	})
})
