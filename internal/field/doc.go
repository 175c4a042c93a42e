// Package field computes the static electrostatic force field acting on a set
// of electrons scattered across a 1m x 1m surface.
//
// A run is a single sequential pipeline:
//
//   - [Generate]: seeds a [Surface] with n electrons at pseudo-random positions
//   - [Accumulate]: visits every unordered pair once and applies the Coulomb
//     force to both electrons (action and reaction)
//   - [Resolve]: turns each accumulated (Fx, Fy) into a magnitude and an angle
//     in degrees
//
// [Simulator] wires the three together and feeds metrics and observers.
//
// # Example
//
//	sim := field.New()
//	result, err := sim.Run(ctx, field.Options{Electrons: 1000, Seed: 1})
//
// # Parallelism
//
// [AccumulateParallel] splits the pair triangle into row bands owned by
// separate workers. Every pair is still evaluated exactly once, but the
// floating point summation order differs from [Accumulate], so results may
// differ from the sequential output in the low-order bits.
package field
