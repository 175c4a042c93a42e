package field

import "github.com/san-kum/coulomb/internal/rng"

// ValidateCount checks an electron count against [1, MaxElectrons].
func ValidateCount(n int) error {
	switch {
	case n == 0:
		return invalidf("invalid value for electron count")
	case n < 0:
		return invalidf("electron count cannot be a negative number")
	case n > MaxElectrons:
		return invalidf("electron count cannot be more than %d", MaxElectrons)
	}
	return nil
}

// Generate scatters n electrons over the unit square. Electron i takes its x
// then its y from src before electron i+1 draws anything, so the same source
// and seed always reproduce the same surface. Forces start at zero.
func Generate(n int, src rng.Source) (Surface, error) {
	if err := ValidateCount(n); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, invalidf("nil random source")
	}

	s := make(Surface, n)
	for i := range s {
		s[i].X = src.Uniform()
		s[i].Y = src.Uniform()
	}
	return s, nil
}
