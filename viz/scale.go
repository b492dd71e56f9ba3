package viz

import "gonum.org/v1/gonum/floats"

// Scale is a linear map from a data domain to a pixel range.
type Scale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewScale builds a scale over the extent of values. An empty or constant
// domain is degenerate and maps every value to the middle of the range.
func NewScale(values []float64, r0, r1 float64) Scale {
	if len(values) == 0 {
		return Scale{r0: r0, r1: r1}
	}
	return Scale{d0: floats.Min(values), d1: floats.Max(values), r0: r0, r1: r1}
}

// Map converts a data value to a pixel coordinate.
func (s Scale) Map(v float64) float64 {
	if s.d0 == s.d1 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Domain returns the data extent.
func (s Scale) Domain() (lo, hi float64) { return s.d0, s.d1 }

// Range returns the pixel interval.
func (s Scale) Range() (start, end float64) { return s.r0, s.r1 }
