// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package profile

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// A Sampler extracts values of a gridded field
// at arbitrary projected coordinates,
// either from the nearest cell
// or by bilinear interpolation
// between the four surrounding cell centers.
type Sampler struct {
	x, y   []float64
	dx, dy float64
	data   *sparse.DenseArray
}

// NewSampler returns a sampler for a field
// with shape [y, x]
// over regularly spaced cell center coordinates.
func NewSampler(x, y []float64, data *sparse.DenseArray) (*Sampler, error) {
	if len(x) < 2 || len(y) < 2 {
		return nil, fmt.Errorf("grid too small: %d x %d cells", len(x), len(y))
	}
	if len(data.Shape) != 2 || data.Shape[0] != len(y) || data.Shape[1] != len(x) {
		return nil, fmt.Errorf("field shape %v does not match %d x %d grid", data.Shape, len(y), len(x))
	}
	return &Sampler{
		x:    x,
		y:    y,
		dx:   x[1] - x[0],
		dy:   y[1] - y[0],
		data: data,
	}, nil
}

// Cell returns the column and row of the grid cell
// whose center is nearest to the given coordinates.
func (s *Sampler) Cell(x, y float64) (i, j int, ok bool) {
	i = int(math.Round((x - s.x[0]) / s.dx))
	j = int(math.Round((y - s.y[0]) / s.dy))
	if i < 0 || i >= len(s.x) || j < 0 || j >= len(s.y) {
		return 0, 0, false
	}
	return i, j, true
}

// Nearest returns the value of the cell
// nearest to the given coordinates.
func (s *Sampler) Nearest(x, y float64) (float64, bool) {
	i, j, ok := s.Cell(x, y)
	if !ok {
		return 0, false
	}
	return s.data.Get(j, i), true
}

// Bilinear returns the value at the given coordinates
// interpolated between the four surrounding cell centers.
func (s *Sampler) Bilinear(x, y float64) (float64, bool) {
	i := int(math.Floor((x - s.x[0]) / s.dx))
	j := int(math.Floor((y - s.y[0]) / s.dy))
	if i < 0 || i+1 >= len(s.x) || j < 0 || j+1 >= len(s.y) {
		return 0, false
	}

	alpha := (x - s.x[i]) / s.dx
	beta := (y - s.y[j]) / s.dy

	a := s.data.Get(j, i)
	b := s.data.Get(j+1, i)
	c := s.data.Get(j+1, i+1)
	d := s.data.Get(j, i+1)

	v := (1-alpha)*(1-beta)*a + (1-alpha)*beta*b +
		alpha*beta*c + alpha*(1-beta)*d
	return v, true
}

// Dedup returns a new path
// with consecutive points that fall in the same grid cell
// reduced to the first one,
// keeping the original distances.
func (s *Sampler) Dedup(p Path) Path {
	var np Path
	li, lj := -1, -1
	for _, pt := range p {
		i, j, ok := s.Cell(pt.X, pt.Y)
		if !ok {
			np = append(np, pt)
			li, lj = -1, -1
			continue
		}
		if i == li && j == lj {
			continue
		}
		np = append(np, pt)
		li, lj = i, j
	}
	return np
}

// Sample extracts the value of the field
// at every point of the path.
// Points outside the grid are reported as NaN.
func (s *Sampler) Sample(p Path, bilinear bool) []float64 {
	v := make([]float64, len(p))
	for i, pt := range p {
		var x float64
		var ok bool
		if bilinear {
			x, ok = s.Bilinear(pt.X, pt.Y)
		} else {
			x, ok = s.Nearest(pt.X, pt.Y)
		}
		if !ok {
			v[i] = math.NaN()
			continue
		}
		v[i] = x
	}
	return v
}
