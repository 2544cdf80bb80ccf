// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package flux computes map-plane discharge fluxes
// at the marine margin of an ice-sheet model.
//
// Discharge gates are the grid cells
// where a cumulative discharge variable is below a threshold.
// At each gate,
// the ice thickness, gate depth, and vertically averaged speed
// are averaged over a 3 x 3 cell stencil,
// and the flux through the gate
// is the averaged thickness times the cell width
// times the averaged speed.
package flux

import (
	"fmt"
	"math"
	"slices"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/stat"
)

// A Gate is a discharge gate cell.
type Gate struct {
	// Grid indices of the cell
	I, J int

	// Cumulative discharge at the cell
	Discharge float64

	// Stencil-averaged ice thickness in meters
	IceThk float64

	// Stencil-averaged gate depth in meters,
	// from the bed topography below sea level
	GateThk float64

	// Stencil-averaged vertically averaged ice speed,
	// in the units of the velocity input
	Speed float64
}

// Area returns the cross-sectional area of the gate
// in square meters,
// for a given cell width.
func (g Gate) Area(dx float64) float64 {
	return g.IceThk * dx
}

// An Analysis is the set of discharge gates
// found in a model output file.
type Analysis struct {
	Gates []Gate

	dx float64
}

// Fields are the input rasters of a discharge analysis,
// all with shape [y, x]:
// ice thickness (thk),
// bed topography (topg),
// the vertically averaged velocity components (ubar, vbar),
// and the cumulative discharge variable.
type Fields struct {
	Thk, Topg    *sparse.DenseArray
	Ubar, Vbar   *sparse.DenseArray
	Discharge    *sparse.DenseArray
	Dx           float64
	MinDischarge float64
}

// stencil is the half width of the averaging window.
const stencil = 1

// Discharge finds the discharge gates of a model state.
func Discharge(f Fields) (*Analysis, error) {
	if err := sameShape(f.Thk, f.Topg, f.Ubar, f.Vbar, f.Discharge); err != nil {
		return nil, err
	}
	ny := f.Thk.Shape[0]
	nx := f.Thk.Shape[1]

	a := &Analysis{dx: f.Dx}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			d := f.Discharge.Get(j, i)
			if d == 0 || d >= f.MinDischarge {
				continue
			}

			g := Gate{I: i, J: j, Discharge: d}
			var nThk, nGate, nSpeed int
			for sj := -stencil; sj <= stencil; sj++ {
				for si := -stencil; si <= stencil; si++ {
					// periodic stencil
					r := ((j+sj)%ny + ny) % ny
					c := ((i+si)%nx + nx) % nx

					if thk := f.Thk.Get(r, c); thk > 0 {
						g.IceThk += thk
						nThk++
					}
					if topg := f.Topg.Get(r, c); topg < 0 {
						g.GateThk += -topg
						nGate++
					}
					u := f.Ubar.Get(r, c)
					v := f.Vbar.Get(r, c)
					if s := math.Hypot(u, v); s > 0 {
						g.Speed += s
						nSpeed++
					}
				}
			}
			if nThk > 0 {
				g.IceThk /= float64(nThk)
			}
			if nGate > 0 {
				g.GateThk /= float64(nGate)
			}
			if nSpeed > 0 {
				g.Speed /= float64(nSpeed)
			}
			a.Gates = append(a.Gates, g)
		}
	}
	return a, nil
}

func sameShape(arrays ...*sparse.DenseArray) error {
	for _, a := range arrays {
		if a == nil {
			return fmt.Errorf("undefined input raster")
		}
		if len(a.Shape) != 2 {
			return fmt.Errorf("found %d dimensions, want 2", len(a.Shape))
		}
		if a.Shape[0] != arrays[0].Shape[0] || a.Shape[1] != arrays[0].Shape[1] {
			return fmt.Errorf("raster shapes do not match: %v and %v", a.Shape, arrays[0].Shape)
		}
	}
	return nil
}

// Area returns the cumulative cross-sectional area
// of all gates,
// in square meters.
func (a *Analysis) Area() float64 {
	var sum float64
	for _, g := range a.Gates {
		sum += g.Area(a.dx)
	}
	return sum
}

// Flux returns the cumulative flux through all gates,
// the cross-sectional area of each gate
// times its averaged speed.
func (a *Analysis) Flux() float64 {
	var sum float64
	for _, g := range a.Gates {
		sum += g.Area(a.dx) * g.Speed
	}
	return sum
}

// MedianThickness returns the median
// of the averaged ice thickness over all gates.
func (a *Analysis) MedianThickness() float64 {
	if len(a.Gates) == 0 {
		return 0
	}
	thk := make([]float64, 0, len(a.Gates))
	for _, g := range a.Gates {
		thk = append(thk, g.IceThk)
	}
	slices.Sort(thk)
	return stat.Quantile(0.5, stat.Empirical, thk, nil)
}
