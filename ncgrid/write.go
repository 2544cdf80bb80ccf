// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ncgrid

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// A Domain describes a regular simulation grid
// over a projected map-plane extent.
// Coordinates and spacing are in meters.
type Domain struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
	Dx, Dy     float64

	// Proj4 is the projection of the grid.
	// If empty, the default projection is used.
	Proj4 string
}

// Valid returns an error if the domain
// does not define a usable grid.
func (d Domain) Valid() error {
	if d.Xmin >= d.Xmax {
		return fmt.Errorf("invalid domain: x extent [%g, %g]", d.Xmin, d.Xmax)
	}
	if d.Ymin >= d.Ymax {
		return fmt.Errorf("invalid domain: y extent [%g, %g]", d.Ymin, d.Ymax)
	}
	if d.Dx <= 0 || d.Dy <= 0 {
		return fmt.Errorf("invalid domain: spacing %g x %g", d.Dx, d.Dy)
	}
	return nil
}

// Coords returns the cell center coordinates of the grid.
func (d Domain) Coords() (x, y []float64) {
	nx := int((d.Xmax-d.Xmin)/d.Dx) + 1
	ny := int((d.Ymax-d.Ymin)/d.Dy) + 1

	x = make([]float64, nx)
	for i := range x {
		x[i] = d.Xmin + float64(i)*d.Dx
	}
	y = make([]float64, ny)
	for j := range y {
		y[j] = d.Ymin + float64(j)*d.Dy
	}
	return x, y
}

// Write writes the grid as a NetCDF file
// with x and y coordinate variables
// and two-dimensional lat and lon variables
// computed by inverse projection.
func (d Domain) Write(name string) (err error) {
	if err := d.Valid(); err != nil {
		return err
	}

	p4 := d.Proj4
	if p4 == "" {
		p4 = DefaultProj4
	}
	sr, err := proj.Parse(p4)
	if err != nil {
		return fmt.Errorf("projection %q: %v", p4, err)
	}
	ll, err := proj.Parse("+proj=longlat")
	if err != nil {
		return err
	}
	inv, err := sr.NewTransform(ll)
	if err != nil {
		return fmt.Errorf("projection %q: %v", p4, err)
	}

	x, y := d.Coords()
	nx, ny := len(x), len(y)

	lat := make([]float64, ny*nx)
	lon := make([]float64, ny*nx)
	for j, yv := range y {
		for i, xv := range x {
			g, err := geom.Point{X: xv, Y: yv}.Transform(inv)
			if err != nil {
				return fmt.Errorf("at cell (%d, %d): %v", i, j, err)
			}
			p := g.(geom.Point)
			lon[j*nx+i] = p.X
			lat[j*nx+i] = p.Y
		}
	}

	h := cdf.NewHeader([]string{"x", "y"}, []int{nx, ny})
	h.AddAttribute("", "proj4", p4)
	h.AddAttribute("", "Conventions", "CF-1.4")

	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddAttribute("x", "units", "m")
	h.AddAttribute("x", "standard_name", "projection_x_coordinate")
	h.AddAttribute("x", "axis", "X")

	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddAttribute("y", "units", "m")
	h.AddAttribute("y", "standard_name", "projection_y_coordinate")
	h.AddAttribute("y", "axis", "Y")

	h.AddVariable("lat", []string{"y", "x"}, []float64{0})
	h.AddAttribute("lat", "units", "degrees_north")
	h.AddAttribute("lat", "standard_name", "latitude")

	h.AddVariable("lon", []string{"y", "x"}, []float64{0})
	h.AddAttribute("lon", "units", "degrees_east")
	h.AddAttribute("lon", "standard_name", "longitude")

	h.Define()

	ff, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := ff.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	for _, v := range []struct {
		name string
		data []float64
	}{
		{"x", x},
		{"y", y},
		{"lat", lat},
		{"lon", lon},
	} {
		end := f.Header.Lengths(v.name)
		start := make([]int, len(end))
		w := f.Writer(v.name, start, end)
		if _, err := w.Write(v.data); err != nil {
			return fmt.Errorf("on file %q: variable %q: %v", name, v.name, err)
		}
	}
	return nil
}
