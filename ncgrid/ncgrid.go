// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ncgrid reads gridded ice-sheet model output
// stored as NetCDF files.
//
// A model file is expected to contain
// one-dimensional x and y projection coordinate variables
// and map-plane variables laid out as [y, x],
// or [time, y, x] for time series.
package ncgrid

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom/proj"
	"github.com/ctessum/sparse"
)

// Default projection of the model grid,
// a polar stereographic projection over Greenland
// (the parameters of EPSG:3413).
const DefaultProj4 = "+proj=stere +lat_0=90 +lat_ts=70 +lon_0=-45 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs"

// Names accepted for the projection coordinate variables.
var (
	xNames = []string{"x", "x1"}
	yNames = []string{"y", "y1"}
)

// A File is an open NetCDF model output file.
type File struct {
	name string
	ff   *os.File
	f    *cdf.File
}

// Open opens a NetCDF file for reading.
func Open(name string) (*File, error) {
	ff, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	f, err := cdf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return &File{name: name, ff: ff, f: f}, nil
}

// Close closes the file.
func (f *File) Close() error {
	return f.ff.Close()
}

// Name returns the name used to open the file.
func (f *File) Name() string { return f.name }

// Variables returns the names of the variables
// defined in the file.
func (f *File) Variables() []string {
	return f.f.Header.Variables()
}

// HasVariable returns true if a variable with the given name
// is defined in the file.
func (f *File) HasVariable(name string) bool {
	for _, v := range f.f.Header.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

// Coords returns the x and y projection coordinates
// of the model grid.
func (f *File) Coords() (x, y []float64, err error) {
	xv, err := f.coord(xNames)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", f.name, err)
	}
	yv, err := f.coord(yNames)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", f.name, err)
	}
	return xv, yv, nil
}

func (f *File) coord(names []string) ([]float64, error) {
	for _, n := range names {
		if !f.HasVariable(n) {
			continue
		}
		v, err := f.read(n, nil, nil, -1)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %v", n, err)
		}
		if len(v) < 2 {
			return nil, fmt.Errorf("coordinate %q: found %d values, want at least 2", n, len(v))
		}
		return v, nil
	}
	return nil, fmt.Errorf("no coordinate variable found (expecting one of %v)", names)
}

// Field reads a map-plane variable into a dense array
// with shape [y, x].
// For a variable with a time dimension,
// only the first record is read.
func (f *File) Field(name string) (*sparse.DenseArray, error) {
	if !f.HasVariable(name) {
		return nil, fmt.Errorf("on file %q: variable %q not found", f.name, name)
	}

	dims := f.f.Header.Lengths(name)
	switch len(dims) {
	case 2:
		v, err := f.read(name, nil, nil, -1)
		if err != nil {
			return nil, fmt.Errorf("on file %q: variable %q: %v", f.name, name, err)
		}
		data := sparse.ZerosDense(dims[0], dims[1])
		copy(data.Elements, v)
		return data, nil
	case 3:
		ny, nx := dims[1], dims[2]
		begin := []int{0, 0, 0}
		end := []int{1, ny, nx}
		v, err := f.read(name, begin, end, ny*nx)
		if err != nil {
			return nil, fmt.Errorf("on file %q: variable %q: %v", f.name, name, err)
		}
		data := sparse.ZerosDense(ny, nx)
		copy(data.Elements, v)
		return data, nil
	}
	return nil, fmt.Errorf("on file %q: variable %q: found %d dimensions, want 2 or 3", f.name, name, len(dims))
}

// read reads n values of a variable as float64,
// regardless of the type stored in the file.
func (f *File) read(name string, begin, end []int, n int) ([]float64, error) {
	r := f.f.Reader(name, begin, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, err
	}

	switch b := buf.(type) {
	case []float64:
		return b, nil
	case []float32:
		v := make([]float64, len(b))
		for i, x := range b {
			v[i] = float64(x)
		}
		return v, nil
	case []int32:
		v := make([]float64, len(b))
		for i, x := range b {
			v[i] = float64(x)
		}
		return v, nil
	case []int16:
		v := make([]float64, len(b))
		for i, x := range b {
			v[i] = float64(x)
		}
		return v, nil
	case []int8:
		v := make([]float64, len(b))
		for i, x := range b {
			v[i] = float64(x)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported data type %T", buf)
}

// Attr returns a text attribute of a variable.
// Use an empty variable name for a global attribute.
func (f *File) Attr(v, name string) (string, bool) {
	a := f.f.Header.GetAttribute(v, name)
	if a == nil {
		return "", false
	}
	s, ok := a.(string)
	return s, ok
}

// Units returns the units attribute of a variable,
// or an empty string if undefined.
func (f *File) Units(name string) string {
	u, _ := f.Attr(name, "units")
	return u
}

// FillValue returns the fill value of a variable,
// or false if undefined.
func (f *File) FillValue(name string) (float64, bool) {
	a := f.f.Header.GetAttribute(name, "_FillValue")
	if a == nil {
		return 0, false
	}
	switch v := a.(type) {
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	case []float32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	}
	return 0, false
}

// SR returns the spatial reference of the model grid.
// The projection is taken from a global "proj4" attribute,
// or from a "proj4_params" attribute
// of the grid mapping variable;
// if neither is present,
// the default polar stereographic projection is used.
func (f *File) SR() (*proj.SR, error) {
	p4 := f.Proj4()
	sr, err := proj.Parse(p4)
	if err != nil {
		return nil, fmt.Errorf("on file %q: projection %q: %v", f.name, p4, err)
	}
	return sr, nil
}

// Proj4 returns the projection of the model grid
// as a proj4 parameter string.
func (f *File) Proj4() string {
	if s, ok := f.Attr("", "proj4"); ok {
		return s
	}
	if s, ok := f.Attr("mapping", "proj4_params"); ok {
		return s
	}
	return DefaultProj4
}
