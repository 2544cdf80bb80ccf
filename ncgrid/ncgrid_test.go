// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ncgrid_test

import (
	"math"
	"os"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/icevis/icevis/ncgrid"
)

func TestDomainCoords(t *testing.T) {
	d := ncgrid.Domain{
		Xmin: -200000, Xmax: 200000,
		Ymin: -3400000, Ymax: -3000000,
		Dx: 20000, Dy: 40000,
	}
	if err := d.Valid(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	x, y := d.Coords()
	if len(x) != 21 {
		t.Errorf("x: got %d cells, want 21", len(x))
	}
	if len(y) != 11 {
		t.Errorf("y: got %d cells, want 11", len(y))
	}
	if x[0] != d.Xmin || x[len(x)-1] != d.Xmax {
		t.Errorf("x extent: got [%g, %g], want [%g, %g]", x[0], x[len(x)-1], d.Xmin, d.Xmax)
	}
	if y[0] != d.Ymin || y[len(y)-1] != d.Ymax {
		t.Errorf("y extent: got [%g, %g], want [%g, %g]", y[0], y[len(y)-1], d.Ymin, d.Ymax)
	}
	for i := 1; i < len(x); i++ {
		if x[i]-x[i-1] != d.Dx {
			t.Errorf("x spacing: got %g, want %g", x[i]-x[i-1], d.Dx)
		}
	}
}

func TestDomainValid(t *testing.T) {
	tests := map[string]ncgrid.Domain{
		"inverted x": {Xmin: 100, Xmax: -100, Ymin: 0, Ymax: 100, Dx: 10, Dy: 10},
		"inverted y": {Xmin: -100, Xmax: 100, Ymin: 100, Ymax: 0, Dx: 10, Dy: 10},
		"no spacing": {Xmin: -100, Xmax: 100, Ymin: 0, Ymax: 100},
	}
	for name, d := range tests {
		if err := d.Valid(); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestDomainWrite(t *testing.T) {
	d := ncgrid.Domain{
		Xmin: -200000, Xmax: 200000,
		Ymin: -200000, Ymax: 200000,
		Dx: 50000, Dy: 50000,
		Proj4: "+proj=lcc +lat_1=33 +lat_2=45 +lat_0=40 +lon_0=-97 +a=6370997 +b=6370997",
	}

	name := "tmp-grid-for-test.nc"
	defer os.Remove(name)

	if err := d.Write(name); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	f, err := ncgrid.Open(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	defer f.Close()

	x, y, err := f.Coords()
	if err != nil {
		t.Fatalf("error when reading coordinates: %v", err)
	}
	wx, wy := d.Coords()
	compareCoords(t, "x", x, wx)
	compareCoords(t, "y", y, wy)

	for _, v := range []string{"lat", "lon"} {
		if !f.HasVariable(v) {
			t.Errorf("variable %q not found", v)
			continue
		}
		a, err := f.Field(v)
		if err != nil {
			t.Fatalf("variable %q: %v", v, err)
		}
		if a.Shape[0] != len(wy) || a.Shape[1] != len(wx) {
			t.Errorf("variable %q: shape %v, want [%d %d]", v, a.Shape, len(wy), len(wx))
		}
	}
	if u := f.Units("x"); u != "m" {
		t.Errorf("x units: got %q, want %q", u, "m")
	}
	if p4, ok := f.Attr("", "proj4"); !ok || p4 != d.Proj4 {
		t.Errorf("proj4: got %q, want %q", p4, d.Proj4)
	}
}

func TestFieldRecord(t *testing.T) {
	nt, ny, nx := 2, 3, 4

	h := cdf.NewHeader([]string{"time", "y", "x"}, []int{nt, ny, nx})
	h.AddVariable("thk", []string{"time", "y", "x"}, []float32{0})
	h.AddAttribute("thk", "units", "m")
	h.Define()

	name := "tmp-field-for-test.nc"
	defer os.Remove(name)

	ff, err := os.Create(name)
	if err != nil {
		t.Fatalf("error when creating file: %v", err)
	}
	cf, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatalf("error when writing header: %v", err)
	}
	buf := make([]float32, nt*ny*nx)
	for i := range buf {
		if i < ny*nx {
			buf[i] = float32(i)
			continue
		}
		// values of the second record
		// must never be read back
		buf[i] = 1000
	}
	w := cf.Writer("thk", []int{0, 0, 0}, []int{nt, ny, nx})
	if _, err := w.Write(buf); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}
	if err := ff.Close(); err != nil {
		t.Fatalf("error when closing file: %v", err)
	}

	f, err := ncgrid.Open(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	defer f.Close()

	a, err := f.Field("thk")
	if err != nil {
		t.Fatalf("variable %q: %v", "thk", err)
	}
	if a.Shape[0] != ny || a.Shape[1] != nx {
		t.Fatalf("variable %q: shape %v, want [%d %d]", "thk", a.Shape, ny, nx)
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			want := float64(j*nx + i)
			if got := a.Get(j, i); got != want {
				t.Errorf("variable %q: cell (%d, %d): got %g, want %g", "thk", i, j, got, want)
			}
		}
	}
	if u := f.Units("thk"); u != "m" {
		t.Errorf("thk units: got %q, want %q", u, "m")
	}
}

func compareCoords(t testing.TB, name string, got, want []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Errorf("%s: got %d values, want %d", name, len(got), len(want))
		return
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Errorf("%s: value %d: got %g, want %g", name, i, got[i], want[i])
			return
		}
	}
}
