// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package vectors_test

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/sparse"
	"github.com/icevis/icevis/vectors"
)

func testField() *vectors.Field {
	x := []float64{0, 1000, 2000}
	y := []float64{0, 1000}
	u := sparse.ZerosDense(2, 3)
	v := sparse.ZerosDense(2, 3)

	u.Set(300, 0, 0)
	v.Set(400, 0, 0)
	u.Set(30, 0, 1)
	v.Set(40, 0, 1)
	u.Set(-9999, 0, 2)
	v.Set(-9999, 0, 2)
	u.Set(-300, 1, 0)
	v.Set(400, 1, 0)

	return &vectors.Field{X: x, Y: y, U: u, V: v, NoData: -9999}
}

func TestLines(t *testing.T) {
	f := testField()
	lines, err := f.Lines(vectors.Options{Scale: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// all cells except the no-data cell
	// and the zero-velocity cells
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	l := lines[0]
	if l.UX != 300 || l.UY != 400 {
		t.Errorf("components: got (%g, %g), want (300, 400)", l.UX, l.UY)
	}
	if math.Abs(l.Speed-500) > 1e-9 {
		t.Errorf("speed: got %g, want 500", l.Speed)
	}
	if len(l.LineString) != 3 {
		t.Fatalf("got %d vertices, want 3", len(l.LineString))
	}

	// centered on the cell and scaled by the factor
	if c := l.LineString[1]; c.X != 0 || c.Y != 0 {
		t.Errorf("center: got (%g, %g), want (0, 0)", c.X, c.Y)
	}
	if a := l.LineString[0]; a.X != -300 || a.Y != -400 {
		t.Errorf("tail: got (%g, %g), want (-300, -400)", a.X, a.Y)
	}
	if e := l.LineString[2]; e.X != 300 || e.Y != 400 {
		t.Errorf("head: got (%g, %g), want (300, 400)", e.X, e.Y)
	}
}

func TestLinesThreshold(t *testing.T) {
	f := testField()
	lines, err := f.Lines(vectors.Options{Threshold: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if l.Speed <= 100 {
			t.Errorf("speed %g at or below threshold", l.Speed)
		}
	}
}

func TestLinesPrune(t *testing.T) {
	f := testField()
	lines, err := f.Lines(vectors.Options{Prune: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// pruning keeps cells (0,0) and (0,2),
	// and (0,2) is no-data
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if l := lines[0]; l.UX != 300 || l.UY != 400 {
		t.Errorf("components: got (%g, %g), want (300, 400)", l.UX, l.UY)
	}
}

func TestWriteShapefile(t *testing.T) {
	f := testField()
	lines, err := f.Lines(vectors.Options{Scale: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := filepath.Join(t.TempDir(), "vect.shp")
	proj4 := "+proj=lcc +lat_1=33 +lat_2=45 +lat_0=40 +lon_0=-97 +a=6370997 +b=6370997"
	if err := vectors.WriteShapefile(name, proj4, lines); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	d, err := shp.NewDecoder(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	defer d.Close()

	var rows int
	for {
		g, fields, more := d.DecodeRowFields("ux", "uy", "speed")
		if !more {
			break
		}
		ml, ok := g.(geom.MultiLineString)
		if !ok {
			t.Fatalf("row %d: got geometry %T, want geom.MultiLineString", rows, g)
		}
		if len(ml) != 1 || len(ml[0]) != 3 {
			t.Fatalf("row %d: got geometry %v, want a single 3 vertex line", rows, ml)
		}

		if rows == 0 {
			if c := ml[0][1]; c.X != 0 || c.Y != 0 {
				t.Errorf("center: got (%g, %g), want (0, 0)", c.X, c.Y)
			}
			if e := ml[0][2]; e.X != 300 || e.Y != 400 {
				t.Errorf("head: got (%g, %g), want (300, 400)", e.X, e.Y)
			}
			for fn, want := range map[string]float64{"ux": 300, "uy": 400, "speed": 500} {
				v, err := strconv.ParseFloat(strings.TrimSpace(fields[fn]), 64)
				if err != nil {
					t.Fatalf("field %q: %v", fn, err)
				}
				if math.Abs(v-want) > 1e-6 {
					t.Errorf("field %q: got %g, want %g", fn, v, want)
				}
			}
		}
		rows++
	}
	if err := d.Error(); err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	if rows != len(lines) {
		t.Errorf("got %d rows, want %d", rows, len(lines))
	}

	prj, err := os.ReadFile(strings.TrimSuffix(name, ".shp") + ".prj")
	if err != nil {
		t.Fatalf("error when reading projection: %v", err)
	}
	if got := strings.TrimSpace(string(prj)); got != proj4 {
		t.Errorf("projection: got %q, want %q", got, proj4)
	}
}

func TestLinesError(t *testing.T) {
	f := testField()
	f.V = sparse.ZerosDense(3, 3)
	if _, err := f.Lines(vectors.Options{}); err == nil {
		t.Errorf("expecting shape mismatch error")
	}

	f = testField()
	f.U = nil
	if _, err := f.Lines(vectors.Options{}); err == nil {
		t.Errorf("expecting undefined raster error")
	}
}
