// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package vectors converts velocity component rasters
// to vector line data,
// one line per grid cell,
// centered on the cell and aligned with the velocity,
// for display over a map in a GIS tool.
package vectors

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/sparse"
	goshp "github.com/jonas-p/go-shp"
)

// A Field holds the velocity components of a model state
// on a regular grid,
// with rasters laid out as [y, x].
type Field struct {
	X, Y []float64
	U, V *sparse.DenseArray

	// NoData is the fill value of the rasters.
	NoData float64
}

// Options control the conversion of a field to lines.
type Options struct {
	// Scale multiplies the velocity
	// to give the line length in projected units.
	Scale float64

	// Prune keeps only every n-th cell
	// in each grid direction.
	Prune int

	// Threshold masks all cells with a speed
	// at or below this value.
	Threshold float64
}

// A Line is a velocity vector at a grid cell,
// a three point line string
// from the tail through the cell center to the head.
type Line struct {
	geom.LineString

	UX, UY float64
	Speed  float64
}

// Lines converts the field to vector lines.
func (f *Field) Lines(opt Options) ([]Line, error) {
	if f.U == nil || f.V == nil {
		return nil, fmt.Errorf("undefined velocity raster")
	}
	if len(f.U.Shape) != 2 || f.U.Shape[0] != len(f.Y) || f.U.Shape[1] != len(f.X) {
		return nil, fmt.Errorf("raster shape %v does not match %d x %d grid", f.U.Shape, len(f.Y), len(f.X))
	}
	if f.V.Shape[0] != f.U.Shape[0] || f.V.Shape[1] != f.U.Shape[1] {
		return nil, fmt.Errorf("raster shapes do not match: %v and %v", f.V.Shape, f.U.Shape)
	}

	scale := opt.Scale
	if scale == 0 {
		scale = 1
	}
	prune := opt.Prune
	if prune < 1 {
		prune = 1
	}

	var lines []Line
	for j := 0; j < len(f.Y); j += prune {
		for i := 0; i < len(f.X); i += prune {
			u := f.U.Get(j, i)
			v := f.V.Get(j, i)
			if u == f.NoData || v == f.NoData {
				continue
			}
			speed := math.Hypot(u, v)
			if speed <= opt.Threshold {
				continue
			}

			xc := f.X[i]
			yc := f.Y[j]
			l := Line{
				LineString: geom.LineString{
					{X: xc - scale*u/2, Y: yc - scale*v/2},
					{X: xc, Y: yc},
					{X: xc + scale*u/2, Y: yc + scale*v/2},
				},
				UX:    u,
				UY:    v,
				Speed: speed,
			}
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// WriteShapefile writes the lines as an ESRI shapefile
// with ux, uy, and speed attribute fields,
// and a .prj sidecar file with the given projection.
func WriteShapefile(name, proj4 string, lines []Line) (err error) {
	fields := []goshp.Field{
		goshp.FloatField("ux", 14, 8),
		goshp.FloatField("uy", 14, 8),
		goshp.FloatField("speed", 14, 8),
	}
	e, err := shp.NewEncoderFromFields(name, goshp.POLYLINE, fields...)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	defer e.Close()

	for _, l := range lines {
		if err := e.EncodeFields(l.LineString, l.UX, l.UY, l.Speed); err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
	}

	if proj4 == "" {
		return nil
	}
	prj := strings.TrimSuffix(name, filepath.Ext(name)) + ".prj"
	f, err := os.Create(prj)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()
	if _, err := fmt.Fprintln(f, proj4); err != nil {
		return fmt.Errorf("on file %q: %v", prj, err)
	}
	return nil
}
