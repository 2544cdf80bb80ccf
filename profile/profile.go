// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package profile extracts gridded model output
// along a path of geographic points,
// such as a glacier flowline or a fjord transect.
package profile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/js-arias/earth"
)

// A Point is a vertex of a profile path.
type Point struct {
	// Geographic coordinates in degrees
	Lat, Lon float64

	// Projected coordinates in meters
	X, Y float64

	// Cumulative distance along the path in meters
	Dist float64
}

// A Path is an ordered sequence of profile points.
type Path []Point

// ReadTSV reads a path from a TSV file.
//
// The TSV must contain the following required columns:
//
//	-lat	geographic latitude of the point
//	-lon	geographic longitude of the point
//
// Any other columns will be ignored.
// Here is an example file:
//
//	# Jakobshavn Isbræ flowline
//	lat	lon
//	69.177	-49.833
//	69.168	-49.566
//	69.152	-49.267
func ReadTSV(r io.Reader) (Path, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range []string{"lat", "lon"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var p Path
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "lat"
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if lat < -90 || lat > 90 {
			return nil, fmt.Errorf("on row %d: field %q: invalid latitude %g", ln, f, lat)
		}

		f = "lon"
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if lon < -180 || lon > 180 {
			return nil, fmt.Errorf("on row %d: field %q: invalid longitude %g", ln, f, lon)
		}

		p = append(p, Point{Lat: lat, Lon: lon})
	}
	if len(p) < 2 {
		return nil, fmt.Errorf("found %d points, want at least 2", len(p))
	}
	return p, nil
}

// ReadFile reads a path from a file,
// either a point or polyline shapefile,
// or a TSV file with lat and lon columns.
func ReadFile(name string) (Path, error) {
	if strings.HasSuffix(name, ".shp") {
		return readShapefile(name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return p, nil
}

// readShapefile reads a path from a point or polyline shapefile.
// If the shapefile defines a projected spatial reference,
// coordinates are transformed back to geographic.
func readShapefile(name string) (Path, error) {
	d, err := shp.NewDecoder(name)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	var tr proj.Transformer
	if sr, err := d.SR(); err == nil {
		ll, err := proj.Parse("+proj=longlat")
		if err != nil {
			return nil, err
		}
		tr, err = sr.NewTransform(ll)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
	}

	var p Path
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		if tr != nil {
			g, err = g.Transform(tr)
			if err != nil {
				return nil, fmt.Errorf("on file %q: %v", name, err)
			}
		}
		switch gg := g.(type) {
		case geom.Point:
			p = append(p, Point{Lat: gg.Y, Lon: gg.X})
		case geom.LineString:
			for _, pt := range gg {
				p = append(p, Point{Lat: pt.Y, Lon: pt.X})
			}
		case geom.MultiLineString:
			for _, l := range gg {
				for _, pt := range l {
					p = append(p, Point{Lat: pt.Y, Lon: pt.X})
				}
			}
		default:
			return nil, fmt.Errorf("on file %q: unsupported geometry %T", name, g)
		}
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if len(p) < 2 {
		return nil, fmt.Errorf("on file %q: found %d points, want at least 2", name, len(p))
	}
	return p, nil
}

// Reverse returns a new path
// with the points in the opposite order.
func (p Path) Reverse() Path {
	np := make(Path, len(p))
	for i, pt := range p {
		np[len(p)-1-i] = pt
	}
	return np
}

// Project computes the projected coordinates
// of every point of the path
// and the cumulative distance along the path
// in the projected plane.
func (p Path) Project(sr *proj.SR) error {
	ll, err := proj.Parse("+proj=longlat")
	if err != nil {
		return err
	}
	tr, err := ll.NewTransform(sr)
	if err != nil {
		return err
	}

	for i := range p {
		g, err := geom.Point{X: p[i].Lon, Y: p[i].Lat}.Transform(tr)
		if err != nil {
			return fmt.Errorf("at point %d: %v", i, err)
		}
		pt := g.(geom.Point)
		p[i].X = pt.X
		p[i].Y = pt.Y
	}

	for i := 1; i < len(p); i++ {
		dx := p[i].X - p[i-1].X
		dy := p[i].Y - p[i-1].Y
		p[i].Dist = p[i-1].Dist + math.Hypot(dx, dy)
	}
	return nil
}

// GreatCircle computes the cumulative distance
// along the path from the great circle distances
// between consecutive points.
// It is used when the grid projection is unknown.
func (p Path) GreatCircle() {
	for i := 1; i < len(p); i++ {
		d := earth.Distance(
			earth.NewPoint(p[i-1].Lat, p[i-1].Lon),
			earth.NewPoint(p[i].Lat, p[i].Lon),
		)
		p[i].Dist = p[i-1].Dist + d*earth.Radius
	}
}
