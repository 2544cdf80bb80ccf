// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package colorramp implements color ramps,
// piecewise-linear mappings from scalar data values
// to RGBA colors,
// in the plain text format used for raster layer styling
// in GIS tools.
//
// A color table file contains one control point per line,
// with the data value followed by the red, green, and blue
// channels, and an optional alpha channel:
//
//	# ice surface elevation
//	-5000 0 0 80
//	0 30 60 255
//	1000 240 250 250
//	3000 255 255 255 255
//
// Fields are separated by spaces, tabs, or commas,
// and values must be strictly increasing.
// A final line with the value "inf" is the boundary marker
// used by GIS importers for values above the maximum;
// it is ignored when reading.
package colorramp

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Errors returned when reading or transforming a color ramp.
var (
	// ErrParse is returned on a malformed color table line.
	ErrParse = errors.New("invalid color table")

	// ErrInvalidRange is returned on an invalid
	// target value range.
	ErrInvalidRange = errors.New("invalid value range")

	// ErrDegenerate is returned when the source ramp domain
	// has zero width.
	ErrDegenerate = errors.New("degenerate color ramp")
)

// An Entry is a control point of a color ramp,
// a data value with its associated color.
type Entry struct {
	Value float64
	Color color.RGBA
}

// A Ramp is an ordered sequence of control points,
// with strictly increasing values.
// A Ramp is a value:
// transformations return a new Ramp
// and never modify the original.
type Ramp []Entry

// Read reads a color ramp from a color table file.
func Read(r io.Reader) (Ramp, error) {
	var rp Ramp
	closed := false

	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if closed {
			return nil, fmt.Errorf("on line %d: %w: entries after boundary line", ln, ErrParse)
		}

		f := fields(line)
		if len(f) < 4 {
			return nil, fmt.Errorf("on line %d: %w: found %d fields, want at least 4", ln, ErrParse, len(f))
		}

		v, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %w: value %q", ln, ErrParse, f[0])
		}
		if math.IsInf(v, 1) {
			// boundary marker
			closed = true
			continue
		}
		if math.IsInf(v, -1) || math.IsNaN(v) {
			return nil, fmt.Errorf("on line %d: %w: non-finite value %q", ln, ErrParse, f[0])
		}

		c := color.RGBA{A: 255}
		for i, ch := range []*uint8{&c.R, &c.G, &c.B, &c.A} {
			if i == 3 && len(f) < 5 {
				break
			}
			name := [...]string{"red", "green", "blue", "alpha"}[i]
			x, err := strconv.Atoi(f[i+1])
			if err != nil {
				return nil, fmt.Errorf("on line %d: %w: %s channel %q", ln, ErrParse, name, f[i+1])
			}
			if x < 0 || x > 255 {
				return nil, fmt.Errorf("on line %d: %w: %s channel %d outside [0,255]", ln, ErrParse, name, x)
			}
			*ch = uint8(x)
		}

		if len(rp) > 0 && v <= rp[len(rp)-1].Value {
			return nil, fmt.Errorf("on line %d: %w: value %g not increasing", ln, ErrParse, v)
		}
		rp = append(rp, Entry{Value: v, Color: c})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rp) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrParse)
	}
	return rp, nil
}

// ReadFile reads a color ramp from a color table file
// with the indicated name.
func ReadFile(name string) (Ramp, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rp, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return rp, nil
}

func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// At evaluates the ramp at a value,
// interpolating linearly between the bracketing control points.
// Values outside the ramp domain clamp
// to the first or last color.
func (rp Ramp) At(v float64) color.RGBA {
	if len(rp) == 0 {
		return color.RGBA{}
	}
	if v <= rp[0].Value {
		return rp[0].Color
	}
	if v >= rp[len(rp)-1].Value {
		return rp[len(rp)-1].Color
	}

	i := sort.Search(len(rp), func(i int) bool { return rp[i].Value >= v })
	e0 := rp[i-1]
	e1 := rp[i]
	t := (v - e0.Value) / (e1.Value - e0.Value)
	return color.RGBA{
		R: lerp(e0.Color.R, e1.Color.R, t),
		G: lerp(e0.Color.G, e1.Color.G, t),
		B: lerp(e0.Color.B, e1.Color.B, t),
		A: lerp(e0.Color.A, e1.Color.A, t),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
}

// Min returns the smallest value of the ramp domain.
func (rp Ramp) Min() float64 {
	if len(rp) == 0 {
		return 0
	}
	return rp[0].Value
}

// Max returns the largest value of the ramp domain.
func (rp Ramp) Max() float64 {
	if len(rp) == 0 {
		return 0
	}
	return rp[len(rp)-1].Value
}

// Write writes the ramp as a color table,
// one line per control point,
// with a trailing boundary line that reuses the last color.
// The output is deterministic for a given ramp.
func (rp Ramp) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range rp {
		fmt.Fprintf(bw, "%g %d %d %d %d\n", e.Value, e.Color.R, e.Color.G, e.Color.B, e.Color.A)
	}
	if len(rp) > 0 {
		last := rp[len(rp)-1].Color
		fmt.Fprintf(bw, "inf %d %d %d %d\n", last.R, last.G, last.B, last.A)
	}
	return bw.Flush()
}

// WriteFile writes the ramp as a color table file
// with the indicated name.
// The file is created only after the ramp is fully computed,
// so a failed transformation leaves no partial output.
func (rp Ramp) WriteFile(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := rp.Write(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

// A Swatch is an image of a color ramp,
// drawn as a horizontal bar
// spanning the values between Min and Max.
type Swatch struct {
	Ramp Ramp

	// Value range of the bar
	Min, Max float64

	// Size of the image in pixels
	Width, Height int
}

func (s Swatch) ColorModel() color.Model { return color.RGBAModel }
func (s Swatch) Bounds() image.Rectangle { return image.Rect(0, 0, s.Width, s.Height) }
func (s Swatch) At(x, y int) color.Color {
	v := s.Min
	if s.Width > 1 {
		v += float64(x) / float64(s.Width-1) * (s.Max - s.Min)
	}
	return s.Ramp.At(v)
}
