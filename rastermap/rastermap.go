// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rastermap implements a map image
// for a gridded model variable,
// one pixel per grid cell.
package rastermap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/ctessum/sparse"
	"github.com/icevis/icevis/colorramp"
	"github.com/js-arias/blind"
)

// An Image is a map of a gridded variable.
// Rows are drawn with the largest y coordinate at the top,
// so the image has the usual map orientation.
type Image struct {
	// Data is the variable raster with shape [y, x].
	Data *sparse.DenseArray

	// Value range used for the gradient color scheme
	Min, Max float64

	// Ramp is an explicit color ramp.
	// If defined, it takes precedence over Gradient.
	Ramp colorramp.Ramp

	// A Gradient color scheme
	Gradient Gradienter

	// Fill value of the raster
	NoData float64

	// Background is the color of no-data cells.
	Background color.RGBA
}

// Format prepares the image for rendering.
func (i *Image) Format() {
	if i.Gradient == nil {
		i.Gradient = Incandescent{}
	}
	if i.Background == (color.RGBA{}) {
		i.Background = color.RGBA{211, 211, 211, 255}
	}
}

func (i *Image) ColorModel() color.Model { return color.RGBAModel }
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.Data.Shape[1], i.Data.Shape[0])
}
func (i *Image) At(x, y int) color.Color {
	v := i.Data.Get(i.Data.Shape[0]-1-y, x)
	if v == i.NoData || math.IsNaN(v) {
		return i.Background
	}

	if i.Ramp != nil {
		return i.Ramp.At(v)
	}
	if i.Max <= i.Min {
		return i.Background
	}
	return i.Gradient.Gradient((v - i.Min) / (i.Max - i.Min))
}

// A Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	return blind.Sequential(blind.Incandescent, v)
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	return blind.Sequential(blind.Iridescent, v)
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	return blind.Sequential(blind.RainbowPurpleToRed, v)
}

// Scheme returns the gradient color scheme
// with the indicated name.
func Scheme(name string) (Gradienter, error) {
	switch name {
	case "incandescent", "":
		return Incandescent{}, nil
	case "iridescent":
		return Iridescent{}, nil
	case "rainbow":
		return RainbowPurpleToRed{}, nil
	}
	return nil, fmt.Errorf("unknown color scheme %q", name)
}

// WriteImage writes an image as a PNG file.
func WriteImage(name string, img image.Image) (err error) {
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

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("when encoding image file %q: %v", name, err)
	}
	return nil
}
