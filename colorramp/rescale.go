// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package colorramp

import (
	"fmt"
	"math"
)

// A Request defines the transformation of a ramp domain
// onto a new target range.
type Request struct {
	// Target value range
	Min, Max float64

	// If Extend is defined,
	// boundary entries are added at Extend.Low and Extend.High
	// reusing the first and last colors of the ramp,
	// so out-of-range values clamp to the boundary colors.
	Extend *Extension

	// If LogScale is true,
	// the positions of the entries are spaced logarithmically
	// over the target range,
	// compressing the color transitions at one end.
	LogScale bool

	// Exponent of the logarithmic transform.
	// The zero value is interpreted as 1.
	Exponent float64
}

// An Extension is a pair of values
// beyond the target range of a rescaled ramp.
type Extension struct {
	Low, High float64
}

// Rescale maps the ramp domain onto the target range
// of a request,
// returning a new ramp.
// Entry colors are never modified,
// only their positions.
func (rp Ramp) Rescale(req Request) (Ramp, error) {
	if len(rp) == 0 {
		return nil, fmt.Errorf("%w: empty ramp", ErrDegenerate)
	}
	if req.Min >= req.Max {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, req.Min, req.Max)
	}
	oMin := rp[0].Value
	oMax := rp[len(rp)-1].Value
	if oMin == oMax {
		return nil, fmt.Errorf("%w: source domain [%g, %g]", ErrDegenerate, oMin, oMax)
	}
	if req.Extend != nil {
		if req.Extend.Low >= req.Min {
			return nil, fmt.Errorf("%w: extension low %g not below %g", ErrInvalidRange, req.Extend.Low, req.Min)
		}
		if req.Extend.High <= req.Max {
			return nil, fmt.Errorf("%w: extension high %g not above %g", ErrInvalidRange, req.Extend.High, req.Max)
		}
	}

	a := req.Exponent
	if a == 0 {
		a = 1
	}

	nr := make(Ramp, 0, len(rp)+2)
	if req.Extend != nil {
		nr = append(nr, Entry{Value: req.Extend.Low, Color: rp[0].Color})
	}
	for _, e := range rp {
		u := (e.Value - oMin) / (oMax - oMin)
		if req.LogScale {
			u = logPos(u, a)
		}
		v := req.Min + u*(req.Max-req.Min)
		// the endpoints must land exactly on the target range
		switch u {
		case 0:
			v = req.Min
		case 1:
			v = req.Max
		}
		nr = append(nr, Entry{Value: v, Color: e.Color})
	}
	if req.Extend != nil {
		nr = append(nr, Entry{Value: req.Extend.High, Color: rp[len(rp)-1].Color})
	}
	return nr, nil
}

// logPos remaps a normalized ramp position
// so that color transitions are spaced logarithmically
// over the value domain.
// The position of the first and last entries is preserved,
// and the map is strictly increasing for any exponent.
// A negative exponent reverses the direction
// of the compression.
func logPos(u, a float64) float64 {
	return (math.Pow(10, a*u) - 1) / (math.Pow(10, a) - 1)
}
