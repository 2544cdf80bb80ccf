// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mapcmd implements a command to draw
// a map-plane variable of a model output file.
package mapcmd

import (
	"fmt"
	"math"

	"github.com/icevis/icevis/colorramp"
	"github.com/icevis/icevis/ncgrid"
	"github.com/icevis/icevis/rastermap"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `map [-v|--variable <name>]
	[--ramp <color-table>] [--scheme <name>]
	[--min <value>] [--max <value>]
	[-o|--output <file>] <model-file>`,
	Short: "draw a map of a model variable",
	Long: `
Command map reads a map-plane variable from a NetCDF model output file and
draws it as a png image, one pixel per grid cell.

The argument of the command is the name of the model file.

The flag --variable, or -v, sets the variable to be drawn; its default value
is 'velsurf_mag', the magnitude of the horizontal surface velocity.

By default cells are colored with the incandescent color scheme over the data
range of the variable. Use the flags --min and --max to set a different
range. Use the flag --scheme to select a different color scheme; valid values
are 'incandescent', 'iridescent', and 'rainbow'. Use the flag --ramp to color
the cells with a color table file, for example one produced by the command
'icevis ramp'; the values of the table are used as is, without rescaling.

By default, the image will be named after the variable, as '<variable>.png'.
To set a different name, use the flag --output or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var varFlag string
var rampFile string
var schemeFlag string
var minFlag float64
var maxFlag float64
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&varFlag, "variable", "velsurf_mag", "")
	c.Flags().StringVar(&varFlag, "v", "velsurf_mag", "")
	c.Flags().StringVar(&rampFile, "ramp", "", "")
	c.Flags().StringVar(&schemeFlag, "scheme", "", "")
	c.Flags().Float64Var(&minFlag, "min", math.NaN(), "")
	c.Flags().Float64Var(&maxFlag, "max", math.NaN(), "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting model file")
	}

	f, err := ncgrid.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := f.Field(varFlag)
	if err != nil {
		return err
	}

	noData := -2e33
	if fill, ok := f.FillValue(varFlag); ok {
		noData = fill
	}

	img := &rastermap.Image{
		Data:   data,
		NoData: noData,
	}

	if rampFile != "" {
		rp, err := colorramp.ReadFile(rampFile)
		if err != nil {
			return err
		}
		img.Ramp = rp
	} else {
		img.Gradient, err = rastermap.Scheme(schemeFlag)
		if err != nil {
			return c.UsageError(fmt.Sprintf("flag --scheme: %v", err))
		}
		img.Min, img.Max = dataRange(data.Elements, noData)
		if !math.IsNaN(minFlag) {
			img.Min = minFlag
		}
		if !math.IsNaN(maxFlag) {
			img.Max = maxFlag
		}
	}
	img.Format()

	if output == "" {
		output = varFlag + ".png"
	}
	if err := rastermap.WriteImage(output, img); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%s: %d x %d cells written to %s\n", varFlag, data.Shape[1], data.Shape[0], output)
	return nil
}

func dataRange(v []float64, noData float64) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, x := range v {
		if x == noData || math.IsNaN(x) {
			continue
		}
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	if min > max {
		return 0, 0
	}
	return min, max
}
