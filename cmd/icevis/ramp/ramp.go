// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ramp implements a command to generate
// a GIS color map from a color table.
package ramp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/icevis/icevis/colorramp"
	"github.com/icevis/icevis/rastermap"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `ramp --min <value> --max <value>
	[--extend <low>,<high>] [--log] [-a <exponent>]
	[-o|--output <file-prefix>] <color-table>`,
	Short: "generate a GIS color map from a color table",
	Long: `
Command ramp reads a color table file, rescales it to a given value range, and
writes a color map text file that can be imported as a raster layer style in a
GIS tool, along with a PNG image of the resulting color bar.

The argument of the command is the name of the color table file. A color
table contains one control point per line, with a data value followed by the
red, green, and blue channels, and an optional alpha channel, separated by
spaces or commas. Values must be strictly increasing.

The flags --min and --max are required and define the target value range of
the color map. The value of --min must be smaller than the value of --max.

If the flag --extend is given with a pair of comma separated values, two
boundary entries are added at the indicated values, reusing the first and the
last colors of the table, so that data outside the core range is drawn with
the boundary colors instead of being left unpainted. The low value must be
below --min and the high value above --max.

If the flag --log is given, the color transitions are spaced logarithmically
over the value range, which is useful for variables that span several orders
of magnitude, such as ice surface velocities. The exponent of the transform
can be set with the flag -a; its default value is 1, and a negative value
reverses the direction of the compression.

By default the output files are named after the input file, with a '-ramp'
suffix; use the flag --output, or -o, to set a different prefix. The color
map is written to '<prefix>.txt' and the color bar image to '<prefix>.png'.
The output never overwrites the input color table.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var minFlag float64
var maxFlag float64
var extendFlag string
var logFlag bool
var expFlag float64
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&minFlag, "min", 0, "")
	c.Flags().Float64Var(&maxFlag, "max", 0, "")
	c.Flags().StringVar(&extendFlag, "extend", "", "")
	c.Flags().BoolVar(&logFlag, "log", false, "")
	c.Flags().Float64Var(&expFlag, "a", 1, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting color table file")
	}
	if minFlag >= maxFlag {
		return c.UsageError("flag --min must be smaller than --max")
	}

	req := colorramp.Request{
		Min:      minFlag,
		Max:      maxFlag,
		LogScale: logFlag,
		Exponent: expFlag,
	}
	if extendFlag != "" {
		ext, err := parseExtend(extendFlag)
		if err != nil {
			return c.UsageError(fmt.Sprintf("flag --extend: %v", err))
		}
		req.Extend = ext
	}

	rp, err := colorramp.ReadFile(args[0])
	if err != nil {
		return err
	}
	nr, err := rp.Rescale(req)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	if output == "" {
		output = strings.TrimSuffix(args[0], ".txt") + "-ramp"
	}
	if output+".txt" == args[0] {
		return c.UsageError("output file would overwrite the color table")
	}

	if err := nr.WriteFile(output + ".txt"); err != nil {
		return err
	}

	sw := colorramp.Swatch{
		Ramp: nr,
		Min:  nr.Min(),
		Max:  nr.Max(),

		Width:  512,
		Height: 32,
	}
	if err := rastermap.WriteImage(output+".png", sw); err != nil {
		return err
	}
	return nil
}

func parseExtend(s string) (*colorramp.Extension, error) {
	v := strings.Split(s, ",")
	if len(v) != 2 {
		return nil, fmt.Errorf("found %d values, want 2", len(v))
	}
	low, err := strconv.ParseFloat(strings.TrimSpace(v[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("low value %q: %v", v[0], err)
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(v[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("high value %q: %v", v[1], err)
	}
	return &colorramp.Extension{Low: low, High: high}, nil
}
