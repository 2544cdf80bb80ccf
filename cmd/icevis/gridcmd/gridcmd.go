// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package gridcmd implements a command to create
// a simulation grid file.
package gridcmd

import (
	"fmt"

	"github.com/icevis/icevis/ncgrid"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `grid --xmin <value> --xmax <value>
	--ymin <value> --ymax <value>
	[--dx <value>] [--dy <value>]
	[--proj4 <string>] <grid-file>`,
	Short: "create a simulation grid file",
	Long: `
Command grid creates a NetCDF file with the coordinates of a regular
simulation grid over a projected map-plane extent, with x and y coordinate
variables and two-dimensional lat and lon variables computed by inverse
projection, to bootstrap a model run.

The argument of the command is the name of the file to be created.

The flags --xmin, --xmax, --ymin, and --ymax set the extent of the grid,
and the flags --dx and --dy set the grid spacing; all values in meters. The
default spacing is 5000 meters.

By default, the grid is defined on the standard polar stereographic
projection used for Greenland model grids. Use the flag --proj4 to set a
different projection as a proj4 parameter string.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var xmin, xmax float64
var ymin, ymax float64
var dx, dy float64
var proj4 string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&xmin, "xmin", 0, "")
	c.Flags().Float64Var(&xmax, "xmax", 0, "")
	c.Flags().Float64Var(&ymin, "ymin", 0, "")
	c.Flags().Float64Var(&ymax, "ymax", 0, "")
	c.Flags().Float64Var(&dx, "dx", 5000, "")
	c.Flags().Float64Var(&dy, "dy", 5000, "")
	c.Flags().StringVar(&proj4, "proj4", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting grid file name")
	}

	d := ncgrid.Domain{
		Xmin: xmin, Xmax: xmax,
		Ymin: ymin, Ymax: ymax,
		Dx: dx, Dy: dy,
		Proj4: proj4,
	}
	if err := d.Valid(); err != nil {
		return c.UsageError(err.Error())
	}

	if err := d.Write(args[0]); err != nil {
		return err
	}

	x, y := d.Coords()
	fmt.Fprintf(c.Stdout(), "grid %d x %d written to %s\n", len(x), len(y), args[0])
	return nil
}
