// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package vectcmd implements a command to export
// velocity vectors as a line shapefile.
package vectcmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/icevis/icevis/ncgrid"
	"github.com/icevis/icevis/vectors"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `vectors [-u <name>] [-v <name>]
	[--scale <value>] [--prune <number>] [--threshold <value>]
	[-o|--output <file>] <model-file>`,
	Short: "export velocity vectors as a shapefile",
	Long: `
Command vectors reads the velocity components of a model output file and
writes a line shapefile, with one line per grid cell, centered on the cell
and aligned with the velocity, for display over a map in a GIS tool. Each
line carries the velocity components and the speed at the cell as
attributes.

The argument of the command is the name of a model output file.

The flags -u and -v set the names of the velocity component variables;
their default values are 'uvelsurf' and 'vvelsurf'.

The flag --scale multiplies the velocity to give the line length in
projected units; its default value is 100. The flag --prune keeps only
every n-th cell in each grid direction. Use the flag --threshold to mask
all cells with a speed at or below a given value.

By default, the shapefile will be named after the model file, with the
extension replaced by '.shp'. To set a different name, use the flag
--output or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var uFlag string
var vFlag string
var scale float64
var prune int
var threshold float64
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&uFlag, "u", "uvelsurf", "")
	c.Flags().StringVar(&vFlag, "v", "vvelsurf", "")
	c.Flags().Float64Var(&scale, "scale", 100, "")
	c.Flags().IntVar(&prune, "prune", 1, "")
	c.Flags().Float64Var(&threshold, "threshold", 0, "")
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

	x, y, err := f.Coords()
	if err != nil {
		return err
	}

	field := vectors.Field{X: x, Y: y}
	if field.U, err = f.Field(uFlag); err != nil {
		return err
	}
	if field.V, err = f.Field(vFlag); err != nil {
		return err
	}
	if nd, ok := f.FillValue(uFlag); ok {
		field.NoData = nd
	}

	lines, err := field.Lines(vectors.Options{
		Scale:     scale,
		Prune:     prune,
		Threshold: threshold,
	})
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	if output == "" {
		output = trimExt(args[0]) + ".shp"
	}
	if err := vectors.WriteShapefile(output, f.Proj4(), lines); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%d vectors written to %s\n", len(lines), output)
	return nil
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
