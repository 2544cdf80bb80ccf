// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package profilecmd implements a command to extract
// model variables along a profile path.
package profilecmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/icevis/icevis/ncgrid"
	"github.com/icevis/icevis/profile"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `profile [-b|--bilinear] [--flip] [--great-circle]
	[-v|--variable <name>[,<name>...]]
	[-o|--output <file>] <path-file> <model-file>`,
	Short: "extract model variables along a profile",
	Long: `
Command profile samples map-plane variables of a NetCDF model output file
along a path of geographic points, such as a glacier flowline, and writes the
result as a tab-delimited file.

The first argument of the command is the name of the path file, either a
tab-delimited file with 'lat' and 'lon' columns, or a point or polyline
shapefile. The second argument is the name of the model file.

By default, each point takes the value of the grid cell nearest to it, and
consecutive points falling in the same cell are reduced to the first one. Use
the flag --bilinear, or -b, to interpolate between the four surrounding cell
centers instead.

Use the flag --flip to reverse the direction of the path.

The distance along the profile is measured on the projected plane of the
model grid. Use the flag --great-circle to measure it along great circles
instead, which is preferable when the model grid is geographic.

The flag --variable, or -v, sets a comma separated list of the variables to
extract; its default value is 'velsurf_mag'.

The output is written as a tab-delimited file with one row per point, with
the distance along the profile in meters, the geographic and projected
coordinates of the point, and one column per extracted variable. By default
it is written to 'profile.tsv'; use the flag --output, or -o, to set a
different name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var bilinear bool
var flip bool
var greatCircle bool
var varFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&bilinear, "bilinear", false, "")
	c.Flags().BoolVar(&bilinear, "b", false, "")
	c.Flags().BoolVar(&flip, "flip", false, "")
	c.Flags().BoolVar(&greatCircle, "great-circle", false, "")
	c.Flags().StringVar(&varFlag, "variable", "velsurf_mag", "")
	c.Flags().StringVar(&varFlag, "v", "velsurf_mag", "")
	c.Flags().StringVar(&output, "output", "profile.tsv", "")
	c.Flags().StringVar(&output, "o", "profile.tsv", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting path file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting model file")
	}

	p, err := profile.ReadFile(args[0])
	if err != nil {
		return err
	}
	if flip {
		p = p.Reverse()
	}

	f, err := ncgrid.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	x, y, err := f.Coords()
	if err != nil {
		return err
	}
	sr, err := f.SR()
	if err != nil {
		return err
	}
	if err := p.Project(sr); err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}
	if greatCircle {
		p.GreatCircle()
	}

	vars := strings.Split(varFlag, ",")
	samples := make([][]float64, 0, len(vars))
	for i, v := range vars {
		v = strings.TrimSpace(v)
		vars[i] = v

		data, err := f.Field(v)
		if err != nil {
			return err
		}
		s, err := profile.NewSampler(x, y, data)
		if err != nil {
			return fmt.Errorf("on file %q: %v", args[1], err)
		}
		if i == 0 && !bilinear {
			p = s.Dedup(p)
		}
		samples = append(samples, s.Sample(p, bilinear))
	}

	if err := writeProfile(output, vars, p, samples); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%d points written to %s\n", len(p), output)
	return nil
}

func writeProfile(name string, vars []string, p profile.Path, samples [][]float64) (err error) {
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

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# profile data\ndistance\tlon\tlat\tx\ty")
	for _, v := range vars {
		fmt.Fprintf(w, "\t%s", v)
	}
	fmt.Fprintln(w)

	for i, pt := range p {
		fmt.Fprintf(w, "%.3f\t%.6f\t%.6f\t%.3f\t%.3f", pt.Dist, pt.Lon, pt.Lat, pt.X, pt.Y)
		for _, s := range samples {
			fmt.Fprintf(w, "\t%g", s[i])
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
