// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plotcmd implements a command to plot
// extracted profile data.
package plotcmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/command"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `plot [-v|--variable <name>]
	[--min <value>] [--max <value>]
	[-o|--output <file>] <profile-file>...`,
	Short: "plot extracted profile data",
	Long: `
Command plot reads one or more profile files, as produced by the command
"icevis profile", and draws the values of a variable against the distance
along the profile as a line chart in a png image. With several profile files,
for example from different model runs, all profiles are drawn on the same
chart.

The arguments of the command are the names of the profile files.

The flag --variable, or -v, sets the variable to be plotted; its default
value is 'velsurf_mag'.

Use the flags --min and --max to set the bounds of the value axis.

By default, the image will be named after the variable, as
'profile-<variable>.png'. To set a different name, use the flag --output
or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var varFlag string
var minFlag float64
var maxFlag float64
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&varFlag, "variable", "velsurf_mag", "")
	c.Flags().StringVar(&varFlag, "v", "velsurf_mag", "")
	c.Flags().Float64Var(&minFlag, "min", math.NaN(), "")
	c.Flags().Float64Var(&maxFlag, "max", math.NaN(), "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting profile file")
	}

	p := plot.New()
	p.X.Label.Text = "distance (km)"
	p.Y.Label.Text = varFlag

	for _, a := range args {
		pts, err := readProfile(a, varFlag)
		if err != nil {
			return err
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		p.Add(l)
		if len(args) > 1 {
			p.Legend.Add(a, l)
		}
	}

	if !math.IsNaN(minFlag) {
		p.Y.Min = minFlag
	}
	if !math.IsNaN(maxFlag) {
		p.Y.Max = maxFlag
	}

	if output == "" {
		output = "profile-" + varFlag + ".png"
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, output); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "plot written to %s\n", output)
	return nil
}

// readProfile reads the distance and a variable column
// from a profile file,
// with the distance converted to kilometers.
func readProfile(name, v string) (plotter.XYs, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: while reading header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range []string{"distance", v} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	var pts plotter.XYs
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		d, err := strconv.ParseFloat(strings.TrimSpace(row[fields["distance"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: %v", name, ln, "distance", err)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(row[fields[v]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: %v", name, ln, v, err)
		}
		if math.IsNaN(x) {
			continue
		}
		pts = append(pts, plotter.XY{X: d / 1000, Y: x})
	}
	return pts, nil
}
