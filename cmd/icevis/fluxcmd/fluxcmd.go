// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fluxcmd implements a command to report
// the discharge fluxes of a model output file.
package fluxcmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/icevis/icevis/flux"
	"github.com/icevis/icevis/ncgrid"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `flux [--min <value>] [--discharge <name>]
	[-o|--output <file>] <model-file>`,
	Short: "report discharge fluxes at the marine margin",
	Long: `
Command flux reads a model output file and reports the discharge gates of
the model state, the cells where a cumulative discharge variable is below a
threshold, together with the cumulative gate area, the cumulative flux, and
the median ice thickness over the gates. At each gate the ice thickness, the
gate depth, and the vertically averaged ice speed are averaged over a 3x3
cell window.

The argument of the command is the name of a model output file that contains
the variables 'thk', 'topg', 'ubar', 'vbar', and the discharge variable.

The flag --discharge sets the name of the cumulative discharge variable;
its default value is 'discharge_cumulative'. The flag --min sets the gate
threshold; cells with a discharge below this value will be used as gates.
Its default value is -1.

By default, the gate table is printed in the standard output. Use the flag
--output, or -o, to set a file for the table.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var minFlag float64
var disFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&minFlag, "min", -1, "")
	c.Flags().StringVar(&disFlag, "discharge", "discharge_cumulative", "")
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

	fields := flux.Fields{MinDischarge: minFlag}
	x, _, err := f.Coords()
	if err != nil {
		return err
	}
	if len(x) < 2 {
		return fmt.Errorf("on file %q: invalid x coordinate", args[0])
	}
	fields.Dx = x[1] - x[0]

	if fields.Thk, err = f.Field("thk"); err != nil {
		return err
	}
	if fields.Topg, err = f.Field("topg"); err != nil {
		return err
	}
	if fields.Ubar, err = f.Field("ubar"); err != nil {
		return err
	}
	if fields.Vbar, err = f.Field("vbar"); err != nil {
		return err
	}
	if fields.Discharge, err = f.Field(disFlag); err != nil {
		return err
	}

	a, err := flux.Discharge(fields)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	if err := report(c, a); err != nil {
		return err
	}
	return nil
}

func report(c *command.Command, a *flux.Analysis) (err error) {
	w := c.Stdout()
	if output != "" {
		var f *os.File
		f, err = os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# discharge gates: %d\n", len(a.Gates))
	fmt.Fprintf(bw, "# gate area: %g m2\n", a.Area())
	fmt.Fprintf(bw, "# flux: %g\n", a.Flux())
	fmt.Fprintf(bw, "# median thickness: %g m\n", a.MedianThickness())
	fmt.Fprintf(bw, "i\tj\tdischarge\tthk\tgate\tspeed\n")
	for _, g := range a.Gates {
		fmt.Fprintf(bw, "%d\t%d\t%g\t%g\t%g\t%g\n", g.I, g.J, g.Discharge, g.IceThk, g.GateThk, g.Speed)
	}
	return bw.Flush()
}
