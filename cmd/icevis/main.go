// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// IceVis is a tool for visualizing and post-processing
// the output of ice-sheet simulation models.
package main

import (
	"github.com/icevis/icevis/cmd/icevis/fluxcmd"
	"github.com/icevis/icevis/cmd/icevis/gridcmd"
	"github.com/icevis/icevis/cmd/icevis/mapcmd"
	"github.com/icevis/icevis/cmd/icevis/plotcmd"
	"github.com/icevis/icevis/cmd/icevis/profilecmd"
	"github.com/icevis/icevis/cmd/icevis/ramp"
	"github.com/icevis/icevis/cmd/icevis/vectcmd"
	"github.com/js-arias/command"
)

var app = &command.Command{
	Usage: "icevis <command> [<argument>...]",
	Short: "a tool for visualizing ice-sheet model output",
}

func init() {
	app.Add(fluxcmd.Command)
	app.Add(gridcmd.Command)
	app.Add(mapcmd.Command)
	app.Add(plotcmd.Command)
	app.Add(profilecmd.Command)
	app.Add(ramp.Command)
	app.Add(vectcmd.Command)
}

func main() {
	app.Main()
}
