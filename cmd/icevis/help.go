// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(colorTableGuide)
	app.Add(pathFilesGuide)
}

var colorTableGuide = &command.Command{
	Usage: "color-tables",
	Short: "about color table files",
	Long: `
Color tables map data values to colors for the display of model output
rasters. A color table is a plain text file in which each line defines a
color entry, with a data value and the red, green, blue, and alpha channels
of the color at that value, separated by spaces, commas, or tabs:

	# velocity ramp
	1 255 255 255 255
	3 255 255 217 255
	10 237 248 177 255
	30 127 205 187 255
	100 65 182 196 255
	300 29 145 192 255
	1000 34 94 168 255
	3000 12 44 132 255
	inf 12 44 132 255

Channel values are integers between 0 and 255. Data values must be strictly
increasing from line to line. Lines starting with '#' are comments, and
empty lines are ignored.

The last line can use the value 'inf' to close the table; it repeats the
color of the last entry and extends it to any value above the table. The
command 'icevis ramp' always writes this closing line.

Colors for values between two entries are linearly interpolated on each
channel. Values outside of the table take the color of the nearest entry.

Color tables in this format can be loaded in the QGIS raster layer styling
panel, and are the usual way to keep a consistent color scale across the
maps of different model runs.
	`,
}

var pathFilesGuide = &command.Command{
	Usage: "path-files",
	Short: "about profile path files",
	Long: `
The command 'icevis profile' samples the output rasters of a model run along
a path, for example the central flowline of an outlet glacier. The path is
read from a path file given in geographic coordinates.

A path file can be a tab-delimited text file with a header row and the
following fields:

	- lat  for the latitude of a path point
	- lon  for the longitude of a path point

Any other field will be ignored. Here is an example file:

	# central flowline
	lat	lon	comment
	69.167	-49.833	terminus
	69.125	-49.167
	69.083	-48.500	upstream

A path needs at least two points. Lines starting with '#' are comments, and
empty lines are ignored.

A path file can also be a shapefile, with the extension '.shp', holding
point or line features; its '.prj' sidecar, if present, is used to project
the features back to geographic coordinates. Shapefile paths are usually
digitized by hand in a GIS tool over a velocity map.
	`,
}
