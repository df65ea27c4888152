/*
Copyright © 2026 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package clevels

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
)

// LineTicks is a plot.Ticker that places a labelled tick at each
// contour line boundary, for use on colorbars and legends.
type LineTicks struct {
	Boundaries []float64

	// Format is a fmt verb such as "%.1f". If empty, labels use the
	// shortest representation of the value.
	Format string
}

// Ticks implements plot.Ticker.
func (t LineTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for _, v := range t.Boundaries {
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: t.label(v)})
	}
	return ticks
}

func (t LineTicks) label(v float64) string {
	if t.Format != "" {
		return fmt.Sprintf(t.Format, v)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Ticker returns a plot.Ticker for the line boundaries of s.
func (s *LevelSpec) Ticker() plot.Ticker {
	return LineTicks{Boundaries: s.LineBoundaries}
}
