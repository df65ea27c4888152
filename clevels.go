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

// Package clevels plans contour fill levels, contour line levels, colormaps
// and colorbar extension for plotting gridded geophysical fields.
//
// A plan is built from a handful of styling parameters: the width of one
// division (cdelt), the number of divisions (ndiv), and the number of
// filled bands and contour lines within each division (nf and nl).
// Divergent plans are mirrored around a center value, which suits fields
// with a meaningful sign such as anomalies. Sequential plans increase
// monotonically from a minimum.
//
//	spec, err := clevels.Plan(clevels.Request{Cdelt: 1, Ndiv: 1, Nf: 5, Nl: 1})
//
// yields fill boundaries at -1, -0.8, ..., 1 and line boundaries at -1, 0
// and 1. The resulting LevelSpec is handed to a plotting library, which is
// responsible for all drawing.
package clevels

// Version gives the version number.
const Version = "1.0.0"
