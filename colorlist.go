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
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/palette"
)

// Colorlist is a colormap given by RGB control points at scalar
// positions in [-1, 1]. Colors between control points are interpolated
// linearly in RGB space.
type Colorlist struct {
	Val, R, G, B []float64
}

var (
	// RdGy is the ColorBrewer red-grey diverging scheme.
	RdGy = Colorlist{
		Val: []float64{-1, -0.8, -0.6, -0.4, -0.2, 0, 0.2, 0.4, 0.6, 0.8, 1},
		R:   []float64{103, 178, 214, 244, 253, 255, 224, 186, 135, 77, 26},
		G:   []float64{0, 24, 96, 165, 219, 255, 224, 186, 135, 77, 26},
		B:   []float64{31, 43, 77, 130, 199, 255, 224, 186, 135, 77, 26},
	}

	// Jet is the classic rainbow colormap.
	Jet = Colorlist{
		Val: []float64{-1, -0.866666666666667, -0.733333333333333, -0.6,
			-0.466666666666667, -0.333333333333333, -0.2, -0.0666666666666668,
			0.0666666666666665, 0.2, 0.333333333333333, 0.466666666666666, 0.6,
			0.733333333333333, 0.866666666666666, 1},
		R: []float64{0, 0, 0, 0, 0, 0, 66, 132, 189, 255, 255, 255, 255, 255, 189, 132},
		G: []float64{0, 0, 66, 132, 189, 255, 255, 255, 255, 255, 189, 132, 66, 0, 0, 0},
		B: []float64{189, 255, 255, 255, 255, 255, 189, 132, 66, 0, 0, 0, 0, 0, 0, 0},
	}
)

// ColorMap returns a new palette.ColorMap for c with the range [0, 1].
func (c Colorlist) ColorMap() (palette.ColorMap, error) {
	n := len(c.Val)
	if n < 2 || len(c.R) != n || len(c.G) != n || len(c.B) != n {
		return nil, fmt.Errorf("clevels: colorlist needs at least two control points and equal lengths")
	}
	if !sort.Float64sAreSorted(c.Val) || c.Val[0] != -1 || c.Val[n-1] != 1 {
		return nil, fmt.Errorf("clevels: colorlist values must increase from -1 to 1")
	}
	return &colorlistMap{list: c, max: 1, alpha: 1}, nil
}

type colorlistMap struct {
	list            Colorlist
	min, max, alpha float64
}

func (m *colorlistMap) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case m.max <= m.min:
		return nil, fmt.Errorf("clevels: colormap max (%g) <= min (%g)", m.max, m.min)
	case v < m.min:
		return nil, palette.ErrUnderflow
	case v > m.max:
		return nil, palette.ErrOverflow
	}
	s := -1 + 2*(v-m.min)/(m.max-m.min)
	l := m.list
	i := sort.SearchFloat64s(l.Val, s)
	if i == 0 {
		i = 1
	}
	if i >= len(l.Val) {
		i = len(l.Val) - 1
	}
	frac := (s - l.Val[i-1]) / (l.Val[i] - l.Val[i-1])
	interp := func(c []float64) uint8 {
		return uint8(math.Round((c[i-1] + frac*(c[i]-c[i-1])) * m.alpha))
	}
	return color.RGBA{R: interp(l.R), G: interp(l.G), B: interp(l.B), A: uint8(math.Round(255 * m.alpha))}, nil
}

func (m *colorlistMap) Max() float64     { return m.max }
func (m *colorlistMap) Min() float64     { return m.min }
func (m *colorlistMap) SetMax(v float64) { m.max = v }
func (m *colorlistMap) SetMin(v float64) { m.min = v }
func (m *colorlistMap) Alpha() float64   { return m.alpha }

func (m *colorlistMap) SetAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 {
		panic(fmt.Errorf("clevels: invalid alpha: %g", alpha))
	}
	m.alpha = alpha
}

func (m *colorlistMap) Palette(n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := range colors {
		v := m.min
		if n > 1 {
			v += (m.max - m.min) * float64(i) / float64(n-1)
		}
		c, err := m.At(v)
		if err != nil {
			panic(err)
		}
		colors[i] = c
	}
	return colorlistPalette(colors)
}

type colorlistPalette []color.Color

func (p colorlistPalette) Colors() []color.Color { return p }
