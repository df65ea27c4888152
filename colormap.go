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
	"sort"
	"sync"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// ColormapID names a color palette in the colormap registry.
type ColormapID string

const (
	// DefaultDivergent is used for divergent plans without an override.
	DefaultDivergent ColormapID = "RdBu_r"

	// DefaultSequential is used for sequential plans without an override.
	DefaultSequential ColormapID = "YlOrRd"
)

func (r *Request) colormap() ColormapID {
	if r.Colormap != "" {
		return r.Colormap
	}
	if r.Style == Sequential {
		return DefaultSequential
	}
	return DefaultDivergent
}

var (
	colormapsMu sync.RWMutex
	colormaps   = map[ColormapID]func() (palette.ColorMap, error){
		"RdBu_r":            func() (palette.ColorMap, error) { return moreland.SmoothBlueRed(), nil },
		"RdBu":              func() (palette.ColorMap, error) { return palette.Reverse(moreland.SmoothBlueRed()), nil },
		"RdGy":              RdGy.ColorMap,
		"Jet":               Jet.ColorMap,
		"BlackBody":         func() (palette.ColorMap, error) { return moreland.BlackBody(), nil },
		"ExtendedBlackBody": func() (palette.ColorMap, error) { return moreland.ExtendedBlackBody(), nil },
		"Kindlmann":         func() (palette.ColorMap, error) { return moreland.Kindlmann(), nil },
		"ExtendedKindlmann": func() (palette.ColorMap, error) { return moreland.ExtendedKindlmann(), nil },

		// Luminance ramps are specified dark to light and reversed so
		// that they run light to dark with increasing value.
		"YlOrRd": reversedLuminance(
			color.NRGBA{R: 128, B: 38, A: 255},
			color.NRGBA{R: 227, G: 26, B: 28, A: 255},
			color.NRGBA{R: 253, G: 141, B: 60, A: 255},
			color.NRGBA{R: 255, G: 255, B: 204, A: 255},
		),
		"BuGn": reversedLuminance(
			color.NRGBA{G: 68, B: 27, A: 255},
			color.NRGBA{R: 35, G: 139, B: 69, A: 255},
			color.NRGBA{R: 102, G: 194, B: 164, A: 255},
			color.NRGBA{R: 247, G: 252, B: 253, A: 255},
		),
		"Greys": reversedLuminance(
			color.NRGBA{A: 255},
			color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		),
	}
)

func reversedLuminance(controls ...color.Color) func() (palette.ColorMap, error) {
	return func() (palette.ColorMap, error) {
		cm, err := moreland.NewLuminance(controls)
		if err != nil {
			return nil, err
		}
		return palette.Reverse(cm), nil
	}
}

// RegisterColormap adds a colormap to the registry, replacing any
// existing colormap with the same identifier.
func RegisterColormap(id ColormapID, f func() (palette.ColorMap, error)) {
	colormapsMu.Lock()
	colormaps[id] = f
	colormapsMu.Unlock()
}

// Colormaps returns the registered colormap identifiers in sorted order.
func Colormaps() []ColormapID {
	colormapsMu.RLock()
	defer colormapsMu.RUnlock()
	ids := make([]ColormapID, 0, len(colormaps))
	for id := range colormaps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NewColormap returns a new instance of the colormap registered as id,
// scaled to the range [0, 1].
func NewColormap(id ColormapID) (palette.ColorMap, error) {
	colormapsMu.RLock()
	f, ok := colormaps[id]
	colormapsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColormap, id)
	}
	cm, err := f()
	if err != nil {
		return nil, fmt.Errorf("clevels: creating colormap %q: %w", id, err)
	}
	cm.SetMax(1)
	cm.SetMin(0)
	return cm, nil
}

// BandColors returns one color for each filled band of s, ordered from
// low to high. Active extend bands are included at either end, so the
// colormap is sampled evenly across all bands. A plan with fewer than two fill
// boundaries and no extend bands has no colors.
func (s *LevelSpec) BandColors() ([]color.Color, error) {
	n := len(s.FillBoundaries) - 1
	if n < 0 {
		n = 0
	}
	if s.Extend.Low() {
		n++
	}
	if s.Extend.High() {
		n++
	}
	if n == 0 {
		return nil, nil
	}
	cm, err := NewColormap(s.Colormap)
	if err != nil {
		return nil, err
	}
	colors := make([]color.Color, n)
	for i := range colors {
		c, err := cm.At((float64(i) + 0.5) / float64(n))
		if err != nil {
			return nil, fmt.Errorf("clevels: band %d of colormap %q: %w", i, s.Colormap, err)
		}
		colors[i] = c
	}
	return colors, nil
}
