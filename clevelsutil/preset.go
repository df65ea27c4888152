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

package clevelsutil

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/clevels"
)

// ErrUnknownPreset is returned when a preset name is not defined.
var ErrUnknownPreset = errors.New("clevels: unknown preset")

// Presets holds named plan requests.
type Presets map[string]clevels.Request

// BuiltinPresets returns the built-in presets, which reproduce the level
// choices used by the contour plotting gallery.
func BuiltinPresets() Presets {
	return Presets{
		// One unit-wide division on each side of zero with five fills
		// and one line per division.
		"showvar": {Cdelt: 1, Ndiv: 1, Nf: 5, Nl: 1},

		// Two divisions of 0.6 with extend bands, for anomalies.
		"anomaly": {Cdelt: 0.6, Ndiv: 2, Nf: 6, Nl: 1, Extend: clevels.ExtendBoth},

		// A sequential map starting from -1.5.
		"sequential": {Cdelt: 1, Min: clevels.Float(-1.5), Ndiv: 3, Nf: 4, Nl: 2,
			Style: clevels.Sequential, Extend: clevels.ExtendBoth},

		"clfdict": {Cdelt: 0.4, Min: clevels.Float(-1.2), Ndiv: 3, Nf: 2, Nl: 1,
			Extend: clevels.ExtendBoth, Colormap: "RdGy"},
	}
}

// presetFile is the layout of a preset file:
//
//	[preset.temperature]
//	cdelt = 10.0
//	min = 200.0
//	ndiv = 10
//	nf = 2
//	nl = 1
//	style = "seq"
//	extend = "max"
type presetFile struct {
	Preset map[string]clevels.Request `toml:"preset"`
}

// LoadPresets returns the built-in presets combined with any presets in
// the TOML file at path. Presets in the file replace built-in presets
// of the same name. An empty path returns only the built-in presets.
func LoadPresets(path string) (Presets, error) {
	p := BuiltinPresets()
	if path == "" {
		return p, nil
	}
	var f presetFile
	md, err := toml.DecodeFile(os.ExpandEnv(path), &f)
	if err != nil {
		return nil, fmt.Errorf("clevels: reading presets file: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("clevels: unknown keys in presets file %s: %v", path, undecoded)
	}
	for name, r := range f.Preset {
		p[name] = r
	}
	return p, nil
}

// Get returns the preset with the given name.
func (p Presets) Get(name string) (clevels.Request, error) {
	r, ok := p[name]
	if !ok {
		return clevels.Request{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return r, nil
}

// Names returns the preset names in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
