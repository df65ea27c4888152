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
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/clevels"
)

// WritePlan writes spec to w in the given format: json, toml, or text.
func WritePlan(w io.Writer, spec *clevels.LevelSpec, format string) error {
	switch format {
	case "json":
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(spec)
	case "toml":
		return toml.NewEncoder(w).Encode(spec)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
		fmt.Fprintf(tw, "style\t%v\n", spec.Style)
		fmt.Fprintf(tw, "colormap\t%s\n", spec.Colormap)
		fmt.Fprintf(tw, "extend\t%v\n", spec.Extend)
		fmt.Fprintf(tw, "center\t%s\n", formatFloat(spec.Center))
		fmt.Fprintf(tw, "fills\t%s\n", formatFloats(spec.FillBoundaries))
		fmt.Fprintf(tw, "lines\t%s\n", formatFloats(spec.LineBoundaries))
		return tw.Flush()
	default:
		return fmt.Errorf("clevels: invalid output format %q; should be json, toml, or text", format)
	}
}

// WriteColors writes band colors to w as hex strings in the given
// format: json, toml, or text.
func WriteColors(w io.Writer, colors []color.Color, format string) error {
	hex := make([]string, len(colors))
	for i, c := range colors {
		hex[i] = Hex(c)
	}
	switch format {
	case "json":
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(struct {
			Colors []string `json:"colors"`
		}{hex})
	case "toml":
		return toml.NewEncoder(w).Encode(struct {
			Colors []string `toml:"colors"`
		}{hex})
	case "text":
		for _, h := range hex {
			if _, err := fmt.Fprintln(w, h); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("clevels: invalid output format %q; should be json, toml, or text", format)
	}
}

// Hex returns the #rrggbb representation of c.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

func formatFloats(v []float64) string {
	s := make([]string, len(v))
	for i, f := range v {
		s[i] = formatFloat(f)
	}
	return strings.Join(s, " ")
}
