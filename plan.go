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
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the fraction of a step below which two boundaries
// are merged into one.
const DefaultTolerance = 1e-3

// MaxBoundaries limits the number of boundaries a single plan may
// generate on each side of the center.
const MaxBoundaries = 1 << 20

// Policy holds the settings that govern boundary merging and the
// handling of boundaries removed by the min and max clamps.
type Policy struct {
	// Tolerance is the fraction of the fill or line step below which
	// adjacent boundaries are merged. Zero means DefaultTolerance.
	Tolerance float64 `toml:"tolerance" json:"tolerance,omitempty"`

	// ForceExtend activates the extend band on any side where clamping
	// removed fill boundaries. When false, such a plan is rejected with
	// ErrInconsistentExtendPlan unless the caller requested the band.
	ForceExtend bool `toml:"force_extend" json:"force_extend,omitempty"`
}

func (p Policy) tolerance() float64 {
	if p.Tolerance > 0 {
		return p.Tolerance
	}
	return DefaultTolerance
}

// Request holds the parameters of a plan.
type Request struct {
	// Cdelt is the width of one division. It must be > 0.
	Cdelt float64 `toml:"cdelt" json:"cdelt"`

	// Ndiv is the number of divisions. For divergent plans it applies
	// to each side of Center.
	Ndiv int `toml:"ndiv" json:"ndiv"`

	// Nf is the number of filled bands per division; 0 disables fills.
	Nf int `toml:"nf" json:"nf"`

	// Nl is the number of contour lines per division; 0 disables lines.
	Nl int `toml:"nl" json:"nl"`

	// Min and Max optionally clamp the generated boundaries. For
	// sequential plans Min is also the starting value.
	Min *float64 `toml:"min" json:"min,omitempty"`
	Max *float64 `toml:"max" json:"max,omitempty"`

	Center float64 `toml:"center" json:"center"`

	Style  Style         `toml:"style" json:"style"`
	Extend ExtendRequest `toml:"extend" json:"extend"`

	// Colormap overrides the style's default colormap when non-empty.
	Colormap ColormapID `toml:"cmap" json:"cmap,omitempty"`

	Policy Policy `toml:"policy" json:"policy"`
}

// DefaultRequest returns a divergent request with one unit-wide
// division on each side of zero, ten fills and one line per division.
func DefaultRequest() Request {
	return Request{Cdelt: 1, Ndiv: 1, Nf: 10, Nl: 1}
}

// Float returns a pointer to v, for setting Request.Min and Request.Max.
func Float(v float64) *float64 { return &v }

// LevelSpec is a complete rendering plan. It is never modified after
// Plan returns it.
type LevelSpec struct {
	FillBoundaries []float64  `toml:"fill_boundaries" json:"fill_boundaries"`
	LineBoundaries []float64  `toml:"line_boundaries" json:"line_boundaries"`
	Colormap       ColormapID `toml:"colormap" json:"colormap"`
	Extend         ExtendMode `toml:"extend" json:"extend"`
	Center         float64    `toml:"center" json:"center"`
	Style          Style      `toml:"style" json:"style"`
}

// Clone returns a deep copy of s.
func (s *LevelSpec) Clone() *LevelSpec {
	o := *s
	o.FillBoundaries = append([]float64(nil), s.FillBoundaries...)
	o.LineBoundaries = append([]float64(nil), s.LineBoundaries...)
	return &o
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (r *Request) validate() error {
	if !(r.Cdelt > 0) || math.IsInf(r.Cdelt, 0) {
		return invalidf("cdelt=%g but should be >0", r.Cdelt)
	}
	counts := []int{r.Ndiv, r.Nf, r.Nl}
	names := []string{"ndiv", "nf", "nl"}
	for i, v := range counts {
		if v < 0 {
			return invalidf("%s=%d but should be >=0", names[i], v)
		}
	}
	for _, n := range []int{r.Nf, r.Nl} {
		if n > 0 && r.Ndiv > MaxBoundaries/n {
			return invalidf("ndiv=%d with %d boundaries per division exceeds %d boundaries", r.Ndiv, n, MaxBoundaries)
		}
	}
	if !finite(r.Center) {
		return invalidf("center=%g", r.Center)
	}
	if r.Min != nil && !finite(*r.Min) {
		return invalidf("min=%g", *r.Min)
	}
	if r.Max != nil && !finite(*r.Max) {
		return invalidf("max=%g", *r.Max)
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return invalidf("min=%g is greater than max=%g", *r.Min, *r.Max)
	}
	if p := r.Policy.Tolerance; p < 0 || math.IsNaN(p) || p >= 0.5 {
		return invalidf("policy tolerance=%g should be in [0, 0.5)", p)
	}
	if !r.Style.valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedStyle, r.Style)
	}
	if !r.Extend.valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedStyle, r.Extend)
	}
	return nil
}

// boundaries lays out the boundaries for n subdivisions per division,
// clamps them to [Min, Max], and reports whether the clamps removed
// anything on the low and high sides.
func (r *Request) boundaries(n int) (b []float64, lowClipped, highClipped bool, err error) {
	if n == 0 {
		return nil, false, false, nil
	}
	tol := r.Cdelt / float64(n) * r.Policy.tolerance()
	steps := r.Ndiv * n
	off := offsets(steps, n, r.Cdelt)
	switch r.Style {
	case Divergent:
		// Reflect the positive-side offsets so the layout is symmetric
		// and the center appears once.
		b = make([]float64, 2*steps+1)
		for i, d := range off {
			b[steps+i] = r.Center + d
			b[steps-i] = r.Center - d
		}
	case Sequential:
		start := r.Center
		if r.Min != nil {
			start = *r.Min
		}
		b = off
		floats.AddConst(start, b)
	}

	first, last := b[0], b[len(b)-1]
	if !finite(first) || !finite(last) {
		return nil, false, false, invalidf("cdelt=%g with ndiv=%d overflows at center=%g", r.Cdelt, r.Ndiv, r.Center)
	}
	for i := 1; i < len(b); i++ {
		if b[i]-b[i-1] <= tol {
			return nil, false, false, invalidf("cdelt=%g with %d subdivisions is below the floating-point resolution near %g", r.Cdelt, n, b[i])
		}
	}

	if r.Min != nil {
		lo := *r.Min
		if last < lo-tol {
			return nil, false, false, fmt.Errorf("%w: min=%g is above every level in [%g, %g]", ErrInconsistentExtendPlan, lo, first, last)
		}
		i := sort.Search(len(b), func(i int) bool { return b[i] >= lo })
		if i > 0 {
			// A boundary within tol below lo merges into it.
			lowClipped = b[0] < lo-tol
			b = append([]float64{lo}, b[i:]...)
		}
	}
	if r.Max != nil {
		hi := *r.Max
		if first > hi+tol {
			return nil, false, false, fmt.Errorf("%w: max=%g is below every level in [%g, %g]", ErrInconsistentExtendPlan, hi, first, last)
		}
		i := sort.Search(len(b), func(i int) bool { return b[i] > hi })
		if i < len(b) {
			highClipped = b[len(b)-1] > hi+tol
			b = append(b[:i:i], hi)
			if k := len(b) - 2; k >= 0 && hi-b[k] <= tol {
				b = append(b[:k], hi)
			}
		}
	}
	return dedupe(b, tol), lowClipped, highClipped, nil
}

// offsets returns the distances k*cdelt/n for k = 0..steps. Each is
// computed from k directly so no error accumulates along the axis.
func offsets(steps, n int, cdelt float64) []float64 {
	o := make([]float64, steps+1)
	for k := range o {
		o[k] = float64(k) * cdelt / float64(n)
	}
	return o
}

// dedupe sorts b and merges neighbors closer than tol, keeping the
// first of each run.
func dedupe(b []float64, tol float64) []float64 {
	sort.Float64s(b)
	o := b[:0]
	for _, v := range b {
		if len(o) > 0 && scalar.EqualWithinAbs(o[len(o)-1], v, tol) {
			continue
		}
		o = append(o, v)
	}
	return o
}

// Plan converts r into a LevelSpec. It has no side effects, and
// identical requests always produce deep-equal results.
//
// Boundaries never extend past Min or Max. A generated boundary within
// the merge tolerance of a clamp is replaced by the clamp value. If
// [Min, Max] lies entirely outside the generated levels, Plan returns
// ErrInconsistentExtendPlan. A division too narrow to resolve at the
// magnitude of Center returns ErrInvalidParameter.
func Plan(r Request) (*LevelSpec, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	fill, fillLow, fillHigh, err := r.boundaries(r.Nf)
	if err != nil {
		return nil, err
	}
	line, _, _, err := r.boundaries(r.Nl)
	if err != nil {
		return nil, err
	}

	low, high := r.Extend.low(), r.Extend.high()
	if fillLow && !low {
		if !r.Policy.ForceExtend {
			return nil, fmt.Errorf("%w: min=%g removes low fill boundaries but extend=%v", ErrInconsistentExtendPlan, *r.Min, r.Extend)
		}
		low = true
	}
	if fillHigh && !high {
		if !r.Policy.ForceExtend {
			return nil, fmt.Errorf("%w: max=%g removes high fill boundaries but extend=%v", ErrInconsistentExtendPlan, *r.Max, r.Extend)
		}
		high = true
	}
	if (low || high) && len(fill) == 0 {
		return nil, fmt.Errorf("%w: extend=%v requested without fill boundaries", ErrInconsistentExtendPlan, r.Extend)
	}

	return &LevelSpec{
		FillBoundaries: fill,
		LineBoundaries: line,
		Colormap:       r.colormap(),
		Extend:         extendMode(low, high),
		Center:         r.Center,
		Style:          r.Style,
	}, nil
}
