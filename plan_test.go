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
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

const testTolerance = 1.e-9

func absDifferent(a, b float64) bool {
	return math.Abs(a-b) > testTolerance
}

func checkBoundaries(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d boundaries %v, want %d %v", name, len(got), got, len(want), want)
	}
	for i := range got {
		if absDifferent(got[i], want[i]) {
			t.Errorf("%s[%d]: got %g, want %g", name, i, got[i], want[i])
		}
	}
}

func steps(lo, step float64, n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = lo + float64(i)*step
	}
	return o
}

func TestPlanScenarios(t *testing.T) {
	t.Run("divergent one division", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 1, Ndiv: 1, Nf: 5, Nl: 1})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries,
			[]float64{-1, -0.8, -0.6, -0.4, -0.2, 0, 0.2, 0.4, 0.6, 0.8, 1})
		checkBoundaries(t, "line", s.LineBoundaries, []float64{-1, 0, 1})
		if s.Extend != ModeNone {
			t.Errorf("extend: got %v, want none", s.Extend)
		}
		if s.Colormap != DefaultDivergent {
			t.Errorf("colormap: got %q, want %q", s.Colormap, DefaultDivergent)
		}
		if s.Center != 0 || s.Style != Divergent {
			t.Errorf("center/style: got %g/%v", s.Center, s.Style)
		}
	})
	t.Run("divergent two divisions extended", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 0.6, Ndiv: 2, Nf: 6, Nl: 1, Extend: ExtendBoth})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, steps(-1.2, 0.1, 25))
		checkBoundaries(t, "line", s.LineBoundaries, []float64{-1.2, -0.6, 0, 0.6, 1.2})
		if s.Extend != ModeBoth {
			t.Errorf("extend: got %v, want both", s.Extend)
		}
	})
	t.Run("sequential from min", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 1, Min: Float(-1.5), Ndiv: 3, Nf: 4, Nl: 2,
			Style: Sequential, Extend: ExtendBoth})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, steps(-1.5, 0.25, 13))
		checkBoundaries(t, "line", s.LineBoundaries, steps(-1.5, 0.5, 7))
		if s.Extend != ModeBoth {
			t.Errorf("extend: got %v, want both", s.Extend)
		}
		if s.Colormap != DefaultSequential {
			t.Errorf("colormap: got %q, want %q", s.Colormap, DefaultSequential)
		}
	})
	t.Run("negative cdelt", func(t *testing.T) {
		_, err := Plan(Request{Cdelt: -1, Ndiv: 1, Nf: 1, Nl: 1})
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("got %v, want ErrInvalidParameter", err)
		}
	})
	t.Run("inverted range", func(t *testing.T) {
		_, err := Plan(Request{Cdelt: 1, Ndiv: 1, Nf: 1, Nl: 1, Min: Float(2), Max: Float(1)})
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("got %v, want ErrInvalidParameter", err)
		}
	})
	t.Run("clfdict gallery", func(t *testing.T) {
		s, err := Plan(Request{Min: Float(-1.2), Cdelt: 0.4, Ndiv: 3, Nf: 2, Nl: 1,
			Extend: ExtendBoth, Colormap: "RdGy"})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, steps(-1.2, 0.2, 13))
		checkBoundaries(t, "line", s.LineBoundaries, steps(-1.2, 0.4, 7))
		if s.Colormap != "RdGy" {
			t.Errorf("colormap: got %q, want RdGy", s.Colormap)
		}
	})
}

func TestPlanErrors(t *testing.T) {
	tests := []struct {
		name string
		r    Request
		err  error
	}{
		{name: "zero cdelt", r: Request{Ndiv: 1, Nf: 1}, err: ErrInvalidParameter},
		{name: "NaN cdelt", r: Request{Cdelt: math.NaN(), Ndiv: 1}, err: ErrInvalidParameter},
		{name: "infinite cdelt", r: Request{Cdelt: math.Inf(1), Ndiv: 1}, err: ErrInvalidParameter},
		{name: "negative ndiv", r: Request{Cdelt: 1, Ndiv: -1}, err: ErrInvalidParameter},
		{name: "negative nf", r: Request{Cdelt: 1, Nf: -1}, err: ErrInvalidParameter},
		{name: "negative nl", r: Request{Cdelt: 1, Nl: -2}, err: ErrInvalidParameter},
		{name: "too many", r: Request{Cdelt: 1, Ndiv: MaxBoundaries, Nf: 2}, err: ErrInvalidParameter},
		{name: "NaN min", r: Request{Cdelt: 1, Min: Float(math.NaN())}, err: ErrInvalidParameter},
		{name: "bad tolerance", r: Request{Cdelt: 1, Policy: Policy{Tolerance: 0.7}}, err: ErrInvalidParameter},
		{name: "style", r: Request{Cdelt: 1, Style: Style(5)}, err: ErrUnsupportedStyle},
		{name: "extend", r: Request{Cdelt: 1, Extend: ExtendRequest(9)}, err: ErrUnsupportedStyle},
		{
			name: "clipped high without extend",
			r:    Request{Cdelt: 1, Ndiv: 2, Nf: 1, Nl: 1, Max: Float(1.5)},
			err:  ErrInconsistentExtendPlan,
		},
		{
			name: "clipped low with only max extend",
			r:    Request{Cdelt: 1, Ndiv: 2, Nf: 1, Min: Float(-1.5), Extend: ExtendMax},
			err:  ErrInconsistentExtendPlan,
		},
		{
			name: "extend without fills",
			r:    Request{Cdelt: 1, Ndiv: 2, Nl: 1, Extend: ExtendBoth},
			err:  ErrInconsistentExtendPlan,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := Plan(test.r)
			if !errors.Is(err, test.err) {
				t.Errorf("got error %v, want %v", err, test.err)
			}
			if s != nil {
				t.Errorf("got partial plan %v", s)
			}
		})
	}
}

func TestPlanClip(t *testing.T) {
	base := Request{Cdelt: 1, Ndiv: 2, Nf: 1, Nl: 1}

	t.Run("force extend", func(t *testing.T) {
		r := base
		r.Max = Float(1.5)
		r.Policy.ForceExtend = true
		s, err := Plan(r)
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{-2, -1, 0, 1, 1.5})
		checkBoundaries(t, "line", s.LineBoundaries, []float64{-2, -1, 0, 1, 1.5})
		if s.Extend != ModeHigh {
			t.Errorf("extend: got %v, want high", s.Extend)
		}
	})
	t.Run("requested extend", func(t *testing.T) {
		r := base
		r.Min = Float(-1.5)
		r.Max = Float(0.5)
		r.Extend = ExtendBoth
		s, err := Plan(r)
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{-1.5, -1, 0, 0.5})
		if s.Extend != ModeBoth {
			t.Errorf("extend: got %v, want both", s.Extend)
		}
	})
	t.Run("clamp on boundary", func(t *testing.T) {
		r := base
		r.Min = Float(-2)
		r.Max = Float(2)
		s, err := Plan(r)
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{-2, -1, 0, 1, 2})
		if s.Extend != ModeNone {
			t.Errorf("extend: got %v, want none", s.Extend)
		}
	})
	t.Run("clamp outside range", func(t *testing.T) {
		r := base
		r.Min = Float(-10)
		r.Max = Float(10)
		s, err := Plan(r)
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{-2, -1, 0, 1, 2})
	})
	t.Run("sequential max", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 2, Ndiv: 2, Nf: 2, Style: Sequential,
			Min: Float(10), Max: Float(12.5), Extend: ExtendMax})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{10, 11, 12, 12.5})
		if len(s.LineBoundaries) != 0 {
			t.Errorf("lines: got %v, want none", s.LineBoundaries)
		}
		if s.Extend != ModeHigh {
			t.Errorf("extend: got %v, want high", s.Extend)
		}
	})
}

func TestPlanDegenerate(t *testing.T) {
	t.Run("no divisions", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 1, Nf: 4, Nl: 1, Center: 5})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{5})
		checkBoundaries(t, "line", s.LineBoundaries, []float64{5})
	})
	t.Run("no fills or lines", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 1, Ndiv: 3})
		if err != nil {
			t.Fatal(err)
		}
		if len(s.FillBoundaries) != 0 || len(s.LineBoundaries) != 0 {
			t.Errorf("got %v and %v, want no boundaries", s.FillBoundaries, s.LineBoundaries)
		}
	})
	t.Run("sequential without min starts at center", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 10, Ndiv: 2, Nf: 1, Center: 270, Style: Sequential})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{270, 280, 290})
	})
	t.Run("coarse tolerance merges", func(t *testing.T) {
		b := dedupe([]float64{0.3, 0, 0.1, 0.1000001, 0.2}, 1e-4)
		checkBoundaries(t, "dedupe", b, []float64{0, 0.1, 0.2, 0.3})
	})
}

func TestPlanProperties(t *testing.T) {
	type scale struct{ cdelt, center float64 }
	var scales []scale
	for _, cdelt := range []float64{0.1, 0.6, 1, 2.5} {
		for _, center := range []float64{0, -5, 273.15} {
			scales = append(scales, scale{cdelt, center})
		}
	}
	// Narrow divisions far from zero.
	scales = append(scales, scale{1e-6, 1e5}, scale{0.01, 1e11}, scale{0.3, -4.5e7})

	for _, sc := range scales {
		lo, hi := sc.center-0.75*sc.cdelt, sc.center+1.3*sc.cdelt
		clamps := [][2]*float64{{nil, nil}, {&lo, nil}, {nil, &hi}, {&lo, &hi}}
		for ndiv := 0; ndiv <= 3; ndiv++ {
			for nf := 0; nf <= 6; nf++ {
				for nl := 0; nl <= 3; nl++ {
					for _, style := range []Style{Divergent, Sequential} {
						for _, c := range clamps {
							r := Request{Cdelt: sc.cdelt, Ndiv: ndiv, Nf: nf, Nl: nl,
								Center: sc.center, Style: style, Min: c[0], Max: c[1],
								Policy: Policy{ForceExtend: true}}
							checkProperties(t, r)
						}
					}
				}
			}
		}
	}
}

// ulp returns the spacing of float64 values near v.
func ulp(v float64) float64 {
	v = math.Abs(v)
	return math.Nextafter(v, math.Inf(1)) - v
}

func checkProperties(t *testing.T, r Request) {
	t.Helper()
	s, err := Plan(r)
	if err != nil {
		t.Fatalf("%+v: %v", r, err)
	}
	s2, err := Plan(r)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s, s2) {
		t.Errorf("%+v: not idempotent: %v", r, pretty.Diff(s, s2))
	}
	steps := map[string]int{"fill": r.Nf, "line": r.Nl}
	for name, b := range map[string][]float64{"fill": s.FillBoundaries, "line": s.LineBoundaries} {
		if steps[name] > 0 && len(b) == 0 {
			t.Errorf("%+v: no %s boundaries", r, name)
		}
		for i := 1; i < len(b); i++ {
			if !(b[i] > b[i-1]) {
				t.Errorf("%+v: %s boundaries not strictly increasing: %v", r, name, b)
				break
			}
		}
		if len(b) == 0 {
			continue
		}
		if r.Min != nil && b[0] < *r.Min {
			t.Errorf("%+v: %s boundary %g is below min %g", r, name, b[0], *r.Min)
		}
		if r.Max != nil && b[len(b)-1] > *r.Max {
			t.Errorf("%+v: %s boundary %g is above max %g", r, name, b[len(b)-1], *r.Max)
		}
		tol := r.Cdelt*1e-6 + 2*ulp(math.Abs(r.Center)+float64(r.Ndiv)*r.Cdelt)
		switch r.Style {
		case Divergent:
			var atCenter int
			for i, v := range b {
				if math.Abs(v-r.Center) < tol {
					atCenter++
				}
				if r.Min != nil || r.Max != nil {
					continue
				}
				mirror := b[len(b)-1-i]
				if math.Abs((v-r.Center)+(mirror-r.Center)) > tol {
					t.Errorf("%+v: %s boundaries not symmetric: %g and %g", r, name, v, mirror)
				}
			}
			if atCenter != 1 {
				t.Errorf("%+v: %s center appears %d times", r, name, atCenter)
			}
			if r.Min == nil && r.Max == nil && len(b) != 2*r.Ndiv*steps[name]+1 {
				t.Errorf("%+v: got %d %s boundaries, want %d", r, len(b), name, 2*r.Ndiv*steps[name]+1)
			}
		case Sequential:
			start := r.Center
			if r.Min != nil {
				start = *r.Min
			}
			if b[0] != start {
				t.Errorf("%+v: %s starts at %g, want %g", r, name, b[0], start)
			}
		}
	}
}

func TestPlanClampMerge(t *testing.T) {
	t.Run("min within tolerance", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 1, Ndiv: 2, Nf: 1, Min: Float(-1.9995)})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{-1.9995, -1, 0, 1, 2})
		if s.FillBoundaries[0] != -1.9995 || s.Extend != ModeNone {
			t.Errorf("got %v extend %v", s.FillBoundaries, s.Extend)
		}
	})
	t.Run("max within tolerance", func(t *testing.T) {
		s, err := Plan(Request{Cdelt: 1, Ndiv: 2, Nf: 1, Max: Float(1.9995)})
		if err != nil {
			t.Fatal(err)
		}
		checkBoundaries(t, "fill", s.FillBoundaries, []float64{-2, -1, 0, 1, 1.9995})
		if s.Extend != ModeNone {
			t.Errorf("extend: got %v, want none", s.Extend)
		}
	})
	t.Run("range outside levels", func(t *testing.T) {
		_, err := Plan(Request{Cdelt: 1, Ndiv: 1, Nf: 1, Min: Float(5), Max: Float(6), Extend: ExtendBoth})
		if !errors.Is(err, ErrInconsistentExtendPlan) {
			t.Errorf("got %v, want ErrInconsistentExtendPlan", err)
		}
		_, err = Plan(Request{Cdelt: 1, Ndiv: 1, Nf: 1, Max: Float(-3), Extend: ExtendBoth})
		if !errors.Is(err, ErrInconsistentExtendPlan) {
			t.Errorf("got %v, want ErrInconsistentExtendPlan", err)
		}
	})
}

func TestPlanLargeCenter(t *testing.T) {
	s, err := Plan(Request{Cdelt: 1e-6, Ndiv: 1, Nf: 10, Nl: 1, Center: 1e5})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.FillBoundaries) != 21 {
		t.Fatalf("got %d fill boundaries, want 21: %v", len(s.FillBoundaries), s.FillBoundaries)
	}
	if s.FillBoundaries[10] != 1e5 {
		t.Errorf("center boundary: got %v", s.FillBoundaries[10])
	}

	s, err = Plan(Request{Cdelt: 0.01, Ndiv: 1, Nf: 1, Nl: 1, Center: 1e11})
	if err != nil {
		t.Fatal(err)
	}
	center, d := 1e11, 0.01
	if want := []float64{center - d, center, center + d}; !reflect.DeepEqual(s.FillBoundaries, want) {
		t.Errorf("got %v, want %v", s.FillBoundaries, want)
	}

	// Below the floating-point resolution at the center.
	if _, err := Plan(Request{Cdelt: 1e-9, Ndiv: 1, Nf: 1, Center: 1e11}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}
