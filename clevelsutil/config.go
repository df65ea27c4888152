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
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/spatialmodel/clevels"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// constants can be used in numeric expressions.
var constants = map[string]interface{}{
	"pi": math.Pi,
	"e":  math.E,
}

// evalFloat converts a configuration value to a float. Strings are
// evaluated as arithmetic expressions after expanding environment
// variables, so "1/3" and "2*pi" are both valid.
func evalFloat(name string, v interface{}) (float64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, fmt.Errorf("clevels: parsing %s: %v", name, err)
		}
		return f, nil
	}
	s = strings.TrimSpace(os.ExpandEnv(s))
	expr, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return 0, fmt.Errorf("clevels: parsing %s=%q: %v", name, s, err)
	}
	result, err := expr.Evaluate(constants)
	if err != nil {
		return 0, fmt.Errorf("clevels: evaluating %s=%q: %v", name, s, err)
	}
	f, err := cast.ToFloat64E(result)
	if err != nil {
		return 0, fmt.Errorf("clevels: %s=%q is not a number: %v", name, s, err)
	}
	return f, nil
}

// evalOptionalFloat is like evalFloat but returns nil for an unset or
// empty value.
func evalOptionalFloat(name string, v interface{}) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(os.ExpandEnv(s)) == "" {
		return nil, nil
	}
	f, err := evalFloat(name, v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// RequestFromConfig unmarshals a viper configuration into a plan request.
func RequestFromConfig(cfg *viper.Viper) (clevels.Request, error) {
	var r clevels.Request
	var err error

	floats := []struct {
		name string
		dst  *float64
	}{
		{"cdelt", &r.Cdelt},
		{"center", &r.Center},
	}
	for _, f := range floats {
		if *f.dst, err = evalFloat(f.name, cfg.Get(f.name)); err != nil {
			return r, err
		}
	}
	if r.Min, err = evalOptionalFloat("min", cfg.Get("min")); err != nil {
		return r, err
	}
	if r.Max, err = evalOptionalFloat("max", cfg.Get("max")); err != nil {
		return r, err
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"ndiv", &r.Ndiv},
		{"nf", &r.Nf},
		{"nl", &r.Nl},
	}
	for _, i := range ints {
		if *i.dst, err = cast.ToIntE(cfg.Get(i.name)); err != nil {
			return r, fmt.Errorf("clevels: parsing %s: %v", i.name, err)
		}
	}

	if r.Style, err = clevels.ParseStyle(cfg.GetString("style")); err != nil {
		return r, err
	}
	if r.Extend, err = clevels.ParseExtend(cfg.GetString("extend")); err != nil {
		return r, err
	}
	r.Colormap = clevels.ColormapID(os.ExpandEnv(cfg.GetString("cmap")))

	if r.Policy.Tolerance, err = cast.ToFloat64E(cfg.Get("Policy.Tolerance")); err != nil {
		return r, fmt.Errorf("clevels: parsing Policy.Tolerance: %v", err)
	}
	if r.Policy.ForceExtend, err = cast.ToBoolE(cfg.Get("Policy.ForceExtend")); err != nil {
		return r, fmt.Errorf("clevels: parsing Policy.ForceExtend: %v", err)
	}
	return r, nil
}
