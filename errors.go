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
	"fmt"
)

var (
	// ErrInvalidParameter is returned when a numeric input violates a
	// precondition: a non-positive division width, a negative count,
	// or an inverted min/max range.
	ErrInvalidParameter = errors.New("clevels: invalid parameter")

	// ErrUnsupportedStyle is returned for an unrecognized style or
	// extend value.
	ErrUnsupportedStyle = errors.New("clevels: unsupported style")

	// ErrInconsistentExtendPlan is returned when clipping to min or max
	// removes boundaries on a side where no extend band was requested,
	// or when an extend band is requested for a plan without fills.
	ErrInconsistentExtendPlan = errors.New("clevels: inconsistent extend plan")

	// ErrUnknownColormap is returned when a colormap identifier has not
	// been registered.
	ErrUnknownColormap = errors.New("clevels: unknown colormap")
)

// invalidf wraps ErrInvalidParameter with a formatted description.
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidParameter}, args...)...)
}
