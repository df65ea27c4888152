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
	"strings"
)

// Style selects how boundaries are laid out along the value axis.
type Style int

const (
	// Divergent mirrors boundaries on both sides of the center value.
	Divergent Style = iota

	// Sequential lays boundaries out upward from a minimum value.
	Sequential
)

func (s Style) String() string {
	switch s {
	case Divergent:
		return "divergent"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle parses a style name. The short forms "div" and "seq" are
// accepted along with the full names.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "divergent", "div":
		return Divergent, nil
	case "sequential", "seq":
		return Sequential, nil
	default:
		return 0, fmt.Errorf("%w: style %q", ErrUnsupportedStyle, s)
	}
}

func (s Style) valid() bool { return s == Divergent || s == Sequential }

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedStyle, s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ExtendRequest is the caller's request for extra color bands beyond
// the outermost fill boundaries.
type ExtendRequest int

const (
	ExtendNeither ExtendRequest = iota
	ExtendMin
	ExtendMax
	ExtendBoth
)

func (e ExtendRequest) String() string {
	switch e {
	case ExtendNeither:
		return "neither"
	case ExtendMin:
		return "min"
	case ExtendMax:
		return "max"
	case ExtendBoth:
		return "both"
	default:
		return fmt.Sprintf("ExtendRequest(%d)", int(e))
	}
}

// ParseExtend parses an extend request. "none" is accepted as a
// synonym for "neither".
func ParseExtend(s string) (ExtendRequest, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "neither", "none":
		return ExtendNeither, nil
	case "min":
		return ExtendMin, nil
	case "max":
		return ExtendMax, nil
	case "both":
		return ExtendBoth, nil
	default:
		return 0, fmt.Errorf("%w: extend %q", ErrUnsupportedStyle, s)
	}
}

func (e ExtendRequest) valid() bool { return e >= ExtendNeither && e <= ExtendBoth }

func (e ExtendRequest) low() bool  { return e == ExtendMin || e == ExtendBoth }
func (e ExtendRequest) high() bool { return e == ExtendMax || e == ExtendBoth }

// MarshalText implements encoding.TextMarshaler.
func (e ExtendRequest) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedStyle, e)
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *ExtendRequest) UnmarshalText(b []byte) error {
	v, err := ParseExtend(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ExtendMode records which extend bands a plan carries.
type ExtendMode int

const (
	ModeNone ExtendMode = iota
	ModeLow
	ModeHigh
	ModeBoth
)

func extendMode(low, high bool) ExtendMode {
	switch {
	case low && high:
		return ModeBoth
	case low:
		return ModeLow
	case high:
		return ModeHigh
	}
	return ModeNone
}

// Low reports whether values below the lowest fill boundary get a band.
func (m ExtendMode) Low() bool { return m == ModeLow || m == ModeBoth }

// High reports whether values above the highest fill boundary get a band.
func (m ExtendMode) High() bool { return m == ModeHigh || m == ModeBoth }

func (m ExtendMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeLow:
		return "low"
	case ModeHigh:
		return "high"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("ExtendMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ExtendMode) MarshalText() ([]byte, error) {
	if m < ModeNone || m > ModeBoth {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedStyle, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ExtendMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none":
		*m = ModeNone
	case "low":
		*m = ModeLow
	case "high":
		*m = ModeHigh
	case "both":
		*m = ModeBoth
	default:
		return fmt.Errorf("%w: extend mode %q", ErrUnsupportedStyle, b)
	}
	return nil
}
