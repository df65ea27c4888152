/*
Copyright © 2019 the InMAP authors.
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
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.*/

// Package hash creates cache keys from arbitrary values.
package hash

import (
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

// printer writes a deterministic dump of a value. Pointers are followed
// and printed by value, so a nil pointer and a pointer to a zero value
// produce different dumps.
var printer = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Hash returns a hash key for the specified objects.
func Hash(objects ...interface{}) string {
	h := fnv.New128a()
	for _, o := range objects {
		printer.Fprintf(h, "%#v\n", o)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
