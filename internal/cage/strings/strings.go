// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package strings

import (
	"sort"
)

// Copy returns a copy of the source slice.
func Copy(src []string) (dst []string) {
	dst = make([]string, len(src))
	copy(dst, src)
	return dst
}

func SortStable(s []string) {
	sort.Stable(sort.StringSlice(s))
}
