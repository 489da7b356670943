// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reflect_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	cage_reflect "github.com/codeactual/stackutils/internal/cage/reflect"
)

type flags struct {
	Indent int `usage:"Number of spaces prepended to each line"`
	Jobs   int
}

func TestGetFieldTag(t *testing.T) {
	f := flags{}

	require.Exactly(t, "Number of spaces prepended to each line", cage_reflect.GetFieldTag(f, "Indent", "usage"))
	require.Exactly(t, "Number of spaces prepended to each line", cage_reflect.GetFieldTag(&f, "Indent", "usage"))
	require.Exactly(t, "", cage_reflect.GetFieldTag(f, "Jobs", "usage"))
	require.Exactly(t, "", cage_reflect.GetFieldTag(f, "Missing", "usage"))
	require.Exactly(t, "", cage_reflect.GetFieldTag("not a struct", "Indent", "usage"))
	require.Exactly(t, "", cage_reflect.GetFieldTag(nil, "Indent", "usage"))
}
