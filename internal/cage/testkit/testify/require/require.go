// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package require

import (
	"fmt"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	std_require "github.com/stretchr/testify/require"
)

func StringSliceExactly(t *testing.T, expected []string, actual []string) {
	std_require.Exactly(t, expected, actual, fmt.Sprintf(
		"expect: %s\nactual: %s\n", spew.Sdump(expected), spew.Sdump(actual),
	))
}

// LinesExactly compares multi-line output line by line so that a mismatch is reported
// with each line's boundaries visible.
func LinesExactly(t *testing.T, expected string, actual string) {
	StringSliceExactly(t, strings.Split(expected, "\n"), strings.Split(actual, "\n"))
}

func StringContains(t *testing.T, subject string, expected ...string) {
	for _, e := range expected {
		std_require.True(
			t,
			strings.Contains(subject, e),
			fmt.Sprintf("subject [%s]\nsubstring [%s]", subject, e),
		)
	}
}
