// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package errors_test

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	cage_errors "github.com/codeactual/stackutils/internal/cage/errors"
)

func TestNewEvent(t *testing.T) {
	testNewEvent(t) // to add a non-runtime/testing stack frame
}

func testNewEvent(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)

	root := func() error {
		return errors.New("root")
	}
	err := errors.Wrap(root(), "final wrap")

	_, _, eventLine, _ := runtime.Caller(0)
	event := cage_errors.NewEvent(err, nil)

	require.Exactly(t, cage_errors.Location{File: thisFile, Func: "testNewEvent", Line: eventLine + 1}, event.Loc)
	require.Len(t, event.Errors, 1)

	e := event.Errors[0]
	require.Exactly(t, "final wrap: root", e.Msg)
	require.Exactly(t, "root", e.Cause)
	require.Exactly(t, thisFile, e.Loc.File)
	require.Exactly(t, "testNewEvent", e.Loc.Func)
	require.Len(t, e.Stack, 1)
	require.Exactly(t, "TestNewEvent", e.Stack[0].Func)
}

func TestNewEventUnwrapped(t *testing.T) {
	event := cage_errors.NewEvent(errors.New("plain"))

	require.Len(t, event.Errors, 1)
	require.Exactly(t, "plain", event.Errors[0].Msg)
	require.Empty(t, event.Errors[0].Cause)
	require.Exactly(t, "TestNewEventUnwrapped", event.Errors[0].Loc.Func)
}

func TestWriteErrList(t *testing.T) {
	var buf bytes.Buffer
	var errs []error

	require.False(t, cage_errors.Append(&errs, nil))
	require.True(t, cage_errors.Append(&errs, errors.New("a")))
	require.True(t, cage_errors.Append(&errs, errors.New("b")))

	cage_errors.WriteErrList(&buf, errs...)

	require.Exactly(t, "\nError (1/2): a\nError (2/2): b\n", buf.String())
	require.False(t, strings.Contains(buf.String(), "errors_test.go"))
}
