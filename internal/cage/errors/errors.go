// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package errors

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-stack/stack"
	"github.com/pkg/errors"
)

// stackTracer is a copy of the pkg/errors interface.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Event aims to provide error detail for inclusion in a structured log.
//
// It omits a time value, assuming the structured logger will include it.
type Event struct {
	// Loc is the event creation site.
	Loc Location

	// Errors holds one or more errors collected at the event creation site.
	Errors []Error
}

type Location struct {
	// File is an absolute path.
	File string

	// Func omits the package path, e.g. "(*Handler).Run".
	Func string

	Line int
}

type Error struct {
	// Msg is the full message, including messages of all wrapped errors.
	Msg string

	// Cause is the message of the innermost error, if it differs from Msg.
	Cause string `json:",omitempty"`

	// Loc is the error creation site, if available (e.g. from pkg/errors).
	Loc Location

	// Stack includes locations leading to, but excluding, Error.Loc, if available.
	//
	// Frames from the runtime and testing packages are omitted.
	Stack []Location `json:",omitempty"`
}

// NewEvent returns an Event located at its caller. Nil errors are skipped.
func NewEvent(errs ...error) *Event {
	caller := stack.Caller(1)
	frame := caller.Frame()

	event := &Event{
		Loc: Location{
			File: frame.File,
			Func: fmt.Sprintf("%n", caller),
			Line: frame.Line,
		},
	}

	for _, err := range errs {
		if err == nil {
			continue
		}
		event.Errors = append(event.Errors, newError(err))
	}

	return event
}

func newError(err error) (computed Error) {
	computed.Msg = err.Error()

	if cause := errors.Cause(err); cause != err {
		if msg := cause.Error(); msg != computed.Msg {
			computed.Cause = msg
		}
	}

	e, ok := err.(stackTracer)
	if !ok {
		return computed
	}

	var locs []Location
	for _, f := range e.StackTrace() {
		loc, ok := frameLocation(f)
		if !ok {
			continue
		}
		locs = append(locs, loc)
	}

	if len(locs) > 0 {
		computed.Loc = locs[0]
		computed.Stack = locs[1:]
	}
	if len(computed.Stack) == 0 {
		computed.Stack = nil
	}

	return computed
}

// frameLocation converts a pkg/errors frame. It returns false for frames in the runtime
// and testing packages.
func frameLocation(f errors.Frame) (loc Location, ok bool) {
	// "%+s" is "<import path>.<func>\n\t<file>"
	parts := strings.SplitN(fmt.Sprintf("%+s", f), "\n\t", 2)
	if len(parts) != 2 {
		return Location{}, false
	}

	if strings.HasPrefix(parts[0], "runtime.") || strings.HasPrefix(parts[0], "testing.") {
		return Location{}, false
	}

	line, err := strconv.Atoi(fmt.Sprintf("%d", f))
	if err != nil {
		return Location{}, false
	}

	return Location{File: parts[1], Func: fmt.Sprintf("%n", f), Line: line}, true
}

// WriteErrList prints one "Error (n/total): <msg>" line per error.
func WriteErrList(w io.Writer, errs ...error) {
	errsLen := len(errs)
	if errsLen > 0 {
		fmt.Fprintf(w, "\n") // in case the cursor at the end of a "starting X ..." line
		for n, err := range errs {
			fmt.Fprintf(w, "Error (%d/%d): %s\n", n+1, errsLen, err)
		}
	}
}

// Append adds the error to the list if it is non-nil and reports whether it did.
func Append(errs *[]error, err error) bool {
	if err != nil {
		*errs = append(*errs, err)
		return true
	}
	return false
}
