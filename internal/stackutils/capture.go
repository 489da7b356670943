// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// CallSite describes one frame of a live call stack.
//
// Methods return zero values for details the runtime does not report.
type CallSite interface {
	LineNumber() int
	ColumnNumber() int
	FileName() string
	FunctionName() string
	MethodName() string
	TypeName() string
	IsConstructor() bool
	IsEval() bool
	EvalOrigin() string
	IsNative() bool
}

// Provider captures the current call stack.
type Provider interface {
	// Capture returns at most limit call sites, or all of them if limit is 0 or less.
	//
	// The first call site is the caller of the function which called Capture, after skipping
	// skip more frames.
	Capture(limit, skip int) ([]CallSite, error)
}

// Acquirer is implemented by providers whose capture settings are process-global,
// e.g. a frame limit stored in the embedded runtime.
//
// Acquire installs the settings for one capture and returns the function which restores
// the prior settings.
type Acquirer interface {
	Acquire(limit int) (release func())
}

// Capture returns at most limit call sites, or all of them if limit is 0 or less, each passed
// through Options.WrapCallSite.
//
// The first call site is the caller of Capture after skipping skip more frames.
func (u *StackUtils) Capture(limit, skip int) (sites []CallSite, err error) {
	if a, ok := u.provider.(Acquirer); ok {
		release := a.Acquire(limit)
		defer release()
	}

	sites, err = u.provider.Capture(limit, skip)
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture call stack")
	}

	if u.wrapCallSite != nil {
		for n := range sites {
			sites[n] = u.wrapCallSite(sites[n])
		}
	}

	return sites, nil
}

// CaptureString captures the call stack, as Capture does, and returns it as cleaned trace text.
func (u *StackUtils) CaptureString(limit, skip int) (string, error) {
	sites, err := u.Capture(limit, skip+1)
	if err != nil {
		return "", errors.WithStack(err)
	}

	lines := make([]string, len(sites))
	for n, site := range sites {
		lines[n] = FormatCallSite(site)
	}

	return u.CleanLines(lines, 0), nil
}

// At returns the first call site, after skipping skip frames above the caller of At.
//
// It returns an empty CallSiteLike if no call site was captured.
func (u *StackUtils) At(skip int) (CallSiteLike, error) {
	sites, err := u.Capture(1, skip+1)
	if err != nil {
		return CallSiteLike{}, errors.WithStack(err)
	}
	if len(sites) == 0 {
		return CallSiteLike{}, nil
	}

	site := sites[0]
	res := CallSiteLike{}

	if line := site.LineNumber(); line > 0 {
		res.Line = intPtr(line)
	}
	if col := site.ColumnNumber(); col > 0 {
		res.Column = intPtr(col)
	}
	if file := site.FileName(); file != "" {
		res.File = stringPtr(u.relativeFile(file))
	}
	if site.IsConstructor() {
		res.Constructor = boolPtr(true)
	}
	if site.IsEval() {
		res.EvalOrigin = stringPtr(site.EvalOrigin())
	}
	if site.IsNative() {
		res.Native = boolPtr(true)
	}

	if typeName := site.TypeName(); typeName != "" && typeName != "Object" && typeName != "[object Object]" {
		res.Type = stringPtr(typeName)
	}

	fname := site.FunctionName()
	if fname != "" {
		res.Function = stringPtr(fname)
	}
	if method := site.MethodName(); method != "" && method != fname {
		res.Method = stringPtr(method)
	}

	return res, nil
}

// FormatCallSite renders the call site as a trace line, e.g.
// "    at Type.fn [as method] (file.js:1:2)".
//
// The column is omitted if unknown.
func FormatCallSite(site CallSite) string {
	var loc string
	if site.IsNative() {
		loc = "native"
	} else {
		loc = fmt.Sprintf("%s:%d", site.FileName(), site.LineNumber())
		if col := site.ColumnNumber(); col > 0 {
			loc += fmt.Sprintf(":%d", col)
		}
	}

	var b strings.Builder
	b.WriteString("    at ")

	if site.IsConstructor() {
		b.WriteString("new ")
	}

	fname := site.FunctionName()
	if fname == "" {
		b.WriteString(loc)
		return b.String()
	}

	b.WriteString(fname)
	if method := site.MethodName(); method != "" && method != fname && !strings.HasSuffix(fname, "."+method) {
		b.WriteString(" [as " + method + "]")
	}
	b.WriteString(" (" + loc + ")")

	return b.String()
}
