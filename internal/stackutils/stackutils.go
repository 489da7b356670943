// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package stackutils cleans and parses V8-style stack traces, e.g. from Node.js errors.
//
// Clean removes internal frames and shortens paths relative to a working directory.
// ParseLine converts a single trace line into a Frame. Capture, CaptureString and At
// adapt a live call stack, supplied by a Provider, to the same output shapes.
//
// A StackUtils value is immutable after New and safe for concurrent use.
package stackutils

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FrameTransform receives a captured call site and returns the one to report instead,
// e.g. to remap locations with a source map.
type FrameTransform func(CallSite) CallSite

type Options struct {
	// Internals match trace lines which should be culled.
	//
	// If nil, NodeInternals(NodeVersion) is used. Set an empty, non-nil slice to disable the built-ins.
	Internals []*regexp.Regexp

	// ExtraInternals are appended to Internals, e.g. to extend the built-ins without replacing them.
	ExtraInternals []*regexp.Regexp

	// IgnoredPackages holds package names whose node_modules frames should be culled.
	IgnoredPackages []string

	// Cwd is the path which file names in the trace are shown relative to.
	//
	// If empty, file names are not shortened.
	Cwd string

	// RemoveFirstLine selects whether a leading message line, e.g. "Error: ...", is dropped by Clean.
	RemoveFirstLine bool

	// WrapCallSite optionally transforms each call site returned by Capture and At.
	WrapCallSite FrameTransform

	// NodeVersion selects the built-in module list used when Internals is nil.
	//
	// If empty, all known built-in modules are included.
	NodeVersion string

	// Provider captures the live call stack. If nil, GoStackProvider is used.
	Provider Provider

	// Logger receives debug events. If nil, events are discarded.
	Logger *zap.Logger
}

type StackUtils struct {
	cwd             string
	internals       []*regexp.Regexp
	removeFirstLine bool
	wrapCallSite    FrameTransform
	provider        Provider
	log             *zap.Logger
}

// New returns a StackUtils configured by the options.
//
// It returns an error if NodeVersion is invalid or an ignored package name cannot be
// converted to a pattern.
func New(opts Options) (*StackUtils, error) {
	u := &StackUtils{
		cwd:             slashes(opts.Cwd),
		removeFirstLine: opts.RemoveFirstLine,
		wrapCallSite:    opts.WrapCallSite,
		provider:        opts.Provider,
		log:             opts.Logger,
	}

	if u.provider == nil {
		u.provider = GoStackProvider{}
	}
	if u.log == nil {
		u.log = zap.NewNop()
	}

	if opts.Internals == nil {
		internals, err := NodeInternals(opts.NodeVersion)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		u.internals = internals
	} else {
		u.internals = append(u.internals, opts.Internals...)
	}

	u.internals = append(u.internals, opts.ExtraInternals...)

	names := make([]interface{}, len(opts.IgnoredPackages))
	for n, name := range opts.IgnoredPackages {
		names[n] = name
	}
	ignored, err := IgnoredPackagesRegexp(names...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if ignored != nil {
		u.internals = append(u.internals, ignored)
	}

	u.log.Debug(
		"stackutils configured",
		zap.String("cwd", u.cwd),
		zap.Int("internals", len(u.internals)),
		zap.Strings("ignoredPackages", opts.IgnoredPackages),
		zap.Bool("removeFirstLine", u.removeFirstLine),
	)

	return u, nil
}

// Cwd returns the slash-normalized working directory.
func (u *StackUtils) Cwd() string {
	return u.cwd
}

// Internals returns a copy of the patterns used to cull trace lines.
func (u *StackUtils) Internals() []*regexp.Regexp {
	return append([]*regexp.Regexp{}, u.internals...)
}

func (u *StackUtils) isInternal(line string) bool {
	for _, re := range u.internals {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// relativeFile returns the slash-normalized file name, relative to the working directory
// if the latter is a prefix.
func (u *StackUtils) relativeFile(name string) string {
	name = slashes(name)
	if u.cwd != "" && strings.HasPrefix(name, u.cwd+"/") {
		name = name[len(u.cwd)+1:]
	}
	return name
}

func slashes(s string) string {
	return strings.Replace(s, `\`, "/", -1)
}
