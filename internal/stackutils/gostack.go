// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-stack/stack"
)

// goClosureRe matches the symbol suffix of anonymous functions, e.g. "func1".
var goClosureRe *regexp.Regexp

func init() {
	goClosureRe = regexp.MustCompile(`^func\d+$`)
}

// GoStackProvider captures the current goroutine's stack, excluding runtime frames.
//
// Columns are not reported by the Go runtime.
type GoStackProvider struct{}

// Capture implements Provider.
func (GoStackProvider) Capture(limit, skip int) ([]CallSite, error) {
	calls := stack.Trace().TrimRuntime()

	// calls[0] is this method and calls[1] is its caller.
	drop := skip + 2
	if drop > len(calls) {
		return []CallSite{}, nil
	}
	calls = calls[drop:]

	if limit > 0 && len(calls) > limit {
		calls = calls[:limit]
	}

	sites := make([]CallSite, len(calls))
	for n, c := range calls {
		sites[n] = newGoCallSite(c)
	}
	return sites, nil
}

type goCallSite struct {
	file     string
	line     int
	function string
	typeName string
	method   string
}

func newGoCallSite(c stack.Call) goCallSite {
	frame := c.Frame()
	site := goCallSite{
		file:     frame.File,
		line:     frame.Line,
		function: fmt.Sprintf("%n", c), // e.g. "(*T).M", without the package
	}
	site.typeName, site.method = splitGoFunc(site.function)
	return site
}

// splitGoFunc returns the receiver type and method name of a package-relative function
// symbol: "(*T).M" and "T.M" both yield ("T", "M"). Plain functions and closures yield
// empty strings.
func splitGoFunc(name string) (typeName, method string) {
	if strings.HasPrefix(name, "(") {
		end := strings.Index(name, ")")
		if end == -1 {
			return "", ""
		}
		typeName = strings.TrimPrefix(name[1:end], "*")
		method = strings.SplitN(strings.TrimPrefix(name[end+1:], "."), ".", 2)[0]
		return typeName, method
	}

	parts := strings.Split(name, ".")
	if len(parts) < 2 || goClosureRe.MatchString(parts[1]) {
		return "", ""
	}
	return parts[0], parts[1]
}

func (s goCallSite) LineNumber() int      { return s.line }
func (s goCallSite) ColumnNumber() int    { return 0 }
func (s goCallSite) FileName() string     { return s.file }
func (s goCallSite) FunctionName() string { return s.function }
func (s goCallSite) MethodName() string   { return s.method }
func (s goCallSite) TypeName() string     { return s.typeName }
func (s goCallSite) IsConstructor() bool  { return false }
func (s goCallSite) IsEval() bool         { return false }
func (s goCallSite) EvalOrigin() string   { return "" }
func (s goCallSite) IsNative() bool       { return false }

var _ Provider = GoStackProvider{}
var _ CallSite = goCallSite{}
