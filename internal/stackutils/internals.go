// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// fixedInternals match frames from the runtime's internal namespace and from the
// spawn-wrap shim, regardless of the built-in module list.
var fixedInternals []*regexp.Regexp

// regexpSpecialRe matches characters with special meaning either inside or outside of
// character classes.
var regexpSpecialRe *regexp.Regexp

func init() {
	fixedInternals = []*regexp.Regexp{
		regexp.MustCompile(`\((?:node:)?internal/[^:]+:\d+:\d+\)$`),
		regexp.MustCompile(`\s*at (?:node:)?internal/[^:]+:\d+:\d+$`),
		regexp.MustCompile(`/\.node-spawn-wrap-\w+-\w+/node:\d+:\d+\)?$`),
	}
	regexpSpecialRe = regexp.MustCompile(`[|\\{}()\[\]^$+*?.]`)
}

// NodeInternals returns patterns which match trace lines from the runtime's built-in modules
// available in the selected version (see BuiltinModules).
//
// Each call returns a new slice, so callers may append their own patterns.
func NodeInternals(version string) ([]*regexp.Regexp, error) {
	names, err := BuiltinModules(version)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internals := make([]*regexp.Regexp, 0, len(names)+len(fixedInternals))

	for _, name := range names {
		n := regexp.QuoteMeta(name)
		re, err := regexp.Compile(
			`(?:\((?:node:)?` + n + `(?:\.js)?:\d+:\d+\)$|^\s*at (?:node:)?` + n + `(?:\.js)?:\d+:\d+$)`,
		)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compile pattern for built-in module [%s]", name)
		}
		internals = append(internals, re)
	}

	return append(internals, fixedInternals...), nil
}

// EscapeRegexp returns the string with every regexp metacharacter escaped so the result
// matches the input literally. Hyphens are escaped as \x2d.
//
// It returns an error, whose cause is ErrInvalidArgument, if the value is not a string.
func EscapeRegexp(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrInvalidArgument, "expected a string, found [%T]", v)
	}
	s = regexpSpecialRe.ReplaceAllString(s, `\${0}`)
	return strings.Replace(s, "-", `\x2d`, -1), nil
}

// IgnoredPackagesRegexp returns a pattern which matches trace locations under the
// node_modules directory of any of the named packages.
//
// It returns nil if no names are provided. Names are accepted as interface{} values because
// they are often decoded from untyped config sources; non-string names are rejected
// (see EscapeRegexp).
func IgnoredPackagesRegexp(names ...interface{}) (*regexp.Regexp, error) {
	if len(names) == 0 {
		return nil, nil
	}

	escaped := make([]string, len(names))
	for n, name := range names {
		e, err := EscapeRegexp(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to escape ignored package name at index [%d]", n)
		}
		escaped[n] = e
	}

	pattern := `(?:^|[/\\])node_modules[/\\](?:` + strings.Join(escaped, "|") + `)[/\\][^:]+:\d+:\d+`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile ignored packages pattern [%s]", pattern)
	}
	return re, nil
}
