// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

import (
	"regexp"
	"strconv"
)

// frameLineRe matches one trace line. Submatches:
//
//   1: "new" for constructor calls
//   2: function name, may end with " [as method]"
//   3: eval origin
//   4, 5, 6: eval file, line, column
//   7, 8, 9: file, line, column
//   10: "native"
//   11: ")" if the location closes a paren
//
// The function name can be literally anything. If submatch 11 is a paren, only balanced
// parens are allowed in the file name and any imbalance is moved to the function name
// (see ParseLine). Odd characters in function names are assumed to be more common than
// in file names.
var frameLineRe *regexp.Regexp

var methodAliasRe *regexp.Regexp

func init() {
	frameLineRe = regexp.MustCompile(
		`^` +
			// the "    at " prefix is sometimes already stripped
			`(?:\s*at )?` +
			`(?:(new) )?` +
			`(?:(.*?) \()?` +
			// "eval at <anonymous> (file.js:1:1), "
			`(?:eval at ([^ ]+) \((.+?):(\d+):(\d+)\), )?` +
			`(?:(.+?):(\d+):(\d+)|(native))` +
			`(\)?)$`,
	)
	methodAliasRe = regexp.MustCompile(`^(.*?) \[as (.*?)\]$`)
}

// ParseLine parses a single trace line.
//
// It returns false if the line is not a frame, e.g. an "Error: ..." message line.
func (u *StackUtils) ParseLine(line string) (f Frame, ok bool) {
	m := frameLineRe.FindStringSubmatch(line)
	if m == nil {
		return Frame{}, false
	}

	ctor := m[1] == "new"
	fname := m[2]
	evalOrigin := m[3]
	evalFile := m[4]
	evalLine := m[5]
	evalCol := m[6]
	file := m[7]
	lnum := m[8]
	col := m[9]
	native := m[10] == "native"
	closeParen := m[11] == ")"

	f.Line = atoiPtr(lnum)
	f.Column = atoiPtr(col)

	if closeParen && file != "" {
		// With a file like "asdf) [as foo] (xyz.js", odds are that the function name should
		// gain " (asdf) [as foo]" and the file should be just "xyz.js".
		// Walk backward to find the last unbalanced " (".
		closes := 0
	walk:
		for i := len(file) - 1; i > 0; i-- {
			switch {
			case file[i] == ')':
				closes++
			case file[i] == '(' && file[i-1] == ' ':
				closes--
				if closes == -1 {
					before := file[:i-1]
					fname += " (" + before
					file = file[i+1:]
					break walk
				}
			}
		}
	}

	var method string
	if fname != "" {
		if mm := methodAliasRe.FindStringSubmatch(fname); mm != nil {
			fname = mm[1]
			method = mm[2]
		}
	}

	if file != "" {
		f.File = stringPtr(u.relativeFile(file))
	}

	if ctor {
		f.Constructor = boolPtr(true)
	}

	if evalOrigin != "" {
		f.EvalOrigin = stringPtr(evalOrigin)
		f.EvalLine = atoiPtr(evalLine)
		f.EvalColumn = atoiPtr(evalCol)
		f.EvalFile = stringPtr(slashes(evalFile))
	}

	if native {
		f.Native = boolPtr(true)
	}

	if fname != "" {
		f.Function = stringPtr(fname)
	}

	if method != "" && fname != method {
		f.Method = stringPtr(method)
	}

	return f, true
}

// atoiPtr returns nil for an empty (unmatched) or out-of-range digit string.
func atoiPtr(digits string) *int {
	if digits == "" {
		return nil
	}
	i, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return intPtr(i)
}
