// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

var atLineRe *regexp.Regexp
var outdentAtRe *regexp.Regexp

func init() {
	atLineRe = regexp.MustCompile(`^\s*at `)
	outdentAtRe = regexp.MustCompile(`^(\s+)at `)
}

// Clean splits the trace on newlines and passes the lines to CleanLines.
func (u *StackUtils) Clean(stack string, indent int) string {
	return u.CleanLines(strings.Split(stack, "\n"), indent)
}

// CleanLines removes lines which match the internal patterns and shortens file names
// relative to the working directory.
//
// Frame lines lose their surrounding whitespace and "at " marker until the first non-frame
// line is seen. After that, lines keep their indentation (and, unless RemoveFirstLine is
// enabled, their marker). A non-frame line is only kept if a frame line follows it.
//
// Each returned line is prefixed by indent spaces and terminated by a newline.
// It returns an empty string if no lines remain.
func (u *StackUtils) CleanLines(lines []string, indent int) string {
	if u.removeFirstLine && len(lines) > 1 && !atLineRe.MatchString(lines[0]) && atLineRe.MatchString(lines[1]) {
		lines = lines[1:]
	}

	var outdent bool
	var lastNonAtLine string
	var result []string

	for _, line := range lines {
		line = slashes(line)

		if u.isInternal(line) {
			if ce := u.log.Check(zap.DebugLevel, "culled internal line"); ce != nil {
				ce.Write(zap.String("line", line))
			}
			continue
		}

		isAtLine := atLineRe.MatchString(line)

		if outdent {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
			if u.removeFirstLine {
				line = outdentAtRe.ReplaceAllString(line, "$1")
			}
		} else {
			line = strings.TrimSpace(line)
			if isAtLine {
				line = dropAtMarker(line)
			}
		}

		if u.cwd != "" {
			line = strings.Replace(line, u.cwd+"/", "", 1)
		}

		if line == "" {
			continue
		}

		if isAtLine {
			if lastNonAtLine != "" {
				result = append(result, lastNonAtLine)
				lastNonAtLine = ""
			}
			result = append(result, line)
		} else {
			outdent = true
			lastNonAtLine = line
		}
	}

	if indent < 0 {
		indent = 0
	}
	indentStr := strings.Repeat(" ", indent)

	var b strings.Builder
	for _, line := range result {
		b.WriteString(indentStr)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// dropAtMarker removes the 3-byte "at " marker from a trimmed frame line.
//
// A trimmed line can be just "at", in which case nothing remains.
func dropAtMarker(line string) string {
	if len(line) < 3 {
		return ""
	}
	return line[3:]
}
