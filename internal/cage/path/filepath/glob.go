// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package filepath

import (
	std_filepath "path/filepath"

	"github.com/bmatcuk/doublestar"
	"github.com/pkg/errors"

	cage_strings "github.com/codeactual/stackutils/internal/cage/strings"
)

// GlobAnyInput defines a search for files which match at least one inclusion pattern
// while matching zero exclusion patterns.
type GlobAnyInput struct {
	// Include holds patterns used to search for candidate paths, e.g. "logs/**/*.log".
	Include []string

	// Exclude holds patterns used to disqualify candidate paths.
	Exclude []string

	// Root is an optional prefix prepended to relative patterns. If empty, the working
	// directory is used.
	Root string
}

// GlobAnyOutput describes the result of a GlobAnyInput search.
type GlobAnyOutput struct {
	// Include holds absolute paths of selected files.
	//
	// Paths are ordered by the first Include pattern which matched them, then lexically.
	Include []string

	// Exclude holds absolute paths indexed by the first Exclude pattern that matched them.
	Exclude map[string]string
}

// GlobAny evaluates whether candidate paths match at least one inclusion pattern
// while matching zero exclusion patterns.
//
// Directories are never selected.
func GlobAny(in GlobAnyInput) (out GlobAnyOutput, err error) {
	out.Exclude = make(map[string]string)

	if len(in.Include) == 0 {
		return out, nil
	}

	excludes := make([]string, len(in.Exclude))
	for n, pattern := range in.Exclude {
		if excludes[n], err = absPattern(in.Root, pattern); err != nil {
			return GlobAnyOutput{}, errors.WithStack(err)
		}
	}

	selected := cage_strings.NewSet()

	for _, pattern := range in.Include {
		includePattern, absErr := absPattern(in.Root, pattern)
		if absErr != nil {
			return GlobAnyOutput{}, errors.WithStack(absErr)
		}

		matches, globErr := doublestar.Glob(includePattern)
		if globErr != nil {
			return GlobAnyOutput{}, errors.Wrapf(globErr, "bad include pattern [%s]", includePattern)
		}
		cage_strings.SortStable(matches)

	candidates:
		for _, name := range matches {
			if selected.Contains(name) {
				continue
			}
			if _, found := out.Exclude[name]; found {
				continue
			}

			isDir, dirErr := isDir(name)
			if dirErr != nil {
				return GlobAnyOutput{}, errors.WithStack(dirErr)
			}
			if isDir {
				continue
			}

			for n, exclude := range excludes {
				match, matchErr := doublestar.PathMatch(exclude, name)
				if matchErr != nil {
					return GlobAnyOutput{}, errors.Wrapf(matchErr, "bad exclude pattern [%s]", in.Exclude[n])
				}
				if match {
					out.Exclude[name] = in.Exclude[n] // return the pattern that caused the exclusion
					continue candidates
				}
			}

			selected.Add(name)
		}
	}

	out.Include = selected.Slice()

	return out, nil
}

// absPattern applies the root, or working directory, if the pattern is relative.
func absPattern(root, pattern string) (string, error) {
	if std_filepath.IsAbs(pattern) {
		return std_filepath.Clean(pattern), nil
	}
	if root != "" {
		return std_filepath.Join(root, pattern), nil
	}
	abs, err := std_filepath.Abs(pattern)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get absolute path [%s]", pattern)
	}
	return abs, nil
}
