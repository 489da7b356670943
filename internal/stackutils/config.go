// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

import (
	"regexp"

	"github.com/pkg/errors"
	std_viper "github.com/spf13/viper"

	cage_viper "github.com/codeactual/stackutils/internal/cage/config/viper"
	cage_file "github.com/codeactual/stackutils/internal/cage/os/file"
)

// DefaultConfigNames are checked, in order, by ReadFile when no file is selected.
var DefaultConfigNames = []string{"stackutils.yml", "stackutils.yaml", "stackutils.json", "stackutils.toml"}

// ReadFile returns the Options defined in the named file (.json/.toml/.yaml/.yml).
//
// If the name is empty, the first of DefaultConfigNames found in the working directory is read.
// If none exist, zero Options are returned.
//
// Supported keys: cwd, remove_first_line, ignored_packages, node_version, internals.
// The internals list holds extra patterns which are compiled into Options.ExtraInternals.
//
// All invalid values are reported. A non-string ignored_packages element produces an error
// whose cause is ErrInvalidArgument.
func ReadFile(name string) (opts Options, errs []error) {
	if name == "" {
		for _, candidate := range DefaultConfigNames {
			exists, _, err := cage_file.Exists(candidate)
			if err != nil {
				return Options{}, []error{errors.WithStack(err)}
			}
			if exists {
				name = candidate
				break
			}
		}
		if name == "" {
			return Options{}, nil
		}
	}

	file := std_viper.New()
	if err := cage_viper.ReadInConfig(file, name); err != nil {
		return Options{}, []error{errors.Wrapf(err, "failed to read config file [%s]", name)}
	}

	opts.Cwd = file.GetString("cwd")
	opts.RemoveFirstLine = file.GetBool("remove_first_line")
	opts.NodeVersion = file.GetString("node_version")

	if raw := file.Get("ignored_packages"); raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			errs = append(errs, errors.Wrapf(
				ErrInvalidArgument, "config file [%s] key [ignored_packages] must be a list, found [%T]", name, raw,
			))
		}
		for n, el := range list {
			pkg, ok := el.(string)
			if !ok {
				errs = append(errs, errors.Wrapf(
					ErrInvalidArgument, "config file [%s] key [ignored_packages] element [%d] must be a string, found [%T]", name, n, el,
				))
				continue
			}
			opts.IgnoredPackages = append(opts.IgnoredPackages, pkg)
		}
	}

	for n, pattern := range file.GetStringSlice("internals") {
		re, err := regexp.Compile(pattern)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "config file [%s] key [internals] element [%d] is invalid", name, n))
			continue
		}
		opts.ExtraInternals = append(opts.ExtraInternals, re)
	}

	if opts.NodeVersion != "" {
		if _, err := BuiltinModules(opts.NodeVersion); err != nil {
			errs = append(errs, errors.Wrapf(err, "config file [%s] key [node_version] is invalid", name))
		}
	}

	if len(errs) > 0 {
		return Options{}, errs
	}

	return opts, nil
}
