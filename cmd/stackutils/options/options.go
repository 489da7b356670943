// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package options provides a mixin which builds a stackutils.StackUtils from a config file
// and the flags shared by all sub-commands.
package options

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/codeactual/stackutils/internal/cage/cli/handler"
	log_zap "github.com/codeactual/stackutils/internal/cage/cli/handler/mixin/log/zap"
	cage_viper "github.com/codeactual/stackutils/internal/cage/config/viper"
	cage_errors "github.com/codeactual/stackutils/internal/cage/errors"
	cage_reflect "github.com/codeactual/stackutils/internal/cage/reflect"
	cage_strings "github.com/codeactual/stackutils/internal/cage/strings"
	"github.com/codeactual/stackutils/internal/stackutils"
)

// EnvPrefix is shared by all sub-commands, e.g. STACKUTILS_CWD for --cwd.
const EnvPrefix = "STACKUTILS"

type Mixin struct {
	handler.IO

	ConfigFile      string   `usage:"Config file (.json/.toml/.yaml/.yml), default: first of stackutils.{yml,yaml,json,toml} found in the working directory"`
	Cwd             string   `usage:"Show file names relative to this directory, default: working directory"`
	IgnoredPackages []string `usage:"Remove frames from this node_modules package (repeatable)"`
	NodeVersion     string   `usage:"Select the built-in modules of this runtime version, default: all"`
	RemoveFirstLine bool     `usage:"Remove the message line which precedes the frames, e.g. \"Error: ...\""`

	// Log is optional. If set, its PreRun must run first so that its Logger is available.
	Log *log_zap.Mixin

	// Utils is available after PreRun.
	Utils *stackutils.StackUtils

	cmd *cobra.Command
}

// Implements cage/cli/handler.Mixin
func (m *Mixin) BindCobraFlags(cmd *cobra.Command) {
	m.cmd = cmd
	cmd.Flags().StringVarP(&m.ConfigFile, "config", "", "", cage_reflect.GetFieldTag(*m, "ConfigFile", "usage"))
	cmd.Flags().StringVarP(&m.Cwd, "cwd", "", "", cage_reflect.GetFieldTag(*m, "Cwd", "usage"))
	cmd.Flags().StringSliceVarP(&m.IgnoredPackages, "ignored-package", "", []string{}, cage_reflect.GetFieldTag(*m, "IgnoredPackages", "usage"))
	cmd.Flags().StringVarP(&m.NodeVersion, "node-version", "", "", cage_reflect.GetFieldTag(*m, "NodeVersion", "usage"))
	cmd.Flags().BoolVarP(&m.RemoveFirstLine, "remove-first-line", "", false, cage_reflect.GetFieldTag(*m, "RemoveFirstLine", "usage"))
}

// Implements cage/cli/handler.Mixin
func (m *Mixin) Name() string {
	return "stackutils/options"
}

// Implements cage/cli/handler.PreRun
//
// Flags, or their environment variables, override the config file. Ignored packages from
// both sources are combined.
func (m *Mixin) PreRun(ctx context.Context, args []string) error {
	opts, errs := stackutils.ReadFile(m.ConfigFile)
	if errsLen := len(errs); errsLen > 0 {
		cage_errors.WriteErrList(m.Err(), errs...)
		if m.Log != nil {
			m.Log.ErrToFile(errs...)
		}
		return errors.Errorf("config file contains %d issue(s)", errsLen)
	}

	if m.isSet("cwd") {
		opts.Cwd = m.Cwd
	}
	if opts.Cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get working directory")
		}
		opts.Cwd = wd
	}
	abs, err := filepath.Abs(opts.Cwd)
	if err != nil {
		return errors.Wrapf(err, "failed to get absolute path of [%s]", opts.Cwd)
	}
	opts.Cwd = abs

	if m.isSet("node-version") {
		opts.NodeVersion = m.NodeVersion
	}
	if m.isSet("remove-first-line") {
		opts.RemoveFirstLine = m.RemoveFirstLine
	}
	if m.isSet("ignored-package") {
		opts.IgnoredPackages = cage_strings.NewSet().AddSlice(opts.IgnoredPackages, m.IgnoredPackages).Slice()
	}

	if m.Log != nil {
		opts.Logger = m.Log.Logger
	}

	if m.Utils, err = stackutils.New(opts); err != nil {
		return errors.Wrap(err, "failed to apply options")
	}

	return nil
}

func (m *Mixin) isSet(key string) bool {
	return m.cmd != nil && cage_viper.IsSetInCommand(m.cmd, EnvPrefix, key)
}

var _ handler.Mixin = (*Mixin)(nil)
var _ handler.PreRun = (*Mixin)(nil)
