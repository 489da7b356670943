// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cobra

import (
	"github.com/pkg/errors"
	std_cobra "github.com/spf13/cobra"
	"github.com/spf13/viper"

	cage_viper "github.com/codeactual/stackutils/internal/cage/config/viper"
	tp_viper "github.com/codeactual/stackutils/internal/third_party/github.com/config/viper"
)

// Config provides viper integration and enforces prefixed environment
// variables.
//
// It has a similar method set as handler.Mixin implementations but is not a mixin.
// It is directly used in NewCommand to automatically add the functionality.
type Config struct {
	*viper.Viper

	cmd *std_cobra.Command
}

// Init creates the config storage instance.
func (c *Config) Init(envPrefix string, cmd *std_cobra.Command) *std_cobra.Command {
	c.Viper = cage_viper.NewEnvSpace(envPrefix)
	c.cmd = cmd
	return cmd
}

// BindEnvToAllFlags binds all flags in the command to the viper instance.
func (c *Config) BindEnvToAllFlags(cmd *std_cobra.Command) {
	if err := c.Viper.BindPFlags(cmd.Flags()); err != nil {
		panic(errors.Wrap(err, "failed to bind all flags to environment variable aliases"))
	}
}

// PreRun copies environment values into the variables bound to flags which were not passed.
func (c *Config) PreRun() error {
	if err := tp_viper.MergeConfig(c.cmd.Flags(), c.Viper); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
