// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package viper

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	std_viper "github.com/spf13/viper"
)

// ReadInConfig wraps viper.ReadInConfig to auto-detect the file type from the extension.
func ReadInConfig(v *std_viper.Viper, configPath string) (err error) {
	v.SetConfigFile(configPath)
	return errors.WithStack(v.ReadInConfig())
}

// NewEnvSpace returns an initialized Viper instance configured to read all keys from an
// environment variable prefix.
func NewEnvSpace(prefix string) *std_viper.Viper {
	v := std_viper.New()

	// When trying to access a config named 'remove-first-line', look for env named '<prefix>_REMOVE_FIRST_LINE'.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	return v
}

// IsSetInCommand provides a viper.IsSet alternative that works around a bug which causes
// IsSet to always return true if the config key is bound to cobra: https://github.com/spf13/viper/issues/276.
//
// It reports whether the flag was passed or its environment variable is non-empty.
func IsSetInCommand(c *cobra.Command, prefix, key string) bool {
	if os.Getenv(EnvPrefixedName(prefix, key)) != "" {
		return true
	}
	f := c.Flag(key)
	return f != nil && f.Changed
}

// EnvPrefixedName replicates the private viper.mergeWithEnvPrefix and the key replacer
// applied by NewEnvSpace.
func EnvPrefixedName(prefix, key string) string {
	return strings.ToUpper(prefix + "_" + strings.Replace(key, "-", "_", -1))
}
