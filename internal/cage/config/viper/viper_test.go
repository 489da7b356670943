// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package viper_test

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	cage_viper "github.com/codeactual/stackutils/internal/cage/config/viper"
)

func TestEnvPrefixedName(t *testing.T) {
	require.Exactly(t, "STACKUTILS_REMOVE_FIRST_LINE", cage_viper.EnvPrefixedName("stackutils", "remove-first-line"))
	require.Exactly(t, "STACKUTILS_CWD", cage_viper.EnvPrefixedName("STACKUTILS", "cwd"))
}

func TestNewEnvSpace(t *testing.T) {
	require.NoError(t, os.Setenv("STACKUTILS_TEST_NODE_VERSION", "16.7.0"))
	defer os.Unsetenv("STACKUTILS_TEST_NODE_VERSION")

	v := cage_viper.NewEnvSpace("stackutils_test")
	require.Exactly(t, "16.7.0", v.GetString("node-version"))
}

func TestIsSetInCommand(t *testing.T) {
	var cwd string
	cmd := &cobra.Command{Use: "clean"}
	cmd.Flags().StringVarP(&cwd, "cwd", "", "", "")

	require.False(t, cage_viper.IsSetInCommand(cmd, "stackutils_test", "cwd"))
	require.False(t, cage_viper.IsSetInCommand(cmd, "stackutils_test", "missing"))

	require.NoError(t, cmd.Flags().Set("cwd", "/srv/app"))
	require.True(t, cage_viper.IsSetInCommand(cmd, "stackutils_test", "cwd"))

	cmd = &cobra.Command{Use: "clean"}
	cmd.Flags().StringVarP(&cwd, "cwd", "", "", "")
	require.NoError(t, os.Setenv("STACKUTILS_TEST_CWD", "/srv/app"))
	defer os.Unsetenv("STACKUTILS_TEST_CWD")
	require.True(t, cage_viper.IsSetInCommand(cmd, "stackutils_test", "cwd"))
}
