// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeactual/stackutils/cmd/stackutils/clean"
	"github.com/codeactual/stackutils/cmd/stackutils/internals"
	"github.com/codeactual/stackutils/cmd/stackutils/parse"
	"github.com/codeactual/stackutils/internal/ldflags"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stackutils",
		Short: "Clean and parse V8-style stack traces",
	}

	rootCmd.Version = ldflags.Version
	rootCmd.AddCommand(clean.NewCommand())
	rootCmd.AddCommand(parse.NewCommand())
	rootCmd.AddCommand(internals.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
