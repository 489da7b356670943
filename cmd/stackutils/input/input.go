// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package input provides a mixin which selects trace files, or standard input, and the
// output destination.
package input

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/codeactual/stackutils/internal/cage/cli/handler"
	cage_file "github.com/codeactual/stackutils/internal/cage/os/file"
	cage_filepath "github.com/codeactual/stackutils/internal/cage/path/filepath"
	cage_reflect "github.com/codeactual/stackutils/internal/cage/reflect"
)

// StdinName identifies standard input in Names.
const StdinName = "-"

const (
	newDirPerm  = 0755
	newFilePerm = 0644
)

type Mixin struct {
	handler.IO

	Exclude []string `usage:"Glob excluding files selected by --input (repeatable)"`
	Include []string `usage:"Glob selecting trace files, e.g. 'logs/**/*.log' (repeatable), default: standard input"`
	Jobs    int      `usage:"Maximum number of files processed concurrently"`
	Output  string   `usage:"Write to this file instead of standard output"`

	names []string
}

// Implements cage/cli/handler.Mixin
func (m *Mixin) BindCobraFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&m.Include, "input", "i", []string{}, cage_reflect.GetFieldTag(*m, "Include", "usage"))
	cmd.Flags().StringSliceVarP(&m.Exclude, "exclude", "", []string{}, cage_reflect.GetFieldTag(*m, "Exclude", "usage"))
	cmd.Flags().IntVarP(&m.Jobs, "jobs", "j", runtime.NumCPU(), cage_reflect.GetFieldTag(*m, "Jobs", "usage"))
	cmd.Flags().StringVarP(&m.Output, "output", "o", "", cage_reflect.GetFieldTag(*m, "Output", "usage"))
}

// Implements cage/cli/handler.Mixin
func (m *Mixin) Name() string {
	return "stackutils/input"
}

// Implements cage/cli/handler.PreRun
//
// It expands the globs, or selects standard input if there are none.
func (m *Mixin) PreRun(ctx context.Context, args []string) error {
	if m.Jobs < 1 {
		return errors.Errorf("--jobs must be at least 1, found [%d]", m.Jobs)
	}

	if len(m.Include) == 0 {
		m.names = []string{StdinName}
		return nil
	}

	out, err := cage_filepath.GlobAny(cage_filepath.GlobAnyInput{Include: m.Include, Exclude: m.Exclude})
	if err != nil {
		return errors.Wrap(err, "failed to expand --input globs")
	}
	if len(out.Include) == 0 {
		return errors.Errorf("no files matched --input %v", m.Include)
	}

	m.names = out.Include

	return nil
}

// Names returns the selected file names, or only StdinName, in processing order.
func (m *Mixin) Names() []string {
	return append([]string{}, m.names...)
}

// Each reads the selected inputs and calls fn at most Jobs times concurrently.
//
// The index n refers to the input's position in Names. If any call fails, remaining inputs
// are skipped and the first error is returned.
func (m *Mixin) Each(ctx context.Context, fn func(n int, name, contents string) error) error {
	g, gCtx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, m.Jobs)

	for n, name := range m.names {
		n, name := n, name

		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gCtx.Done():
				return gCtx.Err()
			}
			defer func() { <-sem }()

			contents, err := m.read(name)
			if err != nil {
				return errors.WithStack(err)
			}

			return errors.Wrapf(fn(n, name, contents), "failed to process input [%s]", name)
		})
	}

	return g.Wait()
}

func (m *Mixin) read(name string) (string, error) {
	var r io.Reader

	if name == StdinName {
		if r = m.In(); r == nil {
			return "", errors.New("no trace found on standard input, pipe one or select files with --input")
		}
	} else {
		f, err := os.Open(name) // #nosec G304
		if err != nil {
			return "", errors.Wrapf(err, "failed to open [%s]", name)
		}
		defer f.Close()
		r = f
	}

	b, err := ioutil.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read [%s]", name)
	}

	return string(b), nil
}

// OpenOutput returns the --output file, created or truncated, or the standard output.
//
// The returned function must be called when writing is finished.
func (m *Mixin) OpenOutput() (w io.Writer, done func() error, err error) {
	if m.Output == "" {
		return m.Out(), func() error { return nil }, nil
	}

	f, err := cage_file.CreateFileAll(m.Output, os.O_WRONLY|os.O_TRUNC, newFilePerm, newDirPerm)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open --output file")
	}

	return f, func() error {
		return errors.Wrapf(f.Close(), "failed to close --output file [%s]", m.Output)
	}, nil
}

var _ handler.Mixin = (*Mixin)(nil)
var _ handler.PreRun = (*Mixin)(nil)
