// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package clean

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/codeactual/stackutils/cmd/stackutils/input"
	"github.com/codeactual/stackutils/cmd/stackutils/options"
	"github.com/codeactual/stackutils/internal/cage/cli/handler"
	handler_cobra "github.com/codeactual/stackutils/internal/cage/cli/handler/cobra"
	log_zap "github.com/codeactual/stackutils/internal/cage/cli/handler/mixin/log/zap"
	cage_reflect "github.com/codeactual/stackutils/internal/cage/reflect"
)

// Handler defines the sub-command flags and logic.
type Handler struct {
	handler.IO

	Indent int `usage:"Number of spaces prepended to each output line"`

	Log     *log_zap.Mixin
	Input   *input.Mixin
	Options *options.Mixin
}

// Init defines the command, its environment variable prefix, etc.
//
// It implements cli/handler/cobra.Handler.
func (h *Handler) Init() handler_cobra.Init {
	h.Log = &log_zap.Mixin{}
	h.Input = &input.Mixin{}
	h.Options = &options.Mixin{Log: h.Log}

	return handler_cobra.Init{
		Cmd: &cobra.Command{
			Use:   "clean",
			Short: "Remove internal frames from traces and shorten their file names",
		},
		EnvPrefix: options.EnvPrefix,
		Mixins: []handler.Mixin{
			h.Log,
			h.Input,
			h.Options,
		},
	}
}

// BindFlags binds the flags to Handler fields.
//
// It implements cli/handler/cobra.Handler.
func (h *Handler) BindFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&h.Indent, "indent", "", 0, cage_reflect.GetFieldTag(*h, "Indent", "usage"))
}

// Run performs the sub-command logic.
//
// It implements cli/handler/cobra.Handler.
func (h *Handler) Run(ctx context.Context, args []string) {
	h.Log.ExitOnErr(1, h.clean(ctx))
}

func (h *Handler) clean(ctx context.Context) error {
	names := h.Input.Names()
	results := make([]string, len(names))

	err := h.Input.Each(ctx, func(n int, name, contents string) error {
		results[n] = h.Options.Utils.Clean(contents, h.Indent)
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	w, done, err := h.Input.OpenOutput()
	if err != nil {
		return errors.WithStack(err)
	}

	if err = writeResults(w, names, results); err != nil {
		_ = done()
		return errors.WithStack(err)
	}

	return errors.WithStack(done())
}

// writeResults prints each cleaned trace, preceded by a "==> name <==" header if there
// are multiple.
func writeResults(w io.Writer, names, results []string) error {
	multi := len(names) > 1

	for n, result := range results {
		if multi {
			if n > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return errors.Wrap(err, "failed to write separator")
				}
			}
			if _, err := fmt.Fprintf(w, "==> %s <==\n", names[n]); err != nil {
				return errors.Wrapf(err, "failed to write header of [%s]", names[n])
			}
		}
		if _, err := io.WriteString(w, result); err != nil {
			return errors.Wrapf(err, "failed to write result of [%s]", names[n])
		}
	}

	return nil
}

// NewCommand returns a cobra command which runs the handler.
func NewCommand() *cobra.Command {
	return handler_cobra.NewHandler(&Handler{})
}

var _ handler_cobra.Handler = (*Handler)(nil)
