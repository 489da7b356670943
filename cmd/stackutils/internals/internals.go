// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package internals

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeactual/stackutils/cmd/stackutils/options"
	"github.com/codeactual/stackutils/internal/cage/cli/handler"
	handler_cobra "github.com/codeactual/stackutils/internal/cage/cli/handler/cobra"
	log_zap "github.com/codeactual/stackutils/internal/cage/cli/handler/mixin/log/zap"
)

// Handler defines the sub-command flags and logic.
type Handler struct {
	handler.IO

	Log     *log_zap.Mixin
	Options *options.Mixin
}

// Init defines the command, its environment variable prefix, etc.
//
// It implements cli/handler/cobra.Handler.
func (h *Handler) Init() handler_cobra.Init {
	h.Log = &log_zap.Mixin{}
	h.Options = &options.Mixin{Log: h.Log}

	return handler_cobra.Init{
		Cmd: &cobra.Command{
			Use:   "internals",
			Short: "Print the patterns of lines removed by clean, one per line",
		},
		EnvPrefix: options.EnvPrefix,
		Mixins: []handler.Mixin{
			h.Log,
			h.Options,
		},
	}
}

// BindFlags binds the flags to Handler fields.
//
// It implements cli/handler/cobra.Handler.
func (h *Handler) BindFlags(cmd *cobra.Command) {}

// Run performs the sub-command logic.
//
// It implements cli/handler/cobra.Handler.
func (h *Handler) Run(ctx context.Context, args []string) {
	for _, re := range h.Options.Utils.Internals() {
		fmt.Fprintln(h.Out(), re.String())
	}
}

// NewCommand returns a cobra command which runs the handler.
func NewCommand() *cobra.Command {
	return handler_cobra.NewHandler(&Handler{})
}

var _ handler_cobra.Handler = (*Handler)(nil)
