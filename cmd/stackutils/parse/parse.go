// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package parse

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/codeactual/stackutils/cmd/stackutils/input"
	"github.com/codeactual/stackutils/cmd/stackutils/options"
	"github.com/codeactual/stackutils/internal/cage/cli/handler"
	handler_cobra "github.com/codeactual/stackutils/internal/cage/cli/handler/cobra"
	log_zap "github.com/codeactual/stackutils/internal/cage/cli/handler/mixin/log/zap"
	cage_reflect "github.com/codeactual/stackutils/internal/cage/reflect"
	cage_strings "github.com/codeactual/stackutils/internal/cage/strings"
	"github.com/codeactual/stackutils/internal/stackutils"
)

const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Record holds the frames parsed from one input.
type Record struct {
	File string `json:"file" yaml:"file"`

	// Frames holds one element per frame line. If all lines are included, non-frame lines
	// have a nil element.
	Frames []*stackutils.Frame `json:"frames" yaml:"frames"`
}

// Handler defines the sub-command flags and logic.
type Handler struct {
	handler.IO

	All    bool   `usage:"Include a null record for each line which is not a frame (json/yaml only)"`
	Format string `usage:"Output format: json, toml, yaml"`

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
			Use:   "parse",
			Short: "Print the location, function and other details of each frame",
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
	cmd.Flags().BoolVarP(&h.All, "all", "", false, cage_reflect.GetFieldTag(*h, "All", "usage"))
	cmd.Flags().StringVarP(&h.Format, "format", "f", FormatJSON, cage_reflect.GetFieldTag(*h, "Format", "usage"))
}

// PreRun executes after flag parsing and before Run.
//
// It implements cli/handler.PreRun
func (h *Handler) PreRun(ctx context.Context, args []string) error {
	formats := cage_strings.NewSet().AddSlice([]string{FormatJSON, FormatTOML, FormatYAML})
	if !formats.Contains(h.Format) {
		return errors.Errorf("--format [%s] not found in available formats %v", h.Format, formats.Slice())
	}
	return nil
}

// Run performs the sub-command logic.
//
// It implements cli/handler/cobra.Handler.
func (h *Handler) Run(ctx context.Context, args []string) {
	h.Log.ExitOnErr(1, h.parse(ctx))
}

func (h *Handler) parse(ctx context.Context) error {
	names := h.Input.Names()
	records := make([]Record, len(names))

	err := h.Input.Each(ctx, func(n int, name, contents string) error {
		records[n] = h.record(name, contents)
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	w, done, err := h.Input.OpenOutput()
	if err != nil {
		return errors.WithStack(err)
	}

	if err = Write(w, h.Format, records); err != nil {
		_ = done()
		return errors.WithStack(err)
	}

	return errors.WithStack(done())
}

func (h *Handler) record(name, contents string) Record {
	r := Record{File: name, Frames: []*stackutils.Frame{}}

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		frame, ok := h.Options.Utils.ParseLine(line)
		if ok {
			r.Frames = append(r.Frames, &frame)
		} else if h.All && h.Format != FormatTOML {
			r.Frames = append(r.Frames, nil)
		}
	}

	return r
}

// Write encodes the records in the selected format.
//
// The TOML document holds an "inputs" array of tables because TOML lacks top-level arrays
// and null values.
func Write(w io.Writer, format string, records []Record) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(records), "failed to encode JSON")
	case FormatYAML:
		b, err := yaml.Marshal(records)
		if err != nil {
			return errors.Wrap(err, "failed to encode YAML")
		}
		_, err = w.Write(b)
		return errors.Wrap(err, "failed to write YAML")
	case FormatTOML:
		inputs := make([]map[string]interface{}, len(records))
		for n, r := range records {
			frames := []map[string]interface{}{}
			for _, f := range r.Frames {
				if f != nil {
					frames = append(frames, f.Map())
				}
			}
			inputs[n] = map[string]interface{}{"file": r.File, "frames": frames}
		}

		tree, err := toml.TreeFromMap(map[string]interface{}{"inputs": inputs})
		if err != nil {
			return errors.Wrap(err, "failed to convert records to TOML tree")
		}
		s, err := tree.ToTomlString()
		if err != nil {
			return errors.Wrap(err, "failed to encode TOML")
		}
		_, err = io.WriteString(w, s)
		return errors.Wrap(err, "failed to write TOML")
	}

	return errors.Errorf("unsupported format [%s]", format)
}

// NewCommand returns a cobra command which runs the handler.
func NewCommand() *cobra.Command {
	return handler_cobra.NewHandler(&Handler{})
}

var _ handler_cobra.Handler = (*Handler)(nil)
var _ handler.PreRun = (*Handler)(nil)
