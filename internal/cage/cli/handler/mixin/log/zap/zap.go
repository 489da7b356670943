// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package zap

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	std_zap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/codeactual/stackutils/internal/cage/cli/handler"
	cage_errors "github.com/codeactual/stackutils/internal/cage/errors"
	cage_file "github.com/codeactual/stackutils/internal/cage/os/file"
	cage_reflect "github.com/codeactual/stackutils/internal/cage/reflect"
	cage_strings "github.com/codeactual/stackutils/internal/cage/strings"
	"github.com/codeactual/stackutils/internal/ldflags"
)

const (
	newDirPerm  = 0755
	newFilePerm = 0644
)

type Mixin struct {
	handler.IO

	*std_zap.Logger

	LogAppend bool   `usage:"Append events to preexisting file instead of truncating it"`
	LogFile   string `usage:"File to receive JSON log events"`
	LogLevel  string
}

// Implements cage/cli/handler.Mixin
func (m *Mixin) BindCobraFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&m.LogFile, "log-file", "", "", cage_reflect.GetFieldTag(*m, "LogFile", "usage"))
	cmd.Flags().StringVarP(&m.LogLevel, "log-level", "", zapcore.WarnLevel.String(), "Minimum level included in file: "+strings.Join(m.logLevels().Slice(), ", "))
	cmd.Flags().BoolVarP(&m.LogAppend, "log-append", "", true, cage_reflect.GetFieldTag(*m, "LogAppend", "usage"))
}

// Implements cage/cli/handler.Mixin
func (m *Mixin) Name() string {
	return "cage/cli/handler/mixin/log/zap"
}

// Implements cage/cli/handler.PreRun
//
// The Logger is a no-op if no file is selected.
func (m *Mixin) PreRun(ctx context.Context, args []string) error {
	if m.LogFile == "" {
		m.Logger = std_zap.NewNop()
		return nil
	}

	if !m.logLevels().Contains(m.LogLevel) {
		return errors.Errorf("log level [%s] not found in available levels %v", m.LogLevel, m.logLevels().Slice())
	}

	runId, err := ksuid.NewRandom()
	if err != nil {
		return errors.Wrap(err, "failed to generate run ID for logger")
	}

	fileFlag := os.O_WRONLY | os.O_APPEND
	if !m.LogAppend {
		fileFlag = os.O_WRONLY | os.O_TRUNC
	}
	f, err := cage_file.CreateFileAll(m.LogFile, fileFlag, newFilePerm, newDirPerm)
	if err != nil {
		return errors.Wrapf(err, "failed to prepare log file [%s]", m.LogFile)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close log file [%s]", m.LogFile)
	}

	logCfg := std_zap.NewProductionConfig()

	// These will redundantly appear in every log event to make it easier for inclusion in bug reports.
	logCfg.InitialFields = map[string]interface{}{
		"version": ldflags.Version,
		"go": map[string]interface{}{
			"arch":    runtime.GOARCH,
			"os":      runtime.GOOS,
			"version": runtime.Version(),
		},
		"runId": runId.String(),
		"args":  os.Args,
	}

	logCfg.OutputPaths = []string{m.LogFile}
	logCfg.ErrorOutputPaths = []string{m.LogFile}
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logCfg.EncoderConfig.EncodeCaller = zapcore.FullCallerEncoder

	level := std_zap.NewAtomicLevel()
	if err = level.UnmarshalText([]byte(m.LogLevel)); err != nil {
		return errors.Wrapf(err, "failed to apply selected log level [%s]", m.LogLevel)
	}
	logCfg.Level = level

	m.Logger, err = logCfg.Build()
	if err != nil {
		return errors.Wrap(err, "failed to configure logger")
	}

	return nil
}

// ErrToFile logs the errors, including their pkg/errors stack traces, as a single event.
func (m *Mixin) ErrToFile(errs ...error) {
	if m.Logger == nil {
		return
	}

	m.Logger.Error(
		fmt.Sprintf("%d error(s) logged, see 'errs' key", len(errs)),
		std_zap.Any("errs", cage_errors.NewEvent(errs...)),
	)
}

// Implements cage/cli/handler.PostRun
func (m *Mixin) PostRun(ctx context.Context) {
	if m.Logger == nil {
		return
	}
	if err := m.Logger.Sync(); err != nil {
		fmt.Fprintf(m.Err(), "failed to flush events to log file [%s]: %s\n", m.LogFile, err)
	}
}

// ExitOnErr lists the non-nil errors and exits with the code. It returns if there are none.
func (m *Mixin) ExitOnErr(code int, errs ...error) {
	var nonNil []error
	for _, err := range errs {
		cage_errors.Append(&nonNil, err)
	}
	if len(nonNil) == 0 {
		return
	}

	cage_errors.WriteErrList(m.Err(), nonNil...)
	m.ErrToFile(nonNil...)
	m.PostRun(context.Background())

	if m.LogFile == "" {
		fmt.Fprintln(m.Err(), "To save a more detailed error list, see --log-* flags.")
	}

	os.Exit(code)
}

func (m *Mixin) logLevels() *cage_strings.Set {
	return cage_strings.NewSet().AddSlice([]string{
		zapcore.DebugLevel.String(),
		zapcore.InfoLevel.String(),
		zapcore.WarnLevel.String(),
		zapcore.ErrorLevel.String(),
	})
}

var _ handler.Mixin = (*Mixin)(nil)
var _ handler.PreRun = (*Mixin)(nil)
var _ handler.PostRun = (*Mixin)(nil)
