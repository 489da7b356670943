// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

import "github.com/pkg/errors"

// ErrInvalidArgument is the cause of errors returned when a value has the wrong type,
// e.g. a non-string ignored package name read from a config file.
//
// Compare with errors.Cause(err) == ErrInvalidArgument.
var ErrInvalidArgument = errors.New("invalid argument")
