// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package filepath

import (
	"github.com/pkg/errors"

	cage_file "github.com/codeactual/stackutils/internal/cage/os/file"
)

func isDir(name string) (bool, error) {
	exists, fi, err := cage_file.Exists(name)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return exists && fi.IsDir(), nil
}
