// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ldflags receives build-time variable assignments, e.g.:
//
//   go build -ldflags "-X github.com/codeactual/stackutils/internal/ldflags.Version=$(git describe --always --dirty)" ./cmd/stackutils
package ldflags

// Version is value like "8107551-master(-dirty)".
var Version string

func init() {
	if Version == "" {
		Version = "unknown (ldflags.Version not set via -ldflags at build time)"
	}
}
