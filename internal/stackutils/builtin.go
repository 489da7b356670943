// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

import (
	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

type builtinModule struct {
	name string

	// since is the first runtime release which lists the module, empty if it was always listed.
	since string
}

// builtinModules mirrors require('module').builtinModules.
var builtinModules = []builtinModule{
	{name: "_http_agent"},
	{name: "_http_client"},
	{name: "_http_common"},
	{name: "_http_incoming"},
	{name: "_http_outgoing"},
	{name: "_http_server"},
	{name: "_stream_duplex"},
	{name: "_stream_passthrough"},
	{name: "_stream_readable"},
	{name: "_stream_transform"},
	{name: "_stream_wrap"},
	{name: "_stream_writable"},
	{name: "_tls_common"},
	{name: "_tls_wrap"},
	{name: "assert"},
	{name: "assert/strict", since: "15.0.0"},
	{name: "async_hooks", since: "8.1.0"},
	{name: "buffer"},
	{name: "child_process"},
	{name: "cluster"},
	{name: "console"},
	{name: "constants"},
	{name: "crypto"},
	{name: "dgram"},
	{name: "diagnostics_channel", since: "15.1.0"},
	{name: "dns"},
	{name: "dns/promises", since: "15.0.0"},
	{name: "domain"},
	{name: "events"},
	{name: "fs"},
	{name: "fs/promises", since: "14.0.0"},
	{name: "http"},
	{name: "http2", since: "8.4.0"},
	{name: "https"},
	{name: "inspector", since: "8.0.0"},
	{name: "inspector/promises", since: "19.0.0"},
	{name: "module"},
	{name: "net"},
	{name: "os"},
	{name: "path"},
	{name: "path/posix", since: "15.3.0"},
	{name: "path/win32", since: "15.3.0"},
	{name: "perf_hooks", since: "8.5.0"},
	{name: "process"},
	{name: "punycode"},
	{name: "querystring"},
	{name: "readline"},
	{name: "readline/promises", since: "17.0.0"},
	{name: "repl"},
	{name: "stream"},
	{name: "stream/consumers", since: "16.7.0"},
	{name: "stream/promises", since: "15.0.0"},
	{name: "stream/web", since: "16.5.0"},
	{name: "string_decoder"},
	{name: "sys"},
	{name: "timers"},
	{name: "timers/promises", since: "15.0.0"},
	{name: "tls"},
	{name: "trace_events", since: "10.0.0"},
	{name: "tty"},
	{name: "url"},
	{name: "util"},
	{name: "util/types", since: "15.3.0"},
	{name: "v8"},
	{name: "vm"},
	{name: "wasi", since: "13.3.0"},
	{name: "worker_threads", since: "10.5.0"},
	{name: "zlib"},
}

// BuiltinModules returns the names of the runtime's built-in modules available in the
// selected version, followed by the bootstrap script names.
//
// An empty version selects every known module.
func BuiltinModules(version string) ([]string, error) {
	var v *semver.Version

	if version != "" {
		parsed, err := semver.NewVersion(version)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse runtime version [%s]", version)
		}
		v = parsed
	}

	names := make([]string, 0, len(builtinModules)+2)

	for _, m := range builtinModules {
		if v != nil && m.since != "" {
			cStr := ">= " + m.since
			c, err := semver.NewConstraint(cStr)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to create new constraint from string [%s]", cStr)
			}
			if !c.Check(v) {
				continue
			}
		}
		names = append(names, m.name)
	}

	return append(names, "bootstrap_node", "node"), nil
}
