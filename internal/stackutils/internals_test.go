// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils_test

import (
	"regexp"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/codeactual/stackutils/internal/stackutils"
)

func matchesAny(res []*regexp.Regexp, line string) bool {
	for _, re := range res {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func TestBuiltinModules(t *testing.T) {
	t.Run("should include every module when version is empty", func(t *testing.T) {
		names, err := stackutils.BuiltinModules("")
		require.NoError(t, err)
		require.Contains(t, names, "fs")
		require.Contains(t, names, "stream/web")
		require.Contains(t, names, "inspector/promises")
		require.Exactly(t, []string{"bootstrap_node", "node"}, names[len(names)-2:])
	})

	t.Run("should omit modules added after the version", func(t *testing.T) {
		names, err := stackutils.BuiltinModules("14.0.0")
		require.NoError(t, err)
		require.Contains(t, names, "fs")
		require.Contains(t, names, "fs/promises")
		require.NotContains(t, names, "stream/web")
		require.NotContains(t, names, "readline/promises")
	})

	t.Run("should include modules added in the version", func(t *testing.T) {
		names, err := stackutils.BuiltinModules("v16.7.0")
		require.NoError(t, err)
		require.Contains(t, names, "stream/consumers")
		require.Contains(t, names, "stream/web")
	})

	t.Run("should reject invalid version", func(t *testing.T) {
		_, err := stackutils.BuiltinModules("not-a-version")
		require.Error(t, err)
	})
}

func TestNodeInternals(t *testing.T) {
	internals, err := stackutils.NodeInternals("")
	require.NoError(t, err)

	for _, line := range []string{
		"    at Module._compile (node:internal/modules/cjs/loader:1105:14)",
		"    at Module._compile (internal/modules/cjs/loader.js:1105:14)",
		"    at node:internal/main/run_main_module:17:47",
		"    at emitOne (events.js:116:13)",
		"    at Socket.emit (node:events:527:28)",
		"    at fs.js:10:5",
		"    at Object.<anonymous> (/tmp/.node-spawn-wrap-1234-abcd/node:7:4)",
	} {
		require.True(t, matchesAny(internals, line), line)
	}

	for _, line := range []string{
		"    at Object.foo (/srv/app/index.js:1:2)",
		"    at /srv/app/events.js:1:2",
		"Error: fs.js:1:2 failed",
	} {
		require.False(t, matchesAny(internals, line), line)
	}

	t.Run("should return a new slice each call", func(t *testing.T) {
		again, err := stackutils.NodeInternals("")
		require.NoError(t, err)
		require.Len(t, again, len(internals))
		again[0] = nil
		require.NotNil(t, internals[0])
	})
}

func TestEscapeRegexp(t *testing.T) {
	t.Run("should escape dot and hyphen", func(t *testing.T) {
		escaped, err := stackutils.EscapeRegexp("my-pkg.thing")
		require.NoError(t, err)
		require.Exactly(t, `my\x2dpkg\.thing`, escaped)
	})

	t.Run("should match every metacharacter literally", func(t *testing.T) {
		input := `a|b\c{d}(e)[f]^g$h+i*j?k.l-m`
		escaped, err := stackutils.EscapeRegexp(input)
		require.NoError(t, err)

		re := regexp.MustCompile("^" + escaped + "$")
		require.True(t, re.MatchString(input))
		require.False(t, re.MatchString("abcdefghijklm"))
	})

	t.Run("should reject non-string", func(t *testing.T) {
		_, err := stackutils.EscapeRegexp(42)
		require.Error(t, err)
		require.True(t, errors.Cause(err) == stackutils.ErrInvalidArgument)
	})
}

func TestIgnoredPackagesRegexp(t *testing.T) {
	t.Run("should return nil for no names", func(t *testing.T) {
		re, err := stackutils.IgnoredPackagesRegexp()
		require.NoError(t, err)
		require.Nil(t, re)
	})

	t.Run("should match only the named packages", func(t *testing.T) {
		re, err := stackutils.IgnoredPackagesRegexp("my-pkg.thing", "left-pad")
		require.NoError(t, err)

		require.True(t, re.MatchString("node_modules/my-pkg.thing/index.js:1:1"))
		require.True(t, re.MatchString("    at f (/srv/app/node_modules/my-pkg.thing/lib/a.js:3:4)"))
		require.True(t, re.MatchString(`    at f (C:\app\node_modules\left-pad\index.js:3:4)`))

		require.False(t, re.MatchString("node_modules/my-pkgXthing/index.js:1:1"))
		require.False(t, re.MatchString("node_modules/other/index.js:1:1"))
		require.False(t, re.MatchString("node_modules/left-pad-extra/index.js:1:1"))
	})

	t.Run("should reject non-string names", func(t *testing.T) {
		re, err := stackutils.IgnoredPackagesRegexp("ok", []string{"nested"})
		require.Error(t, err)
		require.Nil(t, re)
		require.True(t, errors.Cause(err) == stackutils.ErrInvalidArgument)
	})
}

func TestNewInternalsOrder(t *testing.T) {
	builtins, err := stackutils.NodeInternals("")
	require.NoError(t, err)

	extra := regexp.MustCompile(`vendor/legacy\.js`)

	u, err := stackutils.New(stackutils.Options{
		ExtraInternals:  []*regexp.Regexp{extra},
		IgnoredPackages: []string{"left-pad"},
	})
	require.NoError(t, err)

	internals := u.Internals()
	require.Len(t, internals, len(builtins)+2)
	require.Exactly(t, builtins[0].String(), internals[0].String())
	require.Exactly(t, extra.String(), internals[len(internals)-2].String())
	require.Contains(t, internals[len(internals)-1].String(), "node_modules")

	t.Run("should allow built-ins to be disabled", func(t *testing.T) {
		u, err := stackutils.New(stackutils.Options{Internals: []*regexp.Regexp{}})
		require.NoError(t, err)
		require.Empty(t, u.Internals())
	})

	t.Run("should reject invalid node version", func(t *testing.T) {
		_, err := stackutils.New(stackutils.Options{NodeVersion: "latest"})
		require.Error(t, err)
	})
}
