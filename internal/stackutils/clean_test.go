// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codeactual/stackutils/internal/stackutils"
)

const diErrorStack = `DiError: No provider for OtherService! (HelloWorldController.prototype.helloWorld -> MyService -> OtherService)
    at noProviderError (/srv/git/ts-stack/stack-utils/packages/core/src/di/error-handling.ts:42:17)
    at Function.findInRegistryCurrentProvider (/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:86:28)
    at Function.findInRegistryCurrentProvider (/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:76:21)
    at Function.selectInjectorAndCheckDeps (/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:42:17)
    at /srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:117:19
    at Array.forEach (<anonymous>)
    at Function.findInRegistryDeps (/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:116:18)`

func mustNew(t *testing.T, opts stackutils.Options) *stackutils.StackUtils {
	u, err := stackutils.New(opts)
	require.NoError(t, err)
	return u
}

func TestCleanFirstLine(t *testing.T) {
	t.Run("should keep the message line by default", func(t *testing.T) {
		u := mustNew(t, stackutils.Options{})
		require.Exactly(t, diErrorStack+"\n", u.Clean(diErrorStack, 0))
	})

	t.Run("should remove only the message line", func(t *testing.T) {
		u := mustNew(t, stackutils.Options{RemoveFirstLine: true})

		expected := `noProviderError (/srv/git/ts-stack/stack-utils/packages/core/src/di/error-handling.ts:42:17)
Function.findInRegistryCurrentProvider (/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:86:28)
Function.findInRegistryCurrentProvider (/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:76:21)
Function.selectInjectorAndCheckDeps (/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:42:17)
/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:117:19
Array.forEach (<anonymous>)
Function.findInRegistryDeps (/srv/git/ts-stack/stack-utils/packages/core/src/di/deps-checker.ts:116:18)
`
		require.Exactly(t, expected, u.Clean(diErrorStack, 0))
	})

	t.Run("should keep the first line if the second is not a frame", func(t *testing.T) {
		u := mustNew(t, stackutils.Options{RemoveFirstLine: true})
		stack := "Error: a\nsecond message\n    at f (/x/y.js:1:1)"
		require.Exactly(t, "second message\n    f (/x/y.js:1:1)\n", u.Clean(stack, 0))
	})
}

func TestCleanInternals(t *testing.T) {
	stack := strings.Join([]string{
		"Error: boom",
		"    at Object.foo (/srv/app/index.js:3:7)",
		"    at Module._compile (node:internal/modules/cjs/loader:1105:14)",
		"    at emitOne (events.js:116:13)",
		"    at Object.bar (/srv/app/node_modules/left-pad/index.js:1:1)",
		"    at node:internal/main/run_main_module:17:47",
	}, "\n")

	u := mustNew(t, stackutils.Options{IgnoredPackages: []string{"left-pad"}})

	t.Run("should remove internal and ignored package lines", func(t *testing.T) {
		require.Exactly(t, "Error: boom\n    at Object.foo (/srv/app/index.js:3:7)\n", u.Clean(stack, 0))
	})

	t.Run("should never emit a line matching an internal pattern", func(t *testing.T) {
		out := u.Clean(stack, 0)
		for _, line := range strings.Split(out, "\n") {
			for _, re := range u.Internals() {
				require.False(t, re.MatchString(line), "line [%s] pattern [%s]", line, re)
			}
		}
	})

	t.Run("should return empty string if every line is removed", func(t *testing.T) {
		require.Exactly(t, "", u.Clean("    at emitOne (events.js:116:13)\n    at fs.js:10:5", 0))
	})
}

func TestCleanCwd(t *testing.T) {
	t.Run("should shorten file names", func(t *testing.T) {
		u := mustNew(t, stackutils.Options{Cwd: "/a/b"})
		out := u.Clean("Error: x\n    at foo (/a/b/file.js:10:5)", 0)
		require.Contains(t, out, "file.js:10:5")
		require.NotContains(t, out, "/a/b/file.js:10:5")
		require.Exactly(t, "Error: x\n    at foo (file.js:10:5)\n", out)
	})

	t.Run("should only remove the first occurrence", func(t *testing.T) {
		u := mustNew(t, stackutils.Options{Cwd: "/a/b"})
		require.Exactly(t, "x (/a/b/y.js:1:1)\n", u.Clean("    at /a/b/x (/a/b/y.js:1:1)", 0))
	})

	t.Run("should normalize backslashes", func(t *testing.T) {
		u := mustNew(t, stackutils.Options{Cwd: `C:\app`})
		require.Exactly(t, "f (lib/x.js:1:1)\n", u.Clean(`    at f (C:\app\lib\x.js:1:1)`, 0))
	})

	t.Run("should not shorten with empty cwd", func(t *testing.T) {
		u := mustNew(t, stackutils.Options{})
		require.Exactly(t, "f (/x.js:1:1)\n", u.Clean("    at f (/x.js:1:1)", 0))
	})
}

func TestCleanDescriptionLines(t *testing.T) {
	u := mustNew(t, stackutils.Options{})

	t.Run("should drop a trailing description line", func(t *testing.T) {
		stack := "Error: a\n    at f (/x/y.js:1:1)\nsome trailing note"
		require.Exactly(t, "Error: a\n    at f (/x/y.js:1:1)\n", u.Clean(stack, 0))
	})

	t.Run("should keep only the description line closest to a frame", func(t *testing.T) {
		stack := "Error: a\nmore detail\n    at f (/x/y.js:1:1)"
		require.Exactly(t, "more detail\n    at f (/x/y.js:1:1)\n", u.Clean(stack, 0))
	})

	t.Run("should keep frame markers after an outdent by default", func(t *testing.T) {
		stack := "    at a (/x.js:1:1)\nCaused by: b   \n    at c (/y.js:2:2)   "
		require.Exactly(t, "a (/x.js:1:1)\nCaused by: b\n    at c (/y.js:2:2)\n", u.Clean(stack, 0))
	})

	t.Run("should strip frame markers after an outdent if removing the first line", func(t *testing.T) {
		u := mustNew(t, stackutils.Options{RemoveFirstLine: true})
		stack := "    at a (/x.js:1:1)\nCaused by: b\n    at c (/y.js:2:2)"
		require.Exactly(t, "a (/x.js:1:1)\nCaused by: b\n    c (/y.js:2:2)\n", u.Clean(stack, 0))
	})
}

func TestCleanIndent(t *testing.T) {
	u := mustNew(t, stackutils.Options{})

	require.Exactly(t, "  f (/x.js:1:1)\n  g (/y.js:2:2)\n", u.Clean("    at f (/x.js:1:1)\n    at g (/y.js:2:2)", 2))
	require.Exactly(t, "f (/x.js:1:1)\n", u.Clean("    at f (/x.js:1:1)", -1))
	require.Exactly(t, "  f (/x.js:1:1)\n", u.CleanLines([]string{"    at f (/x.js:1:1)", ""}, 2))
}

func TestCleanIdempotent(t *testing.T) {
	u := mustNew(t, stackutils.Options{})

	once := u.Clean(diErrorStack, 0)
	require.Exactly(t, once, u.Clean(once, 0))
}
