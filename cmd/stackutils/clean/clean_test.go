// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package clean_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/codeactual/stackutils/cmd/stackutils/clean"
	handler_cobra "github.com/codeactual/stackutils/internal/cage/cli/handler/cobra"
	testkit_require "github.com/codeactual/stackutils/internal/cage/testkit/testify/require"
)

const trace = `Error: boom
    at Object.foo (/srv/app/index.js:3:7)
    at Object.bar (/srv/app/node_modules/left-pad/index.js:1:1)
    at Object.baz (/srv/app/node_modules/chalk/index.js:2:2)
    at Module._compile (node:internal/modules/cjs/loader:1105:14)
`

type CleanSuite struct {
	suite.Suite

	dir string
}

func (s *CleanSuite) SetupTest() {
	t := s.T()

	dir, err := ioutil.TempDir("", "stackutils-clean-test")
	require.NoError(t, err)
	s.dir = dir
}

func (s *CleanSuite) TearDownTest() {
	require.NoError(s.T(), os.RemoveAll(s.dir))
}

// run executes the command and returns its standard output.
func (s *CleanSuite) run(stdin string, args ...string) string {
	t := s.T()

	var out bytes.Buffer

	h := &clean.Handler{}
	h.SetOut(&out)
	h.SetErr(ioutil.Discard)

	cmd := handler_cobra.NewHandler(h)
	h.Input.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute())

	return out.String()
}

func (s *CleanSuite) writeTrace(name, contents string) string {
	t := s.T()

	name = filepath.Join(s.dir, name)
	require.NoError(t, ioutil.WriteFile(name, []byte(contents), 0600))
	return name
}

func (s *CleanSuite) TestStdin() {
	t := s.T()

	testkit_require.LinesExactly(
		t,
		"Error: boom\n    at Object.foo (index.js:3:7)\n    at Object.bar (node_modules/left-pad/index.js:1:1)\n    at Object.baz (node_modules/chalk/index.js:2:2)\n",
		s.run(trace, "--cwd", "/srv/app"),
	)
}

func (s *CleanSuite) TestRemoveFirstLineAndIgnoredPackages() {
	t := s.T()

	testkit_require.LinesExactly(
		t,
		"Object.foo (index.js:3:7)\n",
		s.run(trace, "--cwd", "/srv/app", "--remove-first-line", "--ignored-package", "left-pad,chalk"),
	)
}

func (s *CleanSuite) TestIndent() {
	t := s.T()

	testkit_require.LinesExactly(
		t,
		"  Object.foo (index.js:3:7)\n",
		s.run(trace, "--cwd", "/srv/app", "--remove-first-line", "--ignored-package", "left-pad", "--ignored-package", "chalk", "--indent", "2"),
	)
}

func (s *CleanSuite) TestConfigFile() {
	t := s.T()

	// The config file selects the cwd and one ignored package, the flag adds another.
	config := filepath.Join("testdata", "fixture", "stackutils.yml")

	testkit_require.LinesExactly(
		t,
		"Error: boom\n    at Object.foo (index.js:3:7)\n",
		s.run(trace, "--config", config, "--ignored-package", "chalk"),
	)
}

func (s *CleanSuite) TestFiles() {
	t := s.T()

	a := s.writeTrace("a.log", trace)
	b := s.writeTrace("b.log", "TypeError: x is not a function\n    at /srv/app/lib/x.js:1:2\n")
	s.writeTrace("c.txt", trace)

	expected := "==> " + a + " <==\n" +
		"Object.foo (index.js:3:7)\n" +
		"\n" +
		"==> " + b + " <==\n" +
		"lib/x.js:1:2\n"

	out := s.run(
		"",
		"--cwd", "/srv/app", "--remove-first-line", "--ignored-package", "left-pad,chalk",
		"--input", filepath.Join(s.dir, "*.log"), "--jobs", "1",
	)
	testkit_require.LinesExactly(t, expected, out)

	out = s.run(
		"",
		"--cwd", "/srv/app", "--remove-first-line", "--ignored-package", "left-pad,chalk",
		"--input", filepath.Join(s.dir, "*"), "--exclude", filepath.Join(s.dir, "*.txt"),
	)
	testkit_require.LinesExactly(t, expected, out)
}

func (s *CleanSuite) TestOutputFile() {
	t := s.T()

	name := filepath.Join(s.dir, "out", "clean.log")

	require.Exactly(t, "", s.run(trace, "--cwd", "/srv/app", "--remove-first-line", "--ignored-package", "left-pad,chalk", "--output", name))

	contents, err := ioutil.ReadFile(name) // #nosec G304
	require.NoError(t, err)
	require.Exactly(t, "Object.foo (index.js:3:7)\n", string(contents))
}

func TestCleanSuite(t *testing.T) {
	suite.Run(t, new(CleanSuite))
}
