// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package file_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	cage_file "github.com/codeactual/stackutils/internal/cage/os/file"
)

type FileSuite struct {
	suite.Suite

	dir string
}

func (s *FileSuite) SetupTest() {
	t := s.T()

	dir, err := ioutil.TempDir("", "stackutils-file-test")
	require.NoError(t, err)
	s.dir = dir
}

func (s *FileSuite) TearDownTest() {
	require.NoError(s.T(), os.RemoveAll(s.dir))
}

func (s *FileSuite) TestCreateFileAll() {
	t := s.T()

	expectedFilePerm := os.FileMode(0600)
	name := filepath.Join(s.dir, "path", "to", "out.txt")

	f, err := cage_file.CreateFileAll(name, os.O_WRONLY|os.O_TRUNC, expectedFilePerm, 0700)
	require.NoError(t, err)
	require.Exactly(t, name, f.Name())
	require.NoError(t, f.Close())

	exists, fi, err := cage_file.Exists(name)
	require.NoError(t, err)
	require.True(t, exists)
	require.False(t, fi.IsDir())
	require.Exactly(t, expectedFilePerm, fi.Mode(), fi.Mode().String())

	exists, fi, err = cage_file.Exists(filepath.Dir(name))
	require.NoError(t, err)
	require.True(t, exists)
	require.True(t, fi.IsDir())
}

func (s *FileSuite) TestExistsMissing() {
	t := s.T()

	exists, fi, err := cage_file.Exists(filepath.Join(s.dir, "missing"))
	require.NoError(t, err)
	require.False(t, exists)
	require.Nil(t, fi)
}

func TestFileSuite(t *testing.T) {
	suite.Run(t, new(FileSuite))
}
