// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "log"), "relative")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log"), "absolute")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "./x/../log"), "cleaned")
}

func TestEnsureFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, util.EnsureFileExists(dir), "directory")
	assert.False(t, util.EnsureFileExists(filepath.Join(dir, "missing")), "missing")
}

func TestPlainName(t *testing.T) {
	name, err := util.PlainName("/data", "ledger.log")
	assert.NoError(t, err, "plain")
	assert.Equal(t, "/data/ledger.log", name, "joined")

	name, err = util.PlainName("", "ledger.log")
	assert.NoError(t, err, "no directory")
	assert.Equal(t, "ledger.log", name, "unchanged")

	_, err = util.PlainName("/data", "log/ledger.log")
	assert.Equal(t, fault.ErrInvalidPath, err, "has directory")

	_, err = util.PlainName("/data", "")
	assert.Equal(t, fault.ErrInvalidPath, err, "empty")
}
