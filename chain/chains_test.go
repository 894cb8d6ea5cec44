// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/chain"
)

func TestValid(t *testing.T) {
	for _, name := range []string{chain.Live, chain.Testing, chain.Local} {
		assert.True(t, chain.Valid(name), "chain: %s", name)
	}
	assert.False(t, chain.Valid("bitcoin"), "unknown chain")
	assert.False(t, chain.Valid("Live"), "case sensitive")
}

func TestNormalise(t *testing.T) {
	name, ok := chain.Normalise("  Testing ")
	assert.True(t, ok, "known chain")
	assert.Equal(t, chain.Testing, name, "normalised")

	_, ok = chain.Normalise("other")
	assert.False(t, ok, "unknown chain")
}

func TestIdDiffersPerChain(t *testing.T) {
	assert.NotEqual(t, chain.Id(chain.Live), chain.Id(chain.Testing), "live and testing")
	assert.NotEqual(t, chain.Id(chain.Testing), chain.Id(chain.Local), "testing and local")
	assert.Equal(t, chain.Id(chain.Local), chain.Id(chain.Local), "stable")
	assert.Equal(t, "local.leveldb", chain.DatabaseName(chain.Local), "database name")
}
