// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/merkle"
)

func TestDigestJSON(t *testing.T) {
	d := merkle.NewDigest([]byte("ledger"))
	data, err := json.Marshal(d)
	assert.NoError(t, err, "marshal")

	var r merkle.Digest
	assert.NoError(t, json.Unmarshal(data, &r), "unmarshal")
	assert.Equal(t, d, r, "round trip")
	assert.False(t, r.IsZero(), "zero")

	assert.Error(t, r.UnmarshalText([]byte("abcd")), "short text")
}

func TestRoot(t *testing.T) {
	a := merkle.NewDigest([]byte("a"))
	b := merkle.NewDigest([]byte("b"))
	c := merkle.NewDigest([]byte("c"))

	assert.True(t, merkle.Root(nil).IsZero(), "empty")
	assert.Equal(t, a, merkle.Root([]merkle.Digest{a}), "single")

	ab := merkle.NewDigest(append(a[:], b[:]...))
	assert.Equal(t, ab, merkle.Root([]merkle.Digest{a, b}), "pair")

	cc := merkle.NewDigest(append(c[:], c[:]...))
	abcc := merkle.NewDigest(append(ab[:], cc[:]...))
	assert.Equal(t, abcc, merkle.Root([]merkle.Digest{a, b, c}), "odd")
}
