// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"strings"

	"github.com/bitmark-inc/ledgerd/merkle"
)

// names of all chains
const (
	Live    = "live"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Live, Testing, Local:
		return true
	default:
		return false
	}
}

// Normalise - lower case chain name, false if not a known chain
func Normalise(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	return name, Valid(name)
}

// Id - the chain id mixed into every transaction signature so that a
// transaction signed for one chain is rejected by the others
func Id(name string) merkle.Digest {
	return merkle.NewDigest([]byte("ledgerd chain: " + name))
}

// DatabaseName - default leveldb directory name for a chain
func DatabaseName(name string) string {
	return name + ".leveldb"
}
