// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Root - merkle root of a list of transaction ids
//
// each level hashes adjacent pairs; an odd last element is paired
// with itself; an empty list has the zero digest as root
func Root(ids []Digest) Digest {
	if 0 == len(ids) {
		return Digest{}
	}
	level := make([]Digest, len(ids))
	copy(level, ids)

	for len(level) > 1 {
		next := make([]Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			j := i + 1
			if j == len(level) {
				j = i // compensate for odd number
			}
			next = append(next, NewDigest(append(level[i][:], level[j][:]...)))
		}
		level = next
	}
	return level[0]
}
