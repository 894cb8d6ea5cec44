// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"strings"

	"github.com/bitmark-inc/ledgerd/avl"
)

// StringKey - ordering key on text
type StringKey string

// Compare - lexical order
func (s StringKey) Compare(x interface{}) int {
	return strings.Compare(string(s), string(x.(StringKey)))
}

// Int64Key - ordering key on a signed number or a unix time
type Int64Key int64

// Compare - numeric order
func (i Int64Key) Compare(x interface{}) int {
	j := x.(Int64Key)
	switch {
	case i < j:
		return -1
	case i > j:
		return 1
	}
	return 0
}

// Uint64Key - ordering key on an unsigned number
type Uint64Key uint64

// Compare - numeric order
func (i Uint64Key) Compare(x interface{}) int {
	return compareUint64(uint64(i), uint64(x.(Uint64Key)))
}

// Composite - lexicographic key made of several parts
//
// a shorter key that is a prefix of a longer one orders first, so a
// prefix can be used as the lower bound of its range
type Composite []avl.Item

// Compare - element by element
func (c Composite) Compare(x interface{}) int {
	other := x.(Composite)
	n := len(c)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i += 1 {
		if r := c[i].Compare(other[i]); 0 != r {
			return r
		}
	}
	return compareUint64(uint64(len(c)), uint64(len(other)))
}

// HasPrefix - true if the leading parts of c equal prefix
func (c Composite) HasPrefix(prefix Composite) bool {
	if len(prefix) > len(c) {
		return false
	}
	for i, p := range prefix {
		if 0 != c[i].Compare(p) {
			return false
		}
	}
	return true
}

func compareUint64(a uint64, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
