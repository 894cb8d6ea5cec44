// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an AVL balanced tree where every node also carries
// the size of its sub-tree so that the rank of any key and the item
// at any rank are found in O(log n)
//
// Note: an individual tree is not thread safe, so either access only
//
//	in a single go routine or use mutex/rwmutex to restrict
//	access.
//
// Keys are unique; an insert with an existing key overwrites the
// value.  Callers needing duplicate keys must make them unique by
// adding a tie-breaker (e.g. an object id) to the key.
package avl
